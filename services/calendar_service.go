package services

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"membership-system/models"
)

// CalendarArtifact is a generated iCalendar download: the exact payload plus
// the filename handed to the client.
type CalendarArtifact struct {
	Filename string
	Content  string
}

// CalendarMIMEType is the content type the artifact is served with.
const CalendarMIMEType = "text/calendar; charset=utf-8"

// CalendarService builds the iCalendar artifact for one event. Output is
// deterministic for a fixed event except the DTSTAMP line, which carries the
// wall-clock time of the call.
type CalendarService struct {
	productID string
	domain    string
	now       func() time.Time
}

func NewCalendarService(productID, domain string) *CalendarService {
	return &CalendarService{
		productID: productID,
		domain:    domain,
		now:       time.Now,
	}
}

// Generate renders the VCALENDAR payload and its download filename.
func (s *CalendarService) Generate(event models.Event) CalendarArtifact {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + s.productID,
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s@%s", event.ID, s.domain),
		"DTSTAMP:" + formatICSDate(s.now().UTC().Format(time.RFC3339)),
		"DTSTART:" + formatICSDate(event.DataInizio),
		"DTEND:" + formatICSDate(event.DataFine),
		"SUMMARY:" + event.Nome,
		"DESCRIPTION:" + escapeICSText(event.Descrizione),
		"END:VEVENT",
		"END:VCALENDAR",
	}

	return CalendarArtifact{
		Filename: icsFilename(event.Nome),
		Content:  strings.Join(lines, "\r\n"),
	}
}

// formatICSDate converts an ISO-8601 string to the compact UTC form
// 20060102T150405Z. Zone-less inputs are interpreted in local time.
// Malformed inputs yield the literal "Invalid Date", propagated silently;
// the write boundary validates event dates so this does not occur in
// practice.
func formatICSDate(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02T15:04:05", value, time.Local)
	}
	if err != nil {
		return "Invalid Date"
	}
	return t.UTC().Format("20060102T150405") + "Z"
}

// escapeICSText turns embedded newlines into the literal backslash-n escape
// required inside a DESCRIPTION property.
func escapeICSText(value string) string {
	return strings.ReplaceAll(value, "\n", `\n`)
}

// icsFilename is the event name with every whitespace character replaced by
// an underscore, suffixed ".ics".
func icsFilename(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
	return mapped + ".ics"
}
