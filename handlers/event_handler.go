package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"membership-system/models"
	"membership-system/monitoring"
	"membership-system/repository"
	"membership-system/services"
)

// EventHandler serves the member-facing event screens: the reconciled event
// list, the book action and the calendar artifact download.
type EventHandler struct {
	events   *repository.Collection[models.Event]
	bookings *services.BookingService
	calendar *services.CalendarService
}

func NewEventHandler(events *repository.Collection[models.Event], bookings *services.BookingService, calendar *services.CalendarService) *EventHandler {
	return &EventHandler{
		events:   events,
		bookings: bookings,
		calendar: calendar,
	}
}

// List returns the visible events ascending by start date, each marked with
// the viewer's booked state.
func (h *EventHandler) List(e *core.RequestEvent) error {
	viewer := models.UserFromRecord(e.Auth)

	events, err := h.bookings.EventsForViewer(e.Request.Context(), viewer)
	if err != nil {
		return e.BadRequestError("Impossibile caricare gli eventi.", err)
	}
	return e.JSON(http.StatusOK, events)
}

// Book creates a booking for the viewer and streams the calendar artifact as
// the response, mirroring the book-then-download user action.
func (h *EventHandler) Book(e *core.RequestEvent) error {
	event, err := h.visibleEvent(e)
	if err != nil {
		return err
	}
	viewer := models.UserFromRecord(e.Auth)

	_, artifact, err := h.bookings.Book(e.Request.Context(), event, viewer)
	if err != nil {
		return e.BadRequestError("Errore durante la prenotazione dell'evento.", err)
	}

	monitoring.TrackBooking()
	return writeArtifact(e, artifact)
}

// Calendar regenerates and streams the artifact without creating a booking.
func (h *EventHandler) Calendar(e *core.RequestEvent) error {
	event, err := h.visibleEvent(e)
	if err != nil {
		return err
	}
	return writeArtifact(e, h.calendar.Generate(event))
}

func (h *EventHandler) visibleEvent(e *core.RequestEvent) (models.Event, error) {
	event, err := h.events.ByID(e.Request.PathValue("id"))
	if err != nil || !event.IsVisible {
		return models.Event{}, e.NotFoundError("Evento non trovato.", err)
	}
	return event, nil
}

func writeArtifact(e *core.RequestEvent, artifact services.CalendarArtifact) error {
	monitoring.TrackCalendarArtifact()
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	return e.Blob(http.StatusOK, services.CalendarMIMEType, []byte(artifact.Content))
}
