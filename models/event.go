package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
)

type Event struct {
	ID          string `json:"id"`
	Nome        string `json:"nome"`
	Descrizione string `json:"descrizione"`
	URLImmagine string `json:"urlImmagine"`
	DataInizio  string `json:"dataInizio"`
	DataFine    string `json:"dataFine"`
	IsVisible   bool   `json:"isVisible"`
	IsBooked    bool   `json:"isBooked"`
}

func EventFromRecord(rec *core.Record) Event {
	return Event{
		ID:          rec.Id,
		Nome:        rec.GetString("nome"),
		Descrizione: rec.GetString("descrizione"),
		URLImmagine: fileURL(rec, "immagine"),
		DataInizio:  isoDate(rec.GetDateTime("dataInizio")),
		DataFine:    isoDate(rec.GetDateTime("dataFine")),
		IsVisible:   rec.GetBool("isVisible"),
	}
}

// EventForm is the create payload for an event. Immagine carries an optional
// data-URL staged image.
type EventForm struct {
	Nome        string `json:"nome"`
	Descrizione string `json:"descrizione"`
	DataInizio  string `json:"dataInizio"`
	DataFine    string `json:"dataFine"`
	IsVisible   *bool  `json:"isVisible"`
	Immagine    string `json:"immagine"`
}

func (f *EventForm) Validate() error {
	if err := validation.ValidateStruct(f,
		validation.Field(&f.Nome, validation.Required),
		validation.Field(&f.Descrizione, validation.Required),
		validation.Field(&f.DataInizio, validation.Required, validation.Date(time.RFC3339)),
		validation.Field(&f.DataFine, validation.Required, validation.Date(time.RFC3339)),
	); err != nil {
		return err
	}
	return validateDateRange(f.DataInizio, f.DataFine)
}

func (f *EventForm) Apply(rec *core.Record) {
	rec.Set("nome", f.Nome)
	rec.Set("descrizione", f.Descrizione)
	rec.Set("dataInizio", f.DataInizio)
	rec.Set("dataFine", f.DataFine)
	visible := true
	if f.IsVisible != nil {
		visible = *f.IsVisible
	}
	rec.Set("isVisible", visible)
}

// EventPatch is the partial update payload for an event. Only non-nil fields
// are merged into the record.
type EventPatch struct {
	Nome        *string `json:"nome"`
	Descrizione *string `json:"descrizione"`
	DataInizio  *string `json:"dataInizio"`
	DataFine    *string `json:"dataFine"`
	IsVisible   *bool   `json:"isVisible"`
	Immagine    *string `json:"immagine"`
}

func (p *EventPatch) Validate(current Event) error {
	if err := validation.ValidateStruct(p,
		validation.Field(&p.Nome, validation.NilOrNotEmpty),
		validation.Field(&p.DataInizio, validation.Date(time.RFC3339)),
		validation.Field(&p.DataFine, validation.Date(time.RFC3339)),
	); err != nil {
		return err
	}

	inizio := current.DataInizio
	if p.DataInizio != nil {
		inizio = *p.DataInizio
	}
	fine := current.DataFine
	if p.DataFine != nil {
		fine = *p.DataFine
	}
	return validateDateRange(inizio, fine)
}

func (p *EventPatch) Apply(rec *core.Record) {
	if p.Nome != nil {
		rec.Set("nome", *p.Nome)
	}
	if p.Descrizione != nil {
		rec.Set("descrizione", *p.Descrizione)
	}
	if p.DataInizio != nil {
		rec.Set("dataInizio", *p.DataInizio)
	}
	if p.DataFine != nil {
		rec.Set("dataFine", *p.DataFine)
	}
	if p.IsVisible != nil {
		rec.Set("isVisible", *p.IsVisible)
	}
}

// validateDateRange rejects events that end before they start.
func validateDateRange(inizio, fine string) error {
	start, err := time.Parse(time.RFC3339, inizio)
	if err != nil {
		return nil
	}
	end, err := time.Parse(time.RFC3339, fine)
	if err != nil {
		return nil
	}
	if end.Before(start) {
		return validation.NewError("validation_date_range", "La data di fine non può precedere la data di inizio.")
	}
	return nil
}
