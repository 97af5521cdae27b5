package models

import (
	"github.com/pocketbase/pocketbase/core"
)

type Booking struct {
	ID               string `json:"id"`
	EventID          string `json:"eventId"`
	UserID           string `json:"userId"`
	UserName         string `json:"userName"` // denormalized "nome cognome"
	DataPrenotazione string `json:"dataPrenotazione"`
}

func BookingFromRecord(rec *core.Record) Booking {
	return Booking{
		ID:               rec.Id,
		EventID:          rec.GetString("eventId"),
		UserID:           rec.GetString("userId"),
		UserName:         rec.GetString("userName"),
		DataPrenotazione: isoDate(rec.GetDateTime("dataPrenotazione")),
	}
}
