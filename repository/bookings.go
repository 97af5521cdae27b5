package repository

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"membership-system/models"
)

// Bookings accesses the bookings collection. It intentionally has no
// uniqueness guard on (eventId, userId): duplicate rows are allowed and the
// viewer-facing booked state collapses them to one indicator.
type Bookings struct {
	app core.App
}

func NewBookings(app core.App) *Bookings {
	return &Bookings{app: app}
}

// ForUser returns every booking of one member, unsorted and unfiltered.
func (b *Bookings) ForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	records, err := b.app.FindRecordsByFilter(
		"bookings",
		"userId = {:userId}",
		"",
		0,
		0,
		dbx.Params{"userId": userID},
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings for user %q: %w", userID, err)
	}

	out := make([]models.Booking, 0, len(records))
	for _, rec := range records {
		out = append(out, models.BookingFromRecord(rec))
	}
	return out, nil
}

// Create appends a new booking row attributed to the viewer.
func (b *Bookings) Create(ctx context.Context, event models.Event, viewer models.User) (models.Booking, error) {
	col, err := b.app.FindCollectionByNameOrId("bookings")
	if err != nil {
		return models.Booking{}, fmt.Errorf("find bookings collection: %w", err)
	}

	rec := core.NewRecord(col)
	rec.Set("eventId", event.ID)
	rec.Set("userId", viewer.UID)
	rec.Set("userName", viewer.DisplayName())

	if err := b.app.Save(rec); err != nil {
		return models.Booking{}, fmt.Errorf("create booking for event %q: %w", event.ID, err)
	}
	return models.BookingFromRecord(rec), nil
}
