package repository

import (
	"context"

	"membership-system/models"
)

// PortalStore bundles the event and booking accessors behind the booking
// reconciler's store contract.
type PortalStore struct {
	events   *Collection[models.Event]
	bookings *Bookings
}

func NewPortalStore(events *Collection[models.Event], bookings *Bookings) *PortalStore {
	return &PortalStore{events: events, bookings: bookings}
}

func (s *PortalStore) VisibleEvents(ctx context.Context) ([]models.Event, error) {
	return s.events.Visible(ctx)
}

func (s *PortalStore) BookingsForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.bookings.ForUser(ctx, userID)
}

func (s *PortalStore) CreateBooking(ctx context.Context, event models.Event, viewer models.User) (models.Booking, error) {
	return s.bookings.Create(ctx, event, viewer)
}
