package services

import (
	"context"
	"fmt"
	"log/slog"

	"membership-system/models"
)

// BookingStore is the backend contract the reconciler needs: the visible
// event projection, the viewer's booking list and the booking insert.
type BookingStore interface {
	VisibleEvents(ctx context.Context) ([]models.Event, error)
	BookingsForUser(ctx context.Context, userID string) ([]models.Booking, error)
	CreateBooking(ctx context.Context, event models.Event, viewer models.User) (models.Booking, error)
}

// BookingService derives the booked state of each event for the current
// viewer and performs the book action.
type BookingService struct {
	store    BookingStore
	calendar *CalendarService
	logger   *slog.Logger
}

func NewBookingService(store BookingStore, calendar *CalendarService, logger *slog.Logger) *BookingService {
	return &BookingService{
		store:    store,
		calendar: calendar,
		logger:   logger,
	}
}

// EventsForViewer returns the visible events, ascending by start date, each
// marked with the viewer's booked state.
func (s *BookingService) EventsForViewer(ctx context.Context, viewer models.User) ([]models.Event, error) {
	events, err := s.store.VisibleEvents(ctx)
	if err != nil {
		return nil, err
	}

	bookings, err := s.store.BookingsForUser(ctx, viewer.UID)
	if err != nil {
		return nil, err
	}

	return MarkBooked(events, bookings), nil
}

// MarkBooked sets isBooked on each event when the viewer's booking list
// contains at least one booking for it. It is an existence check: duplicate
// bookings collapse to a single indicator, first match wins.
func MarkBooked(events []models.Event, bookings []models.Booking) []models.Event {
	booked := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		booked[b.EventID] = struct{}{}
	}

	out := make([]models.Event, len(events))
	for i, ev := range events {
		_, ev.IsBooked = booked[ev.ID]
		out[i] = ev
	}
	return out
}

// Book creates a new booking row attributed to the viewer, then generates
// the calendar artifact for the same event. Booking an already-booked event
// appends another row and re-emits the artifact; the stored data is
// non-idempotent while the viewer-facing booked state stays true.
func (s *BookingService) Book(ctx context.Context, event models.Event, viewer models.User) (models.Booking, CalendarArtifact, error) {
	booking, err := s.store.CreateBooking(ctx, event, viewer)
	if err != nil {
		s.logger.Error("booking failed", "eventId", event.ID, "userId", viewer.UID, "error", err)
		return models.Booking{}, CalendarArtifact{}, fmt.Errorf("book event %q: %w", event.ID, err)
	}

	artifact := s.calendar.Generate(event)

	s.logger.Info("event booked",
		"eventId", event.ID,
		"userId", viewer.UID,
		"bookingId", booking.ID,
		"artifact", artifact.Filename,
	)
	return booking, artifact, nil
}
