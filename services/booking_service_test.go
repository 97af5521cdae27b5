package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"membership-system/models"
)

type fakeBookingStore struct {
	events    []models.Event
	bookings  []models.Booking
	createErr error
}

func (f *fakeBookingStore) VisibleEvents(ctx context.Context) ([]models.Event, error) {
	return f.events, nil
}

func (f *fakeBookingStore) BookingsForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) CreateBooking(ctx context.Context, event models.Event, viewer models.User) (models.Booking, error) {
	if f.createErr != nil {
		return models.Booking{}, f.createErr
	}
	booking := models.Booking{
		ID:       fmt.Sprintf("bkg%d", len(f.bookings)+1),
		EventID:  event.ID,
		UserID:   viewer.UID,
		UserName: viewer.DisplayName(),
	}
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

func newTestBookingService(store *fakeBookingStore) *BookingService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBookingService(store, newTestCalendarService(), logger)
}

func TestMarkBooked_ExistenceCheck(t *testing.T) {
	events := []models.Event{{ID: "evt1"}, {ID: "evt2"}}
	bookings := []models.Booking{{ID: "bkg1", EventID: "evt1", UserID: "usr1"}}

	marked := MarkBooked(events, bookings)

	require.Len(t, marked, 2)
	assert.True(t, marked[0].IsBooked)
	assert.False(t, marked[1].IsBooked)
}

func TestMarkBooked_DuplicatesCollapseToOneIndicator(t *testing.T) {
	events := []models.Event{{ID: "evt1"}}
	bookings := []models.Booking{
		{ID: "bkg1", EventID: "evt1"},
		{ID: "bkg2", EventID: "evt1"},
	}

	marked := MarkBooked(events, bookings)

	require.Len(t, marked, 1)
	assert.True(t, marked[0].IsBooked)
}

func TestMarkBooked_NoBookings(t *testing.T) {
	marked := MarkBooked([]models.Event{{ID: "evt1"}}, nil)

	require.Len(t, marked, 1)
	assert.False(t, marked[0].IsBooked)
}

func TestBookingService_EventsForViewer(t *testing.T) {
	store := &fakeBookingStore{
		events: []models.Event{{ID: "evt1"}, {ID: "evt2"}},
		bookings: []models.Booking{
			{ID: "bkg1", EventID: "evt1", UserID: "usr1"},
			{ID: "bkg2", EventID: "evt2", UserID: "usr2"},
		},
	}
	svc := newTestBookingService(store)

	viewer := models.User{UID: "usr1"}
	events, err := svc.EventsForViewer(context.Background(), viewer)

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].IsBooked)
	assert.False(t, events[1].IsBooked, "another member's booking must not mark the event")
}

func TestBookingService_BookCreatesRowAndArtifact(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newTestBookingService(store)

	event := solsticeEvent()
	viewer := models.User{UID: "usr1", Nome: "Mario", Cognome: "Rossi"}

	booking, artifact, err := svc.Book(context.Background(), event, viewer)

	require.NoError(t, err)
	assert.Equal(t, "evt1", booking.EventID)
	assert.Equal(t, "Mario Rossi", booking.UserName)
	assert.Equal(t, "Solstizio_d'Estate.ics", artifact.Filename)
	assert.Contains(t, artifact.Content, "UID:evt1@orienteo117.app")
}

func TestBookingService_RebookingAppendsRow(t *testing.T) {
	store := &fakeBookingStore{events: []models.Event{solsticeEvent()}}
	svc := newTestBookingService(store)

	event := solsticeEvent()
	viewer := models.User{UID: "usr1", Nome: "Mario", Cognome: "Rossi"}

	first, firstArtifact, err := svc.Book(context.Background(), event, viewer)
	require.NoError(t, err)

	second, secondArtifact, err := svc.Book(context.Background(), event, viewer)
	require.NoError(t, err)

	// Two rows with distinct identifiers, the artifact re-emitted each time.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, store.bookings, 2)
	assert.Equal(t, firstArtifact.Filename, secondArtifact.Filename)

	// The derived state stays booked throughout.
	events, err := svc.EventsForViewer(context.Background(), viewer)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].IsBooked)
}

func TestBookingService_WriteFailureLeavesStateUnchanged(t *testing.T) {
	boom := errors.New("backend unavailable")
	store := &fakeBookingStore{createErr: boom}
	svc := newTestBookingService(store)

	_, artifact, err := svc.Book(context.Background(), solsticeEvent(), models.User{UID: "usr1"})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, artifact.Content, "no artifact on a failed write")
	assert.Empty(t, store.bookings)
}
