package postgres

import (
	"testing"
	"time"

	"github.com/eventpulse/eventpulse/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBook(t *testing.T, repo *BookingRepository, eventID, userID, status string, at time.Time) *model.Booking {
	t.Helper()
	booking, err := repo.CreateBooking(model.CreateBookingRequest{
		ID:          uuid.New().String(),
		EventID:     eventID,
		UserID:      userID,
		Status:      status,
		BookingDate: at,
	})
	require.NoError(t, err)
	return booking
}

func TestHasConfirmedBooking(t *testing.T) {
	db := openTestDB(t)
	events := NewEventRepository(db)
	repo := NewBookingRepository(db)
	event := seedEvent(t, events, "Jazz Night", "Concert", "New York", "Central Hall", "")

	exists, err := repo.HasConfirmedBooking(event.ID, "user_1")
	require.NoError(t, err)
	assert.False(t, exists)

	mustBook(t, repo, event.ID, "user_1", model.BookingStatusConfirmed, time.Now())

	exists, err = repo.HasConfirmedBooking(event.ID, "user_1")
	require.NoError(t, err)
	assert.True(t, exists)

	// A different user or a cancelled booking never counts.
	exists, err = repo.HasConfirmedBooking(event.ID, "user_2")
	require.NoError(t, err)
	assert.False(t, exists)

	mustBook(t, repo, event.ID, "user_3", model.BookingStatusCancelled, time.Now())
	exists, err = repo.HasConfirmedBooking(event.ID, "user_3")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListUserBookingsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	events := NewEventRepository(db)
	repo := NewBookingRepository(db)
	event := seedEvent(t, events, "Jazz Night", "Concert", "New York", "Central Hall", "")
	other := seedEvent(t, events, "Other Night", "Concert", "New York", "Central Hall", "")

	older := mustBook(t, repo, event.ID, "user_1", model.BookingStatusConfirmed, time.Now().Add(-time.Hour))
	newer := mustBook(t, repo, other.ID, "user_1", model.BookingStatusConfirmed, time.Now())
	mustBook(t, repo, event.ID, "user_2", model.BookingStatusConfirmed, time.Now())

	bookings, err := repo.ListUserBookings("user_1")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, newer.ID, bookings[0].ID)
	assert.Equal(t, older.ID, bookings[1].ID)
	assert.Equal(t, "Jazz Night", bookings[1].Event.Title)
	assert.Equal(t, "Central Hall", bookings[1].Event.Location.Name)
}

func TestListUserBookingsLeavesOrphansUnresolved(t *testing.T) {
	db := openTestDB(t)
	events := NewEventRepository(db)
	repo := NewBookingRepository(db)
	event := seedEvent(t, events, "Jazz Night", "Concert", "New York", "Central Hall", "")

	mustBook(t, repo, event.ID, "user_1", model.BookingStatusConfirmed, time.Now())
	require.NoError(t, events.DeleteEvent(event.ID))

	bookings, err := repo.ListUserBookings("user_1")
	require.NoError(t, err)
	require.Len(t, bookings, 1, "deletion does not cascade into bookings")
	assert.Empty(t, bookings[0].Event.ID, "orphaned reference stays unresolved")
	assert.Nil(t, bookings[0].ToBookingResponse().Event)
}
