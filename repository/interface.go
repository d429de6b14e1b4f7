package repository

import (
	"github.com/eventpulse/eventpulse/model"
	"gorm.io/gorm"
)

// EventRepository is the store adapter for events and their lookup
// entities. GetEventByID, ListEvents and every mutation return events
// with Category, City and Location (and the location's city) resolved.
type EventRepository interface {
	// Lookup entity upserts, keyed by natural name. Idempotent: concurrent
	// identical calls may race, last write wins on the secondary fields.
	FindOrCreateCategory(name, icon string) (*model.Category, error)
	FindOrCreateCity(name, state, country string) (*model.City, error)
	FindOrCreateLocation(name, cityID string) (*model.Location, error)

	// Event operations
	CreateEvent(req model.CreateEventRequest) (*model.Event, error)
	GetEventByID(id string) (*model.Event, error)
	ListEvents() ([]model.Event, error)
	UpdateEvent(req model.UpdateEventRequest) (*model.Event, error)
	DeleteEvent(id string) error

	// Database access for health checks
	GetDB() *gorm.DB
}

// BookingRepository is the store adapter for bookings.
type BookingRepository interface {
	CreateBooking(req model.CreateBookingRequest) (*model.Booking, error)
	HasConfirmedBooking(eventID, userID string) (bool, error)
	ListBookings() ([]model.Booking, error)
	// ListUserBookings returns the user's bookings newest first, with the
	// referenced event resolved where it still exists.
	ListUserBookings(userID string) ([]model.Booking, error)
}

// UserRepository is the store adapter for webhook-synced users.
type UserRepository interface {
	UpsertUser(req model.CreateUserRequest) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
}
