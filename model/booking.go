package model

import "time"

// Booking statuses. At most one confirmed booking may exist per
// (event, user) pair; cancelled bookings do not count against that.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// ===============================
// Database Entities (Internal)
// ===============================

// Booking represents the booking entity in the database. The event
// reference is not covered by a foreign-key cascade: deleting an event
// leaves its bookings dangling, and read paths skip the orphans.
type Booking struct {
	ID          string    `gorm:"type:text;primary_key"`
	EventID     string    `gorm:"type:text;not null;index"`
	UserID      string    `gorm:"type:text;not null;index"`
	Status      string    `gorm:"type:varchar(20);not null;default:'confirmed'"`
	BookingDate time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Event Event `gorm:"foreignKey:EventID"`
}

// ToBookingResponse converts a booking with a resolved event into the API
// shape. Event is nil when the referenced event no longer exists.
func (b *Booking) ToBookingResponse() *BookingResponse {
	resp := &BookingResponse{
		BookingID:   b.ID,
		EventID:     b.EventID,
		UserID:      b.UserID,
		Status:      b.Status,
		BookingDate: b.BookingDate,
	}
	if b.Event.ID != "" {
		resp.Event = &BookingEventDetails{
			EventID:  b.Event.ID,
			Title:    b.Event.Title,
			Date:     b.Event.Date,
			Image:    b.Event.Image,
			Location: b.Event.Location.Name,
			City:     b.Event.City.Name,
		}
	}
	return resp
}

// ===============================
// Repository DTOs (Internal)
// ===============================

// CreateBookingRequest represents input for creating a booking in repository layer
type CreateBookingRequest struct {
	ID          string
	EventID     string
	UserID      string
	Status      string
	BookingDate time.Time
}

// ===============================
// API DTOs (External)
// ===============================

// BookingAPIRequest is the request body for creating a booking. The user
// identity comes from the authenticated caller, never from the body.
type BookingAPIRequest struct {
	EventID string `json:"event_id" binding:"required"`
	Status  string `json:"status" binding:"omitempty,oneof=confirmed cancelled"`
}

// BookingEventDetails represents the resolved event inside a booking response
type BookingEventDetails struct {
	EventID  string    `json:"event_id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Image    string    `json:"image,omitempty"`
	Location string    `json:"location,omitempty"`
	City     string    `json:"city,omitempty"`
}

// BookingResponse represents booking data in API responses
type BookingResponse struct {
	BookingID   string               `json:"booking_id"`
	EventID     string               `json:"event_id"`
	UserID      string               `json:"user_id"`
	Status      string               `json:"status"`
	BookingDate time.Time            `json:"booking_date"`
	Event       *BookingEventDetails `json:"event,omitempty"`
}
