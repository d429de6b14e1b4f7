package postgres

import (
	"fmt"

	"github.com/eventpulse/eventpulse/model"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) CreateBooking(req model.CreateBookingRequest) (*model.Booking, error) {
	booking := model.Booking{
		ID:          req.ID,
		EventID:     req.EventID,
		UserID:      req.UserID,
		Status:      req.Status,
		BookingDate: req.BookingDate,
	}

	if err := r.db.Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return &booking, nil
}

// HasConfirmedBooking reports whether a confirmed booking already exists
// for the (event, user) pair. Cancelled bookings do not count.
func (r *BookingRepository) HasConfirmedBooking(eventID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Booking{}).
		Where("event_id = ? AND user_id = ? AND status = ?", eventID, userID, model.BookingStatusConfirmed).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check for existing booking: %w", err)
	}
	return count > 0, nil
}

func (r *BookingRepository) ListBookings() ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListUserBookings returns the user's bookings newest first. Events are
// resolved with their location and city; bookings whose event was deleted
// come back with a zero Event and are filtered by the handler.
func (r *BookingRepository) ListUserBookings(userID string) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.
		Preload("Event").
		Preload("Event.Location").
		Preload("Event.City").
		Where("user_id = ?", userID).
		Order("booking_date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	return bookings, nil
}
