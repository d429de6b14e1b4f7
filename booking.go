package main

import (
	"net/http"
	"time"

	"github.com/eventpulse/eventpulse/model"
	"github.com/eventpulse/eventpulse/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingHandler serves the booking subsystem. Bookings never touch the
// event cache: a booking changes no event-visible field.
type BookingHandler struct {
	repo   repository.BookingRepository
	logger *zap.Logger
}

func NewBookingHandler(repo repository.BookingRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		repo:   repo,
		logger: logger,
	}
}

// CreateBooking inserts a booking for the authenticated user, rejecting a
// second confirmed booking for the same event with a 409.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req model.BookingAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{
			Error:   "unauthorized",
			Message: "User ID not found in token",
		})
		return
	}

	exists, err := h.repo.HasConfirmedBooking(req.EventID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to check existing bookings",
		})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, model.ErrorResponse{
			Error:   "duplicate_booking",
			Message: "A confirmed booking for this user and event already exists",
		})
		return
	}

	status := req.Status
	if status == "" {
		status = model.BookingStatusConfirmed
	}

	booking, err := h.repo.CreateBooking(model.CreateBookingRequest{
		ID:          uuid.New().String(),
		EventID:     req.EventID,
		UserID:      userID,
		Status:      status,
		BookingDate: time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to create booking",
		})
		return
	}

	c.JSON(http.StatusCreated, booking.ToBookingResponse())
}

// ListBookings returns every booking without resolved events, for
// dashboard aggregation.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.repo.ListBookings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve bookings",
		})
		return
	}

	responses := make([]model.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, *bookings[i].ToBookingResponse())
	}

	c.JSON(http.StatusOK, responses)
}

// ListUserBookings returns the user's booking history newest first.
// Deleting an event does not cascade into its bookings, so rows whose
// event is gone are skipped here rather than surfaced half-resolved.
func (h *BookingHandler) ListUserBookings(c *gin.Context) {
	userID := c.Param("userId")

	bookings, err := h.repo.ListUserBookings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve bookings",
		})
		return
	}

	responses := make([]model.BookingResponse, 0, len(bookings))
	for i := range bookings {
		resp := bookings[i].ToBookingResponse()
		if resp.Event == nil {
			h.logger.Debug("skipping booking with deleted event",
				zap.String("booking_id", resp.BookingID),
				zap.String("event_id", resp.EventID))
			continue
		}
		responses = append(responses, *resp)
	}

	c.JSON(http.StatusOK, responses)
}
