package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/eventpulse/eventpulse/cache"
	"github.com/eventpulse/eventpulse/config"
	"github.com/eventpulse/eventpulse/model"
	"github.com/eventpulse/eventpulse/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cache-status values surfaced in the X-Cache-Status diagnostic header.
const (
	cacheStatusHit   = "REDIS-HIT"
	cacheStatusFetch = "DB-FETCH"
)

// cacheControlList keeps the CDN window at one second so an invalidating
// write propagates almost immediately; the Redis layer underneath holds
// the longer TTL.
const cacheControlList = "public, max-age=0, s-maxage=1, must-revalidate"

type EventHandler struct {
	repo   repository.EventRepository
	cache  cache.EventCache
	cfg    *config.CacheConfig
	logger *zap.Logger
}

func NewEventHandler(repo repository.EventRepository, cache cache.EventCache, cfg *config.CacheConfig, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		repo:   repo,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
	}
}

// ListEvents serves the full event list, read-through cached under the
// singleton list key. Cache trouble degrades to a store read.
func (h *EventHandler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()

	cached, err := h.cache.GetEventList(ctx)
	if err == nil {
		c.Header("X-Cache-Status", cacheStatusHit)
		c.Header("Cache-Control", cacheControlList)
		c.JSON(http.StatusOK, cached)
		return
	}
	if !errors.Is(err, cache.ErrMiss) {
		h.logger.Warn("event list cache read failed", zap.Error(err))
	}

	events, err := h.repo.ListEvents()
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve events",
		})
		return
	}

	responses := make([]model.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, *events[i].ToEventResponse())
	}

	// An empty list is likely transitional (fresh deploy, bulk delete);
	// caching it would pin that state for the full TTL.
	if len(responses) > 0 {
		if err := h.cache.SetEventList(ctx, responses, h.cfg.ListTTL()); err != nil {
			h.logger.Warn("event list cache populate failed", zap.Error(err))
		}
	}

	c.Header("X-Cache-Status", cacheStatusFetch)
	c.Header("Cache-Control", cacheControlList)
	c.JSON(http.StatusOK, responses)
}

// GetEvent serves a single event, read-through cached under its per-id
// key. A 404 is never cached as a negative entry.
func (h *EventHandler) GetEvent(c *gin.Context) {
	ctx := c.Request.Context()
	eventID := c.Param("id")

	cached, err := h.cache.GetEvent(ctx, eventID)
	if err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}
	if !errors.Is(err, cache.ErrMiss) {
		h.logger.Warn("event cache read failed", zap.String("event_id", eventID), zap.Error(err))
	}

	event, err := h.repo.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{
				Error:   "not_found",
				Message: "Event not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve event",
		})
		return
	}

	response := event.ToEventResponse()
	if err := h.cache.SetEvent(ctx, eventID, response, h.cfg.EventTTL()); err != nil {
		h.logger.Warn("event cache populate failed", zap.String("event_id", eventID), zap.Error(err))
	}

	c.JSON(http.StatusOK, response)
}

// CreateEvent inserts an event after upserting its lookup rows, then
// invalidates the list key. There is no prior per-id entry to invalidate.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.EventAPIRequest
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

	refs, err := h.resolveLookups(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to resolve event references",
		})
		return
	}

	image := req.Image
	if image == "" {
		image = model.DefaultEventImage
	}

	event, err := h.repo.CreateEvent(model.CreateEventRequest{
		ID:               uuid.New().String(),
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Date:             req.Date,
		Image:            image,
		CategoryID:       refs.category.ID,
		CityID:           refs.city.ID,
		LocationID:       refs.location.ID,
		CreatedBy:        userID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to create event",
		})
		return
	}

	// The insert is acknowledged; only now may the cache be touched, or a
	// concurrent reader could repopulate it with pre-write data.
	if err := h.cache.InvalidateEventList(ctx); err != nil {
		h.logger.Warn("event list cache invalidation failed", zap.Error(err))
	}

	c.JSON(http.StatusCreated, event.ToEventResponse())
}

// UpdateEvent replaces an event's fields, invalidates both affected keys
// strictly after the store write, then refreshes the per-id entry with the
// post-update value so the next reader hits.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	ctx := c.Request.Context()
	eventID := c.Param("id")

	var req model.EventAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		})
		return
	}

	if _, ok := h.authorizeMutation(c, eventID); !ok {
		return
	}

	refs, err := h.resolveLookups(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to resolve event references",
		})
		return
	}

	image := req.Image
	if image == "" {
		image = model.DefaultEventImage
	}

	event, err := h.repo.UpdateEvent(model.UpdateEventRequest{
		ID:               eventID,
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Date:             req.Date,
		Image:            image,
		CategoryID:       refs.category.ID,
		CityID:           refs.city.ID,
		LocationID:       refs.location.ID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Nothing was written, so there is nothing to invalidate.
			c.JSON(http.StatusNotFound, model.ErrorResponse{
				Error:   "not_found",
				Message: "Event not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to update event",
		})
		return
	}

	response := event.ToEventResponse()

	// Store write acknowledged; delete both stale keys, then refresh the
	// per-id entry. The refresh is a latency optimization only - the
	// deletes alone establish the invariant.
	if err := h.cache.InvalidateEventList(ctx); err != nil {
		h.logger.Warn("event list cache invalidation failed", zap.Error(err))
	}
	if err := h.cache.InvalidateEvent(ctx, eventID); err != nil {
		h.logger.Warn("event cache invalidation failed", zap.String("event_id", eventID), zap.Error(err))
	}
	if err := h.cache.SetEvent(ctx, eventID, response, h.cfg.EventTTL()); err != nil {
		h.logger.Warn("event cache refresh failed", zap.String("event_id", eventID), zap.Error(err))
	}

	c.JSON(http.StatusOK, response)
}

// DeleteEvent hard-deletes an event and invalidates both affected keys.
// Bookings referencing the event are left dangling on purpose; booking
// reads filter them.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	ctx := c.Request.Context()
	eventID := c.Param("id")

	if _, ok := h.authorizeMutation(c, eventID); !ok {
		return
	}

	if err := h.repo.DeleteEvent(eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{
				Error:   "not_found",
				Message: "Event not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to delete event",
		})
		return
	}

	if err := h.cache.InvalidateEventList(ctx); err != nil {
		h.logger.Warn("event list cache invalidation failed", zap.Error(err))
	}
	if err := h.cache.InvalidateEvent(ctx, eventID); err != nil {
		h.logger.Warn("event cache invalidation failed", zap.String("event_id", eventID), zap.Error(err))
	}

	c.JSON(http.StatusOK, model.MessageResponse{Message: "Event deleted successfully."})
}

// HealthCheck reports store and cache health. The store is load-bearing;
// the cache is not, so its state never fails the check.
func (h *EventHandler) HealthCheck(c *gin.Context) {
	sqlDB, err := h.repo.GetDB().DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{
			Error:   "service_unavailable",
			Message: "Database connection failed",
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{
			Error:   "service_unavailable",
			Message: "Database ping failed",
		})
		return
	}

	cacheStatus := "healthy"
	if err := h.cache.Ping(c.Request.Context()); err != nil {
		cacheStatus = "unavailable"
	}

	c.JSON(http.StatusOK, model.HealthResponse{
		Status:    "healthy",
		Service:   "eventpulse",
		Cache:     cacheStatus,
		Timestamp: time.Now(),
	})
}

type lookupRefs struct {
	category *model.Category
	city     *model.City
	location *model.Location
}

// resolveLookups upserts the category, city and location named by the
// request. The upserts are idempotent, so concurrent identical writes race
// harmlessly.
func (h *EventHandler) resolveLookups(req model.EventAPIRequest) (*lookupRefs, error) {
	category, err := h.repo.FindOrCreateCategory(req.Category, req.Icon)
	if err != nil {
		return nil, err
	}

	city, err := h.repo.FindOrCreateCity(req.City, req.State, req.Country)
	if err != nil {
		return nil, err
	}

	location, err := h.repo.FindOrCreateLocation(req.Location, city.ID)
	if err != nil {
		return nil, err
	}

	return &lookupRefs{category: category, city: city, location: location}, nil
}

// authorizeMutation loads the event and verifies the caller may mutate it.
// Events created before creator tracking have an empty created_by and stay
// mutable by any authenticated user. On failure the response is already
// written and ok is false.
func (h *EventHandler) authorizeMutation(c *gin.Context, eventID string) (*model.Event, bool) {
	userID, hasUser := currentUserID(c)
	if !hasUser {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{
			Error:   "unauthorized",
			Message: "User ID not found in token",
		})
		return nil, false
	}

	event, err := h.repo.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{
				Error:   "not_found",
				Message: "Event not found",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve event",
		})
		return nil, false
	}

	if event.CreatedBy != "" && event.CreatedBy != userID {
		c.JSON(http.StatusForbidden, model.ErrorResponse{
			Error:   "forbidden",
			Message: "Only the event creator may modify this event",
		})
		return nil, false
	}

	return event, true
}
