package postgres

import (
	"errors"
	"fmt"

	"github.com/eventpulse/eventpulse/model"
	"github.com/eventpulse/eventpulse/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// FindOrCreateCategory upserts a category by name. A supplied icon
// refreshes the stored one; an empty icon leaves it untouched.
func (r *EventRepository) FindOrCreateCategory(name, icon string) (*model.Category, error) {
	var category model.Category
	err := r.db.Where(model.Category{Name: name}).
		Attrs(model.Category{ID: uuid.New().String()}).
		Assign(model.Category{Icon: icon}).
		FirstOrCreate(&category).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert category: %w", err)
	}
	return &category, nil
}

// FindOrCreateCity upserts a city by name, refreshing state/country when supplied.
func (r *EventRepository) FindOrCreateCity(name, state, country string) (*model.City, error) {
	var city model.City
	err := r.db.Where(model.City{Name: name}).
		Attrs(model.City{ID: uuid.New().String()}).
		Assign(model.City{State: state, Country: country}).
		FirstOrCreate(&city).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert city: %w", err)
	}
	return &city, nil
}

// FindOrCreateLocation upserts a location by (name, city).
func (r *EventRepository) FindOrCreateLocation(name, cityID string) (*model.Location, error) {
	var location model.Location
	err := r.db.Where(model.Location{Name: name, CityID: cityID}).
		Attrs(model.Location{ID: uuid.New().String()}).
		FirstOrCreate(&location).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert location: %w", err)
	}
	return &location, nil
}

func (r *EventRepository) CreateEvent(req model.CreateEventRequest) (*model.Event, error) {
	event := model.Event{
		ID:               req.ID,
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Date:             req.Date,
		Image:            req.Image,
		CategoryID:       req.CategoryID,
		CityID:           req.CityID,
		LocationID:       req.LocationID,
		CreatedBy:        req.CreatedBy,
	}

	if err := r.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return r.GetEventByID(event.ID)
}

// GetEventByID returns the event with all references resolved.
func (r *EventRepository) GetEventByID(id string) (*model.Event, error) {
	var event model.Event
	err := r.resolved().First(&event, "events.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// ListEvents returns every event with all references resolved, soonest first.
func (r *EventRepository) ListEvents() ([]model.Event, error) {
	var events []model.Event
	if err := r.resolved().Order("date ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// UpdateEvent replaces the event's mutable fields and returns the resolved
// result. Every field in the request is written, including zero values, so
// an update is a full-document replace like the create path.
func (r *EventRepository) UpdateEvent(req model.UpdateEventRequest) (*model.Event, error) {
	var event model.Event
	if err := r.db.First(&event, "id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event for update: %w", err)
	}

	updates := map[string]interface{}{
		"title":             req.Title,
		"description":       req.Description,
		"short_description": req.ShortDescription,
		"date":              req.Date,
		"image":             req.Image,
		"category_id":       req.CategoryID,
		"city_id":           req.CityID,
		"location_id":       req.LocationID,
	}
	if err := r.db.Model(&event).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return r.GetEventByID(req.ID)
}

// DeleteEvent hard-deletes the event. Bookings referencing it are left in
// place; booking read paths filter the orphans.
func (r *EventRepository) DeleteEvent(id string) error {
	result := r.db.Delete(&model.Event{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) GetDB() *gorm.DB {
	return r.db
}

// resolved preloads every reference an API response needs, mirroring the
// nested populate of the read paths.
func (r *EventRepository) resolved() *gorm.DB {
	return r.db.
		Preload("Category").
		Preload("City").
		Preload("Location").
		Preload("Location.City")
}
