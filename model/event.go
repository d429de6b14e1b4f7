package model

import "time"

// DefaultEventImage is used when a create request carries no image URL.
const DefaultEventImage = "https://images.pexels.com/photos/8381889/pexels-photo-8381889.jpeg"

// ===============================
// Database Entities (Internal)
// ===============================

// Category is a normalized lookup entity keyed by its name.
type Category struct {
	ID   string `gorm:"type:text;primary_key"`
	Name string `gorm:"not null;uniqueIndex"`
	Icon string
}

// City is a normalized lookup entity keyed by its name.
type City struct {
	ID      string `gorm:"type:text;primary_key"`
	Name    string `gorm:"not null;uniqueIndex"`
	State   string
	Country string
}

// Location is a normalized lookup entity keyed by (name, city).
type Location struct {
	ID     string `gorm:"type:text;primary_key"`
	Name   string `gorm:"not null;index:idx_location_name_city,unique"`
	CityID string `gorm:"type:text;not null;index:idx_location_name_city,unique"`

	City City `gorm:"foreignKey:CityID"`
}

// Event represents the event entity in the database
type Event struct {
	ID               string `gorm:"type:text;primary_key"`
	Title            string `gorm:"not null"`
	Description      string
	ShortDescription string    `gorm:"type:varchar(200)"`
	Date             time.Time `gorm:"not null"`
	Image            string
	CategoryID       string `gorm:"type:text;not null"`
	CityID           string `gorm:"type:text;not null"`
	LocationID       string `gorm:"type:text;not null"`
	CreatedBy        string `gorm:"type:text;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Category Category `gorm:"foreignKey:CategoryID"`
	City     City     `gorm:"foreignKey:CityID"`
	Location Location `gorm:"foreignKey:LocationID"`
}

// ToEventResponse converts an Event with resolved references into the API
// shape. Callers must load the event through a repository method that
// resolves Category, City and Location (including the location's city).
func (e *Event) ToEventResponse() *EventResponse {
	return &EventResponse{
		EventID:          e.ID,
		Title:            e.Title,
		Description:      e.Description,
		ShortDescription: e.ShortDescription,
		Date:             e.Date,
		Image:            e.Image,
		Category: CategoryResponse{
			Name: e.Category.Name,
			Icon: e.Category.Icon,
		},
		City: CityResponse{
			Name:    e.City.Name,
			State:   e.City.State,
			Country: e.City.Country,
		},
		Location: LocationResponse{
			Name: e.Location.Name,
			City: CityResponse{
				Name:    e.Location.City.Name,
				State:   e.Location.City.State,
				Country: e.Location.City.Country,
			},
		},
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ===============================
// Repository DTOs (Internal)
// ===============================

// CreateEventRequest represents input for creating an event in repository layer
type CreateEventRequest struct {
	ID               string
	Title            string
	Description      string
	ShortDescription string
	Date             time.Time
	Image            string
	CategoryID       string
	CityID           string
	LocationID       string
	CreatedBy        string
}

// UpdateEventRequest represents input for updating an event in repository layer
type UpdateEventRequest struct {
	ID               string
	Title            string
	Description      string
	ShortDescription string
	Date             time.Time
	Image            string
	CategoryID       string
	CityID           string
	LocationID       string
}

// ===============================
// API DTOs (External)
// ===============================

// EventAPIRequest is the request body for creating or updating an event.
// Category, city and location are natural-key names; the write path
// upserts the matching lookup rows before touching the event itself.
type EventAPIRequest struct {
	Title            string    `json:"title" binding:"required"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"short_description" binding:"omitempty,max=200"`
	Date             time.Time `json:"date" binding:"required"`
	Image            string    `json:"image" binding:"omitempty,url"`
	Category         string    `json:"category" binding:"required"`
	Icon             string    `json:"icon"`
	City             string    `json:"city" binding:"required"`
	State            string    `json:"state"`
	Country          string    `json:"country"`
	Location         string    `json:"location" binding:"required"`
}

// CategoryResponse represents a resolved category reference
type CategoryResponse struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// CityResponse represents a resolved city reference
type CityResponse struct {
	Name    string `json:"name"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// LocationResponse represents a resolved location reference
type LocationResponse struct {
	Name string       `json:"name"`
	City CityResponse `json:"city"`
}

// EventResponse represents event data in API responses
type EventResponse struct {
	EventID          string           `json:"event_id"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	ShortDescription string           `json:"short_description,omitempty"`
	Date             time.Time        `json:"date"`
	Image            string           `json:"image,omitempty"`
	Category         CategoryResponse `json:"category"`
	City             CityResponse     `json:"city"`
	Location         LocationResponse `json:"location"`
	CreatedBy        string           `json:"created_by,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ErrorResponse represents error responses
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// MessageResponse represents confirmation-only responses
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Cache     string    `json:"cache"`
	Timestamp time.Time `json:"timestamp"`
}
