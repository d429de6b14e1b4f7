package model

import "time"

// User roles
const (
	RoleUser    = "user"
	RoleCreator = "creator"
)

// User is a local projection of the external identity provider's user
// record, kept in sync through the provider's webhook. It is never the
// source of truth for authentication.
type User struct {
	ID        string `gorm:"type:text;primary_key"`
	FullName  string `gorm:"not null"`
	Email     string `gorm:"not null;uniqueIndex"`
	Username  string
	Role      string `gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserRequest represents input for creating a user in repository layer
type CreateUserRequest struct {
	ID       string
	FullName string
	Email    string
	Username string
	Role     string
}
