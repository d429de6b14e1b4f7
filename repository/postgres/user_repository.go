package postgres

import (
	"errors"
	"fmt"

	"github.com/eventpulse/eventpulse/model"
	"github.com/eventpulse/eventpulse/repository"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertUser creates the user or refreshes an existing row with the same
// email. Webhook deliveries can repeat, so this must be idempotent.
func (r *UserRepository) UpsertUser(req model.CreateUserRequest) (*model.User, error) {
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	var user model.User
	err := r.db.Where(model.User{Email: req.Email}).
		Attrs(model.User{ID: req.ID, Role: role}).
		Assign(model.User{FullName: req.FullName, Username: req.Username}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
