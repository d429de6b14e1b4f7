package postgres

import (
	"fmt"

	"github.com/eventpulse/eventpulse/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and migrates every model. The returned handle
// is shared by the repositories; the process entry point owns its
// lifecycle and closes the underlying pool on shutdown.
func Connect(databaseURL string) (*gorm.DB, error) {
	// Foreign keys stay application-level: event deletion must succeed
	// even when bookings still reference the event (reads skip orphans).
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs the schema migration for all models. Split out so tests can
// run it against an alternate GORM dialector.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Category{},
		&model.City{},
		&model.Location{},
		&model.Event{},
		&model.Booking{},
		&model.User{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
