package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/eventpulse/eventpulse/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test its own in-memory database with the full
// schema migrated. SQLite stands in for Postgres; nothing in the
// repositories uses dialect-specific SQL.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	return db
}

// seedEvent creates an event through the repository, upserting its lookup
// rows first, and returns the resolved result.
func seedEvent(t *testing.T, repo *EventRepository, title, category, city, location, createdBy string) *model.Event {
	t.Helper()

	cat, err := repo.FindOrCreateCategory(category, "")
	require.NoError(t, err)
	ct, err := repo.FindOrCreateCity(city, "", "")
	require.NoError(t, err)
	loc, err := repo.FindOrCreateLocation(location, ct.ID)
	require.NoError(t, err)

	event, err := repo.CreateEvent(model.CreateEventRequest{
		ID:         uuid.New().String(),
		Title:      title,
		Date:       time.Date(2025, 12, 15, 19, 0, 0, 0, time.UTC),
		Image:      model.DefaultEventImage,
		CategoryID: cat.ID,
		CityID:     ct.ID,
		LocationID: loc.ID,
		CreatedBy:  createdBy,
	})
	require.NoError(t, err)
	return event
}
