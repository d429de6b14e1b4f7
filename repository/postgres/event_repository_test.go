package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/eventpulse/eventpulse/model"
	"github.com/eventpulse/eventpulse/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateCategoryIsIdempotent(t *testing.T) {
	repo := NewEventRepository(openTestDB(t))

	first, err := repo.FindOrCreateCategory("Concert", "music-note")
	require.NoError(t, err)
	second, err := repo.FindOrCreateCategory("Concert", "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "music-note", second.Icon, "empty icon must not clear the stored one")
}

func TestFindOrCreateCategoryRefreshesIcon(t *testing.T) {
	repo := NewEventRepository(openTestDB(t))

	_, err := repo.FindOrCreateCategory("Concert", "old-icon")
	require.NoError(t, err)
	updated, err := repo.FindOrCreateCategory("Concert", "new-icon")
	require.NoError(t, err)

	assert.Equal(t, "new-icon", updated.Icon)
}

func TestFindOrCreateCityRefreshesStateAndCountry(t *testing.T) {
	repo := NewEventRepository(openTestDB(t))

	first, err := repo.FindOrCreateCity("New York", "", "")
	require.NoError(t, err)
	second, err := repo.FindOrCreateCity("New York", "NY", "USA")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "NY", second.State)
	assert.Equal(t, "USA", second.Country)
}

func TestFindOrCreateLocationScopedByCity(t *testing.T) {
	repo := NewEventRepository(openTestDB(t))

	nyc, err := repo.FindOrCreateCity("New York", "", "")
	require.NoError(t, err)
	berlin, err := repo.FindOrCreateCity("Berlin", "", "")
	require.NoError(t, err)

	a, err := repo.FindOrCreateLocation("Central Hall", nyc.ID)
	require.NoError(t, err)
	b, err := repo.FindOrCreateLocation("Central Hall", berlin.ID)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID, "same name in different cities must be distinct rows")

	again, err := repo.FindOrCreateLocation("Central Hall", nyc.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, again.ID)
}

func TestGetEventByIDResolvesReferences(t *testing.T) {
	repo := NewEventRepository(openTestDB(t))
	created := seedEvent(t, repo, "Jazz Night", "Concert", "New York", "Central Hall", "user_1")

	event, err := repo.GetEventByID(created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Jazz Night", event.Title)
	assert.Equal(t, "Concert", event.Category.Name)
	assert.Equal(t, "New York", event.City.Name)
	assert.Equal(t, "Central Hall", event.Location.Name)
	assert.Equal(t, "New York", event.Location.City.Name, "location's city must be resolved too")
}

func TestGetEventByIDNotFound(t *testing.T) {
	repo := NewEventRepository(openTestDB(t))

	_, err := repo.GetEventByID(uuid.New().String())
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestListEventsOrderedByDate(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)

	late := seedEvent(t, repo, "Later", "Concert", "New York", "Central Hall", "")
	require.NoError(t, db.Model(&model.Event{}).Where("id = ?", late.ID).
		Update("date", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)).Error)
	early := seedEvent(t, repo, "Sooner", "Concert", "New York", "Central Hall", "")

	events, err := repo.ListEvents()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, early.ID, events[0].ID)
	assert.Equal(t, late.ID, events[1].ID)
	assert.Equal(t, "Concert", events[0].Category.Name)
}

func TestUpdateEventReplacesFields(t *testing.T) {
	repo := NewEventRepository(openTestDB(t))
	created := seedEvent(t, repo, "Jazz Night", "Concert", "New York", "Central Hall", "user_1")

	theatre, err := repo.FindOrCreateCategory("Theatre", "")
	require.NoError(t, err)

	updated, err := repo.UpdateEvent(model.UpdateEventRequest{
		ID:         created.ID,
		Title:      "Jazz Night Live",
		Date:       created.Date,
		Image:      created.Image,
		CategoryID: theatre.ID,
		CityID:     created.CityID,
		LocationID: created.LocationID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jazz Night Live", updated.Title)
	assert.Equal(t, "Theatre", updated.Category.Name)
	assert.Equal(t, "", updated.Description, "omitted fields are replaced, not merged")
}

func TestUpdateEventNotFound(t *testing.T) {
	repo := NewEventRepository(openTestDB(t))

	_, err := repo.UpdateEvent(model.UpdateEventRequest{
		ID:    uuid.New().String(),
		Title: "Ghost",
		Date:  time.Now(),
	})
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestDeleteEvent(t *testing.T) {
	repo := NewEventRepository(openTestDB(t))
	created := seedEvent(t, repo, "Jazz Night", "Concert", "New York", "Central Hall", "")

	require.NoError(t, repo.DeleteEvent(created.ID))

	_, err := repo.GetEventByID(created.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	assert.True(t, errors.Is(repo.DeleteEvent(created.ID), repository.ErrNotFound))
}

func TestDeleteEventDoesNotCascadeLookups(t *testing.T) {
	db := openTestDB(t)
	repo := NewEventRepository(db)
	created := seedEvent(t, repo, "Jazz Night", "Concert", "New York", "Central Hall", "")

	require.NoError(t, repo.DeleteEvent(created.ID))

	cat, err := repo.FindOrCreateCategory("Concert", "")
	require.NoError(t, err)
	assert.Equal(t, created.CategoryID, cat.ID, "lookup rows survive event deletion")
}
