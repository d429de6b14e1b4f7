// Package cache defines the side-cache contract for the event read and
// write paths. Entries are opportunistic projections of store state, never
// authoritative: absence always means "refetch", and no caller may treat a
// cache failure as a request failure.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/eventpulse/eventpulse/model"
)

// ErrMiss is returned by Get operations when the key is absent or expired.
// Callers fall through to the store and repopulate.
var ErrMiss = errors.New("cache miss")

// EventCache is the cache adapter. Implementations must make Delete
// idempotent (deleting an absent key is a no-op, not an error) and must
// never be required for correctness of the underlying data.
type EventCache interface {
	// Event list operations (singleton key, see ListKey)
	GetEventList(ctx context.Context) ([]model.EventResponse, error)
	SetEventList(ctx context.Context, events []model.EventResponse, ttl time.Duration) error
	InvalidateEventList(ctx context.Context) error

	// Single event operations (per-id key, see ItemKey)
	GetEvent(ctx context.Context, id string) (*model.EventResponse, error)
	SetEvent(ctx context.Context, id string, event *model.EventResponse, ttl time.Duration) error
	InvalidateEvent(ctx context.Context, id string) error

	// Health check
	Ping(ctx context.Context) error

	Close() error
}
