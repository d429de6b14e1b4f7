package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eventpulse/eventpulse/cache"
	"github.com/eventpulse/eventpulse/model"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

// RedisEventCache implements cache.EventCache on a single Redis instance.
// All commands run through a circuit breaker: once Redis has failed
// repeatedly, calls fail fast instead of adding a connect timeout to
// every request, and the read/write paths degrade to store-only operation.
type RedisEventCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
}

func NewRedisEventCache(addr, password string, db int) *RedisEventCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "redis-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &RedisEventCache{
		client:  client,
		breaker: breaker,
	}
}

func (r *RedisEventCache) GetEventList(ctx context.Context) ([]model.EventResponse, error) {
	data, err := r.get(ctx, cache.ListKey())
	if err != nil {
		return nil, err
	}

	var events []model.EventResponse
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to decode cached event list: %w", err)
	}
	return events, nil
}

func (r *RedisEventCache) SetEventList(ctx context.Context, events []model.EventResponse, ttl time.Duration) error {
	return r.set(ctx, cache.ListKey(), events, ttl)
}

func (r *RedisEventCache) InvalidateEventList(ctx context.Context) error {
	return r.del(ctx, cache.ListKey())
}

func (r *RedisEventCache) GetEvent(ctx context.Context, id string) (*model.EventResponse, error) {
	data, err := r.get(ctx, cache.ItemKey(id))
	if err != nil {
		return nil, err
	}

	var event model.EventResponse
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to decode cached event: %w", err)
	}
	return &event, nil
}

func (r *RedisEventCache) SetEvent(ctx context.Context, id string, event *model.EventResponse, ttl time.Duration) error {
	return r.set(ctx, cache.ItemKey(id), event, ttl)
}

func (r *RedisEventCache) InvalidateEvent(ctx context.Context, id string) error {
	return r.del(ctx, cache.ItemKey(id))
}

func (r *RedisEventCache) Ping(ctx context.Context) error {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.client.Ping(ctx).Err()
	})
	return err
}

func (r *RedisEventCache) Close() error {
	return r.client.Close()
}

// get returns the raw payload for key, or cache.ErrMiss when absent.
// A miss is not a failure and never counts against the breaker.
func (r *RedisEventCache) get(ctx context.Context, key string) ([]byte, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		data, err := r.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return []byte(nil), nil
		}
		return data, err
	})
	if err != nil {
		return nil, fmt.Errorf("cache get %q: %w", key, err)
	}

	data := result.([]byte)
	if data == nil {
		return nil, cache.ErrMiss
	}
	return data, nil
}

func (r *RedisEventCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache payload: %w", err)
	}

	_, err = r.breaker.Execute(func() (interface{}, error) {
		return nil, r.client.Set(ctx, key, data, ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// del removes key. Deleting an absent key is a successful no-op.
func (r *RedisEventCache) del(ctx context.Context, key string) error {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.client.Del(ctx, key).Err()
	})
	if err != nil {
		return fmt.Errorf("cache delete %q: %w", key, err)
	}
	return nil
}
