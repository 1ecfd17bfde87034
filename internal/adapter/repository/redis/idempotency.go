package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// The value parked under an idempotency key while the first request is
// still being processed.
const processingPlaceholder = "processing"

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "idempotency:",
	}
}

// CheckAndSet reports whether the key was already claimed, returning
// the recorded response when it was. A nil response claims the key with
// a placeholder so concurrent retries observe it as in flight.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		return true, existing, nil
	}
	if !errors.Is(err, redis.Nil) {
		return false, nil, err
	}

	if response != nil {
		if err := s.client.Set(ctx, fullKey, response, ttl).Err(); err != nil {
			return false, nil, err
		}

		return false, nil, nil
	}

	set, err := s.client.SetNX(ctx, fullKey, processingPlaceholder, ttl).Result()
	if err != nil {
		return false, nil, err
	}

	if !set {
		// Another request claimed the key between the Get and the SetNX.
		existing, err := s.client.Get(ctx, fullKey).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return false, nil, err
		}

		return true, existing, nil
	}

	return false, nil, nil
}

// Update replaces a claimed key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}
