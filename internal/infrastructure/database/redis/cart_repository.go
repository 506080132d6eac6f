// internal/infrastructure/database/redis/cart_repository.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/your-org/mattress-storefront/internal/domain/cart"
)

// CartRepository keeps one JSON document per cart key. Every save refreshes
// the key's TTL.
type CartRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCartRepository creates a Redis cart repository; ttl <= 0 keeps carts forever
func NewCartRepository(client redis.Cmdable, ttl time.Duration) *CartRepository {
	return &CartRepository{client: client, ttl: ttl}
}

// Load returns found=false when key does not exist
func (r *CartRepository) Load(ctx context.Context, key string) (cart.State, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.State{}, false, nil
	}
	if err != nil {
		return cart.State{}, false, fmt.Errorf("failed to load cart %s: %w", key, err)
	}

	state, err := cart.UnmarshalState(data)
	if err != nil {
		return cart.State{}, false, err
	}
	return state, true, nil
}

// Save writes state under key. An empty cart deletes the key.
func (r *CartRepository) Save(ctx context.Context, key string, state cart.State) error {
	if state.IsEmpty() {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete cart %s: %w", key, err)
		}
		return nil
	}

	data, err := cart.MarshalState(state)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", key, err)
	}
	return nil
}
