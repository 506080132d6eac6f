package memory

import (
	"context"
	"sync"

	"github.com/your-org/mattress-storefront/internal/domain/cart"
)

// CartRepository is an in-process cart.Repository for local development and
// tests. Records are kept in their encoded form so loads never share memory
// with the store that saved them.
type CartRepository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewCartRepository returns an empty in-memory cart repository
func NewCartRepository() *CartRepository {
	return &CartRepository{
		items: make(map[string][]byte),
	}
}

// Load returns found=false when nothing is stored under key
func (r *CartRepository) Load(_ context.Context, key string) (cart.State, bool, error) {
	r.mu.RLock()
	data, ok := r.items[key]
	r.mu.RUnlock()
	if !ok {
		return cart.State{}, false, nil
	}

	state, err := cart.UnmarshalState(data)
	if err != nil {
		return cart.State{}, false, err
	}
	return state, true, nil
}

// Save replaces the record under key. An empty cart removes it.
func (r *CartRepository) Save(_ context.Context, key string, state cart.State) error {
	if state.IsEmpty() {
		r.mu.Lock()
		delete(r.items, key)
		r.mu.Unlock()
		return nil
	}

	data, err := cart.MarshalState(state)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = data
	return nil
}

// Len returns the number of stored carts
func (r *CartRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
