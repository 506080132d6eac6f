// internal/domain/cart/store.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/mattress-storefront/internal/domain/product"
)

const saveTimeout = 3 * time.Second

// Repository is the durable key/value store a cart is persisted to
type Repository interface {
	// Load returns found=false when nothing is stored under key
	Load(ctx context.Context, key string) (state State, found bool, err error)
	Save(ctx context.Context, key string, state State) error
}

// Recorder receives cart instrumentation
type Recorder interface {
	CartOperation(operation string)
	PersistenceFailure(operation string)
	LiveSessions(count int)
}

type nopRecorder struct{}

func (nopRecorder) CartOperation(string)      {}
func (nopRecorder) PersistenceFailure(string) {}
func (nopRecorder) LiveSessions(int)          {}

// Store owns one cart. Mutations are atomic, persist before returning and
// notify subscribers after the store lock is released. Persistence is
// best-effort: write failures are logged and counted, never returned.
type Store struct {
	mu        sync.Mutex
	key       string
	state     State
	repo      Repository
	logger    *logrus.Entry
	recorder  Recorder
	listeners []subscription
	nextID    int
}

type subscription struct {
	id       int
	listener Listener
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for persistence failures
func WithLogger(logger *logrus.Entry) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(recorder Recorder) Option {
	return func(s *Store) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

// NewStore creates an empty cart persisted under key. repo may be nil for a
// cart that is never persisted.
func NewStore(key string, repo Repository, opts ...Option) *Store {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Store{
		key:      key,
		state:    State{Items: []LineItem{}},
		repo:     repo,
		logger:   logrus.NewEntry(discard),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("cart_key", key)
	return s
}

// Restore creates a store and loads its persisted state. A missing, unreadable
// or corrupted record yields an empty cart.
func Restore(ctx context.Context, key string, repo Repository, opts ...Option) *Store {
	s := NewStore(key, repo, opts...)
	if repo == nil {
		return s
	}

	state, found, err := repo.Load(ctx, key)
	switch {
	case err != nil && errors.Is(err, ErrCorruptState):
		s.logger.WithError(err).Warn("Discarding corrupted cart, starting empty")
		s.recorder.PersistenceFailure("decode")
	case err != nil:
		s.logger.WithError(err).Warn("Failed to load cart, starting empty")
		s.recorder.PersistenceFailure("load")
	case found:
		if state.Items == nil {
			state.Items = []LineItem{}
		}
		s.state = state
	}
	return s
}

// Key returns the persistence key of this cart
func (s *Store) Key() string {
	return s.key
}

// AddItem adds quantity of product in size. An existing line with the same
// product and size has its quantity increased instead of a new line being added.
func (s *Store) AddItem(ctx context.Context, p product.Product, size product.Size, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	if p.ID == "" {
		return ErrInvalidProduct
	}
	if _, err := p.SizeAdjustment(size); err != nil {
		return err
	}

	s.mu.Lock()
	key := LineKey{ProductID: p.ID, Size: size}
	if idx := s.indexOf(key); idx >= 0 {
		s.state.Items[idx].Quantity += quantity
	} else {
		s.state.Items = append(s.state.Items, LineItem{Product: p.Clone(), Size: size, Quantity: quantity})
	}
	event := s.commitLocked(ctx, EventItemAdded)
	s.mu.Unlock()

	s.notify(event)
	return nil
}

// RemoveItem drops the matching line. It reports whether a line was removed;
// removing an absent line is a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string, size product.Size) bool {
	s.mu.Lock()
	idx := s.indexOf(LineKey{ProductID: productID, Size: size})
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.state.Items = append(s.state.Items[:idx], s.state.Items[idx+1:]...)
	event := s.commitLocked(ctx, EventItemRemoved)
	s.mu.Unlock()

	s.notify(event)
	return true
}

// UpdateQuantity sets the quantity of the matching line. A quantity below 1
// removes the line. It reports whether a line matched.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, size product.Size, quantity int) bool {
	if quantity < 1 {
		return s.RemoveItem(ctx, productID, size)
	}

	s.mu.Lock()
	idx := s.indexOf(LineKey{ProductID: productID, Size: size})
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.state.Items[idx].Quantity = quantity
	event := s.commitLocked(ctx, EventQuantityUpdated)
	s.mu.Unlock()

	s.notify(event)
	return true
}

// Clear empties the cart. Clearing an empty cart is a no-op.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	if s.state.IsEmpty() {
		s.mu.Unlock()
		return
	}
	s.state.Items = []LineItem{}
	event := s.commitLocked(ctx, EventCleared)
	s.mu.Unlock()

	s.notify(event)
}

// Reconcile replaces every product snapshot with the record returned by
// lookup. Lines whose product is gone or no longer offers the size are
// dropped and returned.
func (s *Store) Reconcile(ctx context.Context, lookup func(id string) (product.Product, bool)) []LineItem {
	s.mu.Lock()
	if s.state.IsEmpty() {
		s.mu.Unlock()
		return nil
	}

	var dropped []LineItem
	kept := make([]LineItem, 0, len(s.state.Items))
	for _, item := range s.state.Items {
		current, ok := lookup(item.Product.ID)
		if !ok || !current.Offers(item.Size) {
			dropped = append(dropped, item)
			continue
		}
		item.Product = current.Clone()
		kept = append(kept, item)
	}
	s.state.Items = kept
	event := s.commitLocked(ctx, EventRefreshed)
	s.mu.Unlock()

	s.notify(event)
	return dropped
}

// Items returns a copy of the cart lines
func (s *Store) Items() []LineItem {
	return s.State().Items
}

// State returns a copy of the cart state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// IsEmpty reports whether the cart has no lines
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsEmpty()
}

// TotalItems returns the sum of line quantities
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalItems()
}

// TotalPrice returns the cart total in cents. It fails when a line cannot be priced.
func (s *Store) TotalPrice() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartTotal(s.state.Items)
}

// Subscribe registers listener for every future state change and returns a
// function that removes it.
func (s *Store) Subscribe(listener Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, listener: listener})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) indexOf(key LineKey) int {
	for i, item := range s.state.Items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

// commitLocked persists the current state and snapshots it for listeners.
// Caller must hold s.mu.
func (s *Store) commitLocked(ctx context.Context, kind EventKind) pendingEvent {
	s.recorder.CartOperation(string(kind))
	snapshot := s.state.Clone()

	if s.repo != nil {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
		if err := s.repo.Save(saveCtx, s.key, snapshot); err != nil {
			s.logger.WithError(err).WithField("event", kind).Error("Failed to persist cart")
			s.recorder.PersistenceFailure("save")
		}
		cancel()
	}

	listeners := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		listeners[i] = sub.listener
	}
	return pendingEvent{event: Event{Kind: kind, State: snapshot}, listeners: listeners}
}

type pendingEvent struct {
	event     Event
	listeners []Listener
}

func (s *Store) notify(p pendingEvent) {
	for _, listener := range p.listeners {
		listener(p.event)
	}
}
