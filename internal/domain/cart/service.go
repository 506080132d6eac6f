// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"

	"github.com/your-org/mattress-storefront/internal/config"
	"github.com/your-org/mattress-storefront/internal/domain/product"
	"github.com/your-org/mattress-storefront/internal/pkg/money"
)

// Service resolves shopper sessions to cart stores and applies catalog lookups
// on top of the store operations.
type Service struct {
	catalog  *product.Catalog
	repo     Repository
	config   *config.Config
	logger   *logrus.Entry
	recorder Recorder
	stores   *lru.Cache
}

// NewService creates a new cart service
func NewService(catalog *product.Catalog, repo Repository, cfg *config.Config, logger *logrus.Logger, recorder Recorder) (*Service, error) {
	stores, err := lru.New(cfg.Cart.MaxLiveSessions)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart session cache: %w", err)
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &Service{
		catalog:  catalog,
		repo:     repo,
		config:   cfg,
		logger:   logger.WithField("component", "cart"),
		recorder: recorder,
		stores:   stores,
	}, nil
}

// Store returns the live cart for sessionID, restoring it from the repository
// on first use.
func (s *Service) Store(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	if cached, ok := s.stores.Get(sessionID); ok {
		return cached.(*Store), nil
	}

	store := Restore(ctx, s.cartKey(sessionID), s.repo,
		WithLogger(s.logger.WithField("session_id", sessionID)),
		WithRecorder(s.recorder),
	)

	// another request may have restored the same session concurrently
	if found, _ := s.stores.ContainsOrAdd(sessionID, store); found {
		if cached, ok := s.stores.Get(sessionID); ok {
			store = cached.(*Store)
		}
	}
	s.recorder.LiveSessions(s.stores.Len())
	return store, nil
}

// GetCart retrieves the priced cart for a session
func (s *Service) GetCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return BuildResponse(sessionID, store.State()), nil
}

// AddToCart looks the product up in the catalog and adds it to the session cart
func (s *Service) AddToCart(ctx context.Context, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	size, err := product.ParseSize(req.Size)
	if err != nil {
		return nil, err
	}

	p, ok := s.catalog.GetByID(req.ProductID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, req.ProductID)
	}

	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if limit := s.config.Cart.MaxLineQuantity; limit > 0 {
		current := 0
		for _, item := range store.Items() {
			if item.Key() == (LineKey{ProductID: p.ID, Size: size}) {
				current = item.Quantity
			}
		}
		if current+req.Quantity > limit {
			return nil, fmt.Errorf("%w: at most %d per line", ErrQuantityLimit, limit)
		}
	}

	if err := store.AddItem(ctx, p, size, req.Quantity); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"product_id": p.ID,
		"size":       size,
		"quantity":   req.Quantity,
	}).Debug("Item added to cart")

	return BuildResponse(sessionID, store.State()), nil
}

// UpdateCartItem sets a line's quantity; a quantity below 1 removes the line
func (s *Service) UpdateCartItem(ctx context.Context, sessionID, productID string, size product.Size, quantity int) (*CartResponse, error) {
	if limit := s.config.Cart.MaxLineQuantity; limit > 0 && quantity > limit {
		return nil, fmt.Errorf("%w: at most %d per line", ErrQuantityLimit, limit)
	}

	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !store.UpdateQuantity(ctx, productID, size, quantity) {
		return nil, ErrItemNotFound
	}
	return BuildResponse(sessionID, store.State()), nil
}

// RemoveFromCart removes a line. Removing an absent line is not an error.
func (s *Service) RemoveFromCart(ctx context.Context, sessionID, productID string, size product.Size) (*CartResponse, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	store.RemoveItem(ctx, productID, size)
	return BuildResponse(sessionID, store.State()), nil
}

// ClearCart empties the session cart
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return err
	}

	store.Clear(ctx)
	return nil
}

// GetCartItemCount returns the total quantity in the session cart
func (s *Service) GetCartItemCount(ctx context.Context, sessionID string) (int, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return store.TotalItems(), nil
}

// Subscribe registers listener on the session cart
func (s *Service) Subscribe(ctx context.Context, sessionID string, listener Listener) (func(), error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return store.Subscribe(listener), nil
}

// ValidateCart compares every line snapshot with the live catalog
func (s *Service) ValidateCart(ctx context.Context, sessionID string) ([]ValidationIssue, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	issues := []ValidationIssue{}
	for _, item := range store.Items() {
		issues = append(issues, s.validateItem(item)...)
	}
	return issues, nil
}

// RefreshCart rewrites snapshots from the catalog and drops lines that can no
// longer be bought. It returns the cart and the issues that were resolved.
func (s *Service) RefreshCart(ctx context.Context, sessionID string) (*CartResponse, []ValidationIssue, error) {
	issues, err := s.ValidateCart(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	dropped := store.Reconcile(ctx, s.catalog.GetByID)
	if len(dropped) > 0 {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"dropped":    len(dropped),
		}).Info("Dropped cart lines that are no longer sold")
	}
	return BuildResponse(sessionID, store.State()), issues, nil
}

func (s *Service) validateItem(item LineItem) []ValidationIssue {
	issue := func(code, message string) ValidationIssue {
		return ValidationIssue{ProductID: item.Product.ID, Size: item.Size, Code: code, Message: message}
	}

	current, ok := s.catalog.GetByID(item.Product.ID)
	if !ok {
		return []ValidationIssue{issue(IssueProductUnavailable, fmt.Sprintf("%s is no longer available", item.Product.Name))}
	}

	currentPrice, err := current.UnitPrice(item.Size)
	if err != nil {
		return []ValidationIssue{issue(IssueSizeUnavailable, fmt.Sprintf("%s is no longer sold in %s", current.Name, item.Size.Label()))}
	}

	var issues []ValidationIssue
	if !current.InStock {
		issues = append(issues, issue(IssueOutOfStock, fmt.Sprintf("%s is out of stock", current.Name)))
	}
	if snapshotPrice, err := UnitPrice(item); err != nil || snapshotPrice != currentPrice {
		issues = append(issues, issue(IssuePriceChanged, fmt.Sprintf("Price of %s (%s) is now %s",
			current.Name, item.Size.Label(), money.Format(currentPrice))))
	}
	return issues
}

func (s *Service) cartKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", s.config.Cart.Namespace, sessionID)
}
