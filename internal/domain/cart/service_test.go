package cart

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/mattress-storefront/internal/config"
	"github.com/your-org/mattress-storefront/internal/domain/product"
)

func testConfig() *config.Config {
	return &config.Config{
		Cart: config.CartConfig{
			Namespace:       "cart:session",
			TTL:             time.Hour,
			Store:           config.CartStoreMemory,
			MaxLiveSessions: 2,
			MaxLineQuantity: 10,
		},
	}
}

func newTestService(t *testing.T, catalog *product.Catalog, repo Repository) *Service {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc, err := NewService(catalog, repo, testConfig(), logger, nil)
	require.NoError(t, err)
	return svc
}

func TestService_AddToCart(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(t, product.DefaultCatalog(), repo)

	resp, err := svc.AddToCart(ctx, "abc", &AddToCartRequest{ProductID: "memory-foam-cloud", Size: "Queen", Quantity: 2})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, product.SizeQueen, resp.Items[0].Size)
	require.NotNil(t, resp.Totals.SubTotal)
	assert.Equal(t, int64(2*89900), *resp.Totals.SubTotal)

	stored := repo.stored(t, "cart:session:abc")
	assert.Equal(t, 2, stored.TotalItems())
}

func TestService_AddToCart_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, product.DefaultCatalog(), newFakeRepo())

	tests := []struct {
		name      string
		sessionID string
		req       AddToCartRequest
		want      error
	}{
		{"unknown product", "abc", AddToCartRequest{ProductID: "waterbed", Size: "queen", Quantity: 1}, ErrProductNotFound},
		{"unknown size", "abc", AddToCartRequest{ProductID: "latex", Size: "double", Quantity: 1}, product.ErrInvalidSize},
		{"size not offered", "abc", AddToCartRequest{ProductID: "adjustable-air", Size: "twin", Quantity: 1}, product.ErrInvalidSize},
		{"zero quantity", "abc", AddToCartRequest{ProductID: "premium-latex", Size: "king", Quantity: 0}, ErrInvalidQuantity},
		{"over line limit", "abc", AddToCartRequest{ProductID: "premium-latex", Size: "king", Quantity: 11}, ErrQuantityLimit},
		{"no session", "", AddToCartRequest{ProductID: "premium-latex", Size: "king", Quantity: 1}, ErrSessionRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.AddToCart(ctx, tt.sessionID, &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	count, err := svc.GetCartItemCount(ctx, "abc")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestService_AddToCart_LimitCountsExistingLine(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, product.DefaultCatalog(), nil)

	_, err := svc.AddToCart(ctx, "abc", &AddToCartRequest{ProductID: "luxury-hybrid", Size: "king", Quantity: 8})
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, "abc", &AddToCartRequest{ProductID: "luxury-hybrid", Size: "king", Quantity: 3})
	assert.ErrorIs(t, err, ErrQuantityLimit)

	_, err = svc.AddToCart(ctx, "abc", &AddToCartRequest{ProductID: "luxury-hybrid", Size: "Cal King", Quantity: 3})
	assert.NoError(t, err)
}

func TestService_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, product.DefaultCatalog(), nil)
	_, err := svc.AddToCart(ctx, "abc", &AddToCartRequest{ProductID: "cooling-gel", Size: "full", Quantity: 1})
	require.NoError(t, err)

	resp, err := svc.UpdateCartItem(ctx, "abc", "cooling-gel", product.SizeFull, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Totals.TotalQuantity)

	_, err = svc.UpdateCartItem(ctx, "abc", "cooling-gel", product.SizeKing, 4)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = svc.UpdateCartItem(ctx, "abc", "cooling-gel", product.SizeFull, 11)
	assert.ErrorIs(t, err, ErrQuantityLimit)

	resp, err = svc.UpdateCartItem(ctx, "abc", "cooling-gel", product.SizeFull, 0)
	require.NoError(t, err)
	assert.True(t, resp.IsEmpty)

	resp, err = svc.RemoveFromCart(ctx, "abc", "cooling-gel", product.SizeFull)
	require.NoError(t, err)
	assert.True(t, resp.IsEmpty)
}

func TestService_ClearCart(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, product.DefaultCatalog(), nil)
	_, err := svc.AddToCart(ctx, "abc", &AddToCartRequest{ProductID: "cooling-gel", Size: "full", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, "abc"))

	resp, err := svc.GetCart(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, resp.IsEmpty)
}

func TestService_SessionsAreIsolatedAndCached(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, product.DefaultCatalog(), newFakeRepo())

	first, err := svc.Store(ctx, "a")
	require.NoError(t, err)
	again, err := svc.Store(ctx, "a")
	require.NoError(t, err)
	other, err := svc.Store(ctx, "b")
	require.NoError(t, err)

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)
	assert.Equal(t, "cart:session:a", first.Key())
}

func TestService_EvictedSessionIsRestored(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, product.DefaultCatalog(), newFakeRepo())

	_, err := svc.AddToCart(ctx, "a", &AddToCartRequest{ProductID: "premium-latex", Size: "queen", Quantity: 2})
	require.NoError(t, err)
	evicted, err := svc.Store(ctx, "a")
	require.NoError(t, err)

	// MaxLiveSessions is 2
	_, err = svc.Store(ctx, "b")
	require.NoError(t, err)
	_, err = svc.Store(ctx, "c")
	require.NoError(t, err)

	restored, err := svc.Store(ctx, "a")
	require.NoError(t, err)
	assert.NotSame(t, evicted, restored)
	assert.Equal(t, evicted.State(), restored.State())
}

func TestService_ValidateAndRefresh(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	before := newTestService(t, product.DefaultCatalog(), repo)

	for _, req := range []AddToCartRequest{
		{ProductID: "memory-foam-cloud", Size: "king", Quantity: 1},
		{ProductID: "essential-spring", Size: "twin", Quantity: 1},
		{ProductID: "luxury-hybrid", Size: "queen", Quantity: 1},
	} {
		req := req
		_, err := before.AddToCart(ctx, "abc", &req)
		require.NoError(t, err)
	}

	var changed []product.Product
	for _, p := range product.DefaultProducts() {
		switch p.ID {
		case "memory-foam-cloud":
			p.SalePrice = nil
		case "essential-spring":
			delete(p.SizeAdjustments, product.SizeTwin)
		case "luxury-hybrid":
			p.InStock = false
		}
		changed = append(changed, p)
	}
	catalog, err := product.NewCatalog(changed, product.DefaultCategories())
	require.NoError(t, err)
	after := newTestService(t, catalog, repo)

	issues, err := after.ValidateCart(ctx, "abc")
	require.NoError(t, err)
	codes := map[string]string{}
	for _, issue := range issues {
		codes[issue.ProductID] = issue.Code
	}
	assert.Equal(t, map[string]string{
		"memory-foam-cloud": IssuePriceChanged,
		"essential-spring":  IssueSizeUnavailable,
		"luxury-hybrid":     IssueOutOfStock,
	}, codes)

	resp, resolved, err := after.RefreshCart(ctx, "abc")
	require.NoError(t, err)
	assert.Len(t, resolved, 3)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "memory-foam-cloud", resp.Items[0].Product.ID)
	assert.Equal(t, int64(89900+50000), *resp.Items[0].UnitPrice)

	issues, err = after.ValidateCart(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueOutOfStock, issues[0].Code)
}

func TestService_Subscribe(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, product.DefaultCatalog(), nil)

	var events []Event
	unsubscribe, err := svc.Subscribe(ctx, "abc", func(e Event) { events = append(events, e) })
	require.NoError(t, err)
	defer unsubscribe()

	_, err = svc.AddToCart(ctx, "abc", &AddToCartRequest{ProductID: "latex", Size: "queen", Quantity: 1})
	require.ErrorIs(t, err, ErrProductNotFound)
	_, err = svc.AddToCart(ctx, "abc", &AddToCartRequest{ProductID: "premium-latex", Size: "queen", Quantity: 1})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, EventItemAdded, events[0].Kind)
}
