package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/mattress-storefront/internal/domain/cart"
	"github.com/your-org/mattress-storefront/internal/domain/product"
	"github.com/your-org/mattress-storefront/internal/infrastructure/database/memory"
)

func TestCartRepository_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCartRepository()
	hybrid, ok := product.DefaultCatalog().GetByID("luxury-hybrid")
	require.True(t, ok)

	state := cart.State{Items: []cart.LineItem{{Product: hybrid, Size: product.SizeFull, Quantity: 3}}}
	require.NoError(t, repo.Save(ctx, "cart:session:a", state))

	loaded, found, err := repo.Load(ctx, "cart:session:a")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, state, loaded)

	// loads are independent copies
	loaded.Items[0].Quantity = 99
	again, _, err := repo.Load(ctx, "cart:session:a")
	require.NoError(t, err)
	assert.Equal(t, 3, again.Items[0].Quantity)
}

func TestCartRepository_MissingAndEmpty(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCartRepository()

	_, found, err := repo.Load(ctx, "cart:session:none")
	require.NoError(t, err)
	assert.False(t, found)

	hybrid, _ := product.DefaultCatalog().GetByID("luxury-hybrid")
	require.NoError(t, repo.Save(ctx, "cart:session:a", cart.State{Items: []cart.LineItem{
		{Product: hybrid, Size: product.SizeKing, Quantity: 1},
	}}))
	assert.Equal(t, 1, repo.Len())

	require.NoError(t, repo.Save(ctx, "cart:session:a", cart.State{}))
	assert.Equal(t, 0, repo.Len())
}
