package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/mattress-storefront/internal/domain/cart"
	"github.com/your-org/mattress-storefront/internal/domain/product"
)

func setupRepository(t *testing.T, ttl time.Duration) (*CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCartRepository(client, ttl), mr
}

func sampleState(t *testing.T) cart.State {
	t.Helper()
	catalog := product.DefaultCatalog()
	latex, ok := catalog.GetByID("premium-latex")
	require.True(t, ok)
	air, ok := catalog.GetByID("adjustable-air")
	require.True(t, ok)

	return cart.State{Items: []cart.LineItem{
		{Product: latex, Size: product.SizeKing, Quantity: 1},
		{Product: air, Size: product.SizeTwinXL, Quantity: 2},
	}}
}

func TestCartRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo, mr := setupRepository(t, time.Hour)
	state := sampleState(t)

	require.NoError(t, repo.Save(ctx, "cart:session:abc", state))

	assert.True(t, mr.Exists("cart:session:abc"))
	assert.Equal(t, time.Hour, mr.TTL("cart:session:abc"))

	loaded, found, err := repo.Load(ctx, "cart:session:abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, state, loaded)
}

func TestCartRepository_LoadMissing(t *testing.T) {
	repo, _ := setupRepository(t, time.Hour)

	_, found, err := repo.Load(context.Background(), "cart:session:none")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCartRepository_SaveEmptyDeletesKey(t *testing.T) {
	ctx := context.Background()
	repo, mr := setupRepository(t, time.Hour)
	require.NoError(t, repo.Save(ctx, "cart:session:abc", sampleState(t)))

	require.NoError(t, repo.Save(ctx, "cart:session:abc", cart.State{Items: []cart.LineItem{}}))

	assert.False(t, mr.Exists("cart:session:abc"))
}

func TestCartRepository_ExpiredCartIsGone(t *testing.T) {
	ctx := context.Background()
	repo, mr := setupRepository(t, time.Minute)
	require.NoError(t, repo.Save(ctx, "cart:session:abc", sampleState(t)))

	mr.FastForward(2 * time.Minute)

	_, found, err := repo.Load(ctx, "cart:session:abc")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCartRepository_CorruptRecord(t *testing.T) {
	repo, mr := setupRepository(t, time.Hour)
	require.NoError(t, mr.Set("cart:session:abc", "{broken"))

	_, _, err := repo.Load(context.Background(), "cart:session:abc")
	assert.ErrorIs(t, err, cart.ErrCorruptState)
}

func TestCartRepository_UnavailableServer(t *testing.T) {
	repo, mr := setupRepository(t, time.Hour)
	mr.Close()

	_, _, err := repo.Load(context.Background(), "cart:session:abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, cart.ErrCorruptState)
}

func TestCartRepository_RestoresThroughStore(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupRepository(t, time.Hour)
	catalog := product.DefaultCatalog()
	cloud, _ := catalog.GetByID("memory-foam-cloud")

	store := cart.NewStore("cart:session:abc", repo)
	require.NoError(t, store.AddItem(ctx, cloud, product.SizeQueen, 2))

	restored := cart.Restore(ctx, "cart:session:abc", repo)
	assert.Equal(t, store.State(), restored.State())

	restored.Clear(ctx)
	_, found, err := repo.Load(ctx, "cart:session:abc")
	require.NoError(t, err)
	assert.False(t, found)
}
