package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/boundary-tiler/internal/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCache struct {
	data map[string][]byte
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) key(z, x, y int) string {
	return fmt.Sprintf("%d/%d/%d", z, x, y)
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	return c.data[key], nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *fakeCache) GetTile(ctx context.Context, z, x, y int) ([]byte, error) {
	return c.Get(ctx, c.key(z, x, y))
}

func (c *fakeCache) SetTile(ctx context.Context, z, x, y int, data []byte, ttl time.Duration) error {
	c.sets++
	return c.Set(ctx, c.key(z, x, y), data, ttl)
}

func writeTileFile(t *testing.T, dir string, z, x, y int, data []byte) {
	t.Helper()
	p := filepath.Join(dir, strconv.Itoa(z), strconv.Itoa(x))
	require.NoError(t, os.MkdirAll(p, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p, strconv.Itoa(y)+".pbf"), data, 0o644))
}

func TestTileUseCase_GetBoundaryTile(t *testing.T) {
	t.Run("reads from store and fills cache", func(t *testing.T) {
		dir := t.TempDir()
		writeTileFile(t, dir, 5, 1, 2, []byte("tile-data"))

		cache := newFakeCache()
		uc := NewTileUseCase(tile.NewStore(dir), cache, zap.NewNop(), time.Minute)

		data, err := uc.GetBoundaryTile(context.Background(), 5, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, []byte("tile-data"), data)
		assert.Equal(t, 1, cache.sets)

		// повторное чтение идет из кеша
		data, err = uc.GetBoundaryTile(context.Background(), 5, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, []byte("tile-data"), data)
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("missing tile yields nil without caching", func(t *testing.T) {
		cache := newFakeCache()
		uc := NewTileUseCase(tile.NewStore(t.TempDir()), cache, zap.NewNop(), time.Minute)

		data, err := uc.GetBoundaryTile(context.Background(), 5, 1, 2)
		require.NoError(t, err)
		assert.Nil(t, data)
		assert.Zero(t, cache.sets)
	})

	t.Run("works without a cache", func(t *testing.T) {
		dir := t.TempDir()
		writeTileFile(t, dir, 5, 1, 2, []byte("tile-data"))

		uc := NewTileUseCase(tile.NewStore(dir), nil, zap.NewNop(), time.Minute)

		data, err := uc.GetBoundaryTile(context.Background(), 5, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, []byte("tile-data"), data)
	})
}
