package cache

import (
	"context"
	"testing"
	"time"

	"github.com/boundary-tiler/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func getTestRedis(t *testing.T) *Redis {
	conn, err := NewRedis(&config.RedisConfig{
		Host: "localhost",
		Port: 6379,
		DB:   1, // Use DB 1 for tests
	}, zap.NewNop())
	if err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}
	return conn
}

func TestCacheRepository_Tiles(t *testing.T) {
	conn := getTestRedis(t)
	defer conn.Close()

	ctx := context.Background()
	repo := NewCacheRepository(conn)

	defer conn.Client().Del(ctx, "tile:boundaries:5:1:2")

	// miss
	data, err := repo.GetTile(ctx, 5, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, data)

	// set then hit
	require.NoError(t, repo.SetTile(ctx, 5, 1, 2, []byte("tile-data"), time.Minute))

	data, err = repo.GetTile(ctx, 5, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte("tile-data"), data)

	// ключ тайла детерминирован
	val, err := conn.Client().Get(ctx, "tile:boundaries:5:1:2").Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("tile-data"), val)
}
