package stream_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/boundary-tiler/internal/domain"
	streamRepo "github.com/boundary-tiler/internal/repository/stream"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, "test:boundary-tiler:progress")
	return client
}

func TestProgressRepository_Publish(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	streamName := "test:boundary-tiler:progress"
	defer client.Del(ctx, streamName)

	repo := streamRepo.NewProgressRepository(client, streamName, zap.NewNop())

	runID := uuid.NewString()
	event := domain.ProgressEvent{
		RunID: runID,
		Stage: "collected",
		Count: 42,
		At:    time.Now(),
	}
	require.NoError(t, repo.Publish(ctx, event))

	entries, err := client.XRange(ctx, streamName, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, runID, entries[0].Values["run_id"])
	assert.Equal(t, "collected", entries[0].Values["stage"])
	assert.Equal(t, "42", entries[0].Values["count"])
}
