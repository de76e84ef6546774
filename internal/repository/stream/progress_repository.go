package stream

import (
	"context"
	"fmt"

	"github.com/boundary-tiler/internal/domain"
	"github.com/boundary-tiler/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type progressRepository struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

// NewProgressRepository публикует события прогресса сборки в Redis stream,
// чтобы за длинным запуском можно было наблюдать снаружи.
func NewProgressRepository(client *redis.Client, stream string, logger *zap.Logger) repository.ProgressPublisher {
	return &progressRepository{
		client: client,
		stream: stream,
		logger: logger,
	}
}

// Publish добавляет одно событие в стрим. Ошибка публикации не должна
// останавливать сборку - ее гасит вызывающая сторона.
func (r *progressRepository) Publish(ctx context.Context, event domain.ProgressEvent) error {
	err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]interface{}{
			"run_id": event.RunID,
			"stage":  event.Stage,
			"count":  event.Count,
			"at":     event.At.UnixMilli(),
		},
	}).Err()
	if err != nil {
		r.logger.Error("Failed to publish progress event",
			zap.String("stream", r.stream),
			zap.String("stage", event.Stage),
			zap.Error(err))
		return fmt.Errorf("failed to publish progress: %w", err)
	}

	r.logger.Debug("Progress event published",
		zap.String("stage", event.Stage),
		zap.Int64("count", event.Count))
	return nil
}
