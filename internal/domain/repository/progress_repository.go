package repository

import (
	"context"

	"github.com/boundary-tiler/internal/domain"
)

// ProgressPublisher публикует события прогресса сборки.
type ProgressPublisher interface {
	Publish(ctx context.Context, event domain.ProgressEvent) error
}
