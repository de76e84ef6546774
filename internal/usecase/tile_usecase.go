package usecase

import (
	"context"
	"time"

	"github.com/boundary-tiler/internal/domain/repository"
	"github.com/boundary-tiler/internal/tile"
	"go.uber.org/zap"
)

// TileUseCase отдает готовые тайлы границ из дерева сборки, при наличии
// Redis - через кеш.
type TileUseCase struct {
	store        *tile.Store
	cacheRepo    repository.CacheRepository // может быть nil
	logger       *zap.Logger
	tileCacheTTL time.Duration
}

func NewTileUseCase(
	store *tile.Store,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	tileCacheTTL time.Duration,
) *TileUseCase {
	return &TileUseCase{
		store:        store,
		cacheRepo:    cacheRepo,
		logger:       logger,
		tileCacheTTL: tileCacheTTL,
	}
}

// GetBoundaryTile возвращает тайл или nil, если тайл пуст.
func (uc *TileUseCase) GetBoundaryTile(ctx context.Context, z, x, y int) ([]byte, error) {
	// Check cache first
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetTile(ctx, z, x, y)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	data, err := uc.store.ReadTile(z, x, y)
	if err != nil {
		uc.logger.Error("Failed to read boundary tile", zap.Error(err))
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetTile(ctx, z, x, y, data, uc.tileCacheTTL); err != nil {
			uc.logger.Warn("Failed to cache tile",
				zap.Int("z", z), zap.Int("x", x), zap.Int("y", y),
				zap.Error(err))
		}
	}

	return data, nil
}
