package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/boundary-tiler/internal/boundary"
	"github.com/boundary-tiler/internal/domain"
	"github.com/boundary-tiler/internal/domain/repository"
	"github.com/boundary-tiler/internal/naturalearth"
	"github.com/boundary-tiler/internal/osmreader"
	"github.com/boundary-tiler/internal/pkg/logger"
	"github.com/boundary-tiler/internal/tile"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BuildUseCase - оркестрация одного запуска сборки тайлов границ:
// потоковое чтение OSM, конкурентная агрегация, однопоточная финализация,
// справочный источник Natural Earth и запись тайлов.
type BuildUseCase struct {
	layer    *boundary.Layer
	reader   *osmreader.Reader
	writer   *tile.Writer
	neSource *naturalearth.Source         // nil, если справочный источник выключен
	progress repository.ProgressPublisher // nil, если публикация прогресса выключена
	logger   *zap.Logger
	runID    string
}

func NewBuildUseCase(
	layer *boundary.Layer,
	reader *osmreader.Reader,
	writer *tile.Writer,
	neSource *naturalearth.Source,
	progress repository.ProgressPublisher,
	log *zap.Logger,
) *BuildUseCase {
	runID := uuid.NewString()
	return &BuildUseCase{
		layer:    layer,
		reader:   reader,
		writer:   writer,
		neSource: neSource,
		progress: progress,
		logger:   logger.WithRun(log, runID),
		runID:    runID,
	}
}

func (uc *BuildUseCase) RunID() string {
	return uc.runID
}

// Run выполняет сборку целиком. Плохие записи входа деградируют вывод
// локально и никогда не валят запуск; ошибкой завершаются только сбои
// уровня ввода-вывода.
func (uc *BuildUseCase) Run(ctx context.Context) (*domain.BuildStats, error) {
	start := time.Now()
	uc.logger.Info("Build started")
	uc.publish(ctx, "start", 0)

	readStats, err := uc.reader.Run(ctx, uc.layer)
	if err != nil {
		return nil, fmt.Errorf("read osm: %w", err)
	}
	uc.publish(ctx, "collected", readStats.Aggregated)

	regions, groups := uc.layer.Pending()
	uc.logger.Info("Collection phase done",
		zap.Int64("ways", readStats.Aggregated),
		zap.Int("regions", regions),
		zap.Int("merge_groups", groups))

	// барьер присоединения пройден: вход исчерпан, можно финализировать
	uc.layer.Finish()
	uc.publish(ctx, "finalized", int64(uc.writer.Len()))

	if uc.neSource != nil {
		if err := uc.neSource.Emit(ctx); err != nil {
			return nil, fmt.Errorf("natural earth: %w", err)
		}
		uc.publish(ctx, "naturalearth", int64(uc.writer.Len()))
	}

	features := int64(uc.writer.Len())
	tiles, err := uc.writer.WriteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("write tiles: %w", err)
	}

	uc.layer.Release()

	stats := &domain.BuildStats{
		RunID:        uc.runID,
		Relations:    readStats.Relations,
		Ways:         readStats.Ways,
		Nodes:        readStats.Nodes,
		Regions:      int64(regions),
		MergeGroups:  int64(groups),
		Features:     features,
		TilesWritten: tiles,
		Duration:     time.Since(start),
	}
	uc.publish(ctx, "done", tiles)
	uc.logger.Info("Build finished",
		zap.Int64("features", stats.Features),
		zap.Int64("tiles", stats.TilesWritten),
		zap.Duration("duration", stats.Duration))
	return stats, nil
}

// publish отправляет событие прогресса; ошибки публикации не
// останавливают сборку.
func (uc *BuildUseCase) publish(ctx context.Context, stage string, count int64) {
	if uc.progress == nil {
		return
	}
	_ = uc.progress.Publish(ctx, domain.ProgressEvent{
		RunID: uc.runID,
		Stage: stage,
		Count: count,
		At:    time.Now(),
	})
}
