package naturalearth

import (
	"context"
	"fmt"
	"strings"

	"github.com/boundary-tiler/internal/boundary"
	"github.com/boundary-tiler/internal/domain"
	"github.com/boundary-tiler/internal/domain/repository"
	"go.uber.org/zap"
)

// Source эмитит низкодетальные граничные линии из справочных таблиц
// Natural Earth. Эти фичи уходят в сток как есть и не участвуют в слиянии
// и атрибуции стран.
type Source struct {
	repo   repository.NaturalEarthRepository
	sink   repository.FeatureSink
	logger *zap.Logger
}

func NewSource(repo repository.NaturalEarthRepository, sink repository.FeatureSink, logger *zap.Logger) *Source {
	return &Source{
		repo:   repo,
		sink:   sink,
		logger: logger,
	}
}

// Emit читает все справочные таблицы и отправляет подходящие строки в сток.
func (s *Source) Emit(ctx context.Context) error {
	for _, table := range Tables {
		rows, err := s.repo.BoundaryLines(ctx, table)
		if err != nil {
			return fmt.Errorf("read %s: %w", table, err)
		}

		count := 0
		for _, row := range rows {
			info := Classify(table, row)
			if info == nil {
				continue
			}
			disputed := strings.HasPrefix(row.FeatureCla, "Disputed")
			s.sink.Emit(domain.BoundaryFeature{
				Geometry:     row.Geometry,
				AdminLevel:   info.AdminLevel,
				Disputed:     disputed,
				MinZoom:      info.MinZoom,
				MaxZoom:      info.MaxZoom,
				BufferPixels: boundary.BufferPixels,
			})
			count++
		}

		s.logger.Info("Natural Earth table emitted",
			zap.String("table", table),
			zap.Int("rows", len(rows)),
			zap.Int("features", count))
	}
	return nil
}
