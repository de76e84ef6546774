package repository

import (
	"context"

	"github.com/boundary-tiler/internal/domain"
)

// NaturalEarthRepository - доступ к справочным таблицам Natural Earth.
type NaturalEarthRepository interface {
	// BoundaryLines возвращает строки одной таблицы граничных линий.
	BoundaryLines(ctx context.Context, table string) ([]domain.NaturalEarthRow, error)
}
