package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/boundary-tiler/internal/domain"
	"github.com/boundary-tiler/internal/domain/repository"
	"github.com/paulmach/orb/encoding/wkb"
	"go.uber.org/zap"
)

// Колонки для каждой известной таблицы; min_zoom есть только в admin_1.
// Заодно белый список имен таблиц для подстановки в запрос.
var tableColumns = map[string]string{
	"ne_110m_admin_0_boundary_lines_land":   "featurecla, NULL::float8 AS min_zoom",
	"ne_50m_admin_0_boundary_lines_land":    "featurecla, NULL::float8 AS min_zoom",
	"ne_10m_admin_0_boundary_lines_land":    "featurecla, NULL::float8 AS min_zoom",
	"ne_10m_admin_1_states_provinces_lines": "featurecla, min_zoom",
}

type naturalEarthRepository struct {
	db *DB
}

// NewNaturalEarthRepository - репозиторий справочных таблиц Natural Earth,
// загруженных в PostgreSQL (ogr2ogr-схема: wkb_geometry + атрибуты).
func NewNaturalEarthRepository(db *DB) repository.NaturalEarthRepository {
	return &naturalEarthRepository{db: db}
}

func (r *naturalEarthRepository) BoundaryLines(ctx context.Context, table string) ([]domain.NaturalEarthRow, error) {
	columns, ok := tableColumns[table]
	if !ok {
		return nil, fmt.Errorf("unknown natural earth table %q", table)
	}

	query := fmt.Sprintf(
		"SELECT %s, ST_AsBinary(wkb_geometry) AS geom FROM %s",
		columns, table,
	)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.db.logger.Error("Failed to query natural earth table",
			zap.String("table", table),
			zap.Error(err))
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var result []domain.NaturalEarthRow
	for rows.Next() {
		var featureCla sql.NullString
		var minZoom sql.NullFloat64
		scanner := wkb.Scanner(nil)

		if err := rows.Scan(&featureCla, &minZoom, scanner); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}

		row := domain.NaturalEarthRow{
			FeatureCla: featureCla.String,
			Geometry:   scanner.Geometry,
		}
		if minZoom.Valid {
			v := minZoom.Float64
			row.MinZoom = &v
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	return result, nil
}
