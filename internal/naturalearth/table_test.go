package naturalearth

import (
	"testing"

	"github.com/boundary-tiler/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Run("admin0 tables cover low zooms", func(t *testing.T) {
		info := Classify(Table110mAdmin0, domain.NaturalEarthRow{})
		require.NotNil(t, info)
		assert.Equal(t, BoundaryInfo{AdminLevel: 2, MinZoom: 0, MaxZoom: 0}, *info)

		info = Classify(Table50mAdmin0, domain.NaturalEarthRow{})
		require.NotNil(t, info)
		assert.Equal(t, BoundaryInfo{AdminLevel: 2, MinZoom: 1, MaxZoom: 3}, *info)

		info = Classify(Table10mAdmin0, domain.NaturalEarthRow{})
		require.NotNil(t, info)
		assert.Equal(t, BoundaryInfo{AdminLevel: 2, MinZoom: 4, MaxZoom: 4}, *info)
	})

	t.Run("lease limits are skipped", func(t *testing.T) {
		row := domain.NaturalEarthRow{FeatureCla: "Lease Limit"}
		assert.Nil(t, Classify(Table10mAdmin0, row))
		// но только в детальной таблице
		assert.NotNil(t, Classify(Table110mAdmin0, row))
	})

	t.Run("admin1 rows filtered by min_zoom", func(t *testing.T) {
		mz := func(v float64) *float64 { return &v }

		info := Classify(Table10mAdmin1, domain.NaturalEarthRow{MinZoom: mz(7)})
		require.NotNil(t, info)
		assert.Equal(t, BoundaryInfo{AdminLevel: 4, MinZoom: 1, MaxZoom: 4}, *info)

		assert.Nil(t, Classify(Table10mAdmin1, domain.NaturalEarthRow{MinZoom: mz(7.5)}))
		assert.Nil(t, Classify(Table10mAdmin1, domain.NaturalEarthRow{}))
	})

	t.Run("unknown table", func(t *testing.T) {
		assert.Nil(t, Classify("ne_10m_lakes", domain.NaturalEarthRow{}))
	})
}
