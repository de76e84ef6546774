package osmreader

import (
	"testing"

	"github.com/boundary-tiler/internal/boundary"
	"github.com/boundary-tiler/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sinkRecorder struct {
	features []domain.BoundaryFeature
}

func (s *sinkRecorder) Emit(f domain.BoundaryFeature) {
	s.features = append(s.features, f)
}

func testLayer(sink *sinkRecorder) *boundary.Layer {
	l := boundary.NewLayer(false, sink, zap.NewNop())
	l.PreprocessRelation(&osm.Relation{
		ID: 1,
		Tags: osm.Tags{
			{Key: "type", Value: "boundary"},
			{Key: "boundary", Value: "administrative"},
			{Key: "admin_level", Value: "2"},
		},
	})
	return l
}

func way(id int64, nodeIDs ...int64) *osm.Way {
	w := &osm.Way{ID: osm.WayID(id)}
	for _, n := range nodeIDs {
		w.Nodes = append(w.Nodes, osm.WayNode{ID: osm.NodeID(n)})
	}
	return w
}

func TestAggregateWay(t *testing.T) {
	t.Run("resolvable way reaches the layer", func(t *testing.T) {
		sink := &sinkRecorder{}
		layer := testLayer(sink)

		r := New("unused.osm.pbf", 1, zap.NewNop())
		r.wayRelations[10] = []int64{1}
		r.coords.Store(100, orb.Point{0, 0})
		r.coords.Store(101, orb.Point{0, 1})

		ok := r.aggregateWay(way(10, 100, 101), layer)
		assert.True(t, ok)

		require.Len(t, sink.features, 1)
		assert.Equal(t, orb.LineString{{0, 0}, {0, 1}}, sink.features[0].Geometry)
	})

	t.Run("unresolvable node drops the whole way", func(t *testing.T) {
		sink := &sinkRecorder{}
		layer := testLayer(sink)

		r := New("unused.osm.pbf", 1, zap.NewNop())
		r.wayRelations[10] = []int64{1}
		r.coords.Store(100, orb.Point{0, 0})
		// узел 101 отсутствует

		ok := r.aggregateWay(way(10, 100, 101), layer)
		assert.False(t, ok)

		// никаких частичных записей
		assert.Empty(t, sink.features)
		regions, groups := layer.Pending()
		assert.Equal(t, 0, regions)
		assert.Equal(t, 0, groups)
	})

	t.Run("single-point way is dropped", func(t *testing.T) {
		sink := &sinkRecorder{}
		layer := testLayer(sink)

		r := New("unused.osm.pbf", 1, zap.NewNop())
		r.wayRelations[10] = []int64{1}
		r.coords.Store(100, orb.Point{0, 0})

		ok := r.aggregateWay(way(10, 100), layer)
		assert.False(t, ok)
		assert.Empty(t, sink.features)
	})

	t.Run("membership of an unknown relation is skipped", func(t *testing.T) {
		sink := &sinkRecorder{}
		layer := testLayer(sink)

		r := New("unused.osm.pbf", 1, zap.NewNop())
		r.wayRelations[10] = []int64{999} // отношение не зарегистрировано
		r.coords.Store(100, orb.Point{0, 0})
		r.coords.Store(101, orb.Point{0, 1})

		ok := r.aggregateWay(way(10, 100, 101), layer)
		assert.True(t, ok)
		// без членств слой отбрасывает way
		assert.Empty(t, sink.features)
	})
}

func TestAggregate(t *testing.T) {
	sink := &sinkRecorder{}
	layer := boundary.NewLayer(true, sink, zap.NewNop())
	layer.PreprocessRelation(&osm.Relation{
		ID: 1,
		Tags: osm.Tags{
			{Key: "type", Value: "boundary"},
			{Key: "boundary", Value: "administrative"},
			{Key: "admin_level", Value: "2"},
			{Key: "ISO3166-1:alpha3", Value: "AAA"},
		},
	})

	r := New("unused.osm.pbf", 4, zap.NewNop())
	for i := int64(0); i < 20; i++ {
		r.wayRelations[osm.WayID(i)] = []int64{1}
		r.coords.Store(2*i, orb.Point{float64(i), 0})
		r.coords.Store(2*i+1, orb.Point{float64(i), 1})
		r.ways = append(r.ways, way(i, 2*i, 2*i+1))
	}

	var stats Stats
	r.aggregate(layer, &stats)

	assert.Equal(t, int64(20), stats.Aggregated)
	regions, groups := layer.Pending()
	assert.Equal(t, 1, regions)
	assert.Equal(t, 1, groups)
}
