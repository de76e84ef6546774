package osmreader

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/boundary-tiler/internal/boundary"
	"github.com/boundary-tiler/internal/domain"
	"github.com/boundary-tiler/internal/worker"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
)

// Stats - счетчики одного прогона читателя.
type Stats struct {
	Relations  int64
	Ways       int64
	Nodes      int64
	Aggregated int64
}

// Reader прогоняет .osm.pbf через три последовательных прохода (отношения,
// way, узлы) и затем веером раздает way воркерам агрегации. Порядок
// проходов фиксирован: препроцессор видит все отношения до того, как
// агрегация начнет их запрашивать.
type Reader struct {
	path    string
	workers int
	logger  *zap.Logger

	wayRelations map[osm.WayID][]int64
	ways         []*osm.Way
	nodesNeeded  map[osm.NodeID]struct{}
	coords       *xsync.MapOf[int64, orb.Point]
}

func New(path string, workers int, logger *zap.Logger) *Reader {
	if workers < 1 {
		workers = 1
	}
	return &Reader{
		path:         path,
		workers:      workers,
		logger:       logger,
		wayRelations: make(map[osm.WayID][]int64),
		nodesNeeded:  make(map[osm.NodeID]struct{}),
		coords:       xsync.NewMapOf[int64, orb.Point](),
	}
}

// Run выполняет все проходы и конкурентную агрегацию. Возвращается только
// после барьера присоединения: к этому моменту входной поток исчерпан и
// можно запускать финализацию слоя.
func (r *Reader) Run(ctx context.Context, layer *boundary.Layer) (Stats, error) {
	var stats Stats

	if err := r.scanRelations(ctx, layer, &stats); err != nil {
		return stats, fmt.Errorf("relations pass: %w", err)
	}
	r.logger.Info("Relations pass done",
		zap.Int64("relations", stats.Relations),
		zap.Int("member_ways", len(r.wayRelations)))

	if err := r.scanWays(ctx, &stats); err != nil {
		return stats, fmt.Errorf("ways pass: %w", err)
	}
	r.logger.Info("Ways pass done",
		zap.Int64("ways", stats.Ways),
		zap.Int("nodes_needed", len(r.nodesNeeded)))

	if err := r.scanNodes(ctx, &stats); err != nil {
		return stats, fmt.Errorf("nodes pass: %w", err)
	}
	r.logger.Info("Nodes pass done", zap.Int64("nodes", stats.Nodes))

	r.aggregate(layer, &stats)

	// аккумуляторы читателя дальше не нужны
	r.ways = nil
	r.nodesNeeded = nil
	r.coords.Clear()

	return stats, nil
}

func (r *Reader) scanRelations(ctx context.Context, layer *boundary.Layer, stats *Stats) error {
	return r.scan(ctx, func(scanner *osmpbf.Scanner) error {
		scanner.SkipNodes = true
		scanner.SkipWays = true
		for scanner.Scan() {
			rel, ok := scanner.Object().(*osm.Relation)
			if !ok {
				continue
			}
			stats.Relations++
			rec := layer.PreprocessRelation(rel)
			if rec == nil {
				continue
			}
			for _, m := range rel.Members {
				if m.Type == osm.TypeWay {
					id := osm.WayID(m.Ref)
					r.wayRelations[id] = append(r.wayRelations[id], rec.ID)
				}
			}
		}
		return scanner.Err()
	})
}

func (r *Reader) scanWays(ctx context.Context, stats *Stats) error {
	return r.scan(ctx, func(scanner *osmpbf.Scanner) error {
		scanner.SkipNodes = true
		scanner.SkipRelations = true
		for scanner.Scan() {
			way, ok := scanner.Object().(*osm.Way)
			if !ok {
				continue
			}
			if _, member := r.wayRelations[way.ID]; !member {
				continue
			}
			stats.Ways++
			r.ways = append(r.ways, way)
			for _, wn := range way.Nodes {
				r.nodesNeeded[wn.ID] = struct{}{}
			}
		}
		return scanner.Err()
	})
}

func (r *Reader) scanNodes(ctx context.Context, stats *Stats) error {
	return r.scan(ctx, func(scanner *osmpbf.Scanner) error {
		scanner.SkipWays = true
		scanner.SkipRelations = true
		for scanner.Scan() {
			node, ok := scanner.Object().(*osm.Node)
			if !ok {
				continue
			}
			if _, needed := r.nodesNeeded[node.ID]; !needed {
				continue
			}
			stats.Nodes++
			r.coords.Store(int64(node.ID), orb.Point{node.Lon, node.Lat})
		}
		return scanner.Err()
	})
}

func (r *Reader) scan(ctx context.Context, pass func(*osmpbf.Scanner) error) error {
	file, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := osmpbf.New(ctx, file, r.workers)
	defer scanner.Close()
	return pass(scanner)
}

// aggregate раздает сохраненные way воркерам. Барьер присоединения -
// pool.Wait: после него слой можно финализировать.
func (r *Reader) aggregate(layer *boundary.Layer, stats *Stats) {
	jobs := make(chan *osm.Way, r.workers*4)
	var aggregated atomic.Int64

	pool := worker.NewPool(r.logger)
	pool.Spawn("way-aggregator", r.workers, func(int) {
		for way := range jobs {
			if r.aggregateWay(way, layer) {
				aggregated.Add(1)
			}
		}
	})

	for _, way := range r.ways {
		jobs <- way
	}
	close(jobs)
	pool.Wait()

	stats.Aggregated = aggregated.Load()
}

// aggregateWay восстанавливает геометрию way и передает ее агрегатору.
// Неразрешимый узел означает невалидную топологию: way целиком
// отбрасывается, без частичных записей в пулы.
func (r *Reader) aggregateWay(way *osm.Way, layer *boundary.Layer) bool {
	line := make(orb.LineString, 0, len(way.Nodes))
	for _, wn := range way.Nodes {
		p, ok := r.coords.Load(int64(wn.ID))
		if !ok {
			r.logger.Warn("Cannot extract boundary line from way",
				zap.Int64("way", int64(way.ID)),
				zap.Int64("node", int64(wn.ID)))
			return false
		}
		line = append(line, p)
	}
	if len(line) < 2 {
		r.logger.Warn("Cannot extract boundary line from way",
			zap.Int64("way", int64(way.ID)),
			zap.Int("points", len(line)))
		return false
	}

	ids := r.wayRelations[way.ID]
	memberships := make([]domain.RegionRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := layer.Record(id); ok {
			memberships = append(memberships, rec)
		}
	}

	layer.ProcessWay(int64(way.ID), way.Tags, line, memberships)
	return true
}
