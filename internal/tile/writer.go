package tile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/boundary-tiler/internal/domain"
	"github.com/boundary-tiler/internal/pkg/utils"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/paulmach/orb/simplify"
	"go.uber.org/zap"
)

const tileExtent = 4096.0

// Writer копит готовые фичи границ и по завершении сборки пишет дерево
// тайлов <out>/<z>/<x>/<y>.pbf. Emit безопасен для конкурентных вызовов
// из воркеров фазы сбора.
type Writer struct {
	outDir string
	logger *zap.Logger

	mu       sync.Mutex
	features []domain.BoundaryFeature
}

func NewWriter(outDir string, logger *zap.Logger) *Writer {
	return &Writer{
		outDir: outDir,
		logger: logger,
	}
}

// Emit принимает одну готовую фичу.
func (w *Writer) Emit(f domain.BoundaryFeature) {
	w.mu.Lock()
	w.features = append(w.features, f)
	w.mu.Unlock()
}

// Len возвращает число накопленных фич.
func (w *Writer) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.features)
}

// WriteAll кодирует и записывает все тайлы. Вызывается один раз после
// финализации; накопленные фичи после записи освобождаются.
func (w *Writer) WriteAll(ctx context.Context) (int64, error) {
	w.mu.Lock()
	features := w.features
	w.features = nil
	w.mu.Unlock()

	var written int64
	for z := 0; z <= utils.MaxBuildZoom; z++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		perTile := make(map[maptile.Tile][]domain.BoundaryFeature)
		for _, f := range features {
			if !f.HasZoom(z) {
				continue
			}
			for _, t := range coveredTiles(f.Geometry.Bound(), maptile.Zoom(z)) {
				perTile[t] = append(perTile[t], f)
			}
		}

		for t, tileFeatures := range perTile {
			data, err := w.encodeTile(t, tileFeatures)
			if err != nil {
				return written, fmt.Errorf("encode tile %d/%d/%d: %w", t.Z, t.X, t.Y, err)
			}
			if data == nil {
				continue
			}
			if err := w.writeTile(t, data); err != nil {
				return written, err
			}
			written++
		}

		w.logger.Debug("Zoom level written", zap.Int("zoom", z))
	}

	w.logger.Info("Tiles written",
		zap.Int64("tiles", written),
		zap.String("dir", w.outDir))
	return written, nil
}

// coveredTiles перечисляет тайлы зума, пересекающие bbox геометрии.
func coveredTiles(b orb.Bound, zoom maptile.Zoom) []maptile.Tile {
	// y растет на юг: верхний левый тайл берется от северо-западного угла
	tl := maptile.At(orb.Point{b.Min[0], b.Max[1]}, zoom)
	br := maptile.At(orb.Point{b.Max[0], b.Min[1]}, zoom)

	tiles := make([]maptile.Tile, 0, int(br.X-tl.X+1)*int(br.Y-tl.Y+1))
	for x := tl.X; x <= br.X; x++ {
		for y := tl.Y; y <= br.Y; y++ {
			tiles = append(tiles, maptile.New(x, y, zoom))
		}
	}
	return tiles
}

// encodeTile собирает один тайл: объединение линий по атрибутам, проекция,
// упрощение с зависящим от зума допуском, обрезка с запасом и кодирование.
// Возвращает nil для пустого тайла.
func (w *Writer) encodeTile(t maptile.Tile, features []domain.BoundaryFeature) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	buffer := 0.0
	for _, f := range MergeByAttrs(features) {
		gf := geojson.NewFeature(f.Geometry)
		gf.ID = f.ID
		gf.Properties = properties(f)
		fc.Append(gf)
		if f.BufferPixels > buffer {
			buffer = f.BufferPixels
		}
	}

	layers := mvt.NewLayers(map[string]*geojson.FeatureCollection{LayerName: fc})
	layers.ProjectToTile(t)

	// допуск в единицах экстента: 0.1 px на 256-пиксельной сетке, на
	// максимальном зуме ужимаем слабее, чтобы не ломать стыки
	tolerance := 0.1 * tileExtent / 256
	if int(t.Z) >= utils.MaxBuildZoom {
		tolerance = tileExtent / 4096
	}
	layers.Simplify(simplify.DouglasPeucker(tolerance))

	margin := buffer * tileExtent / 256
	layers.Clip(orb.Bound{
		Min: orb.Point{-margin, -margin},
		Max: orb.Point{tileExtent + margin, tileExtent + margin},
	})
	layers.RemoveEmpty(1.0, 1.0)

	count := 0
	for _, layer := range layers {
		count += len(layer.Features)
	}
	if count == 0 {
		return nil, nil
	}

	return mvt.MarshalGzipped(layers)
}

func (w *Writer) writeTile(t maptile.Tile, data []byte) error {
	dir := filepath.Join(w.outDir, strconv.Itoa(int(t.Z)), strconv.FormatUint(uint64(t.X), 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, strconv.FormatUint(uint64(t.Y), 10)+".pbf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
