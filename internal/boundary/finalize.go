package boundary

import (
	"sort"

	"github.com/boundary-tiler/internal/domain"
	"github.com/boundary-tiler/internal/geo"
	"github.com/boundary-tiler/internal/pkg/utils"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

const attributionSamples = 10

// Finish выполняет однопоточную финализацию после барьера фазы сбора:
// восстанавливает полигоны регионов из пула фрагментов, склеивает группы
// в непрерывные линии и определяет страны слева и справа. Каждый пул
// потребляется и очищается ровно один раз.
func (l *Layer) Finish() {
	polygons := l.buildRegionPolygons()
	l.mergeAndAttribute(polygons)
}

// buildRegionPolygons собирает замкнутые кольца из фрагментов каждого
// региона и строит индексированный полигон. Регион без замкнутого контура
// пропускается и не участвует в атрибуции.
func (l *Layer) buildRegionPolygons() map[int64]*geo.PreparedPolygon {
	l.mu.Lock()
	fragments := l.regionFragments
	l.regionFragments = make(map[int64][]orb.LineString)
	l.mu.Unlock()

	l.logger.Info("Creating polygons for boundaries", zap.Int("regions", len(fragments)))

	prepared := make(map[int64]*geo.PreparedPolygon, len(fragments))
	for id, frags := range fragments {
		rings, _ := geo.Polygonize(frags)
		fragments[id] = nil
		region, err := geo.AssembleRegion(rings)
		if err != nil {
			l.logger.Warn("Unable to build boundary polygon for relation",
				zap.Int64("relation", id),
				zap.Error(err))
			continue
		}
		if len(region) == 0 {
			l.logger.Warn("Unable to form closed polygon for relation (likely missing edges)",
				zap.Int64("relation", id))
			continue
		}
		prepared[id] = geo.Prepare(region)
	}

	l.logger.Info("Finished creating country polygons", zap.Int("count", len(prepared)))
	return prepared
}

// mergeAndAttribute обрабатывает группы независимо друг от друга: склейка,
// атрибуция, эмиссия. Все линии одной группы получают общий синтетический
// id из монотонного счетчика.
func (l *Layer) mergeAndAttribute(polygons map[int64]*geo.PreparedPolygon) {
	l.mu.Lock()
	groups := l.mergeGroups
	l.mergeGroups = make(map[domain.MergeGroupKey]*mergeGroup)
	l.mu.Unlock()

	var seq uint64
	for key, group := range groups {
		seq++
		merged := geo.MergeLines(group.fragments)
		// фрагменты группы освобождаются сразу после склейки, чтобы
		// ограничить пиковую память на планетарных данных
		group.fragments = nil

		for _, line := range merged {
			leftID, rightID := l.borderingRegions(polygons, group.regions, line)

			f := domain.BoundaryFeature{
				ID:           seq,
				Geometry:     line,
				AdminLevel:   key.AdminLevel,
				Disputed:     key.Disputed,
				Maritime:     key.Maritime,
				ClaimedBy:    key.ClaimedBy,
				MinZoom:      key.MinZoom,
				MaxZoom:      utils.MaxBuildZoom,
				BufferPixels: BufferPixels,
			}
			if key.Disputed {
				f.DisputedName = CleanDisputedName(key.DisputedName)
			}
			if leftID != 0 {
				f.LeftCode, _ = l.codes.Load(leftID)
			}
			if rightID != 0 {
				f.RightCode, _ = l.codes.Load(rightID)
			}
			l.sink.Emit(f)
		}
	}
}

// borderingRegions определяет регионы слева и справа от линии по десяти
// сэмплам, смещенным перпендикулярно линии. Возвращает id отношений,
// 0 - сторона неизвестна (ожидаемый исход, не ошибка).
func (l *Layer) borderingRegions(polygons map[int64]*geo.PreparedPolygon, regions map[int64]struct{}, line orb.LineString) (leftID, rightID int64) {
	candidates := make([]int64, 0, len(regions))
	for id := range regions {
		if _, ok := polygons[id]; ok {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return 0, 0
	}
	// стабильный порядок: при равенстве голосов побеждает меньший id
	sort.Slice(candidates, func(a, b int) bool { return candidates[a] < candidates[b] })

	rights := make(map[int64]int)
	lefts := make(map[int64]int)
	for i := 0; i < attributionSamples; i++ {
		// концевые точки линии намеренно исключены
		ratio := float64(i+1) / (attributionSamples + 2)
		right := geo.PointAlongOffset(line, ratio, countryTestOffset)
		left := geo.PointAlongOffset(line, ratio, -countryTestOffset)
		for _, id := range candidates {
			// регион получает не больше одного голоса на сэмпл,
			// правая сторона проверяется первой
			if polygons[id].Contains(right) {
				rights[id]++
			} else if polygons[id].Contains(left) {
				lefts[id]++
			}
		}
	}

	rightID = mode(rights, candidates)
	if rightID != 0 {
		// регион не может быть соседом с обеих сторон одной линии
		delete(lefts, rightID)
	}
	leftID = mode(lefts, candidates)

	if leftID == 0 && rightID == 0 {
		mid := geo.Midpoint(line)
		l.logger.Warn("no left or right country for border between country relations",
			zap.Int64s("relations", candidates),
			zap.Float64("lon", mid[0]),
			zap.Float64("lat", mid[1]))
	}
	return leftID, rightID
}

// mode возвращает кандидата с максимумом голосов, 0 если голосов нет.
// candidates отсортированы, так что ничья детерминированно уходит к
// меньшему id.
func mode(votes map[int64]int, candidates []int64) int64 {
	var best int64
	bestCount := 0
	for _, id := range candidates {
		if n := votes[id]; n > bestCount {
			best = id
			bestCount = n
		}
	}
	return best
}
