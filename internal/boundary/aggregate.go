package boundary

import (
	"github.com/boundary-tiler/internal/domain"
	"github.com/boundary-tiler/internal/pkg/utils"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Decision - путь эмиссии для агрегированного way.
type Decision int

const (
	// EmitImmediate - готовая фича уходит в сток сразу
	EmitImmediate Decision = iota
	// EmitDeferred - фрагмент откладывается в пул слияния до финализации
	EmitDeferred
)

// DecideEmit выбирает путь эмиссии. Чистая функция: геометрия и мутации
// пулов остаются снаружи.
func DecideEmit(countryNames bool, eligibleRegions int) Decision {
	if countryNames && eligibleRegions > 0 {
		return EmitDeferred
	}
	return EmitImmediate
}

// MinZoomForLevel возвращает минимальный зум отображения границы данного
// административного уровня. Морские государственные границы появляются
// на зум раньше сухопутных.
func MinZoomForLevel(adminLevel int, maritime bool) int {
	switch {
	case maritime && adminLevel == domain.CountryAdminLevel:
		return 4
	case adminLevel <= 4:
		return 5
	case adminLevel <= 6:
		return 9
	case adminLevel <= 8:
		return 11
	default:
		return 12
	}
}

// waySummary - сводка членств и собственных тегов одного way.
type waySummary struct {
	minAdminLevel int
	disputed      bool
	maritime      bool
	minZoom       int
	claimedBy     string
	disputedName  string
	// отношения уровня 2 с известным кодом страны; пусто, если
	// определяющая граница way не государственного уровня
	regions []int64
}

func (s waySummary) groupKey() domain.MergeGroupKey {
	return domain.MergeGroupKey{
		AdminLevel:   s.minAdminLevel,
		Disputed:     s.disputed,
		Maritime:     s.maritime,
		MinZoom:      s.minZoom,
		ClaimedBy:    s.claimedBy,
		DisputedName: s.disputedName,
	}
}

func summarizeWay(tags osm.Tags, memberships []domain.RegionRecord) waySummary {
	var s waySummary
	s.minAdminLevel = domain.MaxAdminLevel + 1
	for _, rec := range memberships {
		s.disputed = s.disputed || rec.Disputed
		if rec.AdminLevel < s.minAdminLevel {
			s.minAdminLevel = rec.AdminLevel
		}
		if rec.Disputed {
			// первое встреченное имя и claimed_by побеждают
			if s.disputedName == "" {
				s.disputedName = rec.Name
			}
			if s.claimedBy == "" {
				s.claimedBy = rec.ClaimedBy
			}
		}
		if rec.AdminLevel == domain.CountryAdminLevel && rec.ISOCode != "" {
			s.regions = append(s.regions, rec.ID)
		}
	}
	if s.minAdminLevel != domain.CountryAdminLevel {
		// way, чья определяющая граница не государственная, не несет
		// атрибуцию стран
		s.regions = nil
	}

	if isDisputed(tags) {
		s.disputed = true
		if s.disputedName == "" {
			s.disputedName = tags.Find("name")
		}
		if s.claimedBy == "" {
			s.claimedBy = tags.Find("claimed_by")
		}
	}

	s.maritime = parseBoolTag(tags.Find("maritime")) ||
		tags.Find("natural") == "coastline" ||
		tags.Find("boundary_type") == "maritime"
	s.minZoom = MinZoomForLevel(s.minAdminLevel, s.maritime)
	return s
}

// ProcessWay агрегирует один way границы. Вызывается конкурентно воркерами
// фазы сбора; геометрия уже извлечена читателем, сводка и ключ группировки
// вычисляются до захвата лока.
func (l *Layer) ProcessWay(wayID int64, tags osm.Tags, line orb.LineString, memberships []domain.RegionRecord) {
	if len(memberships) == 0 || len(line) < 2 {
		return
	}
	sum := summarizeWay(tags, memberships)

	switch DecideEmit(l.addCountryNames, len(sum.regions)) {
	case EmitDeferred:
		key := sum.groupKey()
		l.mu.Lock()
		g := l.mergeGroups[key]
		if g == nil {
			g = &mergeGroup{regions: make(map[int64]struct{})}
			l.mergeGroups[key] = g
		}
		g.fragments = append(g.fragments, line)
		for _, id := range sum.regions {
			g.regions[id] = struct{}{}
		}
		l.appendRegionFragmentsLocked(line, memberships)
		l.mu.Unlock()

	case EmitImmediate:
		l.mu.Lock()
		l.appendRegionFragmentsLocked(line, memberships)
		l.mu.Unlock()

		l.sink.Emit(domain.BoundaryFeature{
			ID:           uint64(wayID),
			Geometry:     line,
			AdminLevel:   sum.minAdminLevel,
			Disputed:     sum.disputed,
			Maritime:     sum.maritime,
			ClaimedBy:    sum.claimedBy,
			DisputedName: CleanDisputedName(sum.disputedName),
			MinZoom:      sum.minZoom,
			MaxZoom:      utils.MaxBuildZoom,
			BufferPixels: BufferPixels,
		})
	}
}

// appendRegionFragmentsLocked пишет фрагмент в контур каждого региона
// уровня <=2, независимо от пути эмиссии. Вызывается под l.mu.
func (l *Layer) appendRegionFragmentsLocked(line orb.LineString, memberships []domain.RegionRecord) {
	for _, rec := range memberships {
		if rec.AdminLevel <= domain.CountryAdminLevel {
			l.regionFragments[rec.ID] = append(l.regionFragments[rec.ID], line)
		}
	}
}
