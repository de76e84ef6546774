package boundary

import (
	"sync"

	"github.com/boundary-tiler/internal/domain"
	"github.com/boundary-tiler/internal/domain/repository"
	"github.com/paulmach/orb"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
)

// countryTestOffset - перпендикулярное смещение сэмплов при определении
// соседних стран, около десяти метров на экваторе в градусах.
const countryTestOffset = 10.0 / 111320.0

// BufferPixels - запас в пикселях для обрезки линий по краю тайла.
const BufferPixels = 4.0

// Layer агрегирует границы из потока OSM и Natural Earth в фичи тайлового
// слоя boundary. Фаза сбора (PreprocessRelation, ProcessWay) конкурентна,
// финализация (Finish) однопоточна и выполняется строго после того, как
// входной поток исчерпан.
type Layer struct {
	addCountryNames bool
	logger          *zap.Logger
	sink            repository.FeatureSink

	// создаются один раз препроцессором, далее только читаются
	records *xsync.MapOf[int64, domain.RegionRecord]
	// relation id -> код ISO3166-1:alpha3; ключи на практике не конкурируют
	codes *xsync.MapOf[int64, string]

	// оба пула под одним грубым локом: запись одного way затрагивает оба
	mu              sync.Mutex
	regionFragments map[int64][]orb.LineString
	mergeGroups     map[domain.MergeGroupKey]*mergeGroup
}

// mergeGroup копит фрагменты одной концептуальной границы и объединение
// подходящих регионов всех внесших вклад way.
type mergeGroup struct {
	fragments []orb.LineString
	regions   map[int64]struct{}
}

// NewLayer создает слой. addCountryNames управляет атрибуцией стран слева
// и справа от линий; при false все way эмитятся немедленно.
func NewLayer(addCountryNames bool, sink repository.FeatureSink, logger *zap.Logger) *Layer {
	return &Layer{
		addCountryNames: addCountryNames,
		logger:          logger,
		sink:            sink,
		records:         xsync.NewMapOf[int64, domain.RegionRecord](),
		codes:           xsync.NewMapOf[int64, string](),
		regionFragments: make(map[int64][]orb.LineString),
		mergeGroups:     make(map[domain.MergeGroupKey]*mergeGroup),
	}
}

// Record возвращает описание boundary-отношения по id.
func (l *Layer) Record(id int64) (domain.RegionRecord, bool) {
	return l.records.Load(id)
}

// CountryCode возвращает код страны отношения, если он известен.
func (l *Layer) CountryCode(id int64) (string, bool) {
	return l.codes.Load(id)
}

// Pending возвращает текущие размеры пулов (для логов прогресса).
func (l *Layer) Pending() (regions, groups int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.regionFragments), len(l.mergeGroups)
}

// Release сбрасывает все аккумуляторы в конце запуска.
func (l *Layer) Release() {
	l.mu.Lock()
	l.regionFragments = make(map[int64][]orb.LineString)
	l.mergeGroups = make(map[domain.MergeGroupKey]*mergeGroup)
	l.mu.Unlock()
	l.records.Clear()
	l.codes.Clear()
}
