package domain

import "github.com/paulmach/orb"

// Уровни административной иерархии OSM, с которыми работает пайплайн.
const (
	MinAdminLevel = 2
	MaxAdminLevel = 10
)

// CountryAdminLevel - уровень государственной границы
const CountryAdminLevel = 2

// RegionRecord описывает одно boundary-отношение OSM (admin_level 2..10).
// Создается один раз препроцессором и далее не изменяется.
type RegionRecord struct {
	ID         int64
	AdminLevel int
	Disputed   bool
	Name       string
	ClaimedBy  string // заполняется только для спорных границ
	ISOCode    string // трехбуквенный код ISO3166-1:alpha3, может быть пустым
}

// MergeGroupKey - ключ группировки фрагментов границ перед склейкой.
// Фрагменты с одинаковым ключом описывают одну и ту же концептуальную
// границу и могут быть слиты в непрерывные линии.
type MergeGroupKey struct {
	AdminLevel   int
	Disputed     bool
	Maritime     bool
	MinZoom      int
	ClaimedBy    string
	DisputedName string
}

// BoundaryFeature - готовая линия границы для тайлового слоя.
type BoundaryFeature struct {
	ID           uint64
	Geometry     orb.Geometry // LineString или MultiLineString в lon/lat
	AdminLevel   int
	Disputed     bool
	Maritime     bool
	ClaimedBy    string
	DisputedName string
	LeftCode     string // код страны слева от линии, пустой если неизвестен
	RightCode    string // код страны справа от линии, пустой если неизвестен
	MinZoom      int
	MaxZoom      int
	BufferPixels float64
}

// HasZoom сообщает, попадает ли фича в указанный зум.
func (f BoundaryFeature) HasZoom(zoom int) bool {
	return zoom >= f.MinZoom && zoom <= f.MaxZoom
}
