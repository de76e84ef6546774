package naturalearth

import "github.com/boundary-tiler/internal/domain"

// Таблицы Natural Earth с граничными линиями, в порядке обработки.
const (
	Table110mAdmin0 = "ne_110m_admin_0_boundary_lines_land"
	Table50mAdmin0  = "ne_50m_admin_0_boundary_lines_land"
	Table10mAdmin0  = "ne_10m_admin_0_boundary_lines_land"
	Table10mAdmin1  = "ne_10m_admin_1_states_provinces_lines"
)

var Tables = []string{
	Table110mAdmin0,
	Table50mAdmin0,
	Table10mAdmin0,
	Table10mAdmin1,
}

// BoundaryInfo - параметры слоя для строк одной справочной таблицы.
type BoundaryInfo struct {
	AdminLevel int
	MinZoom    int
	MaxZoom    int
}

// Classify возвращает параметры слоя для строки таблицы, nil если строка
// не эмитится. Статическая таблица соответствий: каждая таблица закрывает
// свой диапазон зумов до того, как начинаются границы из OSM.
func Classify(table string, row domain.NaturalEarthRow) *BoundaryInfo {
	switch table {
	case Table110mAdmin0:
		return &BoundaryInfo{AdminLevel: 2, MinZoom: 0, MaxZoom: 0}
	case Table50mAdmin0:
		return &BoundaryInfo{AdminLevel: 2, MinZoom: 1, MaxZoom: 3}
	case Table10mAdmin0:
		if row.FeatureCla == "Lease Limit" {
			return nil
		}
		return &BoundaryInfo{AdminLevel: 2, MinZoom: 4, MaxZoom: 4}
	case Table10mAdmin1:
		if row.MinZoom != nil && *row.MinZoom <= 7 {
			return &BoundaryInfo{AdminLevel: 4, MinZoom: 1, MaxZoom: 4}
		}
		return nil
	}
	return nil
}
