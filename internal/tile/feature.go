package tile

import (
	"github.com/boundary-tiler/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LayerName - имя слоя границ в тайле.
const LayerName = "boundary"

// properties строит атрибуты слоя boundary. Отсутствующие коды стран и
// имена не пишутся вовсе, а не пишутся пустыми.
func properties(f domain.BoundaryFeature) geojson.Properties {
	props := geojson.Properties{
		"admin_level": f.AdminLevel,
		"disputed":    boolToInt(f.Disputed),
		"maritime":    boolToInt(f.Maritime),
	}
	if f.ClaimedBy != "" {
		props["claimed_by"] = f.ClaimedBy
	}
	if f.DisputedName != "" {
		props["disputed_name"] = f.DisputedName
	}
	if f.LeftCode != "" {
		props["adm0_l"] = f.LeftCode
	}
	if f.RightCode != "" {
		props["adm0_r"] = f.RightCode
	}
	return props
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// attrsKey - сигнатура атрибутов для объединения линий внутри тайла.
type attrsKey struct {
	adminLevel   int
	disputed     bool
	maritime     bool
	claimedBy    string
	disputedName string
	leftCode     string
	rightCode    string
}

func keyOf(f domain.BoundaryFeature) attrsKey {
	return attrsKey{
		adminLevel:   f.AdminLevel,
		disputed:     f.Disputed,
		maritime:     f.Maritime,
		claimedBy:    f.ClaimedBy,
		disputedName: f.DisputedName,
		leftCode:     f.LeftCode,
		rightCode:    f.RightCode,
	}
}

// MergeByAttrs объединяет линии с одинаковыми атрибутами в одну
// мультилинию, сохраняя порядок первого появления атрибутов.
func MergeByAttrs(features []domain.BoundaryFeature) []domain.BoundaryFeature {
	var order []attrsKey
	groups := make(map[attrsKey][]domain.BoundaryFeature)
	for _, f := range features {
		k := keyOf(f)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], f)
	}

	merged := make([]domain.BoundaryFeature, 0, len(order))
	for _, k := range order {
		group := groups[k]
		if len(group) == 1 {
			merged = append(merged, group[0])
			continue
		}
		var lines orb.MultiLineString
		for _, f := range group {
			switch g := f.Geometry.(type) {
			case orb.LineString:
				lines = append(lines, g)
			case orb.MultiLineString:
				lines = append(lines, g...)
			}
		}
		combined := group[0]
		combined.Geometry = lines
		merged = append(merged, combined)
	}
	return merged
}
