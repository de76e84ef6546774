package geo

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Polygonize merges the fragments and splits the result into closed rings
// and leftover open line strings (dangles).
func Polygonize(fragments []orb.LineString) ([]orb.Ring, []orb.LineString) {
	var rings []orb.Ring
	var dangles []orb.LineString

	for _, line := range MergeLines(fragments) {
		if len(line) >= 4 && line[0] == line[len(line)-1] {
			rings = append(rings, orb.Ring(line))
		} else {
			dangles = append(dangles, line)
		}
	}

	return rings, dangles
}

// AssembleRegion nests closed rings into one multipolygon. A ring contained
// in an even number of larger rings becomes a shell, in an odd number - a
// hole of its smallest enclosing shell. An empty input yields an empty
// multipolygon; degenerate rings are a topology error.
func AssembleRegion(rings []orb.Ring) (orb.MultiPolygon, error) {
	if len(rings) == 0 {
		return nil, nil
	}

	areas := make([]float64, len(rings))
	order := make([]int, len(rings))
	for i, r := range rings {
		areas[i] = math.Abs(planar.Area(r))
		if areas[i] == 0 {
			return nil, fmt.Errorf("zero-area ring with %d points", len(r))
		}
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return areas[order[a]] > areas[order[b]]
	})

	var result orb.MultiPolygon
	depth := make([]int, len(rings))
	polyIndex := make([]int, len(rings))

	for pos, i := range order {
		parent := -1
		// larger rings come first; the closest preceding ring that contains
		// this one is its smallest enclosing ring
		for p := pos - 1; p >= 0; p-- {
			j := order[p]
			if planar.RingContains(rings[j], rings[i][0]) {
				parent = j
				break
			}
		}
		if parent < 0 {
			depth[i] = 0
		} else {
			depth[i] = depth[parent] + 1
		}

		if depth[i]%2 == 0 {
			polyIndex[i] = len(result)
			result = append(result, orb.Polygon{rings[i]})
		} else {
			polyIndex[i] = polyIndex[parent]
			result[polyIndex[parent]] = append(result[polyIndex[parent]], rings[i])
		}
	}

	return result, nil
}
