package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// PreparedPolygon wraps a region multipolygon with per-polygon bounding
// boxes so repeated point-containment tests can reject most candidates
// without a full ray cast.
type PreparedPolygon struct {
	regions orb.MultiPolygon
	bounds  []orb.Bound
}

// Prepare indexes the multipolygon for containment queries.
func Prepare(mp orb.MultiPolygon) *PreparedPolygon {
	bounds := make([]orb.Bound, len(mp))
	for i, poly := range mp {
		bounds[i] = poly.Bound()
	}
	return &PreparedPolygon{regions: mp, bounds: bounds}
}

// Contains reports whether the point lies inside the region.
func (p *PreparedPolygon) Contains(pt orb.Point) bool {
	for i, poly := range p.regions {
		if !p.bounds[i].Contains(pt) {
			continue
		}
		if planar.PolygonContains(poly, pt) {
			return true
		}
	}
	return false
}
