package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// PointAlongOffset returns the point at the given fraction of the line's
// arc length, shifted perpendicular to the local direction. Positive
// distance offsets to the geometric right of the direction of travel,
// negative to the left.
func PointAlongOffset(line orb.LineString, ratio, distance float64) orb.Point {
	if len(line) == 0 {
		return orb.Point{}
	}
	if len(line) < 2 {
		return line[0]
	}

	total := 0.0
	for i := 1; i < len(line); i++ {
		total += math.Hypot(line[i][0]-line[i-1][0], line[i][1]-line[i-1][1])
	}
	if total == 0 {
		return line[0]
	}

	target := ratio * total
	walked := 0.0
	for i := 1; i < len(line); i++ {
		a, b := line[i-1], line[i]
		seg := math.Hypot(b[0]-a[0], b[1]-a[1])
		if seg == 0 {
			continue
		}
		if walked+seg < target && i < len(line)-1 {
			walked += seg
			continue
		}
		t := (target - walked) / seg
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		dx := (b[0] - a[0]) / seg
		dy := (b[1] - a[1]) / seg
		return orb.Point{
			a[0] + (b[0]-a[0])*t + dy*distance,
			a[1] + (b[1]-a[1])*t - dx*distance,
		}
	}
	return line[len(line)-1]
}

// Midpoint returns the point halfway along the line's arc length.
func Midpoint(line orb.LineString) orb.Point {
	return PointAlongOffset(line, 0.5, 0)
}
