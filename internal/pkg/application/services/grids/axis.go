package grids

import (
	"math"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// nearestIndex returns the index of the axis value closest to v. When two values are
// equally close the first one in axis order wins.
func nearestIndex[T constraints.Float](axis []T, v T) int {
	best := -1
	var bestDist T

	for i, a := range axis {
		d := a - v
		if d < 0 {
			d = -d
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

// nearestLongitude is nearestIndex on the circle, so 359.9 lies next to 0 on a 0..360
// axis and 190 next to -170 on a -180..180 axis. Ties go to the first index in axis order.
func nearestLongitude(axis []float64, lon float64) int {
	best := -1
	var bestDist float64

	for i, a := range axis {
		d := math.Mod(math.Abs(a-lon), 360)
		d = min(d, 360-d)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

// window returns the half open index range of times that fall in [start, end).
func window(times []int64, start, end time.Time) (int64, int64) {
	t0, _ := slices.BinarySearch(times, ceilUnix(start))
	t1, _ := slices.BinarySearch(times, ceilUnix(end))
	if t1 < t0 {
		t1 = t0
	}
	return int64(t0), int64(t1)
}

func ceilUnix(t time.Time) int64 {
	s := t.Unix()
	if t.Nanosecond() > 0 {
		s++
	}
	return s
}
