package material

import (
	"fmt"
	"math"
)

// American Wire Gauge range supported for strands
const (
	MinAWG = 0
	MaxAWG = 46
)

// AWGDiameter returns the bare diameter (mm) of gauge n:
// d = 0.127 mm * 92^((36 - n) / 39)
func AWGDiameter(n int) (float64, error) {
	if n < MinAWG || n > MaxAWG {
		return 0, fmt.Errorf("AWG %d out of range %d..%d", n, MinAWG, MaxAWG)
	}
	return 0.127 * math.Pow(92, float64(36-n)/39), nil
}

// NearestAWG finds the gauge whose bare diameter is closest to d (mm)
func NearestAWG(d float64) (int, float64) {
	best, bestDiff := MinAWG, math.Inf(1)
	var bestD float64

	for n := MinAWG; n <= MaxAWG; n++ {
		dn, _ := AWGDiameter(n)
		if diff := math.Abs(dn - d); diff < bestDiff {
			best, bestDiff, bestD = n, diff, dn
		}
	}

	return best, bestD
}
