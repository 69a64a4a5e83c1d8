package worldview

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/scaper-abm/scaper/matrix"
)

// ZoneUtilityFunc is the zone-sampling parameter set collaborator: it
// returns the MNL utility of destination zone z used to weight importance
// sampling. Callers typically close over a modelctx.ParameterSet and a
// ZoneData snapshot.
type ZoneUtilityFunc func(zone int) float64

// ZoneProbabilities computes the normalized MNL probability vector over
// all numZones destinations: softmax over utilFn, computed with the
// standard max-subtraction for numerical stability.
func ZoneProbabilities(numZones int, utilFn ZoneUtilityFunc) []float64 {
	u := make([]float64, numZones)
	maxU := math.Inf(-1)
	for z := 0; z < numZones; z++ {
		u[z] = utilFn(z)
		if u[z] > maxU {
			maxU = u[z]
		}
	}
	var sum float64
	for z := range u {
		u[z] = math.Exp(u[z] - maxU)
		sum += u[z]
	}
	for z := range u {
		u[z] /= sum
	}
	return u
}

// SampleZones draws a sample of n zones: required zones are emitted first
// verbatim, then remaining slots are filled by independent inverse-CDF
// sampling with replacement from p. Duplicates are allowed and never
// removed here; deduplication, if any, is the choiceset generator's
// concern at the trip level, not the zone-sampling level.
func SampleZones(rng *rand.Rand, n int, required []int, p []float64) ([]int, error) {
	if n <= 0 {
		return nil, ErrEmptySample
	}
	zones := make([]int, 0, n)
	zones = append(zones, required...)
	for len(zones) < n {
		zones = append(zones, drawZone(rng, p))
	}
	return zones[:n], nil
}

// drawZone performs one inverse-CDF draw over p.
func drawZone(rng *rand.Rand, p []float64) int {
	r := rng.Float64()
	var cum float64
	for i, v := range p {
		cum += v
		if r <= cum {
			return i
		}
	}
	return len(p) - 1
}

// BuildCorrectionMatrix computes C[o,d] = -ln(n * p[zone[d]]) for o != d,
// C[o,d] = 0 for o == d, over the sampled zone list (not the full zone
// set) -- the importance-sampling correction that keeps a sampled World's
// utilities an unbiased estimate of the full-network ones.
func BuildCorrectionMatrix(n int, p []float64, sampledZones []int) (*matrix.Mat, error) {
	k := len(sampledZones)
	if k == 0 {
		return nil, fmt.Errorf("worldview.BuildCorrectionMatrix: %w", ErrEmptySample)
	}
	data := make([]float64, k*k)
	for o := 0; o < k; o++ {
		for d := 0; d < k; d++ {
			if o == d {
				continue
			}
			data[o*k+d] = -math.Log(float64(n) * p[sampledZones[d]])
		}
	}
	return matrix.New(matrix.ODMat, k, data), nil
}
