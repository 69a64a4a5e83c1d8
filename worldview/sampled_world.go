package worldview

import (
	"fmt"

	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/model"
)

// SampledWorld answers World queries against an agent-specific subset of
// zones. It is built once per agent by gathering the subset's LOS and
// land-use cells out of a FullWorld into a dense, densely-reindexed
// FullWorld of its own (inner) plus a correction Mat carried alongside for
// the unbiasedness terms a sampled world alone contributes.
type SampledWorld struct {
	inner        *FullWorld
	sampledZones []int
	zoneToInner  map[int]int
	corrections  *matrix.Mat // k x k ODMat over sampled-zone positions
}

// NewSampledWorld gathers full's LOS and land-use data restricted to
// sampledZones (in the given order; duplicates collapse to one inner index,
// matching the fact that a duplicate zone is the same physical place) and
// pairs it with a precomputed corrections Mat (see BuildCorrectionMatrix).
func NewSampledWorld(full *FullWorld, sampledZones []int, corrections *matrix.Mat) (*SampledWorld, error) {
	zoneToInner := make(map[int]int, len(sampledZones))
	uniq := make([]int, 0, len(sampledZones))
	for _, z := range sampledZones {
		if _, ok := zoneToInner[z]; ok {
			continue
		}
		zoneToInner[z] = len(uniq)
		uniq = append(uniq, z)
	}
	k := len(uniq)
	n := full.Net.NumZones

	modes := make(map[model.Mode]*ModeLOS, len(full.Net.Modes))
	for m, los := range full.Net.Modes {
		modes[m] = &ModeLOS{
			Time:       gather2D(los.Time, n, uniq),
			PeakTime:   gather2D(los.PeakTime, n, uniq),
			Wait:       gather2D(los.Wait, n, uniq),
			PeakWait:   gather2D(los.PeakWait, n, uniq),
			Access:     gather2D(los.Access, n, uniq),
			PeakAccess: gather2D(los.PeakAccess, n, uniq),
			Cost:       gather2D(los.Cost, n, uniq),
			PeakCost:   gather2D(los.PeakCost, n, uniq),
		}
	}
	innerNet, err := NewNetwork(k, modes)
	if err != nil {
		return nil, fmt.Errorf("worldview.NewSampledWorld: %w", err)
	}
	innerZdata, err := NewZoneData(k,
		gather1D(full.Zdata.Population, uniq),
		gather1D(full.Zdata.Employment, uniq),
		gather1D(full.Zdata.ParkingRatePerHour, uniq),
	)
	if err != nil {
		return nil, fmt.Errorf("worldview.NewSampledWorld: %w", err)
	}
	inner, err := NewFullWorld(innerNet, innerZdata, full.Peak)
	if err != nil {
		return nil, fmt.Errorf("worldview.NewSampledWorld: %w", err)
	}
	if corrections.NumZones != k {
		return nil, fmt.Errorf("worldview.NewSampledWorld: corrections: %w", ErrDimensionMismatch)
	}
	return &SampledWorld{inner: inner, sampledZones: uniq, zoneToInner: zoneToInner, corrections: corrections}, nil
}

func gather2D(arr []float64, n int, zones []int) []float64 {
	if arr == nil {
		return nil
	}
	k := len(zones)
	out := make([]float64, k*k)
	for oi, o := range zones {
		for di, d := range zones {
			out[oi*k+di] = arr[o*n+d]
		}
	}
	return out
}

func gather1D(arr []float64, zones []int) []float64 {
	out := make([]float64, len(zones))
	for i, z := range zones {
		out[i] = arr[z]
	}
	return out
}

// remap translates a real-zone Location into the inner FullWorld's own
// 0..k-1 indexing; wildcards pass through unchanged.
func (w *SampledWorld) remap(loc model.Location) (model.Location, error) {
	if loc.IsWildcard() {
		return loc, nil
	}
	inner, ok := w.zoneToInner[loc.Zone]
	if !ok {
		return model.Location{}, fmt.Errorf("worldview.SampledWorld: zone %d not in sample: %w", loc.Zone, ErrZoneOutOfRange)
	}
	return model.Location{Kind: loc.Kind, Zone: inner}, nil
}

// TravelTime implements World.
func (w *SampledWorld) TravelTime(mode model.Mode, origin, dest model.Location, t float64) ([]*matrix.Mat, error) {
	o, d, err := w.remapPair(origin, dest)
	if err != nil {
		return nil, err
	}
	return w.inner.TravelTime(mode, o, d, t)
}

// TravelWait implements World.
func (w *SampledWorld) TravelWait(mode model.Mode, origin, dest model.Location, t float64) ([]*matrix.Mat, error) {
	o, d, err := w.remapPair(origin, dest)
	if err != nil {
		return nil, err
	}
	return w.inner.TravelWait(mode, o, d, t)
}

// TravelAccess implements World.
func (w *SampledWorld) TravelAccess(mode model.Mode, origin, dest model.Location, t float64) ([]*matrix.Mat, error) {
	o, d, err := w.remapPair(origin, dest)
	if err != nil {
		return nil, err
	}
	return w.inner.TravelAccess(mode, o, d, t)
}

// TravelCost implements World.
func (w *SampledWorld) TravelCost(mode model.Mode, origin, dest model.Location, t float64) ([]*matrix.Mat, error) {
	o, d, err := w.remapPair(origin, dest)
	if err != nil {
		return nil, err
	}
	return w.inner.TravelCost(mode, o, d, t)
}

// ParkingRate implements World.
func (w *SampledWorld) ParkingRate(loc model.Location) (*matrix.Mat, error) {
	l, err := w.remap(loc)
	if err != nil {
		return nil, err
	}
	return w.inner.ParkingRate(l)
}

// LogPop implements World.
func (w *SampledWorld) LogPop(loc model.Location) (*matrix.Mat, error) {
	l, err := w.remap(loc)
	if err != nil {
		return nil, err
	}
	return w.inner.LogPop(l)
}

// LogEmp implements World.
func (w *SampledWorld) LogEmp(loc model.Location) (*matrix.Mat, error) {
	l, err := w.remap(loc)
	if err != nil {
		return nil, err
	}
	return w.inner.LogEmp(l)
}

// Corrections implements World, indexing into the precomputed correction
// Mat rather than the (always-zero) FullWorld default.
func (w *SampledWorld) Corrections(origin, dest model.Location) (*matrix.Mat, error) {
	o, d, err := w.remapPair(origin, dest)
	if err != nil {
		return nil, err
	}
	oIdx, oMany, err := w.inner.resolve(o)
	if err != nil {
		return nil, err
	}
	dIdx, dMany, err := w.inner.resolve(d)
	if err != nil {
		return nil, err
	}
	return extractMat(w.corrections.Data, len(w.sampledZones), oIdx, dIdx, oMany, dMany), nil
}

// TravelTimesteps implements World.
func (w *SampledWorld) TravelTimesteps(mode model.Mode, origin, dest model.Location) ([]int, error) {
	o, d, err := w.remapPair(origin, dest)
	if err != nil {
		return nil, err
	}
	return w.inner.TravelTimesteps(mode, o, d)
}

func (w *SampledWorld) remapPair(origin, dest model.Location) (model.Location, model.Location, error) {
	o, err := w.remap(origin)
	if err != nil {
		return model.Location{}, model.Location{}, err
	}
	d, err := w.remap(dest)
	if err != nil {
		return model.Location{}, model.Location{}, err
	}
	return o, d, nil
}

// IsSampled implements World.
func (w *SampledWorld) IsSampled() bool { return true }

// Zones implements World, returning the real zone numbers backing this
// sample in inner-index order.
func (w *SampledWorld) Zones() []int {
	out := make([]int, len(w.sampledZones))
	copy(out, w.sampledZones)
	return out
}

// NumZones implements World.
func (w *SampledWorld) NumZones() int { return len(w.sampledZones) }

// ZIndex implements World, returning -1 for a zone absent from the sample.
func (w *SampledWorld) ZIndex(zone int) int {
	if idx, ok := w.zoneToInner[zone]; ok {
		return idx
	}
	return -1
}
