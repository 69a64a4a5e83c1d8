package worldview

import (
	"fmt"
	"math"

	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/model"
)

// FullWorld answers World queries against the whole network: every zone is
// in scope and Corrections is always zero. It is built once per model run
// (or once per scenario in tests) and shared read-only across every agent
// and worker goroutine.
type FullWorld struct {
	Net   *Network
	Zdata *ZoneData
	Peak  PeakSchedule
}

// NewFullWorld validates that Net and Zdata agree on NumZones.
func NewFullWorld(net *Network, zdata *ZoneData, peak PeakSchedule) (*FullWorld, error) {
	if net.NumZones != zdata.NumZones {
		return nil, fmt.Errorf("worldview.NewFullWorld: %w", ErrDimensionMismatch)
	}
	return &FullWorld{Net: net, Zdata: zdata, Peak: peak}, nil
}

func (w *FullWorld) zIndex(zone int) (int, error) {
	if zone < 0 || zone >= w.Net.NumZones {
		return 0, fmt.Errorf("zone %d: %w", zone, ErrZoneOutOfRange)
	}
	return zone, nil
}

func (w *FullWorld) resolve(loc model.Location) (int, bool, error) {
	return resolveLoc(loc, w.zIndex)
}

func (w *FullWorld) losSequence(mode model.Mode, off, peakArr []float64, hasPeak bool, origin, dest model.Location, timeOfDay float64) ([]*matrix.Mat, error) {
	originIdx, originMany, err := w.resolve(origin)
	if err != nil {
		return nil, err
	}
	destIdx, destMany, err := w.resolve(dest)
	if err != nil {
		return nil, err
	}
	offMat := extractMat(off, w.Net.NumZones, originIdx, destIdx, originMany, destMany)
	if !hasPeak {
		return []*matrix.Mat{offMat}, nil
	}
	p := w.Peak.ProportionPeak(timeOfDay)
	peakMat := extractMat(peakArr, w.Net.NumZones, originIdx, destIdx, originMany, destMany)
	peakMat.Scale = p
	offMat.Scale = 1 - p
	return []*matrix.Mat{peakMat, offMat}, nil
}

func (w *FullWorld) modeLOS(mode model.Mode) (*ModeLOS, error) {
	los, ok := w.Net.Modes[mode]
	if !ok {
		return nil, fmt.Errorf("mode %s: %w", mode, ErrUnknownMode)
	}
	return los, nil
}

// TravelTime implements World.
func (w *FullWorld) TravelTime(mode model.Mode, origin, dest model.Location, t float64) ([]*matrix.Mat, error) {
	los, err := w.modeLOS(mode)
	if err != nil {
		return nil, err
	}
	return w.losSequence(mode, los.Time, los.PeakTime, mode.HasPeakDistinction(), origin, dest, t)
}

// TravelWait implements World.
func (w *FullWorld) TravelWait(mode model.Mode, origin, dest model.Location, t float64) ([]*matrix.Mat, error) {
	los, err := w.modeLOS(mode)
	if err != nil {
		return nil, err
	}
	return w.losSequence(mode, los.Wait, los.PeakWait, mode.HasPeakDistinction(), origin, dest, t)
}

// TravelAccess implements World.
func (w *FullWorld) TravelAccess(mode model.Mode, origin, dest model.Location, t float64) ([]*matrix.Mat, error) {
	los, err := w.modeLOS(mode)
	if err != nil {
		return nil, err
	}
	return w.losSequence(mode, los.Access, los.PeakAccess, mode.HasPeakDistinction(), origin, dest, t)
}

// TravelCost implements World.
func (w *FullWorld) TravelCost(mode model.Mode, origin, dest model.Location, t float64) ([]*matrix.Mat, error) {
	los, err := w.modeLOS(mode)
	if err != nil {
		return nil, err
	}
	return w.losSequence(mode, los.Cost, los.PeakCost, mode.HasPeakDistinction(), origin, dest, t)
}

// ParkingRate implements World.
func (w *FullWorld) ParkingRate(loc model.Location) (*matrix.Mat, error) {
	idx, many, err := w.resolve(loc)
	if err != nil {
		return nil, err
	}
	if many {
		return matrix.New(matrix.RowVec, w.Net.NumZones, w.Zdata.ParkingRatePerHour), nil
	}
	return matrix.NewScalar(w.Zdata.ParkingRatePerHour[idx]), nil
}

// LogPop implements World.
func (w *FullWorld) LogPop(loc model.Location) (*matrix.Mat, error) {
	return w.logLandUse(loc, w.Zdata.Population)
}

// LogEmp implements World.
func (w *FullWorld) LogEmp(loc model.Location) (*matrix.Mat, error) {
	return w.logLandUse(loc, w.Zdata.Employment)
}

func (w *FullWorld) logLandUse(loc model.Location, arr []float64) (*matrix.Mat, error) {
	idx, many, err := w.resolve(loc)
	if err != nil {
		return nil, err
	}
	if many {
		logged := make([]float64, len(arr))
		for i, v := range arr {
			logged[i] = math.Log(v)
		}
		return matrix.New(matrix.RowVec, w.Net.NumZones, logged), nil
	}
	return matrix.NewScalar(math.Log(arr[idx])), nil
}

// Corrections implements World: FullWorld is never sampled, so the
// correction is always zero, shaped like the (origin, dest) pair would
// require.
func (w *FullWorld) Corrections(origin, dest model.Location) (*matrix.Mat, error) {
	_, originMany, err := w.resolve(origin)
	if err != nil {
		return nil, err
	}
	_, destMany, err := w.resolve(dest)
	if err != nil {
		return nil, err
	}
	shp := matrix.DecisionShape(originMany, destMany)
	return matrix.NewZeroed(shp, w.Net.NumZones)
}

// TravelTimesteps implements World.
func (w *FullWorld) TravelTimesteps(mode model.Mode, origin, dest model.Location) ([]int, error) {
	los, err := w.modeLOS(mode)
	if err != nil {
		return nil, err
	}
	originIdx, originMany, err := w.resolve(origin)
	if err != nil {
		return nil, err
	}
	destIdx, destMany, err := w.resolve(dest)
	if err != nil {
		return nil, err
	}
	n := w.Net.NumZones
	minV, maxV := math.Inf(1), math.Inf(-1)
	visit := func(off, peakArr []float64, hasPeak bool) {
		for _, o := range zoneRange(originIdx, originMany, n) {
			for _, d := range zoneRange(destIdx, destMany, n) {
				total := off[o*n+d]
				if total < minV {
					minV = total
				}
				if total > maxV {
					maxV = total
				}
				if hasPeak {
					pt := peakArr[o*n+d]
					if pt < minV {
						minV = pt
					}
					if pt > maxV {
						maxV = pt
					}
				}
			}
		}
	}
	hasPeak := mode.HasPeakDistinction()
	visit(sumArrays(los.Time, los.Wait, los.Access), sumArrays(los.PeakTime, los.PeakWait, los.PeakAccess), hasPeak)
	return integralRange(minV, maxV), nil
}

// zoneRange lists the zone indices a many/single Location resolves to.
func zoneRange(idx int, many bool, n int) []int {
	if !many {
		return []int{idx}
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// sumArrays element-wise sums same-length arrays into a freshly allocated
// result.
func sumArrays(arrs ...[]float64) []float64 {
	if len(arrs) == 0 {
		return nil
	}
	out := make([]float64, len(arrs[0]))
	for _, a := range arrs {
		for i, v := range a {
			out[i] += v
		}
	}
	return out
}

// integralRange returns the sorted inclusive integer range floor(min)..
// ceil(max).
func integralRange(minV, maxV float64) []int {
	lo := int(math.Floor(minV))
	hi := int(math.Ceil(maxV))
	out := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out
}

// IsSampled implements World.
func (w *FullWorld) IsSampled() bool { return false }

// Zones implements World.
func (w *FullWorld) Zones() []int {
	zones := make([]int, w.Net.NumZones)
	for i := range zones {
		zones[i] = i
	}
	return zones
}

// NumZones implements World.
func (w *FullWorld) NumZones() int { return w.Net.NumZones }

// ZIndex implements World: identity, since FullWorld indexes every zone
// directly.
func (w *FullWorld) ZIndex(zone int) int { return zone }
