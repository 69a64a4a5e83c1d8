package worldview_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/worldview"
)

func threeZoneNetwork(t *testing.T) *worldview.Network {
	t.Helper()
	carLOS := &worldview.ModeLOS{
		Time:       []float64{0, 10, 20, 10, 0, 15, 20, 15, 0},
		PeakTime:   []float64{0, 20, 40, 20, 0, 30, 40, 30, 0},
		Wait:       []float64{0, 1, 1, 1, 0, 1, 1, 1, 0},
		PeakWait:   []float64{0, 2, 2, 2, 0, 2, 2, 2, 0},
		Access:     make([]float64, 9),
		PeakAccess: make([]float64, 9),
		Cost:       []float64{0, 2, 4, 2, 0, 3, 4, 3, 0},
		PeakCost:   []float64{0, 2, 4, 2, 0, 3, 4, 3, 0},
	}
	walkLOS := &worldview.ModeLOS{
		Time:       []float64{0, 30, 60, 30, 0, 45, 60, 45, 0},
		Wait:       make([]float64, 9),
		Access:     make([]float64, 9),
		Cost:       make([]float64, 9),
	}
	net, err := worldview.NewNetwork(3, map[model.Mode]*worldview.ModeLOS{
		model.Car:  carLOS,
		model.Walk: walkLOS,
	})
	require.NoError(t, err)
	return net
}

func threeZoneData(t *testing.T) *worldview.ZoneData {
	t.Helper()
	zd, err := worldview.NewZoneData(3,
		[]float64{100, 200, 300},
		[]float64{50, 60, 70},
		[]float64{1, 2, 3},
	)
	require.NoError(t, err)
	return zd
}

func testSchedule() worldview.PeakSchedule {
	return worldview.PeakSchedule{
		AM: worldview.PeakWindow{Start: 420, End: 540, Buffer: 30},
		PM: worldview.PeakWindow{Start: 1020, End: 1140, Buffer: 30},
	}
}

func TestProportionPeakBoundaries(t *testing.T) {
	s := testSchedule()
	assert.Equal(t, 0.0, s.ProportionPeak(0))
	assert.Equal(t, 1.0, s.ProportionPeak(420)) // Start itself is fully peak
	assert.Equal(t, 1.0, s.ProportionPeak(480))
	assert.True(t, s.ProportionPeak(405) > 0 && s.ProportionPeak(405) < 1) // inside the ramp-in buffer
	assert.True(t, s.ProportionPeak(405) < s.ProportionPeak(415))
	assert.Equal(t, 0.0, s.ProportionPeak(389))
}

func TestFullWorldScalarTravelTime(t *testing.T) {
	fw, err := worldview.NewFullWorld(threeZoneNetwork(t), threeZoneData(t), testSchedule())
	require.NoError(t, err)

	origin, _ := model.Residence(0)
	dest, _ := model.Workplace(1)
	mats, err := fw.TravelTime(model.Car, origin, dest, 480) // inside AM peak
	require.NoError(t, err)
	require.Len(t, mats, 2)
	// at t=480 fully inside peak: peak scale 1, offpeak scale 0.
	var peakVal, offVal float64
	for _, m := range mats {
		if m.Scale == 1 {
			peakVal = m.At(0)
		} else {
			offVal = m.At(0)
		}
	}
	assert.Equal(t, 20.0, peakVal)
	assert.Equal(t, 0.0, offVal)
}

func TestFullWorldNoPeakDistinctionReturnsOneMat(t *testing.T) {
	fw, err := worldview.NewFullWorld(threeZoneNetwork(t), threeZoneData(t), testSchedule())
	require.NoError(t, err)
	origin, _ := model.Residence(0)
	dest := model.NonFixedAll()
	mats, err := fw.TravelTime(model.Walk, origin, dest, 480)
	require.NoError(t, err)
	require.Len(t, mats, 1)
	assert.Equal(t, matrix.RowVec, mats[0].Shp)
	assert.Equal(t, 1.0, mats[0].Scale)
}

func TestFullWorldWildcardShapes(t *testing.T) {
	fw, err := worldview.NewFullWorld(threeZoneNetwork(t), threeZoneData(t), testSchedule())
	require.NoError(t, err)

	res, _ := model.Residence(0)
	allDest := model.NonFixedAll()
	mats, err := fw.TravelTime(model.Car, res, allDest, 0) // fully off-peak
	require.NoError(t, err)
	require.Len(t, mats, 2)
	for _, m := range mats {
		if m.Scale != 0 {
			assert.Equal(t, matrix.RowVec, m.Shp)
		}
	}

	allOrigin := model.NonFixedAll()
	work, _ := model.Workplace(1)
	mats2, err := fw.TravelTime(model.Car, allOrigin, work, 0)
	require.NoError(t, err)
	for _, m := range mats2 {
		if m.Scale != 0 {
			assert.Equal(t, matrix.ColVec, m.Shp)
		}
	}

	mats3, err := fw.TravelTime(model.Car, allOrigin, allDest, 0)
	require.NoError(t, err)
	for _, m := range mats3 {
		if m.Scale != 0 {
			assert.Equal(t, matrix.ODMat, m.Shp)
		}
	}
}

func TestFullWorldCorrectionsAlwaysZero(t *testing.T) {
	fw, err := worldview.NewFullWorld(threeZoneNetwork(t), threeZoneData(t), testSchedule())
	require.NoError(t, err)
	origin, _ := model.Residence(0)
	dest, _ := model.Workplace(1)
	c, err := fw.Corrections(origin, dest)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.At(0))
	assert.False(t, fw.IsSampled())
}

func TestFullWorldTravelTimestepsRange(t *testing.T) {
	fw, err := worldview.NewFullWorld(threeZoneNetwork(t), threeZoneData(t), testSchedule())
	require.NoError(t, err)
	origin, _ := model.Residence(0)
	dest, _ := model.Workplace(1)
	steps, err := fw.TravelTimesteps(model.Car, origin, dest)
	require.NoError(t, err)
	// off-peak total = 10+1+0=11, peak total = 20+2+0=22
	assert.Equal(t, []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22}, steps)
}

func TestZoneProbabilitiesSumToOne(t *testing.T) {
	p := worldview.ZoneProbabilities(4, func(z int) float64 { return float64(z) })
	var sum float64
	for _, v := range p {
		sum += v
		assert.True(t, v > 0)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	// higher utility zone must have higher probability.
	assert.True(t, p[3] > p[0])
}

func TestSampleZonesEmitsRequiredFirst(t *testing.T) {
	p := []float64{0.25, 0.25, 0.25, 0.25}
	rng := rand.New(rand.NewSource(1))
	zones, err := worldview.SampleZones(rng, 5, []int{2, 0}, p)
	require.NoError(t, err)
	require.Len(t, zones, 5)
	assert.Equal(t, 2, zones[0])
	assert.Equal(t, 0, zones[1])
}

func TestSampleZonesRejectsNonPositiveN(t *testing.T) {
	_, err := worldview.SampleZones(rand.New(rand.NewSource(1)), 0, nil, []float64{1})
	require.ErrorIs(t, err, worldview.ErrEmptySample)
}

func TestBuildCorrectionMatrixDiagonalZero(t *testing.T) {
	p := []float64{0.5, 0.25, 0.25}
	sampled := []int{0, 1, 2}
	c, err := worldview.BuildCorrectionMatrix(10, p, sampled)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, c.AtOD(i, i))
	}
	assert.True(t, c.AtOD(0, 1) != 0)
}

func TestSampledWorldGathersSubsetAndRemapsZones(t *testing.T) {
	fw, err := worldview.NewFullWorld(threeZoneNetwork(t), threeZoneData(t), testSchedule())
	require.NoError(t, err)

	sampled := []int{0, 2}
	p := []float64{0.4, 0.3, 0.3}
	corr, err := worldview.BuildCorrectionMatrix(2, p, sampled)
	require.NoError(t, err)

	sw, err := worldview.NewSampledWorld(fw, sampled, corr)
	require.NoError(t, err)
	assert.True(t, sw.IsSampled())
	assert.Equal(t, 2, sw.NumZones())
	assert.Equal(t, []int{0, 2}, sw.Zones())
	assert.Equal(t, 0, sw.ZIndex(0))
	assert.Equal(t, 1, sw.ZIndex(2))
	assert.Equal(t, -1, sw.ZIndex(1))

	origin, _ := model.Residence(0)
	dest, _ := model.Workplace(2)
	mats, err := sw.TravelTime(model.Car, origin, dest, 0) // off-peak
	require.NoError(t, err)
	var got float64
	for _, m := range mats {
		if m.Scale != 0 {
			got = m.At(0)
		}
	}
	assert.Equal(t, 20.0, got) // full-network Time[0*3+2] == 20

	outside, _ := model.Residence(1) // zone 1 is not in the sample
	_, err = sw.TravelTime(model.Car, outside, dest, 0)
	assert.ErrorIs(t, err, worldview.ErrZoneOutOfRange)
}
