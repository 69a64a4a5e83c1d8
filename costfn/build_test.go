package costfn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaper-abm/scaper/costfn"
	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/worldview"
)

type buildFakeWorld struct{}

func (buildFakeWorld) TravelTime(model.Mode, model.Location, model.Location, float64) ([]*matrix.Mat, error) {
	return []*matrix.Mat{matrix.NewScalar(1)}, nil
}
func (buildFakeWorld) TravelWait(model.Mode, model.Location, model.Location, float64) ([]*matrix.Mat, error) {
	return []*matrix.Mat{matrix.NewScalar(0)}, nil
}
func (buildFakeWorld) TravelAccess(model.Mode, model.Location, model.Location, float64) ([]*matrix.Mat, error) {
	return []*matrix.Mat{matrix.NewScalar(0)}, nil
}
func (buildFakeWorld) TravelCost(model.Mode, model.Location, model.Location, float64) ([]*matrix.Mat, error) {
	return []*matrix.Mat{matrix.NewScalar(0)}, nil
}
func (buildFakeWorld) ParkingRate(model.Location) (*matrix.Mat, error) { return matrix.NewScalar(0), nil }
func (buildFakeWorld) LogPop(model.Location) (*matrix.Mat, error)      { return matrix.NewScalar(0), nil }
func (buildFakeWorld) LogEmp(model.Location) (*matrix.Mat, error)      { return matrix.NewScalar(0), nil }
func (buildFakeWorld) Corrections(model.Location, model.Location) (*matrix.Mat, error) {
	return matrix.NewScalar(0), nil
}
func (buildFakeWorld) TravelTimesteps(model.Mode, model.Location, model.Location) ([]int, error) {
	return []int{1}, nil
}
func (buildFakeWorld) IsSampled() bool  { return false }
func (buildFakeWorld) Zones() []int     { return []int{0} }
func (buildFakeWorld) NumZones() int    { return 1 }
func (buildFakeWorld) ZIndex(z int) int { return z }

var _ worldview.World = buildFakeWorld{}

// travelCountModel is an EstimableModel whose single estimated parameter
// counts the number of Travel decisions on a path -- enough to exercise
// BuildObservation's wiring without a real demo utility function.
type travelCountModel struct{}

func (travelCountModel) Accumulate(_ worldview.World, _ model.Agent, _ int, _ model.State, decision model.Decision, into *matrix.Mat) error {
	if decision.Kind == model.DecTravel {
		for i := range into.Data {
			into.Data[i] -= 1
		}
	}
	return nil
}
func (travelCountModel) NumClasses() int                       { return 1 }
func (travelCountModel) ClassUtility(model.Agent, int) float64 { return 0 }
func (travelCountModel) ParameterNames() []string               { return []string{"beta_travel"} }
func (travelCountModel) ClassTerms(model.Agent, int) ([]float64, float64) {
	return []float64{0}, 0
}
func (travelCountModel) ChoiceTerms(_ worldview.World, _ model.Agent, _ int, _ model.State, decision model.Decision) ([]float64, float64, error) {
	row := []float64{0}
	if decision.Kind == model.DecTravel {
		row[0] = 1
	}
	return row, 0, nil
}

var _ statespace.EstimableModel = travelCountModel{}

func TestBuildObservationCountsTravelStepsIntoTheEstimatedRow(t *testing.T) {
	cfg := statespace.Config{
		DayStart:                  0,
		DayEnd:                    6,
		DecisionStep:              1,
		DefaultMaxTrackedDuration: 10,
		NoCarModes:                []model.Mode{model.Walk},
		Discretionary:             []model.Activity{model.Shop},
	}
	agent := model.Agent{ID: "a1", HomeZone: 0, HasWork: false, OwnsCar: false, Weight: 3}
	world := buildFakeWorld{}

	trips := []model.Trip{
		{AgentID: "a1", Activity: model.Shop, Mode: model.Walk, OriginZone: 0, DestZone: 0, Departure: 1, Arrival: 2, TravelTime: 1},
		{AgentID: "a1", Activity: model.Home, Mode: model.Walk, OriginZone: 0, DestZone: 0, Departure: 3, Arrival: 4, TravelTime: 1},
	}
	cs := model.Choiceset{
		Agent:        agent,
		SampledZones: []int{0},
		Alternatives: []model.Alternative{{Trips: trips, Correction: 0.5}},
	}

	obs, err := costfn.BuildObservation(world, cs, travelCountModel{}, cfg)
	require.NoError(t, err)

	assert.Equal(t, "a1", obs.AgentID)
	assert.Equal(t, 3.0, obs.Weight)
	require.Len(t, obs.ClassEstimatedRow, 1)
	assert.Equal(t, []float64{0}, obs.ClassEstimatedRow[0])
	assert.Equal(t, 0.0, obs.ClassFixedU[0])

	require.Len(t, obs.ChoiceVarMatrix, 1)
	require.Len(t, obs.ChoiceVarMatrix[0], 1)
	assert.Equal(t, []float64{2}, obs.ChoiceVarMatrix[0][0], "two trips, two Travel decisions")
	assert.Equal(t, 0.5, obs.ChoiceFixedU[0][0], "fixed term starts from the alternative's correction")
}
