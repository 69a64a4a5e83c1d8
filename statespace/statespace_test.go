package statespace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/worldview"
)

func testCfg() statespace.Config {
	return statespace.Config{
		DayStart:                  0,
		DayEnd:                    100,
		DecisionStep:              5,
		DefaultMaxTrackedDuration: 20,
	}
}

func homeAgent(hasWork bool) model.Agent {
	return model.Agent{ID: "a1", HomeZone: 0, HasWork: hasWork, WorkZone: 1, OwnsCar: true}
}

func TestOptionsDepartAwayFromHomeAndWork(t *testing.T) {
	agent := homeAgent(true)
	nonFixed, _ := model.NonFixedZone(2)
	state := model.State{Activity: model.Depart, Location: nonFixed, TimeOfDay: 10}
	decisions := statespace.Options(false, agent, []int{0, 1, 2}, state, testCfg())

	var sawHome, sawWork, sawNonFixedAll bool
	for _, d := range decisions {
		require.Equal(t, model.DecTravel, d.Kind)
		switch d.TravelDest.Kind {
		case model.LocResidence:
			sawHome = true
		case model.LocWorkplace:
			sawWork = true
		case model.LocNonFixed:
			if d.TravelDest.IsWildcard() {
				sawNonFixedAll = true
			}
		}
	}
	assert.True(t, sawHome)
	assert.True(t, sawWork)
	assert.True(t, sawNonFixedAll)
}

func TestOptionsDepartExplodeYieldsOnePerZone(t *testing.T) {
	agent := homeAgent(false)
	home, _ := model.Residence(0)
	state := model.State{Activity: model.Depart, Location: home, TimeOfDay: 10}
	zones := []int{0, 1, 2}
	decisions := statespace.Options(true, agent, zones, state, testCfg())
	// At home, no HomeTravel option; no work; 4 modes * 3 zones exploded.
	assert.Len(t, decisions, len(model.AllModes())*len(zones))
}

func TestOptionsArriveDispatchesByLocationKind(t *testing.T) {
	cfg := testCfg()
	home, _ := model.Residence(0)
	work, _ := model.Workplace(1)
	nonFixed, _ := model.NonFixedZone(2)

	homeDecisions := statespace.Options(false, homeAgent(true), nil, model.State{Activity: model.Arrive, Location: home}, cfg)
	require.Len(t, homeDecisions, 1)
	assert.Equal(t, model.StartDecision(model.Home), homeDecisions[0])

	workDecisions := statespace.Options(false, homeAgent(true), nil, model.State{Activity: model.Arrive, Location: work}, cfg)
	require.Len(t, workDecisions, 1)
	assert.Equal(t, model.StartDecision(model.Work), workDecisions[0])

	discDecisions := statespace.Options(false, homeAgent(true), nil, model.State{Activity: model.Arrive, Location: nonFixed}, cfg)
	assert.Len(t, discDecisions, len(model.DiscretionaryActivities()))
}

func TestOptionsOtherActivityYieldsContinueAndEnd(t *testing.T) {
	home, _ := model.Residence(0)
	decisions := statespace.Options(false, homeAgent(true), nil, model.State{Activity: model.Work, Location: home}, testCfg())
	assert.ElementsMatch(t, []model.Decision{model.ContinueDecision(), model.EndDecision()}, decisions)
}

func TestClassifyBadOutsideDayBounds(t *testing.T) {
	cfg := testCfg()
	home, _ := model.Residence(0)
	assert.Equal(t, statespace.Bad, statespace.Classify(homeAgent(true), model.State{TimeOfDay: -1, Location: home}, cfg))
	assert.Equal(t, statespace.Bad, statespace.Classify(homeAgent(true), model.State{TimeOfDay: 200, Location: home}, cfg))
}

func TestClassifyEndAtDayEndHome(t *testing.T) {
	cfg := testCfg()
	home, _ := model.Residence(0)
	agent := homeAgent(false)
	state := model.State{Activity: model.Home, Location: home, TimeOfDay: cfg.DayEnd, HasWorked: false}
	assert.Equal(t, statespace.End, statespace.Classify(agent, state, cfg))
}

func TestClassifyBadAtDayEndIfNotHome(t *testing.T) {
	cfg := testCfg()
	work, _ := model.Workplace(1)
	state := model.State{Activity: model.Work, Location: work, TimeOfDay: cfg.DayEnd, HasWorked: true}
	assert.Equal(t, statespace.Bad, statespace.Classify(homeAgent(true), state, cfg))
}

func TestClassifyGoodMidday(t *testing.T) {
	cfg := testCfg()
	work, _ := model.Workplace(1)
	state := model.State{Activity: model.Work, Location: work, TimeOfDay: 50}
	assert.Equal(t, statespace.Good, statespace.Classify(homeAgent(true), state, cfg))
}

func TestNextStateStartClampsDuration(t *testing.T) {
	cfg := statespace.Config{DayEnd: 100, DecisionStep: 5, MaxTrackedDuration: map[model.Activity]int{model.Shop: 0}}
	nonFixed, _ := model.NonFixedZone(2)
	state := model.State{Activity: model.Arrive, Location: nonFixed, TimeOfDay: 40}
	ns, err := statespace.NextState(homeAgent(false), state, model.StartDecision(model.Shop), 40, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, ns.Duration)
	assert.Equal(t, model.Shop, ns.Activity)
}

func TestNextStateMandatedWorkDuration(t *testing.T) {
	cfg := testCfg()
	agent := homeAgent(true)
	agent.MandatedWorkDuration = 3
	work, _ := model.Workplace(1)

	started, err := statespace.NextState(agent, model.State{Activity: model.Arrive, Location: work, TimeOfDay: 10}, model.StartDecision(model.Work), 10, cfg)
	require.NoError(t, err)
	assert.False(t, started.HasWorked)

	s1, err := statespace.NextState(agent, started, model.ContinueDecision(), 11, cfg)
	require.NoError(t, err)
	assert.False(t, s1.HasWorked)

	s2, err := statespace.NextState(agent, s1, model.ContinueDecision(), 12, cfg)
	require.NoError(t, err)
	assert.True(t, s2.HasWorked, "duration reaches mandated 3 timesteps")

	s3, err := statespace.NextState(agent, s2, model.ContinueDecision(), 13, cfg)
	require.NoError(t, err)
	assert.False(t, s3.HasWorked, "continuing past the mandate flips has_worked back off")
}

func TestNextStateTravelSetsVehicle(t *testing.T) {
	cfg := testCfg()
	agent := homeAgent(true)
	home, _ := model.Residence(0)
	dest, _ := model.NonFixedZone(2)

	leaving, err := statespace.NextState(agent, model.State{Activity: model.Depart, Location: home}, model.TravelDecision(model.Car, dest), 5, cfg)
	require.NoError(t, err)
	assert.Equal(t, model.VehicleCar, leaving.Vehicle)
	assert.Equal(t, model.Arrive, leaving.Activity)

	returning, err := statespace.NextState(agent, model.State{Activity: model.Depart, Location: dest, Vehicle: model.VehicleCar}, model.TravelDecision(model.Car, home), 6, cfg)
	require.NoError(t, err)
	assert.Equal(t, model.VehicleNone, returning.Vehicle)
}

// fakeWorld is a minimal worldview.World test double for exercising
// NextSingleState/NextIntegralTimeStates without a full FullWorld.
type fakeWorld struct{}

func (fakeWorld) TravelTime(model.Mode, model.Location, model.Location, float64) ([]*matrix.Mat, error) {
	return []*matrix.Mat{matrix.NewScalar(10)}, nil
}
func (fakeWorld) TravelWait(model.Mode, model.Location, model.Location, float64) ([]*matrix.Mat, error) {
	return []*matrix.Mat{matrix.NewScalar(1)}, nil
}
func (fakeWorld) TravelAccess(model.Mode, model.Location, model.Location, float64) ([]*matrix.Mat, error) {
	return []*matrix.Mat{matrix.NewScalar(2)}, nil
}
func (fakeWorld) TravelCost(model.Mode, model.Location, model.Location, float64) ([]*matrix.Mat, error) {
	return []*matrix.Mat{matrix.NewScalar(0)}, nil
}
func (fakeWorld) ParkingRate(model.Location) (*matrix.Mat, error) { return matrix.NewScalar(0), nil }
func (fakeWorld) LogPop(model.Location) (*matrix.Mat, error)      { return matrix.NewScalar(0), nil }
func (fakeWorld) LogEmp(model.Location) (*matrix.Mat, error)      { return matrix.NewScalar(0), nil }
func (fakeWorld) Corrections(model.Location, model.Location) (*matrix.Mat, error) {
	return matrix.NewScalar(0), nil
}
func (fakeWorld) TravelTimesteps(model.Mode, model.Location, model.Location) ([]int, error) {
	return []int{13}, nil
}
func (fakeWorld) IsSampled() bool    { return false }
func (fakeWorld) Zones() []int       { return []int{0, 1, 2} }
func (fakeWorld) NumZones() int      { return 3 }
func (fakeWorld) ZIndex(z int) int   { return z }

var _ worldview.World = fakeWorld{}

func TestNextSingleStateTravelSumsScalarLOS(t *testing.T) {
	home, _ := model.Residence(0)
	dest, _ := model.NonFixedZone(2)
	dt, err := statespace.NextSingleState(fakeWorld{}, model.State{Location: home, TimeOfDay: 0}, model.TravelDecision(model.Car, dest), testCfg())
	require.NoError(t, err)
	assert.Equal(t, 13.0, dt) // 10 + 1 + 2
}

func TestNextSingleStateNonTravelClipsToDecisionStep(t *testing.T) {
	cfg := statespace.Config{DayEnd: 12, DecisionStep: 5}
	dt, err := statespace.NextSingleState(fakeWorld{}, model.State{TimeOfDay: 10}, model.ContinueDecision(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 2.0, dt) // clipped to DayEnd - time
}

func TestNextIntegralTimeStatesTravelUsesWorldTimesteps(t *testing.T) {
	cfg := testCfg()
	home, _ := model.Residence(0)
	dest, _ := model.NonFixedZone(2)
	states, err := statespace.NextIntegralTimeStates(fakeWorld{}, homeAgent(true), model.State{Activity: model.Depart, Location: home, TimeOfDay: 5}, model.TravelDecision(model.Car, dest), cfg)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, 18.0, states[0].TimeOfDay)
}

func TestNextIntegralTimeStatesNonTravelBracketsFloorCeil(t *testing.T) {
	cfg := statespace.Config{DayEnd: 100, DecisionStep: 2.5, DefaultMaxTrackedDuration: 20}
	home, _ := model.Residence(0)
	states, err := statespace.NextIntegralTimeStates(fakeWorld{}, homeAgent(true), model.State{Activity: model.Home, Location: home, TimeOfDay: 10}, model.ContinueDecision(), cfg)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, 12.0, states[0].TimeOfDay)
	assert.Equal(t, 13.0, states[1].TimeOfDay)
}
