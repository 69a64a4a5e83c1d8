package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/scaper-abm/scaper/dataio"
	"github.com/scaper-abm/scaper/evcache"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/pool"
	"github.com/scaper-abm/scaper/simulate"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/valuefn"
	"github.com/scaper-abm/scaper/worldview"
)

// sweepRange is one `-tt min delta max` / `-wd min delta max` flag triple.
type sweepRange struct {
	min, delta, max float64
}

func (r sweepRange) values() []float64 {
	if r.delta <= 0 {
		return []float64{r.min}
	}
	var out []float64
	for v := r.min; v <= r.max+1e-9; v += r.delta {
		out = append(out, v)
	}
	return out
}

// runDeriv implements the `deriv` subcommand: sweep additive
// travel-time and workday-length perturbations, reporting EV(start_state)
// averaged over agents at each grid point, plus (with --numDeriv) its
// central-difference derivative along the travel-time axis.
func runDeriv(args []string) error {
	fs := flag.NewFlagSet("deriv", flag.ExitOnError)
	cf := &commonFlags{}
	registerCommonFlags(fs, cf)
	var tt, wd sweepRange
	fs.Float64Var(&tt.min, "ttMin", 0, "travel-time perturbation sweep minimum (minutes, additive)")
	fs.Float64Var(&tt.delta, "ttDelta", 0, "travel-time perturbation sweep step; 0 means a single point at ttMin")
	fs.Float64Var(&tt.max, "ttMax", 0, "travel-time perturbation sweep maximum")
	fs.Float64Var(&wd.min, "wdMin", 0, "workday-length perturbation sweep minimum (timesteps, additive to DayEnd)")
	fs.Float64Var(&wd.delta, "wdDelta", 0, "workday-length perturbation sweep step; 0 means a single point at wdMin")
	fs.Float64Var(&wd.max, "wdMax", 0, "workday-length perturbation sweep maximum")
	numDeriv := fs.Bool("numDeriv", false, "also report the central-difference derivative along the travel-time axis")
	runSimAtEachPoint := fs.Bool("sim", false, "also count feasible simulated days at each grid point")
	if err := fs.Parse(args); err != nil {
		return err
	}

	zonesF, err := os.Open(cf.zonesFile)
	if err != nil {
		return fmt.Errorf("scaper: opening zones file: %w", err)
	}
	defer zonesF.Close()
	networkF, err := os.Open(cf.networkFile)
	if err != nil {
		return fmt.Errorf("scaper: opening network file: %w", err)
	}
	defer networkF.Close()
	loader := dataio.CSVLoader{Zones: zonesF, Network: networkF}
	zdata, err := loader.LoadZoneData(cf.numZones)
	if err != nil {
		return err
	}
	baseNet, err := loader.LoadNetwork(cf.numZones)
	if err != nil {
		return err
	}

	agents, err := cf.loadAgents()
	if err != nil {
		return err
	}
	if cf.maxAgents > 0 && cf.maxAgents < len(agents) {
		agents = agents[:cf.maxAgents]
	}

	spec := cf.demoModel()
	baseCfg := cf.stateConfig()

	layout := dataio.RunLayout{ModelFolder: cf.modelDir, DateDir: time.Now().Format("06-01-02"), Timestamp: strconv.FormatInt(time.Now().UnixNano(), 36)}
	outF, err := createInLayout(layout, dataio.StageEst, "derivatives")
	if err != nil {
		return err
	}
	defer outF.Close()
	w := csv.NewWriter(outF)
	defer w.Flush()
	if err := w.Write([]string{"tt_delta", "wd_delta", "mean_ev", "d_ev_d_tt", "feasible_days"}); err != nil {
		return err
	}

	ttValues := tt.values()
	for _, wdDelta := range wd.values() {
		cfg := baseCfg
		cfg.DayEnd = baseCfg.DayEnd + wdDelta

		evAtTT := make([]float64, len(ttValues))
		feasibleAtTT := make([]int, len(ttValues))
		for i, ttDelta := range ttValues {
			net := perturbTravelTime(baseNet, ttDelta)
			world, err := worldview.NewFullWorld(net, zdata, worldview.PeakSchedule{})
			if err != nil {
				return err
			}
			meanEV, feasible, err := evAndFeasibility(world, agents, spec, cfg, *runSimAtEachPoint)
			if err != nil {
				return err
			}
			evAtTT[i] = meanEV
			feasibleAtTT[i] = feasible
		}

		for i, ttDelta := range ttValues {
			deriv := ""
			if *numDeriv {
				deriv = strconv.FormatFloat(centralDifference(evAtTT, ttValues, i), 'f', -1, 64)
			}
			row := []string{
				strconv.FormatFloat(ttDelta, 'f', -1, 64),
				strconv.FormatFloat(wdDelta, 'f', -1, 64),
				strconv.FormatFloat(evAtTT[i], 'f', -1, 64),
				deriv,
				strconv.Itoa(feasibleAtTT[i]),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// perturbTravelTime returns a new Network whose every mode's Time and
// PeakTime arrays are shifted by delta minutes; the `-tt` sweep is
// additive, matching `-wd`'s additive DayEnd shift.
func perturbTravelTime(net *worldview.Network, delta float64) *worldview.Network {
	modes := make(map[model.Mode]*worldview.ModeLOS, len(net.Modes))
	for m, los := range net.Modes {
		modes[m] = &worldview.ModeLOS{
			Time:       shiftBy(los.Time, delta),
			PeakTime:   shiftBy(los.PeakTime, delta),
			Wait:       los.Wait,
			PeakWait:   los.PeakWait,
			Access:     los.Access,
			PeakAccess: los.PeakAccess,
			Cost:       los.Cost,
			PeakCost:   los.PeakCost,
		}
	}
	out, _ := worldview.NewNetwork(net.NumZones, modes)
	return out
}

func shiftBy(arr []float64, delta float64) []float64 {
	if arr == nil {
		return nil
	}
	out := make([]float64, len(arr))
	for i, v := range arr {
		shifted := v + delta
		if shifted < 0 {
			shifted = 0
		}
		out[i] = shifted
	}
	return out
}

// evAndFeasibility averages EV(start_state) over agents under world/cfg,
// and, when withSim is set, also counts how many agents reach a feasible
// End state when simulated once each.
func evAndFeasibility(world worldview.World, agents []model.Agent, spec interface {
	statespace.UtilitySpec
	statespace.ClassSpec
}, cfg statespace.Config, withSim bool) (float64, int, error) {
	if len(agents) == 0 {
		return 0, 0, nil
	}
	dayLength := int(cfg.DayEnd) + 1
	worker := pool.NewWorker(world.NumZones(), dayLength)

	var sum float64
	feasible := 0
	for _, agent := range agents {
		start, err := agent.StartState(cfg.DayStart)
		if err != nil {
			return 0, 0, err
		}
		cache := evcache.New(dayLength, world.NumZones(), worker.Rows, math.Inf(-1))
		v, err := valuefn.Compute(world, agent, 0, cfg, spec, cache, worker.Mats, start)
		if err != nil {
			cache.Dispose()
			return 0, 0, err
		}
		sum += v.At(0)
		worker.Mats.Release(v)

		if withSim {
			rng := freshRand()
			if _, _, err := simulate.Run(world, agent, spec, cfg, spec, []*evcache.Cache{cache}, worker.Mats, rng); err == nil {
				feasible++
			}
		}
		cache.Dispose()
	}
	return sum / float64(len(agents)), feasible, nil
}

// centralDifference estimates d(values)/d(axis) at index i by central
// difference against its neighbors, falling back to a one-sided
// difference at the sweep's endpoints.
func centralDifference(values, axis []float64, i int) float64 {
	switch {
	case len(values) < 2:
		return 0
	case i == 0:
		return (values[1] - values[0]) / (axis[1] - axis[0])
	case i == len(values)-1:
		return (values[i] - values[i-1]) / (axis[i] - axis[i-1])
	default:
		return (values[i+1] - values[i-1]) / (axis[i+1] - axis[i-1])
	}
}
