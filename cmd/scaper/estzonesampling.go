package main

import (
	"flag"
	"fmt"
	"math"

	"github.com/scaper-abm/scaper/bfgs"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/worldview"
)

// runEstZoneSampling implements `est zonesampling`: fits a two-parameter
// multinomial-logit
// destination-choice model, utility = wPop*LogPop(zone) + wEmp*LogEmp(zone),
// against every observed trip's DestZone, by the same bfgs.Optimize this
// package already drives for the main `est` fit.
func runEstZoneSampling(args []string) error {
	fs := flag.NewFlagSet("est zonesampling", flag.ExitOnError)
	cf := &commonFlags{}
	registerCommonFlags(fs, cf)
	if err := fs.Parse(args); err != nil {
		return err
	}

	world, err := cf.loadWorld()
	if err != nil {
		return err
	}
	cfg := cf.stateConfig()
	trips, err := cf.loadTrips(cfg)
	if err != nil {
		return err
	}
	if len(trips) == 0 {
		return fmt.Errorf("scaper: est zonesampling: no observed trips to fit against")
	}

	numZones := world.NumZones()
	logPop := make([]float64, numZones)
	logEmp := make([]float64, numZones)
	for z := 0; z < numZones; z++ {
		loc, err := model.NonFixedZone(z)
		if err != nil {
			return err
		}
		pop, err := world.LogPop(loc)
		if err != nil {
			return err
		}
		emp, err := world.LogEmp(loc)
		if err != nil {
			return err
		}
		logPop[z] = pop.At(0)
		logEmp[z] = emp.At(0)
	}

	dests := make([]int, 0, len(trips))
	for _, t := range trips {
		dests = append(dests, world.ZIndex(t.DestZone))
	}

	objective := zoneSamplingObjective(logPop, logEmp, dests)
	best, err := bfgs.Optimize(objective, []float64{0, 0}, nil, bfgs.Options{})
	if err != nil && best.X == nil {
		return err
	}

	fmt.Printf("est zonesampling: wPop=%.6f wEmp=%.6f (%d observed destinations)\n", best.X[0], best.X[1], len(dests))
	return nil
}

// zoneSamplingObjective returns the log-likelihood and gradient of
// destination choice under utility(zone) = x[0]*logPop[zone] +
// x[1]*logEmp[zone], softmax over all zones -- the same
// stability-by-max-subtraction shape statespace.ClassProbabilities uses.
func zoneSamplingObjective(logPop, logEmp []float64, dests []int) bfgs.Objective {
	numZones := len(logPop)
	return func(x []float64) (float64, []float64, error) {
		wPop, wEmp := x[0], x[1]
		util := make([]float64, numZones)
		maxU := math.Inf(-1)
		for z := 0; z < numZones; z++ {
			util[z] = wPop*logPop[z] + wEmp*logEmp[z]
			if util[z] > maxU {
				maxU = util[z]
			}
		}
		probs := make([]float64, numZones)
		var sum float64
		for z, u := range util {
			probs[z] = math.Exp(u - maxU)
			sum += probs[z]
		}
		for z := range probs {
			probs[z] /= sum
		}

		var ll float64
		grad := make([]float64, 2)
		for _, d := range dests {
			ll += math.Log(probs[d])
			for z := 0; z < numZones; z++ {
				indicator := 0.0
				if z == d {
					indicator = 1.0
				}
				grad[0] += (indicator - probs[z]) * logPop[z]
				grad[1] += (indicator - probs[z]) * logEmp[z]
			}
		}
		return ll, grad, nil
	}
}
