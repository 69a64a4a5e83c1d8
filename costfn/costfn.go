package costfn

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
)

// CostFunction is the latent-class MNL log-likelihood over a fixed set of
// pre-processed Observations. One CostFunction is built once
// per estimation run and evaluated at many candidate parameter vectors
// during bfgs.Optimize's outer loop and line search.
type CostFunction struct {
	Observations []Observation
	NumParams    int

	// Workers bounds how many goroutines evaluate observations
	// concurrently; <= 0 means GOMAXPROCS, mirroring modelctx's -x N
	// worker-pool sizing convention.
	Workers int
}

// Result is one evaluation of the cost function at a point: the summed
// log-likelihood, its gradient, and the sum-of-score outer-product matrix
// used for sandwich standard errors.
type Result struct {
	Value    float64
	Gradient []float64
	Score    [][]float64 // NumParams x NumParams
}

// Validate checks that every column of every estimated-parameter row
// across every Observation carries at least one nonzero entry somewhere
// in the data, or the named parameter can never be identified.
func (cf *CostFunction) Validate(paramNames []string) error {
	seen := make([]bool, cf.NumParams)
	mark := func(rows [][]float64) {
		for _, row := range rows {
			for j, v := range row {
				if j < len(seen) && v != 0 {
					seen[j] = true
				}
			}
		}
	}
	for _, o := range cf.Observations {
		mark(o.ClassEstimatedRow)
		for _, cls := range o.ChoiceVarMatrix {
			mark(cls)
		}
	}
	var missing []string
	for j, ok := range seen {
		if ok {
			continue
		}
		name := fmt.Sprintf("param_%d", j)
		if j < len(paramNames) {
			name = paramNames[j]
		}
		missing = append(missing, name)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEstimatedParameter, strings.Join(missing, ", "))
	}
	return nil
}

// Evaluate computes (value, gradient, score matrix) at theta by a parallel
// reduction over Observations, with each observation's weight applied
// multiplicatively. The fan-out is a plain chan-of-indices plus
// sync.WaitGroup pool, the same shape modelctx.RunAgents uses for
// per-agent work.
func (cf *CostFunction) Evaluate(theta []float64) (Result, error) {
	if len(theta) != cf.NumParams {
		return Result{}, fmt.Errorf("costfn.Evaluate: theta has %d entries, want %d", len(theta), cf.NumParams)
	}
	if len(cf.Observations) == 0 {
		return Result{Value: 0, Gradient: make([]float64, cf.NumParams), Score: zeroMatrix(cf.NumParams)}, nil
	}

	workers := cf.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(cf.Observations) {
		workers = len(cf.Observations)
	}
	if workers < 1 {
		workers = 1
	}

	type partial struct {
		value float64
		grad  []float64
		evals []obsEval
		err   error
	}

	jobs := make(chan int)
	results := make(chan partial, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := partial{grad: make([]float64, cf.NumParams)}
			for idx := range jobs {
				e, err := evaluateObservation(cf.Observations[idx], theta)
				if err != nil {
					if p.err == nil {
						p.err = err
					}
					continue
				}
				p.value += e.weightedLL
				for j, v := range e.weightedGrad {
					p.grad[j] += v
				}
				p.evals = append(p.evals, e)
			}
			results <- p
		}()
	}

	go func() {
		for i := range cf.Observations {
			jobs <- i
		}
		close(jobs)
	}()

	wg.Wait()
	close(results)

	value := 0.0
	grad := make([]float64, cf.NumParams)
	evals := make([]obsEval, 0, len(cf.Observations))
	var firstErr error
	for p := range results {
		if p.err != nil && firstErr == nil {
			firstErr = p.err
		}
		value += p.value
		for j, v := range p.grad {
			grad[j] += v
		}
		evals = append(evals, p.evals...)
	}
	if firstErr != nil {
		return Result{}, firstErr
	}

	return Result{Value: value, Gradient: grad, Score: scoreMatrix(evals, grad, cf.NumParams)}, nil
}

// scoreMatrix computes Sum_i weight_i . (g_i - gbar)(g_i - gbar)^T, where
// gbar is the weighted mean of the per-observation gradients g_i -- the
// sandwich-estimator score matrix used for standard errors.
func scoreMatrix(evals []obsEval, weightedGrad []float64, n int) [][]float64 {
	var totalWeight float64
	for _, e := range evals {
		totalWeight += e.weight
	}
	mean := make([]float64, n)
	if totalWeight > 0 {
		for j := 0; j < n; j++ {
			mean[j] = weightedGrad[j] / totalWeight
		}
	}
	score := zeroMatrix(n)
	diff := make([]float64, n)
	for _, e := range evals {
		for j := 0; j < n; j++ {
			diff[j] = e.grad[j] - mean[j]
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				score[i][j] += e.weight * diff[i] * diff[j]
			}
		}
	}
	return score
}

func zeroMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}
