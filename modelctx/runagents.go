package modelctx

import (
	"runtime"
	"sync"

	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/pool"
)

// AgentTask is one unit of per-agent work: simulate a day, generate a
// choiceset, build an estimation observation. It receives the calling
// goroutine's own Worker (never shared) and must return an error rather
// than panic on agent-specific failure.
type AgentTask func(worker *pool.Worker, agent model.Agent) error

// RunAgents fans agents out across a fixed-size worker pool, exactly the
// chan-plus-sync.WaitGroup shape costfn.CostFunction.Evaluate uses for its
// per-observation reduction: worker goroutines pull agents off a
// shared queue. Each goroutine builds exactly one pool.Worker and reuses
// it for every agent it processes; task's error, if any, is recorded on
// mc.Logger as a failure rather than aborting the run.
func (mc *ModelContext) RunAgents(agents []model.Agent, task AgentTask) {
	workers := mc.Config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(agents) {
		workers = len(agents)
	}
	if workers <= 0 {
		return
	}

	jobs := make(chan model.Agent)
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			w := pool.NewWorker(mc.World.NumZones(), mc.dayLength())
			for agent := range jobs {
				if err := task(w, agent); err != nil {
					if mc.Logger != nil {
						mc.Logger.Failed(agent.ID, err)
					}
					continue
				}
				if mc.Logger != nil {
					mc.Logger.Completed(agent.ID)
				}
			}
		}()
	}

	for _, agent := range agents {
		jobs <- agent
	}
	close(jobs)
	wg.Wait()
}
