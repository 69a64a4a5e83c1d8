package pool

// Worker bundles the three per-goroutine pools a value-function/simulation
// task needs: Mat, EV row, and World scratch. modelctx creates exactly one
// Worker per thread-pool goroutine and never shares it across goroutines.
type Worker struct {
	Mats    *MatPool
	Rows    *RowPool
	Scratch *ScratchPool
}

// NewWorker builds a Worker sized for a world of numZones zones and a day
// of dayLength timesteps.
func NewWorker(numZones, dayLength int) *Worker {
	return &Worker{
		Mats:    NewMatPool(numZones),
		Rows:    NewRowPool(dayLength, numZones),
		Scratch: NewScratchPool(),
	}
}
