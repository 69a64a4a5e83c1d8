package modelctx

import (
	"sort"
	"sync"

	"github.com/scaper-abm/scaper/progresslog"
)

// ParameterSet is the mutex-guarded named-parameter table used in place of
// a global parameter map: every named coefficient a
// UtilitySpec/EstimableModel reads or an `est` run estimates lives here,
// looked up by name from many worker goroutines at once.
//
// Get is deliberately permissive: an unset name logs once and returns 0
// rather than panicking, applying the same "record and
// keep going" failure policy to parameter lookup that progresslog.Logger
// applies to per-agent errors.
type ParameterSet struct {
	mu sync.Mutex

	values    map[string]float64
	estimated map[string]bool
	warned    map[string]bool
	nClasses  int

	logger *progresslog.Logger
}

// NewParameterSet builds an empty ParameterSet. logger may be nil, in which
// case missing-name warnings are silently dropped.
func NewParameterSet(logger *progresslog.Logger) *ParameterSet {
	return &ParameterSet{
		values:    make(map[string]float64),
		estimated: make(map[string]bool),
		warned:    make(map[string]bool),
		nClasses:  1,
		logger:    logger,
	}
}

// Set assigns name's value and whether it is subject to estimation (spec
// §4.9's "listed as estimate"). The special name "nClasses" instead sets
// the latent-class count and is never itself estimated.
func (p *ParameterSet) Set(name string, value float64, estimate bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if name == "nClasses" {
		if value >= 1 {
			p.nClasses = int(value)
		}
		return
	}

	p.values[name] = value
	p.estimated[name] = estimate
}

// Get returns name's current value, defaulting to 0 and logging once per
// distinct unknown name if it was never Set.
func (p *ParameterSet) Get(name string) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v, ok := p.values[name]; ok {
		return v
	}
	if !p.warned[name] {
		p.warned[name] = true
		if p.logger != nil {
			p.logger.Info("parameter %q requested but never set, defaulting to 0", name)
		}
	}
	return 0
}

// IsEstimated reports whether name was Set with estimate=true.
func (p *ParameterSet) IsEstimated(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.estimated[name]
}

// EstimatedNames returns every name marked estimable, sorted for
// deterministic ParameterNames/BuildObservation column ordering.
func (p *ParameterSet) EstimatedNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, 0, len(p.estimated))
	for name, est := range p.estimated {
		if est {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// NumClasses returns the latent-class count, defaulting to 1 (the
// single-class fallback) when "nClasses" was never Set.
func (p *ParameterSet) NumClasses() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nClasses
}
