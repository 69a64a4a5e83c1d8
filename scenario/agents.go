package scenario

import (
	"strconv"

	"github.com/scaper-abm/scaper/model"
)

// WithAgents appends explicit agents to the scenario's population.
func WithAgents(agents ...model.Agent) Option {
	return func(c *config) error {
		c.agents = append(c.agents, agents...)
		return nil
	}
}

// WithHomogeneousAgents appends n copies of template, each carrying a
// distinct ID ("agent-0", "agent-1", ...) so downstream Choiceset/
// Observation grouping never collides.
func WithHomogeneousAgents(n int, template model.Agent) Option {
	return func(c *config) error {
		for i := 0; i < n; i++ {
			a := template
			a.ID = "agent-" + strconv.Itoa(i)
			if a.SampleID == "" {
				a.SampleID = a.ID
			}
			if a.Weight == 0 {
				a.Weight = 1
			}
			c.agents = append(c.agents, a)
		}
		return nil
	}
}
