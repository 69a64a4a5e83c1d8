package choiceset

import "github.com/scaper-abm/scaper/model"

// RequiredZones computes the zones a sampled World must always include:
// the agent's home zone, work zone (if any), and every observed trip's
// origin and destination. Order is stable: home first, then work, then
// trips in encounter order, each zone appearing once.
func RequiredZones(agent model.Agent, trips []model.Trip) []int {
	seen := make(map[int]bool, len(trips)*2+2)
	out := make([]int, 0, len(trips)*2+2)
	add := func(z int) {
		if !seen[z] {
			seen[z] = true
			out = append(out, z)
		}
	}

	add(agent.HomeZone)
	if agent.HasWork {
		add(agent.WorkZone)
	}
	for _, t := range trips {
		add(t.OriginZone)
		add(t.DestZone)
	}
	return out
}
