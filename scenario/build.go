package scenario

import (
	"fmt"

	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/worldview"
)

// Option applies one deterministic scenario mutation: validate early,
// never panic, return a sentinel error on failure.
type Option func(*config) error

// World is the fully assembled scenario output: a ready-to-simulate world,
// its agent population, and the statespace.Config the world was sized for.
type World struct {
	World  worldview.World
	Agents []model.Agent
	Config statespace.Config
}

// Build creates a config, applies opts in order (WithZones must run before
// any With*Network option needs numZones), and assembles the final
// worldview.FullWorld. Any option error is wrapped with "scenario.Build:
// %w" and returned immediately, matching builder.BuildGraph's single
// wrap-at-the-boundary policy.
func Build(opts ...Option) (World, error) {
	cfg := newConfig()
	for i, opt := range opts {
		if opt == nil {
			return World{}, fmt.Errorf("scenario.Build: nil option at index %d", i)
		}
		if err := opt(cfg); err != nil {
			return World{}, fmt.Errorf("scenario.Build: %w", err)
		}
	}

	zdata, err := worldview.NewZoneData(cfg.numZones, cfg.pop, cfg.emp, cfg.parking)
	if err != nil {
		return World{}, fmt.Errorf("scenario.Build: %w", err)
	}
	net, err := worldview.NewNetwork(cfg.numZones, cfg.modes)
	if err != nil {
		return World{}, fmt.Errorf("scenario.Build: %w", err)
	}
	full, err := worldview.NewFullWorld(net, zdata, cfg.peak)
	if err != nil {
		return World{}, fmt.Errorf("scenario.Build: %w", err)
	}

	return World{World: full, Agents: cfg.agents, Config: cfg.stateCfg}, nil
}
