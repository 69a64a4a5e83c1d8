package modelctx

import (
	"github.com/google/uuid"

	"github.com/scaper-abm/scaper/progresslog"
	"github.com/scaper-abm/scaper/worldview"
)

// ModelContext is the single explicit object cmd/scaper
// builds once per invocation and threads into every worker, in place of
// global mutable configuration and a global parameter table.
type ModelContext struct {
	Config     Config
	Parameters *ParameterSet
	World      worldview.World
	Logger     *progresslog.Logger

	// RunID stamps every output path dataio writes for this invocation
	//, generated once at New.
	RunID string
}

// New builds a ModelContext for one run: cfg is normalized with defaults,
// RunID is freshly generated, and logger may be nil (silently discarded
// warnings) exactly as ParameterSet allows.
func New(cfg Config, world worldview.World, logger *progresslog.Logger) *ModelContext {
	return &ModelContext{
		Config:     cfg.withDefaults(),
		Parameters: NewParameterSet(logger),
		World:      world,
		Logger:     logger,
		RunID:      uuid.New().String(),
	}
}

// dayLength is the number of timesteps pool.NewWorker must size its Row
// pool for, matching choiceset.Generate's own DayEnd+1 convention.
func (mc *ModelContext) dayLength() int {
	return int(mc.Config.DayEnd) + 1
}
