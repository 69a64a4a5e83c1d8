package dataio

import (
	"fmt"
	"path/filepath"
)

// Stage is one of the five persisted output categories a run writes under:
// input, sim, cs, est, logs.
type Stage string

const (
	StageInput Stage = "input"
	StageSim   Stage = "sim"
	StageCS    Stage = "cs"
	StageEst   Stage = "est"
	StageLogs  Stage = "logs"
)

// RunLayout builds the persisted directory layout
// `models/<MODELFOLDER>/{input,sim,cs,est,logs}/YY-MM-DD/<timestamped>.{csv,parquet,log}`.
// DateDir and Timestamp are supplied by the caller (cmd/scaper) rather than
// computed here, so every artifact written during one run shares exactly
// one instant instead of drifting across separate RunLayout calls.
type RunLayout struct {
	ModelFolder string
	DateDir     string // "YY-MM-DD"
	Timestamp   string // e.g. a uuid.New() run ID or a formatted instant
}

// Dir returns the directory a given stage's artifacts live under:
// models/<MODELFOLDER>/<stage>/<DateDir>/.
func (l RunLayout) Dir(stage Stage) string {
	return filepath.Join("models", l.ModelFolder, string(stage), l.DateDir)
}

// Path returns the full path for one artifact of the given stage and
// extension (without the leading dot), stamped with l.Timestamp.
func (l RunLayout) Path(stage Stage, name, ext string) string {
	filename := fmt.Sprintf("%s-%s.%s", name, l.Timestamp, ext)
	return filepath.Join(l.Dir(stage), filename)
}
