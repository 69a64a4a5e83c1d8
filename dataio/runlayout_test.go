package dataio_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scaper-abm/scaper/dataio"
)

func TestRunLayoutPathMatchesMandatedDirectoryStructure(t *testing.T) {
	l := dataio.RunLayout{ModelFolder: "baseline", DateDir: "26-08-06", Timestamp: "run-1"}

	got := l.Path(dataio.StageSim, "trips", "csv")
	want := filepath.Join("models", "baseline", "sim", "26-08-06", "trips-run-1.csv")
	assert.Equal(t, want, got)
}

func TestRunLayoutDirVariesByStage(t *testing.T) {
	l := dataio.RunLayout{ModelFolder: "baseline", DateDir: "26-08-06"}
	assert.NotEqual(t, l.Dir(dataio.StageSim), l.Dir(dataio.StageEst))
}
