package progresslog_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scaper-abm/scaper/progresslog"
)

func TestCountsAccumulateAcrossConcurrentCallers(t *testing.T) {
	var buf bytes.Buffer
	logger := progresslog.New(&buf, false)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%5 == 0 {
				logger.Failed("agent", assertErr)
			} else if i%7 == 0 {
				logger.Infeasible("agent", "no valid trip mapping")
			} else {
				logger.Completed("agent")
			}
		}(i)
	}
	wg.Wait()

	processed, failed, infeasible := logger.Counts()
	assert.Equal(t, 20, processed)
	assert.Equal(t, 4, failed)
	assert.Equal(t, 2, infeasible)
	assert.Greater(t, buf.Len(), 0)
}

func TestInfoWritesToTheUnderlyingWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := progresslog.New(&buf, false)
	logger.Info("run %s started", "abc")
	assert.True(t, strings.Contains(buf.String(), "run abc started"))
}

var assertErr = errFixture{}

type errFixture struct{}

func (errFixture) Error() string { return "boom" }
