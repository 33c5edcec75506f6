package profiler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestRecord validates per-stage aggregation and first-seen ordering.
//
// Arguments:
//   - t: Testing context for assertions and error reporting.
func TestRecord(t *testing.T) {
	p := New()
	p.Record(StageInference, 30*time.Millisecond)
	p.Record(StagePreprocess, 5*time.Millisecond)
	p.Record(StageInference, 10*time.Millisecond)

	stats := p.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, StageStats{
		Name:  StageInference,
		Count: 2,
		Total: 40 * time.Millisecond,
		Min:   10 * time.Millisecond,
		Max:   30 * time.Millisecond,
	}, stats[0])
	assert.Equal(t, 20*time.Millisecond, stats[0].Mean())
	assert.Equal(t, StagePreprocess, stats[1].Name)

	slowest, ok := p.Slowest()
	require.True(t, ok)
	assert.Equal(t, StageInference, slowest.Name)
}

// TestEmpty validates the zero state.
func TestEmpty(t *testing.T) {
	p := New()
	assert.Empty(t, p.Stats())
	_, ok := p.Slowest()
	assert.False(t, ok)
	assert.Zero(t, StageStats{}.Mean())
}

// TestStart validates timing through the returned closure.
func TestStart(t *testing.T) {
	p := New()
	done := p.Start(StagePostprocess)
	time.Sleep(time.Millisecond)
	done()

	stats := p.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1), stats[0].Count)
	assert.GreaterOrEqual(t, stats[0].Total, time.Millisecond)
}

// TestConcurrentRecord validates that concurrent writers lose no samples.
func TestConcurrentRecord(t *testing.T) {
	p := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.Record(StageInference, time.Microsecond)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), p.Stats()[0].Count)
}

// TestLog validates one log entry per stage.
func TestLog(t *testing.T) {
	p := New()
	p.Record(StagePreprocess, time.Millisecond)
	p.Record(StageInference, 2*time.Millisecond)

	core, logs := observer.New(zapcore.InfoLevel)
	p.Log(zap.New(core))

	entries := logs.FilterMessage("stage timings").All()
	require.Len(t, entries, 2)
	assert.Equal(t, StagePreprocess, entries[0].ContextMap()["stage"])
	assert.Equal(t, StageInference, entries[1].ContextMap()["stage"])
}
