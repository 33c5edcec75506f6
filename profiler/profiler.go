// Package profiler - Aggregate timing statistics for named pipeline stages.
package profiler

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Stage names recorded by the detection pipeline.
const (
	StagePreprocess  = "preprocess"
	StageInference   = "inference"
	StagePostprocess = "postprocess"
)

// StageStats summarizes every duration recorded for one stage.
type StageStats struct {
	Name  string        `json:"name" yaml:"name"`
	Count int64         `json:"count" yaml:"count"`
	Total time.Duration `json:"total" yaml:"total"`
	Min   time.Duration `json:"min" yaml:"min"`
	Max   time.Duration `json:"max" yaml:"max"`
}

// Mean returns the average duration, or zero when nothing was recorded.
func (s StageStats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Profiler tracks stage durations. It is safe for concurrent use.
type Profiler struct {
	mu     sync.Mutex
	stages map[string]*StageStats
	order  []string
}

// New creates an empty profiler.
func New() *Profiler {
	return &Profiler{stages: make(map[string]*StageStats)}
}

// Start begins timing a stage.
//
// Arguments:
//   - name: The stage name.
//
// Returns:
//   - func(): Records the elapsed time when called.
func (p *Profiler) Start(name string) func() {
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Record adds one duration to a stage. Stages are reported in the order they
// were first recorded.
//
// Arguments:
//   - name: The stage name.
//   - d: The measured duration.
func (p *Profiler) Record(name string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.stages[name]
	if !ok {
		s = &StageStats{Name: name, Min: d, Max: d}
		p.stages[name] = s
		p.order = append(p.order, name)
	}
	s.Count++
	s.Total += d
	if d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
}

// Stats returns a snapshot of every stage.
func (p *Profiler) Stats() []StageStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]StageStats, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, *p.stages[name])
	}
	return out
}

// Slowest returns the stage with the largest total time.
//
// Returns:
//   - StageStats: The slowest stage.
//   - bool: False when nothing was recorded.
func (p *Profiler) Slowest() (StageStats, bool) {
	stats := p.Stats()
	if len(stats) == 0 {
		return StageStats{}, false
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Total > stats[j].Total })
	return stats[0], true
}

// Log writes one entry per stage.
//
// Arguments:
//   - log: The destination logger.
func (p *Profiler) Log(log *zap.Logger) {
	for _, s := range p.Stats() {
		log.Info("stage timings",
			zap.String("stage", s.Name),
			zap.Int64("count", s.Count),
			zap.Duration("mean", s.Mean()),
			zap.Duration("min", s.Min),
			zap.Duration("max", s.Max),
			zap.Duration("total", s.Total),
		)
	}
}
