package inference

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// StageStats holds the timing statistics accumulated for one pipeline
// stage.
type StageStats struct {
	Count int64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Avg returns the mean duration, or zero when nothing was recorded.
func (s StageStats) Avg() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Stats accumulates per-stage latencies across Detect calls. All methods
// are safe for concurrent use.
type Stats struct {
	mu     sync.Mutex
	stages map[string]*StageStats
}

// newStats returns an empty tracker.
func newStats() *Stats {
	return &Stats{stages: make(map[string]*StageStats)}
}

// record folds one observation for the named stage into the stats.
func (s *Stats) record(stage string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.stages[stage]
	if !ok {
		t = &StageStats{Min: d, Max: d}
		s.stages[stage] = t
	}
	t.Count++
	t.Total += d
	if d < t.Min {
		t.Min = d
	}
	if d > t.Max {
		t.Max = d
	}
}

// Stage returns a copy of the statistics for one stage. The second return
// is false when the stage has never been recorded.
func (s *Stats) Stage(name string) (StageStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.stages[name]
	if !ok {
		return StageStats{}, false
	}
	return *t, true
}

// String formats all stages as one line each, sorted by stage name.
func (s *Stats) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.stages))
	for name := range s.stages {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		t := s.stages[name]
		fmt.Fprintf(&b, "%s: n=%d avg=%v min=%v max=%v\n",
			name, t.Count, t.Avg(), t.Min, t.Max)
	}
	return b.String()
}
