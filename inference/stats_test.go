package inference

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsAccumulates(t *testing.T) {
	s := newStats()

	s.record("inference", 10*time.Millisecond)
	s.record("inference", 30*time.Millisecond)
	s.record("inference", 20*time.Millisecond)

	stage, ok := s.Stage("inference")
	require.True(t, ok)
	assert.Equal(t, int64(3), stage.Count)
	assert.Equal(t, 60*time.Millisecond, stage.Total)
	assert.Equal(t, 10*time.Millisecond, stage.Min)
	assert.Equal(t, 30*time.Millisecond, stage.Max)
	assert.Equal(t, 20*time.Millisecond, stage.Avg())
}

func TestStatsUnknownStage(t *testing.T) {
	s := newStats()

	_, ok := s.Stage("preprocess")

	assert.False(t, ok)
}

func TestStatsEmptyAvg(t *testing.T) {
	assert.Equal(t, time.Duration(0), StageStats{}.Avg())
}

func TestStatsStringSortedByStage(t *testing.T) {
	s := newStats()
	s.record("preprocess", time.Millisecond)
	s.record("inference", time.Millisecond)

	out := s.String()

	assert.Less(t, strings.Index(out, "inference"), strings.Index(out, "preprocess"))
}

func TestStatsConcurrentRecord(t *testing.T) {
	s := newStats()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.record("inference", time.Millisecond)
			}
		}()
	}
	wg.Wait()

	stage, ok := s.Stage("inference")
	require.True(t, ok)
	assert.Equal(t, int64(800), stage.Count)
}
