package pipeline

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	at       time.Time
	duration time.Duration
	failed   bool
}

// StatsSnapshot aggregates the documents processed inside the window.
// Latency figures cover successful documents only.
type StatsSnapshot struct {
	Documents int     `json:"documents"`
	Failed    int     `json:"failed"`
	MinMs     int64   `json:"min_ms"`
	MaxMs     int64   `json:"max_ms"`
	AvgMs     float64 `json:"avg_ms"`
	P50Ms     float64 `json:"p50_ms"`
	P95Ms     float64 `json:"p95_ms"`
	P99Ms     float64 `json:"p99_ms"`
}

// LatencyStats tracks recent per-document processing times within a rolling
// window.
type LatencyStats struct {
	mu      sync.Mutex
	samples []sample
	window  time.Duration
	now     func() time.Time
}

func NewLatencyStats(window time.Duration) *LatencyStats {
	if window <= 0 {
		window = time.Hour
	}
	return &LatencyStats{
		samples: make([]sample, 0, 256),
		window:  window,
		now:     time.Now,
	}
}

// Record adds one processed document.
func (s *LatencyStats) Record(d time.Duration, failed bool) {
	if d < 0 {
		d = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{at: now, duration: d, failed: failed})
}

func (s *LatencyStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())

	snap := StatsSnapshot{Documents: len(s.samples)}
	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		if sm.failed {
			snap.Failed++
			continue
		}
		ms := sm.duration.Milliseconds()
		values = append(values, ms)
		sum += ms
	}
	if len(values) == 0 {
		return snap
	}
	slices.Sort(values)

	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	return snap
}

func (s *LatencyStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	kept := s.samples[:0]
	for _, sm := range s.samples {
		if !sm.at.Before(cutoff) {
			kept = append(kept, sm)
		}
	}
	s.samples = kept
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	lo := float64(sorted[lower])
	hi := float64(sorted[lower+1])
	return lo + (hi-lo)*weight
}
