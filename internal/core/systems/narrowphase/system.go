package narrowphase

import (
	"context"
	"sync"
	"time"

	"github.com/zeusync/narrowphase/internal/core/systems"
)

// PairSource yields the candidate pairs for the next frame.
type PairSource func() []Pair

// ContactSystem runs the detector and the contact tracker once per frame.
type ContactSystem struct {
	detector *Detector
	tracker  *ContactTracker
	source   PairSource

	mu      sync.Mutex
	metrics systems.Metrics
	results []Result
	events  []ContactEvent
}

var _ systems.System = (*ContactSystem)(nil)

func NewContactSystem(detector *Detector, tracker *ContactTracker, source PairSource) *ContactSystem {
	return &ContactSystem{detector: detector, tracker: tracker, source: source}
}

func (s *ContactSystem) Name() string { return "narrowphase" }

// Update checks the current pairs and diffs them against the last frame.
// Contacts depend only on body placement, so deltaTime is not used.
func (s *ContactSystem) Update(ctx context.Context, _ float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	pairs := s.source()
	results, err := s.detector.DetectAll(ctx, pairs)
	if err != nil {
		s.metrics.Observe(start, 0, err)
		return err
	}
	events, err := s.tracker.Update(results)
	s.results, s.events = results, events
	s.metrics.Observe(start, len(pairs), err)
	return err
}

// Frame returns the results and contact events of the last Update.
func (s *ContactSystem) Frame() ([]Result, []ContactEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results, s.events
}

func (s *ContactSystem) GetMetrics() systems.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}
