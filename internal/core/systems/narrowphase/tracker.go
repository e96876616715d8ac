package narrowphase

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/zeusync/narrowphase/internal/core/events/bus"
	"github.com/zeusync/narrowphase/internal/core/observability/log"
	"github.com/zeusync/narrowphase/internal/core/systems/physics"
)

// ContactPhase is where a touching pair is in its lifetime.
type ContactPhase uint8

const (
	ContactBegin ContactPhase = iota + 1
	ContactPersist
	ContactEnd
)

const (
	EventContactBegin   = "contact.begin"
	EventContactPersist = "contact.persist"
	EventContactEnd     = "contact.end"
)

const trackerSource = "narrowphase.tracker"

func (p ContactPhase) String() string {
	switch p {
	case ContactBegin:
		return EventContactBegin
	case ContactPersist:
		return EventContactPersist
	case ContactEnd:
		return EventContactEnd
	default:
		return "contact.unknown"
	}
}

// ContactEvent reports a phase change for one pair. It implements bus.Event
// with itself as the payload.
type ContactEvent struct {
	Phase   ContactPhase
	Key     PairKey
	A, B    *Body
	Contact physics.ContactInfo
	At      time.Time
}

func (e ContactEvent) Type() string         { return e.Phase.String() }
func (e ContactEvent) Source() string       { return trackerSource }
func (e ContactEvent) Timestamp() time.Time { return e.At }
func (e ContactEvent) Data() any            { return e }

// PreSolve may veto a new or persisting contact. Returning false drops the
// contact for this frame; a pair that was active receives an end event.
type PreSolve func(a, b *Body, info physics.ContactInfo) bool

type TrackerOption func(*ContactTracker)

func WithBus(b bus.EventBus) TrackerOption {
	return func(t *ContactTracker) { t.bus = b }
}

func WithPreSolve(fn PreSolve) TrackerOption {
	return func(t *ContactTracker) { t.preSolve = fn }
}

func WithTrackerLogger(l log.Log) TrackerOption {
	return func(t *ContactTracker) { t.logger = l }
}

// ContactTracker turns per-frame detector results into begin, persist and
// end events by diffing against the previous frame.
type ContactTracker struct {
	mu       sync.Mutex
	active   map[PairKey]ContactEvent
	bus      bus.EventBus
	preSolve PreSolve
	logger   log.Log
	now      func() time.Time
}

func NewContactTracker(opts ...TrackerOption) *ContactTracker {
	t := &ContactTracker{
		active: make(map[PairKey]ContactEvent),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = log.NewNop()
	}
	return t
}

// Update consumes one frame of results. Begin and persist events follow the
// result order; end events follow, sorted by pair key. Duplicate pairs in a
// frame are counted once. When a bus is set the events are published as a
// batch and any handler error is returned together with the events.
func (t *ContactTracker) Update(results []Result) ([]ContactEvent, error) {
	t.mu.Lock()
	now := t.now()
	next := make(map[PairKey]ContactEvent, len(results))
	events := make([]ContactEvent, 0, len(results))

	for _, r := range results {
		if r.Skipped || !r.Contact.HasCollision || r.Pair.A == nil || r.Pair.B == nil {
			continue
		}
		key := r.Pair.Key()
		if _, seen := next[key]; seen {
			continue
		}
		if t.preSolve != nil && !t.preSolve(r.Pair.A, r.Pair.B, r.Contact) {
			continue
		}

		phase := ContactBegin
		if _, ok := t.active[key]; ok {
			phase = ContactPersist
		}
		ev := ContactEvent{Phase: phase, Key: key, A: r.Pair.A, B: r.Pair.B, Contact: r.Contact, At: now}
		next[key] = ev
		events = append(events, ev)
	}

	ended := make([]ContactEvent, 0)
	for key, prev := range t.active {
		if _, ok := next[key]; ok {
			continue
		}
		ended = append(ended, ContactEvent{Phase: ContactEnd, Key: key, A: prev.A, B: prev.B, At: now})
	}
	sort.Slice(ended, func(i, j int) bool { return ended[i].Key.Less(ended[j].Key) })
	events = append(events, ended...)

	t.active = next
	b := t.bus
	t.mu.Unlock()

	if b == nil || len(events) == 0 {
		return events, nil
	}
	batch := make([]bus.Event, len(events))
	for i := range events {
		batch[i] = events[i]
	}
	if err := b.PublishBatch(batch...); err != nil {
		t.logger.Warn("Contact event handler failed", log.Int("events", len(events)), log.Error(err))
		return events, errors.Wrap(err, "publish contact events")
	}
	return events, nil
}

// Active returns the pairs touching after the last Update, sorted by key.
func (t *ContactTracker) Active() []PairKey {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := make([]PairKey, 0, len(t.active))
	for k := range t.active {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Reset forgets all active contacts without emitting end events.
func (t *ContactTracker) Reset() {
	t.mu.Lock()
	clear(t.active)
	t.mu.Unlock()
}
