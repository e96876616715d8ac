package narrowphase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/narrowphase/internal/core/events/bus"
	"github.com/zeusync/narrowphase/internal/core/systems/physics"
)

func touching(a, b *Body) Result {
	return Result{Pair: Pair{A: a, B: b}, Contact: physics.ContactInfo{HasCollision: true, Normal: physics.Vec(1, 0), Depth: 0.1}}
}

func phases(events []ContactEvent) []ContactPhase {
	out := make([]ContactPhase, len(events))
	for i, e := range events {
		out[i] = e.Phase
	}
	return out
}

func TestContactTrackerLifecycle(t *testing.T) {
	tr := NewContactTracker()
	at := time.Unix(100, 0)
	tr.now = func() time.Time { return at }

	a := circleBody(t, "a", 0, 0, 1)
	b := circleBody(t, "b", 0, 0, 1)
	c := circleBody(t, "c", 0, 0, 1)

	events, err := tr.Update([]Result{touching(a, b), touching(a, c)})
	require.NoError(t, err)
	assert.Equal(t, []ContactPhase{ContactBegin, ContactBegin}, phases(events))
	assert.Equal(t, at, events[0].Timestamp())
	assert.Len(t, tr.Active(), 2)

	events, err = tr.Update([]Result{touching(b, a), {Pair: Pair{A: a, B: c}}})
	require.NoError(t, err)
	require.Equal(t, []ContactPhase{ContactPersist, ContactEnd}, phases(events))
	assert.Equal(t, MakePairKey(a.ID, c.ID), events[1].Key)
	assert.Same(t, a, events[1].A)
	assert.Equal(t, []PairKey{MakePairKey(a.ID, b.ID)}, tr.Active())

	events, err = tr.Update(nil)
	require.NoError(t, err)
	assert.Equal(t, []ContactPhase{ContactEnd}, phases(events))
	assert.Empty(t, tr.Active())
}

func TestContactTrackerIgnoresDuplicatesAndSkips(t *testing.T) {
	tr := NewContactTracker()
	a := circleBody(t, "a", 0, 0, 1)
	b := circleBody(t, "b", 0, 0, 1)

	skipped := touching(a, b)
	skipped.Skipped = true
	events, err := tr.Update([]Result{touching(a, b), touching(b, a), skipped})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestContactTrackerEndOrder(t *testing.T) {
	tr := NewContactTracker()
	a := circleBody(t, "a", 0, 0, 1)
	var results []Result
	for i := 0; i < 8; i++ {
		results = append(results, touching(a, circleBody(t, "", 0, 0, 1)))
	}
	_, err := tr.Update(results)
	require.NoError(t, err)

	events, err := tr.Update(nil)
	require.NoError(t, err)
	require.Len(t, events, 8)
	for i := 1; i < len(events); i++ {
		assert.True(t, events[i-1].Key.Less(events[i].Key), "end events must be sorted by key")
	}
}

func TestContactTrackerPreSolve(t *testing.T) {
	a := circleBody(t, "a", 0, 0, 1)
	b := circleBody(t, "b", 0, 0, 1)
	veto := false
	tr := NewContactTracker(WithPreSolve(func(x, y *Body, info physics.ContactInfo) bool {
		return !veto
	}))

	events, err := tr.Update([]Result{touching(a, b)})
	require.NoError(t, err)
	assert.Equal(t, []ContactPhase{ContactBegin}, phases(events))

	veto = true
	events, err = tr.Update([]Result{touching(a, b)})
	require.NoError(t, err)
	assert.Equal(t, []ContactPhase{ContactEnd}, phases(events))
}

func TestContactTrackerPublishes(t *testing.T) {
	eb := bus.New()
	var got []string
	_, err := eb.SubscribeAll(func(e bus.Event) error {
		got = append(got, e.Type())
		assert.Equal(t, trackerSource, e.Source())
		_, ok := e.Data().(ContactEvent)
		assert.True(t, ok)
		return nil
	})
	require.NoError(t, err)

	tr := NewContactTracker(WithBus(eb))
	a := circleBody(t, "a", 0, 0, 1)
	b := circleBody(t, "b", 0, 0, 1)

	for _, frame := range [][]Result{{touching(a, b)}, {touching(a, b)}, nil} {
		_, err := tr.Update(frame)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{EventContactBegin, EventContactPersist, EventContactEnd}, got)
}

func TestContactTrackerHandlerError(t *testing.T) {
	eb := bus.New()
	boom := errors.New("boom")
	_, err := eb.Subscribe(EventContactBegin, func(bus.Event) error { return boom })
	require.NoError(t, err)

	tr := NewContactTracker(WithBus(eb))
	events, err := tr.Update([]Result{touching(circleBody(t, "a", 0, 0, 1), circleBody(t, "b", 0, 0, 1))})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, events, 1)
	assert.Len(t, tr.Active(), 1, "state advances even when a handler fails")
}

func TestContactTrackerReset(t *testing.T) {
	tr := NewContactTracker()
	_, err := tr.Update([]Result{touching(circleBody(t, "a", 0, 0, 1), circleBody(t, "b", 0, 0, 1))})
	require.NoError(t, err)

	tr.Reset()
	assert.Empty(t, tr.Active())
	events, err := tr.Update(nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestContactPhaseString(t *testing.T) {
	assert.Equal(t, "contact.begin", ContactBegin.String())
	assert.Equal(t, "contact.unknown", ContactPhase(0).String())
}
