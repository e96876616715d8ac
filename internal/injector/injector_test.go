package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/narrowphase/internal/config"
	"github.com/zeusync/narrowphase/internal/core/events/bus"
	"github.com/zeusync/narrowphase/internal/core/systems/narrowphase"
)

func TestInitializeSimulation(t *testing.T) {
	cfg := config.Default()
	cfg.Detector.Cache.Enabled = true

	sim, err := InitializeSimulation(cfg)
	require.NoError(t, err)
	require.NotNil(t, sim.Logger)
	require.NotNil(t, sim.Detector)
	assert.NotNil(t, sim.Detector.Cache())

	var seen []string
	_, err = sim.Bus.SubscribeAll(func(e bus.Event) error {
		seen = append(seen, e.Type())
		return nil
	})
	require.NoError(t, err)

	a, err := narrowphase.NewCircle(1)
	require.NoError(t, err)
	ba, err := narrowphase.NewBody("a", a)
	require.NoError(t, err)
	bb, err := narrowphase.NewBody("b", a, narrowphase.WithPosition(1, 0))
	require.NoError(t, err)

	res, err := sim.Detector.Check(ba, bb)
	require.NoError(t, err)
	_, err = sim.Tracker.Update([]narrowphase.Result{res})
	require.NoError(t, err)
	assert.Equal(t, []string{narrowphase.EventContactBegin}, seen)
}

func TestInitializeServer(t *testing.T) {
	srv, err := InitializeServer(config.Default())
	require.NoError(t, err)
	assert.Equal(t, config.Default().Server.HTTPAddr, srv.Addr())
}

func TestProvideLoggerRejectsBadEncoding(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Encoding = "xml"
	_, err := ProvideLogger(cfg)
	assert.Error(t, err)
}
