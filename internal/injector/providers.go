package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/narrowphase/internal/config"
	"github.com/zeusync/narrowphase/internal/core/events/bus"
	"github.com/zeusync/narrowphase/internal/core/observability/log"
	"github.com/zeusync/narrowphase/internal/core/systems/narrowphase"
	"github.com/zeusync/narrowphase/internal/server"
)

// Simulation bundles what an offline run needs.
type Simulation struct {
	Logger   *log.Logger
	Bus      bus.EventBus
	Detector *narrowphase.Detector
	Tracker  *narrowphase.ContactTracker
}

var CoreSet = wire.NewSet(ProvideLogger, ProvideDetector)

var SimulationSet = wire.NewSet(
	CoreSet,
	bus.New,
	ProvideTracker,
	wire.Struct(new(Simulation), "*"),
)

var ServerSet = wire.NewSet(CoreSet, ProvideServer)

func ProvideLogger(cfg config.Config) (*log.Logger, error) {
	return log.NewWithConfig(cfg.LoggerConfig())
}

func ProvideDetector(cfg config.Config, logger *log.Logger) *narrowphase.Detector {
	return narrowphase.NewDetector(cfg.Detector, logger)
}

func ProvideTracker(b bus.EventBus, logger *log.Logger) *narrowphase.ContactTracker {
	return narrowphase.NewContactTracker(
		narrowphase.WithBus(b),
		narrowphase.WithTrackerLogger(logger.With(log.String("component", "tracker"))),
	)
}

func ProvideServer(cfg config.Config, detector *narrowphase.Detector, logger *log.Logger) *server.Server {
	return server.New(cfg.Server, detector, logger)
}
