//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/narrowphase/internal/config"
	"github.com/zeusync/narrowphase/internal/server"
)

func InitializeServer(cfg config.Config) (*server.Server, error) {
	wire.Build(ServerSet)
	return nil, nil
}

func InitializeSimulation(cfg config.Config) (*Simulation, error) {
	wire.Build(SimulationSet)
	return nil, nil
}
