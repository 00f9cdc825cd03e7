//go:build wireinject
// +build wireinject

package di

import (
	"Stellium/pkg/config"
	"Stellium/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvidePostgresClient,
		ProvideCache,

		// Computation core
		ProvidePositionProvider,
		ProvideEngine,

		// Repositories
		ProvideProfileStore,
		ProvideChartStore,

		// Use cases
		ProvideAstrologyService,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
