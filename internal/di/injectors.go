//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"odh/internal"
	"odh/internal/controllers"
	"odh/internal/outreach"
	"odh/internal/preload"
	"odh/internal/providers"
	"odh/internal/services"
	"odh/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewZstdCompressor,

		outreach.NewClient,
		services.NewCacheService,
		services.NewEnrichmentService,
		preload.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
