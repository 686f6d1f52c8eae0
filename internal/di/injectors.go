//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"skinwatch/internal"
	"skinwatch/internal/controllers"
	"skinwatch/internal/events"
	"skinwatch/internal/monitor"
	"skinwatch/internal/providers"
	"skinwatch/internal/remote"
	"skinwatch/internal/scheduler"
	"skinwatch/internal/storage"
	"skinwatch/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewCompressorProvider,
		storage.NewFileStore,
		storage.NewSession,
		storage.NewSessionProvider,
		storage.NewMarkerStore,

		remote.NewClient,
		remote.NewScanFetcher,
		remote.NewUserDirectory,
		remote.NewMailRelay,
		remote.NewAuthClient,

		events.NewEmitterProvider,
		monitor.NewLocalChannel,
		monitor.NewRelayChannel,
		monitor.NewNotifierProvider,
		monitor.NewDeduplicator,
		monitor.NewStatusTracker,
		monitor.NewMonitorService,

		scheduler.NewHostPolicy,
		internal.NewTaskCatalog,
		scheduler.NewScheduler,

		controllers.NewHealthController,
		controllers.NewMonitorController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
