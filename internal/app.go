package internal

import (
	"context"
	"fmt"
	"net/http"
	"skinwatch/internal/controllers"
	"skinwatch/internal/models"
	"skinwatch/internal/monitor"
	"skinwatch/internal/providers"
	"skinwatch/internal/remote"
	"skinwatch/internal/scheduler"
	schedulerInterfaces "skinwatch/internal/scheduler/interfaces"
	"skinwatch/internal/storage"
	storageInterfaces "skinwatch/internal/storage/interfaces"
	"skinwatch/internal/structures"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
	Conf      *structures.Config
	Logger    providers.Logger
	Store     storageInterfaces.KeyValueStoreInterface
	Session   storage.SessionProviderInterface
	Markers   storage.MarkerStoreInterface
	Auth      remote.AuthClientInterface
	Monitor   monitor.MonitorServiceInterface
	Scheduler schedulerInterfaces.SchedulerInterface
}

// NewTaskCatalog names the tasks the scheduler is allowed to restore.
func NewTaskCatalog(conf *structures.Config, service monitor.MonitorServiceInterface) scheduler.TaskCatalog {
	return scheduler.TaskCatalog{
		conf.Monitor.TaskName: service.Run,
	}
}

func NewApp(healthController *controllers.HealthController, router providers.RouterProviderInterface, service monitor.MonitorServiceInterface, sched schedulerInterfaces.SchedulerInterface, session storage.SessionProviderInterface, markers storage.MarkerStoreInterface, auth remote.AuthClientInterface, store storageInterfaces.KeyValueStoreInterface, conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) *App {
	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      newHandler(conf, healthController, router, metrics),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: conf.Api.Timeout + 10*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Conf:      conf,
		Logger:    logger,
		Store:     store,
		Session:   session,
		Markers:   markers,
		Auth:      auth,
		Monitor:   service,
		Scheduler: sched,
	}
}

func newHandler(conf *structures.Config, healthController *controllers.HealthController, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", router.Handler(metrics))
	return mux
}

// Serve registers the monitor task and blocks until ctx is cancelled or the
// web server fails.
func (a *App) Serve(ctx context.Context) error {
	a.Logger.Infof(providers.TypeApp, "Starting %s", a.Conf.AppName)

	if err := a.Scheduler.Restore(); err != nil {
		a.Logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}
	if err := a.Scheduler.Register(a.Conf.Monitor.TaskName, a.Conf.Monitor.Interval); err != nil {
		return fmt.Errorf("register %s: %w", a.Conf.Monitor.TaskName, err)
	}
	a.Scheduler.Init()
	defer a.Scheduler.Stop()

	if a.Conf.Monitor.RunOnStart {
		go func() {
			outcome := a.Monitor.Run(ctx)
			a.Logger.Infof(providers.TypeApp, "Startup run finished: %s", outcome)
		}()
	}

	serverErr := make(chan error, 1)
	if a.Conf.WebServer.Enabled {
		go func() {
			a.Logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
			if err := a.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				serverErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		a.Logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	if a.Conf.WebServer.Enabled {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.WebServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	a.Logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}

// Check performs a single monitor run outside the scheduler.
func (a *App) Check(ctx context.Context) models.Outcome {
	return a.Monitor.Run(ctx)
}

func (a *App) Close() {
	a.Store.Close()
	a.Logger.Close()
}
