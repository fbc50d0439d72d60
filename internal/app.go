package internal

import (
	"context"
	"fmt"
	"garage/internal/controllers"
	"garage/internal/providers"
	"garage/internal/seed"
	"garage/internal/store"
	"garage/internal/structures"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
}

// NewHandler assembles the mux: API routes behind the metrics middleware, plus health and metrics.
func NewHandler(healthController *controllers.HealthController, conf *structures.Config, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Pattern(), route.Handler)
	}

	instrumentedAPI := providers.MetricsMiddleware(metrics, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)
	return mux
}

// Bootstrap seeds the bootstrap slot and hydrates the working slot before the first request.
func Bootstrap(ctx context.Context, loader seed.LoaderInterface, st store.StoreInterface, logger providers.Logger) error {
	if err := loader.EnsureSeeded(ctx); err != nil {
		return err
	}
	ds, err := st.Load(ctx)
	if err != nil {
		return fmt.Errorf("hydrate working store: %w", err)
	}
	for collection, n := range ds.Counts() {
		logger.Debugf(providers.TypeApp, "Collection %s: %d records", collection, n)
	}
	return nil
}

func NewApp(handler http.Handler, loader seed.LoaderInterface, st store.StoreInterface, conf *structures.Config, logger providers.Logger) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	err := Bootstrap(bootCtx, loader, st, logger)
	cancelBoot()
	if err != nil {
		return nil, err
	}

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return nil, fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = app.WebServer.Shutdown(ctx); err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
