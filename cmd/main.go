package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/drillmeet/scoresheet/internal/adapters/http/api"
	"github.com/drillmeet/scoresheet/internal/adapters/repository"
	app "github.com/drillmeet/scoresheet/internal/app"
	"github.com/drillmeet/scoresheet/internal/config"
	"github.com/drillmeet/scoresheet/internal/directory"
	"github.com/drillmeet/scoresheet/internal/gen"
	"github.com/drillmeet/scoresheet/pkg/logger"
	"github.com/drillmeet/scoresheet/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics;
	// the system metrics updater covers memory and goroutine counts.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			logger.Error(err)
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	opts := []app.Option{
		app.WithLogger(loggerInstance),
		app.WithDirectory(directory.NewInMemoryDirectory(cfg.CadetNames)),
	}

	if cfg.DBDriver != "memory" {
		db, err := repository.Open(ctx, cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			os.Stderr.WriteString("failed to open database: " + err.Error() + "\n")
			return
		}
		defer db.Close()

		store := repository.NewSQLStore(db, cfg.DBDriver)
		if err := store.EnsureSchema(ctx); err != nil {
			os.Stderr.WriteString("failed to ensure schema: " + err.Error() + "\n")
			return
		}
		opts = append(opts, app.WithStore(store))
		loggerInstance.Info(ctx, "database connected", logger.String("driver", cfg.DBDriver))
	}

	if cfg.GeneratorURL != "" {
		opts = append(opts, app.WithGenerator(gen.NewHTTPGenerator(
			cfg.GeneratorURL,
			gen.WithTimeout(time.Duration(cfg.GeneratorTimeoutMS)*time.Millisecond),
		)))
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	apiServer := api.NewServer(svc, svc,
		api.WithCORSAllowedOrigins(cfg.CORSAllowedOrigins),
		api.WithMaxListLimit(cfg.MaxListLimit),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           apiServer.Router(ctx),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
