package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"

	scorecardservice "github.com/greenside-club/scoring/app/modules/scorecard/application"
	scorecarddb "github.com/greenside-club/scoring/app/modules/scorecard/infrastructure/repositories"
	standingsservice "github.com/greenside-club/scoring/app/modules/standings/application"
	"github.com/greenside-club/scoring/config"
	"github.com/greenside-club/scoring/internal/bundb"
	"github.com/greenside-club/scoring/internal/eventbus"
	"github.com/greenside-club/scoring/internal/observability/metrics"
)

const shutdownTimeout = 10 * time.Second

// App wires configuration, storage, the event bus and the services behind
// the HTTP surface.
type App struct {
	Config           *config.Config
	Logger           *slog.Logger
	DB               *bun.DB
	EventBus         eventbus.EventBus
	Registry         *prometheus.Registry
	ImportService    *scorecardservice.ImportService
	StandingsService *standingsservice.StandingsService

	server *http.Server
}

// NewApp initializes the application.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("service", "scoring"),
		slog.String("environment", cfg.Observability.Environment),
	)

	db, err := bundb.NewDB(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := bundb.CreateSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to set up schema: %w", err)
	}

	var bus eventbus.EventBus = eventbus.NoOp{}
	if cfg.NATS.URL != "" {
		bus, err = eventbus.NewJetStreamEventBus(cfg.NATS.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize event bus: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	tracer := otel.Tracer("greenside-club/scoring")

	scoreRepo := &scorecarddb.ScoreDBImpl{DB: db}
	rosterRepo := &scorecarddb.RosterDBImpl{DB: db}
	metaRepo := &scorecarddb.EventMetaDBImpl{DB: db}

	importService := scorecardservice.NewImportService(
		scoreRepo, rosterRepo, metaRepo, bus, logger,
		metrics.NewImportMetrics(registry), tracer,
	)
	standingsService := standingsservice.NewStandingsService(
		scoreRepo, bus, logger,
		metrics.NewStandingsMetrics(registry), tracer,
	)

	a := &App{
		Config:           cfg,
		Logger:           logger,
		DB:               db,
		EventBus:         bus,
		Registry:         registry,
		ImportService:    importService,
		StandingsService: standingsService,
	}
	a.server = &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: a.router(),
	}
	return a, nil
}

// Run serves HTTP until the context is canceled, then shuts down
// gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("HTTP server listening", slog.String("addr", a.Config.HTTP.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}

// Close releases the database and event bus connections.
func (a *App) Close() {
	if err := a.EventBus.Close(); err != nil {
		a.Logger.Error("Failed to close event bus", slog.String("error", err.Error()))
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Failed to close database", slog.String("error", err.Error()))
	}
}
