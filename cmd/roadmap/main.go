package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/Roadmap/internal/allocator"
	"github.com/MikeSquared-Agency/Roadmap/internal/api"
	"github.com/MikeSquared-Agency/Roadmap/internal/config"
	"github.com/MikeSquared-Agency/Roadmap/internal/directory"
	"github.com/MikeSquared-Agency/Roadmap/internal/hermes"
	"github.com/MikeSquared-Agency/Roadmap/internal/intake"
	"github.com/MikeSquared-Agency/Roadmap/internal/metrics"
	"github.com/MikeSquared-Agency/Roadmap/internal/planner"
	"github.com/MikeSquared-Agency/Roadmap/internal/prompt"
	"github.com/MikeSquared-Agency/Roadmap/internal/report"
	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
	"github.com/MikeSquared-Agency/Roadmap/internal/store"
	"github.com/MikeSquared-Agency/Roadmap/internal/tracing"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file")
	contributorsSrc := flag.String("contributors", "", "contributors CSV file or directory URL")
	only := flag.String("only", "", "comma-separated contributor names to fetch from the directory")
	itemsPath := flag.String("items", "", "roadmap items CSV file")
	formatName := flag.String("format", "csv", "output format: csv or table")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a single plan")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Stdout carries the plan in CLI mode, so logs go to stderr there.
	logOut := os.Stderr
	if *serve {
		logOut = os.Stdout
	}
	logger := newLogger(cfg, logOut)
	slog.SetDefault(logger)

	format, err := report.ParseFormat(*formatName)
	if err != nil {
		logger.Error("invalid output format", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Run history
	db, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open run history", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Tracing (optional)
	var tracer *tracing.Tracer
	if cfg.Tracing.Enabled {
		tracer, err = tracing.New("roadmap", version, cfg.Tracing.Output)
		if err != nil {
			logger.Warn("failed to start tracing, running without spans", "error", err)
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				_ = tracer.Shutdown(shutdownCtx)
			}()
		}
	}

	seed := cfg.Allocation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p := planner.New(db, allocator.NewRandPicker(seed), logger,
		planner.WithHermes(hermesClient),
		planner.WithMetrics(metrics.NewRecorder()),
		planner.WithTracer(tracer),
	)

	if *serve {
		runServer(ctx, cfg, db, p, logger)
		return
	}

	var asker *prompt.TeaAsker
	if (*contributorsSrc == "" && cfg.Directory.URL == "") || *itemsPath == "" {
		asker = prompt.NewTeaAsker(os.Stdin, os.Stdout)
	}

	contributors, err := loadContributors(ctx, cfg, *contributorsSrc, *only, asker, p.Today(), logger)
	if err != nil {
		logger.Error("failed to load contributors", "error", err)
		os.Exit(1)
	}
	items, err := loadItems(ctx, *itemsPath, asker, p.Today(), logger)
	if err != nil {
		logger.Error("failed to load roadmap items", "error", err)
		os.Exit(1)
	}

	run, err := p.Plan(ctx, planner.Request{
		Contributors: contributors,
		Items:        items,
		Source:       store.SourceCLI,
	})
	if err != nil {
		logger.Error("failed to plan roadmap", "error", err)
		os.Exit(1)
	}
	if err := report.Write(os.Stdout, format, run.Items); err != nil {
		logger.Error("failed to write plan", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config, out *os.File) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if strings.EqualFold(cfg.Logging.Format, "text") {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}

// openStore prefers Postgres, then a local BoltDB file, then memory.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	switch {
	case cfg.Database.URL != "":
		db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to database")
		return db, nil
	case cfg.History.Path != "":
		db, err := store.NewBoltStore(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("opened run history", "path", cfg.History.Path)
		return db, nil
	default:
		logger.Debug("run history kept in memory")
		return store.NewMemoryStore(), nil
	}
}

func loadContributors(ctx context.Context, cfg *config.Config, src, only string, asker *prompt.TeaAsker, today time.Time, logger *slog.Logger) ([]roadmap.Contributor, error) {
	url := cfg.Directory.URL
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		url = src
	} else if src != "" {
		return intake.LoadContributors(src)
	}
	if url == "" {
		return intake.NewSession(asker, today, logger).Contributors(ctx)
	}

	client := directory.NewHTTPClient(strings.TrimSuffix(url, "/"), cfg.Directory.Token)
	if only == "" {
		return client.ListContributors(ctx)
	}
	var contributors []roadmap.Contributor
	for _, name := range strings.Split(only, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c, err := client.GetContributor(ctx, name)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w %q: not in the directory", intake.ErrInvalidContributor, name)
		}
		contributors = append(contributors, *c)
	}
	return contributors, nil
}

func loadItems(ctx context.Context, path string, asker *prompt.TeaAsker, today time.Time, logger *slog.Logger) ([]roadmap.Item, error) {
	if path != "" {
		return intake.LoadItems(path, today)
	}
	return intake.NewSession(asker, today, logger).Items(ctx)
}

func runServer(ctx context.Context, cfg *config.Config, db store.Store, p *planner.Planner, logger *slog.Logger) {
	// Plan requests over NATS are a no-op without hermes.
	if err := p.SetupSubscriptions(); err != nil {
		logger.Warn("failed to subscribe to plan requests", "error", err)
	}

	// API server
	router := api.NewRouter(db, p, cfg.Server.AdminToken, cfg.Server.RateLimit, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
