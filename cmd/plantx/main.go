package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ekisa-team/plantx/internal/config"
	"github.com/ekisa-team/plantx/internal/env"
	"github.com/ekisa-team/plantx/internal/features"
	"github.com/ekisa-team/plantx/internal/history"
	"github.com/ekisa-team/plantx/internal/knowledge"
	"github.com/ekisa-team/plantx/internal/logger"
	"github.com/ekisa-team/plantx/internal/metrics"
	"github.com/ekisa-team/plantx/internal/model"
	"github.com/ekisa-team/plantx/internal/provider"
	grpcserver "github.com/ekisa-team/plantx/internal/server/grpc"
	httpserver "github.com/ekisa-team/plantx/internal/server/http"
	"github.com/ekisa-team/plantx/internal/service"
)

const (
	shutdownTimeout = 10 * time.Second
	sessionIdle     = 24 * time.Hour
	pruneInterval   = 15 * time.Minute
)

func main() {
	var (
		flagHTTPPort   = flag.Int("http-port", 0, "HTTP port to listen on (overrides config)")
		flagGRPCPort   = flag.Int("grpc-port", 0, "gRPC port to listen on (overrides config)")
		flagConfigPath = flag.String("config", path.Join(config.DefaultConfigPath(), "config.yaml"), "Path to config file")
		flagSchemaPath = flag.String("schema", "", "Path to schema file (defaults to the embedded schema)")
	)
	flag.Parse()

	environment := env.FromEnv()

	slog.SetDefault(
		logger.New(environment,
			logger.WithLogToFile(environment.IsProduction()),
			logger.WithLogFile("logs/plantx.log"),
		),
	)

	if err := run(*flagConfigPath, *flagSchemaPath, *flagHTTPPort, *flagGRPCPort); err != nil {
		slog.Error("PlantX stopped", "error", err)
		os.Exit(1)
	}
}

func run(configPath, schemaPath string, httpPort, grpcPort int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	cfg, watched, err := loadConfig(configPath, schemaPath)
	if err != nil {
		return err
	}
	if httpPort == 0 {
		httpPort = cfg.Server.HTTPPort
	}
	if grpcPort == 0 {
		grpcPort = cfg.Server.GRPCPort
	}

	if err := model.Provision(ctx, cfg, nil); err != nil {
		slog.Warn("Model provisioning incomplete", "error", err)
	}

	decoders, err := model.DefaultDecoders(cfg)
	if err != nil {
		return fmt.Errorf("failed to register model decoders: %w", err)
	}

	health := grpcserver.NewServer(grpcPort)

	opts := append(model.DefaultFallbacks(),
		model.WithDecoders(decoders),
		model.WithObserver(health.Observe),
	)
	models := model.NewRegistry(cfg, opts...)
	defer models.Close()

	if watched {
		watcher, err := config.NewWatcher(configPath, schemaPath, func(next *config.Config, err error) {
			metrics.RecordConfigReload(err)
			if err != nil {
				slog.Error("Failed to reload config", "error", err)
				return
			}
			models.Reconfigure(next)
			slog.Info("Config reloaded", "config", configPath)
		})
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		defer watcher.Close()
	}

	if cfg.Runtime.Preload {
		if err := models.Warm(ctx); err != nil {
			return fmt.Errorf("failed to preload models: %w", err)
		}
	}

	timeout, err := cfg.ProviderTimeout()
	if err != nil {
		return err
	}

	normalizer := features.NewNormalizer()
	treatments := knowledge.NewTreatments()
	soils := knowledge.NewSoils()
	store := history.NewStore(cfg.History.Capacity)

	api := httpserver.NewServer(httpPort, httpserver.Dependencies{
		Crop:       service.NewCrop(models, normalizer),
		Yield:      service.NewYield(models, normalizer, service.WithYieldRand(cfg.Yield.Seed)),
		Risk:       service.NewRisk(models, normalizer),
		Disease:    service.NewDisease(models, treatments),
		Soil:       service.NewSoil(models, soils),
		Models:     models,
		History:    store,
		Treatments: treatments,
		Soils:      soils,
		Providers:  provider.NewSet(cfg.Providers, timeout),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(api.Start)
	g.Go(health.Start)
	g.Go(func() error {
		pruneSessions(gctx, store)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		health.Stop(shutdownCtx)
		return api.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// loadConfig reads the config file when present. Without one the defaults
// apply and no watcher is started.
func loadConfig(configPath, schemaPath string) (*config.Config, bool, error) {
	cfg, err := config.LoadAndValidate(configPath, schemaPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("No config file, using defaults", "config", configPath)
		cfg = config.Default()
		config.ApplyEnv(cfg)
		return cfg, false, nil
	case err != nil:
		return nil, false, err
	}

	slog.Info("Config loaded successfully", "config", configPath)
	return cfg, true, nil
}

func pruneSessions(ctx context.Context, store *history.Store) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Prune(sessionIdle); n > 0 {
				slog.Debug("Pruned idle sessions", "count", n)
			}
		}
	}
}
