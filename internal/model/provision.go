package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ekisa-team/plantx/internal/config"
	"github.com/ekisa-team/plantx/internal/config/source"
	"github.com/ekisa-team/plantx/internal/envvar"
	"github.com/ekisa-team/plantx/internal/xfs"
)

// DownloaderFunc resolves the downloader for a source type.
type DownloaderFunc func(ctx context.Context, sourceType config.SourceType) (source.Downloader, error)

// Provision fetches every model artifact that declares a remote source into the
// models directory. Download failures are logged and skipped; the affected
// kinds fall back at load time.
func Provision(ctx context.Context, cfg *config.Config, downloaders DownloaderFunc) error {
	if downloaders == nil {
		downloaders = source.GetDownloader
	}

	modelsPath := ResolveModelsPath(cfg)
	if err := source.EnsureModelsDirectory(modelsPath); err != nil {
		return fmt.Errorf("failed to prepare models directory %s: %w", modelsPath, err)
	}

	for name, mc := range cfg.Models {
		modelSource, err := mc.GetSource()
		if err != nil {
			continue
		}

		downloader, err := downloaders(ctx, modelSource.Type())
		if err != nil {
			return fmt.Errorf("failed to get downloader for %s: %w", name, err)
		}

		target := filepath.Dir(xfs.Resolve(modelsPath, mc.Path))
		downloadPath, cached, err := downloader.Download(ctx, &mc, target)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("Failed to download model", "kind", name, "error", err)
			continue
		}

		slog.Info("Model artifact ready", "kind", name, "path", downloadPath, "cached", cached)
	}

	return nil
}

// ResolveModelsPath returns the path to the models directory.
// Precedence:
// 1. PLANTX_MODELS_PATH environment variable.
// 2. ModelsDir field in the config.
// 3. Default models path.
func ResolveModelsPath(cfg *config.Config) string {
	if p := os.Getenv(envvar.PlantXModelsPath); p != "" {
		return xfs.ExpandTilde(p)
	}
	if cfg.Storage.ModelsDir != "" {
		return xfs.ExpandTilde(cfg.Storage.ModelsDir)
	}
	return xfs.ExpandTilde(config.DefaultModelsPath())
}
