package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ekisa-team/plantx/internal/config"
)

const (
	defaultRetryDelay = 2 * time.Second
	defaultMaxRetries = 3
	defaultTimeout    = 5 * time.Minute
	markerSuffix      = ".plantx-downloaded"
)

// CommandFunc runs an external command and returns its combined output.
type CommandFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// HuggingFaceDownloader downloads a single artifact file from a Hugging Face repository
// using the hf CLI.
type HuggingFaceDownloader struct {
	run        CommandFunc
	retryDelay time.Duration
}

// NewHuggingFaceDownloader creates a downloader backed by the hf CLI.
func NewHuggingFaceDownloader() *HuggingFaceDownloader {
	return &HuggingFaceDownloader{run: execCommand, retryDelay: defaultRetryDelay}
}

// NewHuggingFaceDownloaderWithCommand creates a downloader with a custom command runner.
func NewHuggingFaceDownloaderWithCommand(run CommandFunc, retryDelay time.Duration) *HuggingFaceDownloader {
	return &HuggingFaceDownloader{run: run, retryDelay: retryDelay}
}

// Download downloads the configured artifact into targetDir.
func (d *HuggingFaceDownloader) Download(ctx context.Context, modelConfig *config.ModelConfig, targetDir string) (string, bool, error) {
	source, err := modelConfig.GetSource()
	if err != nil {
		return "", false, fmt.Errorf("failed to get model source: %w", err)
	}

	hfSource, ok := source.(config.HuggingFaceSource)
	if !ok {
		return "", false, fmt.Errorf("invalid source type: %T", source)
	}

	repo := strings.TrimSpace(hfSource.Repo)
	if repo == "" {
		return "", false, errors.New("invalid repo name: empty")
	}

	file := strings.TrimSpace(hfSource.File)
	if file == "" {
		return "", false, fmt.Errorf("no file configured for repo %s", repo)
	}

	fullPath := filepath.Join(targetDir, file)
	markerPath := fullPath + markerSuffix
	markerContent := d.markerContent(repo, file, hfSource.Revision)

	if _, err := os.Stat(fullPath); err == nil && !d.shouldRedownload(markerPath, markerContent) {
		slog.Info("Artifact already downloaded and up-to-date, skipping", "repo", repo, "path", fullPath)
		return fullPath, true, nil
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create directory: %w", err)
	}

	args := []string{"download", repo, file, "--local-dir", targetDir}
	if hfSource.Revision != "" {
		args = append(args, "--revision", hfSource.Revision)
	}
	if hfSource.Token != "" {
		args = append(args, "--token", hfSource.Token)
	}

	var lastErr error
	for attempt := range defaultMaxRetries {
		if attempt > 0 {
			slog.Info("Retrying download", "repo", repo, "attempt", attempt+1, "last_error", lastErr)
			select {
			case <-ctx.Done():
				return "", false, fmt.Errorf("download canceled: %w", ctx.Err())
			case <-time.After(d.retryDelay):
			}
		} else {
			slog.Info("Downloading artifact", "repo", repo, "file", file, "path", fullPath)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
		output, err := d.run(attemptCtx, "hf", args...)
		attemptErr := attemptCtx.Err()
		cancel()

		if err == nil {
			if err := os.WriteFile(markerPath, []byte(markerContent), 0o644); err != nil {
				slog.Warn("Failed to write download marker", "path", markerPath, "error", err)
			}

			slog.Info("Artifact downloaded successfully", "repo", repo, "path", fullPath, "attempt", attempt+1)
			return fullPath, false, nil
		}

		lastErr = err
		slog.Error("Failed to download artifact", "repo", repo, "attempt", attempt+1, "error", err, "output", string(output))

		if errors.Is(attemptErr, context.DeadlineExceeded) {
			slog.Warn("Download timed out", "repo", repo, "attempt", attempt+1)
		} else if errors.Is(ctx.Err(), context.Canceled) {
			return "", false, fmt.Errorf("download canceled: %w", err)
		}
	}

	return "", false, lastErr
}

// markerContent records which repo revision produced the artifact.
func (d *HuggingFaceDownloader) markerContent(repo, file, revision string) string {
	return fmt.Sprintf("repo: %s\nfile: %s\nrevision: %s\n", repo, file, revision)
}

// shouldRedownload checks if the artifact should be redownloaded by comparing marker content.
func (d *HuggingFaceDownloader) shouldRedownload(markerPath, expectedContent string) bool {
	content, err := os.ReadFile(markerPath)
	if err != nil {
		slog.Debug("Marker file missing or unreadable", "path", markerPath, "error", err)
		return true
	}

	if string(content) != expectedContent {
		slog.Info("Model source changed (marker mismatch), will redownload", "marker_path", markerPath)
		return true
	}

	return false
}
