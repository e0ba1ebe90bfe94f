package source

import (
	"context"
	"fmt"
	"os"

	"github.com/ekisa-team/plantx/internal/config"
)

// Downloader fetches a model artifact into a local directory.
type Downloader interface {
	// Download places the artifact under targetDir and returns its path.
	// The boolean reports whether an up-to-date copy was already present.
	Download(ctx context.Context, modelConfig *config.ModelConfig, targetDir string) (string, bool, error)
}

// GetDownloader returns the downloader for a source type.
func GetDownloader(_ context.Context, sourceType config.SourceType) (Downloader, error) {
	switch sourceType {
	case config.SourceTypeHuggingFace:
		return NewHuggingFaceDownloader(), nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", sourceType)
	}
}

// EnsureModelsDirectory creates the models directory if needed.
func EnsureModelsDirectory(path string) error {
	return os.MkdirAll(path, 0o755)
}
