package model

import (
	"errors"
	"fmt"
)

// Error definitions for the model package.
var (
	ErrNotFound = errors.New("model not found in registry")

	// ErrModelUnavailable means no usable instance could be produced for a kind.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrArtifactMissing means the artifact file does not exist.
	ErrArtifactMissing = errors.New("model artifact not found")
)

// LoadError records why a handle's artifact could not be loaded.
type LoadError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s model unavailable (%s): %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches ErrModelUnavailable.
func (e *LoadError) Is(target error) bool {
	return target == ErrModelUnavailable
}
