package ensemble

import "errors"

// Error definitions for the ensemble package.
var (
	ErrInvalidArtifact = errors.New("invalid ensemble artifact")
	ErrNoBase          = errors.New("no base estimators to reconstruct from weights")
	ErrFeatureCount    = errors.New("feature count mismatch")
)
