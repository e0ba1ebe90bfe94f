package backend

import "errors"

// Error definitions for the backend package.
var (
	ErrNotFound             = errors.New("no decoder registered")
	ErrAlreadyRegistered    = errors.New("decoder is already registered in the registry")
	ErrUnrecognizedArtifact = errors.New("artifact not recognized by any decoder")
	ErrInvalidInput         = errors.New("invalid input tensor")
	ErrClosed               = errors.New("backend is closed")
)
