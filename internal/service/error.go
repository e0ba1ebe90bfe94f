package service

import "errors"

// Error definitions for the service package.
var (
	// ErrInference means the forward pass failed or produced unusable output.
	ErrInference = errors.New("inference failed")

	ErrEmptyOutput = errors.New("model returned no output")
)
