package backend

import (
	"context"
	"time"
)

// Provider is a string identifier for a backend implementation.
type Provider string

const (
	ProviderONNX     Provider = "onnx"
	ProviderEnsemble Provider = "ensemble"
	ProviderFallback Provider = "fallback"
)

// Backend defines the core interface for all inference backends.
type Backend interface {
	// Provider returns the backend identifier.
	Provider() Provider

	// Infer executes a forward pass over one input tensor.
	Infer(ctx context.Context, req *Request) (*Response, error)

	// Close cleans up resources.
	Close() error
}

// Request encapsulates all parameters for an inference call.
type Request struct {
	// Input is the flattened input tensor.
	Input []float32

	// Shape is the tensor shape. Tabular models use [1, n].
	Shape []int64

	// Parameters contains backend-specific inference parameters.
	Parameters map[string]any
}

// NewRequest builds a single-row tabular request.
func NewRequest(values []float32) *Request {
	return &Request{Input: values, Shape: []int64{1, int64(len(values))}}
}

// Response contains the result of an inference operation.
type Response struct {
	// Output is the flattened primary output tensor: class scores, probabilities
	// or a single regression value.
	Output []float32

	// Metadata contains information about how the output was produced.
	Metadata *ResponseMetadata
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	Provider        Provider       `json:"provider"`
	Model           string         `json:"model"`
	Timestamp       time.Time      `json:"timestamp"`
	Duration        time.Duration  `json:"duration"`
	BackendSpecific map[string]any `json:"backend_specific,omitempty"`
}

// NewMetadata stamps a response produced by provider for model.
func NewMetadata(provider Provider, model string, started time.Time) *ResponseMetadata {
	return &ResponseMetadata{
		Provider:  provider,
		Model:     model,
		Timestamp: started,
		Duration:  time.Since(started),
	}
}
