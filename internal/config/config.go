package config

import (
	"errors"
	"fmt"
	"time"
)

// SourceType represents the type of model source.
type SourceType string

const (
	// SourceTypeHuggingFace represents a Hugging Face model repository source.
	SourceTypeHuggingFace SourceType = "huggingface"
)

// Config holds the main configuration for the application.
type Config struct {
	Version   string                 `json:"version"             yaml:"version"`
	Storage   StorageConfig          `json:"storage,omitempty"   yaml:"storage,omitempty"`
	Runtime   RuntimeConfig          `json:"runtime,omitempty"   yaml:"runtime,omitempty"`
	Models    map[string]ModelConfig `json:"models"              yaml:"models"`
	Providers ProvidersConfig        `json:"providers,omitempty" yaml:"providers,omitempty"`
	Server    ServerConfig           `json:"server,omitempty"    yaml:"server,omitempty"`
	History   HistoryConfig          `json:"history,omitempty"   yaml:"history,omitempty"`
	Yield     YieldConfig            `json:"yield,omitempty"     yaml:"yield,omitempty"`
}

// StorageConfig holds the location of model artifacts.
type StorageConfig struct {
	ModelsDir string `json:"models_dir,omitempty" yaml:"models_dir,omitempty"`
}

// RuntimeConfig holds inference runtime settings.
type RuntimeConfig struct {
	// ONNXLibrary is the path to the onnxruntime shared library. Empty uses the platform default.
	ONNXLibrary string `json:"onnx_library,omitempty" yaml:"onnx_library,omitempty"`
	// Preload loads every configured model at startup instead of on first use.
	Preload bool `json:"preload,omitempty" yaml:"preload,omitempty"`
}

// ModelConfig holds configuration for a specific model kind.
type ModelConfig struct {
	Path     string       `json:"path"               yaml:"path"`
	Source   SourceConfig `json:"source,omitempty"   yaml:"source,omitempty"`
	Fallback *bool        `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Inputs   []string     `json:"inputs,omitempty"   yaml:"inputs,omitempty"`
	Outputs  []string     `json:"outputs,omitempty"  yaml:"outputs,omitempty"`
	Labels   []string     `json:"labels,omitempty"   yaml:"labels,omitempty"`
	Image    *ImageConfig `json:"image,omitempty"    yaml:"image,omitempty"`
}

// ImageConfig describes the tensor an image model expects.
type ImageConfig struct {
	Size   int       `json:"size"             yaml:"size"`
	Layout string    `json:"layout"           yaml:"layout"` // nchw or nhwc
	Mean   []float32 `json:"mean,omitempty"   yaml:"mean,omitempty"`
	Std    []float32 `json:"std,omitempty"    yaml:"std,omitempty"`
}

// SourceConfig wraps optional sources (only one should be set).
type SourceConfig struct {
	HuggingFace *HuggingFaceSource `json:"huggingface,omitempty" yaml:"huggingface,omitempty"`
}

// ProvidersConfig holds configuration for the external data adapters.
type ProvidersConfig struct {
	Timeout string         `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Weather WeatherConfig  `json:"weather,omitempty" yaml:"weather,omitempty"`
	Soil    EndpointConfig `json:"soil,omitempty"    yaml:"soil,omitempty"`
	Geocode GeocodeConfig  `json:"geocode,omitempty" yaml:"geocode,omitempty"`
	IPInfo  EndpointConfig `json:"ipinfo,omitempty"  yaml:"ipinfo,omitempty"`
}

// WeatherConfig configures the weather provider.
type WeatherConfig struct {
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey  string `json:"api_key,omitempty"  yaml:"api_key,omitempty"`
}

// EndpointConfig configures a keyless provider.
type EndpointConfig struct {
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// GeocodeConfig configures the geocoding provider.
type GeocodeConfig struct {
	BaseURL       string  `json:"base_url,omitempty"        yaml:"base_url,omitempty"`
	UserAgent     string  `json:"user_agent,omitempty"      yaml:"user_agent,omitempty"`
	RatePerSecond float64 `json:"rate_per_second,omitempty" yaml:"rate_per_second,omitempty"`
}

// ServerConfig holds listener ports.
type ServerConfig struct {
	HTTPPort int `json:"http_port,omitempty" yaml:"http_port,omitempty"`
	GRPCPort int `json:"grpc_port,omitempty" yaml:"grpc_port,omitempty"`
}

// HistoryConfig bounds per-session history.
type HistoryConfig struct {
	Capacity int `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

// YieldConfig holds yield engine settings.
type YieldConfig struct {
	// Seed seeds the random factor applied to backup-model predictions.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// -------------------------
// Source definitions
// -------------------------

// ModelSource represents a source for a model.
type ModelSource interface {
	Type() SourceType
}

// HuggingFaceSource represents a Hugging Face model repository source.
type HuggingFaceSource struct {
	Repo     string `json:"repo"               yaml:"repo"`
	File     string `json:"file"               yaml:"file"`
	Revision string `json:"revision,omitempty" yaml:"revision,omitempty"`
	Token    string `json:"token,omitempty"    yaml:"token,omitempty"`
}

// Type returns the Hugging Face source type.
func (h HuggingFaceSource) Type() SourceType {
	return SourceTypeHuggingFace
}

// GetSource returns the active source for the model.
func (m *ModelConfig) GetSource() (ModelSource, error) {
	if m.Source.HuggingFace != nil {
		return *m.Source.HuggingFace, nil
	}

	return nil, errors.New("no source configured for model")
}

// UseFallback reports whether a backup model may be substituted. Defaults to true.
func (m *ModelConfig) UseFallback() bool {
	return m.Fallback == nil || *m.Fallback
}

// ProviderTimeout parses the provider timeout, defaulting to 10s.
func (c *Config) ProviderTimeout() (time.Duration, error) {
	if c.Providers.Timeout == "" {
		return defaultProviderTimeout, nil
	}

	d, err := time.ParseDuration(c.Providers.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid providers.timeout %q: %w", c.Providers.Timeout, err)
	}

	return d, nil
}
