package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

//go:embed schema.json
var defaultSchema string

const defaultSchemaURL = "https://plantx.local/plantx.v1.schema.json"

// LoadAndValidate loads and validates the configuration.
// An empty schemaPath validates against the embedded schema.
func LoadAndValidate(path, schemaPath string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read config: %w", err)
	}

	return Parse(data, schemaPath)
}

// Parse validates raw YAML and decodes it on top of Default().
func Parse(data []byte, schemaPath string) (*Config, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	schema, err := compileSchema(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to compile schema: %w", err)
	}

	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("config: config validation failed: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal into Config struct: %w", err)
	}

	// Partially specified models inherit the defaults for their kind.
	defaults := Default().Models
	for kind, m := range config.Models {
		config.Models[kind] = mergeModel(defaults[kind], m)
	}

	ApplyEnv(config)

	if _, err := config.ProviderTimeout(); err != nil {
		return nil, err
	}

	return config, nil
}

func compileSchema(schemaPath string) (*jsonschema.Schema, error) {
	if schemaPath != "" {
		return jsonschema.Compile(schemaPath)
	}

	return jsonschema.CompileString(defaultSchemaURL, defaultSchema)
}

func mergeModel(base, override ModelConfig) ModelConfig {
	out := base
	if override.Path != "" {
		out.Path = override.Path
	}
	if override.Source.HuggingFace != nil {
		out.Source = override.Source
	}
	if override.Fallback != nil {
		out.Fallback = override.Fallback
	}
	if len(override.Inputs) > 0 {
		out.Inputs = override.Inputs
	}
	if len(override.Outputs) > 0 {
		out.Outputs = override.Outputs
	}
	if len(override.Labels) > 0 {
		out.Labels = override.Labels
	}
	if override.Image != nil {
		out.Image = override.Image
	}

	return out
}
