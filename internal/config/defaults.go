package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/ekisa-team/plantx/internal/envvar"
)

const (
	defaultHTTPPort        = 8080
	defaultGRPCPort        = 9090
	defaultHistoryCapacity = 10
	defaultProviderTimeout = 10 * time.Second
	defaultYieldSeed       = 42
)

// DefaultHTTPPort returns the HTTP port, honouring PLANTX_SERVER_HTTP_PORT.
func DefaultHTTPPort() int {
	return portFromEnv(envvar.PlantXServerHTTPPort, defaultHTTPPort)
}

// DefaultGRPCPort returns the gRPC port, honouring PLANTX_SERVER_GRPC_PORT.
func DefaultGRPCPort() int {
	return portFromEnv(envvar.PlantXServerGRPCPort, defaultGRPCPort)
}

func portFromEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			return p
		}
	}
	return fallback
}

// DefaultConfigPath returns the default path for PlantX config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "plantx", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "plantx")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "plantx")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "plantx")
		}
		return filepath.Join(home, ".config", "plantx")
	}
}

// DefaultModelsPath returns the default path for PlantX models directory.
func DefaultModelsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "plantx", "models")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "plantx", "models")
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "plantx", "models")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "plantx", "models")
		}
		return filepath.Join(home, ".cache", "plantx", "models")
	}
}

// Model kinds as they appear under the models key.
const (
	KindCrop    = "crop_classifier"
	KindYield   = "yield_regressor"
	KindRisk    = "risk_classifier"
	KindDisease = "disease_classifier"
	KindSoil    = "soil_classifier"
)

// CropLabels are the classes of the crop recommendation model, in output order.
var CropLabels = []string{
	"rice", "maize", "chickpea", "kidneybeans", "pigeonpeas", "mothbeans",
	"mungbean", "blackgram", "lentil", "pomegranate", "banana", "mango",
	"grapes", "watermelon", "muskmelon", "apple", "orange", "papaya",
	"coconut", "cotton", "jute", "coffee",
}

// SoilLabels are the classes of the soil type model, in output order.
var SoilLabels = []string{"Clay", "Loamy", "Sandy", "Silty", "Peaty", "Chalky"}

// DiseaseLabels are the classes of the plant disease model, in output order.
var DiseaseLabels = []string{
	"Apple_Scab", "Apple_Black_rot", "Apple_Cedar_apple_rust", "Apple_healthy",
	"Bell Pepper_Bacterial_spot", "Bell Pepper_healthy",
	"Blueberry_healthy", "Cherry_Powdery_mildew", "Cherry_healthy",
	"Corn_Gray_leaf_spot", "Corn_Common_rust", "Corn_Northern_Leaf_Blight", "Corn_healthy",
	"Grape_Black_rot", "Grape_Esca_(Black_Measles)", "Grape_Leaf_blight", "Grape_healthy",
	"Orange_Haunglongbing_(Citrus_greening)", "Peach_Bacterial_spot", "Peach_healthy",
	"Potato_Early_blight", "Potato_Late_blight", "Potato_healthy",
	"Raspberry_healthy", "Soybean_healthy", "Squash_Powdery_mildew",
	"Strawberry_Leaf_scorch", "Strawberry_healthy",
	"Tomato_Bacterial_spot", "Tomato_Early_blight", "Tomato_Late_blight", "Tomato_Leaf_Mold",
	"Tomato_Septoria_leaf_spot", "Tomato_Spider_mites", "Tomato_Target_Spot",
	"Tomato_Leaf_Curl_Virus", "Tomato_mosaic_virus", "Tomato_healthy",
}

// Default returns a configuration with every model kind and provider populated.
func Default() *Config {
	return &Config{
		Version: "1",
		Storage: StorageConfig{ModelsDir: DefaultModelsPath()},
		Models: map[string]ModelConfig{
			KindCrop: {
				Path:    "crop_recommendation.onnx",
				Inputs:  []string{"input"},
				Outputs: []string{"probabilities"},
				Labels:  CropLabels,
			},
			KindYield: {
				Path:    "yield_regressor.pb",
				Inputs:  []string{"input"},
				Outputs: []string{"variable"},
			},
			KindRisk: {
				Path:    "flood_risk.onnx",
				Inputs:  []string{"input"},
				Outputs: []string{"probabilities"},
			},
			KindDisease: {
				Path:    "plant_disease_mobilenet_v2.onnx",
				Inputs:  []string{"pixel_values"},
				Outputs: []string{"logits"},
				Labels:  DiseaseLabels,
				Image: &ImageConfig{
					Size:   224,
					Layout: "nchw",
					Mean:   []float32{0.5, 0.5, 0.5},
					Std:    []float32{0.5, 0.5, 0.5},
				},
			},
			KindSoil: {
				Path:    "soil_type_classifier.onnx",
				Inputs:  []string{"input"},
				Outputs: []string{"output"},
				Labels:  SoilLabels,
				Image: &ImageConfig{
					Size:   224,
					Layout: "nhwc",
				},
			},
		},
		Providers: ProvidersConfig{
			Timeout: defaultProviderTimeout.String(),
			Weather: WeatherConfig{
				BaseURL: "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline",
			},
			Soil: EndpointConfig{BaseURL: "https://rest.isric.org/soilgrids/v2.0/properties/query"},
			Geocode: GeocodeConfig{
				BaseURL:       "https://nominatim.openstreetmap.org/search",
				UserAgent:     "PlantX Climate Risk App",
				RatePerSecond: 1,
			},
			IPInfo: EndpointConfig{BaseURL: "https://ipinfo.io/json"},
		},
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort(),
			GRPCPort: DefaultGRPCPort(),
		},
		History: HistoryConfig{Capacity: defaultHistoryCapacity},
		Yield:   YieldConfig{Seed: defaultYieldSeed},
	}
}

// ApplyEnv overlays environment overrides onto cfg.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(envvar.PlantXModelsPath); v != "" {
		cfg.Storage.ModelsDir = v
	}
	if v := os.Getenv(envvar.PlantXWeatherAPIKey); v != "" {
		cfg.Providers.Weather.APIKey = v
	}
	if v := os.Getenv(envvar.PlantXONNXLibrary); v != "" {
		cfg.Runtime.ONNXLibrary = v
	}
	if v := os.Getenv(envvar.PlantXServerHTTPPort); v != "" {
		cfg.Server.HTTPPort = DefaultHTTPPort()
	}
	if v := os.Getenv(envvar.PlantXServerGRPCPort); v != "" {
		cfg.Server.GRPCPort = DefaultGRPCPort()
	}
}
