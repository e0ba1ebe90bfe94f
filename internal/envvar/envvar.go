package envvar

const (
	// PlantXEnv is the environment variable used to determine the environment
	PlantXEnv = "PLANTX_ENV"

	// PlantXModelsPath is the environment variable used to override the models directory
	PlantXModelsPath = "PLANTX_MODELS_PATH"

	// PlantXServerHTTPPort is the environment variable used to determine the HTTP port
	PlantXServerHTTPPort = "PLANTX_SERVER_HTTP_PORT"

	// PlantXServerGRPCPort is the environment variable used to determine the gRPC port
	PlantXServerGRPCPort = "PLANTX_SERVER_GRPC_PORT"

	// PlantXWeatherAPIKey is the environment variable holding the weather provider key
	PlantXWeatherAPIKey = "PLANTX_WEATHER_API_KEY"

	// PlantXONNXLibrary is the environment variable pointing at the onnxruntime shared library
	PlantXONNXLibrary = "PLANTX_ONNX_LIBRARY"
)
