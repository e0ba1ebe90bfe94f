package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Model metrics
	ModelLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantx_model_loads_total",
			Help: "Total number of model load attempts by outcome",
		},
		[]string{"kind", "status"}, // status: loaded|degraded|failed
	)

	ModelLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plantx_model_load_duration_seconds",
			Help:    "Model load duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"kind"},
	)

	ModelStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "plantx_model_status",
			Help: "Current model status, 1 for the active status label",
		},
		[]string{"kind", "status"},
	)

	// Inference metrics
	Inferences = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantx_inferences_total",
			Help: "Total number of engine requests by outcome",
		},
		[]string{"engine", "status"}, // status: success|error|rejected
	)

	InferenceLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plantx_inference_latency_seconds",
			Help:    "Engine request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"engine"},
	)

	// Provider metrics
	ProviderCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantx_provider_calls_total",
			Help: "Total number of external data provider calls",
		},
		[]string{"provider", "status"}, // status: success|error
	)

	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plantx_provider_latency_seconds",
			Help:    "External data provider latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"provider"},
	)

	// Config metrics
	ConfigReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantx_config_reloads_total",
			Help: "Total number of configuration reloads",
		},
		[]string{"status"},
	)
)

var initOnce sync.Once

// Init registers every collector with the default registry.
func Init() {
	initOnce.Do(func() {
		// Model metrics
		prometheus.MustRegister(ModelLoads)
		prometheus.MustRegister(ModelLoadDuration)
		prometheus.MustRegister(ModelStatus)

		// Inference metrics
		prometheus.MustRegister(Inferences)
		prometheus.MustRegister(InferenceLatency)

		// Provider metrics
		prometheus.MustRegister(ProviderCalls)
		prometheus.MustRegister(ProviderLatency)

		// Config metrics
		prometheus.MustRegister(ConfigReloads)
	})
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// modelStatuses lists every status label so stale gauges can be cleared.
var modelStatuses = []string{"unloaded", "loading", "loaded", "degraded", "failed"}

// RecordModelStatus sets the status gauge of a model kind.
func RecordModelStatus(kind, status string) {
	for _, s := range modelStatuses {
		v := 0.0
		if s == status {
			v = 1
		}
		ModelStatus.WithLabelValues(kind, s).Set(v)
	}
}

// RecordModelLoad records the outcome of a load attempt.
func RecordModelLoad(kind, status string, duration time.Duration) {
	ModelLoads.WithLabelValues(kind, status).Inc()
	ModelLoadDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordInference records an engine request.
func RecordInference(engine, status string, latency time.Duration) {
	Inferences.WithLabelValues(engine, status).Inc()
	InferenceLatency.WithLabelValues(engine).Observe(latency.Seconds())
}

// RecordProviderCall records an external provider call.
func RecordProviderCall(provider string, latency time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ProviderCalls.WithLabelValues(provider, status).Inc()
	ProviderLatency.WithLabelValues(provider).Observe(latency.Seconds())
}

// RecordConfigReload records a configuration reload.
func RecordConfigReload(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ConfigReloads.WithLabelValues(status).Inc()
}
