package provider

import (
	"time"

	"github.com/ekisa-team/plantx/internal/config"
)

// Set bundles the external data adapters.
type Set struct {
	Weather  *Weather
	Soil     *Soil
	Geocoder *Geocoder
	Locator  *Locator
}

// NewSet builds every adapter from configuration. Each call is bounded by timeout.
func NewSet(cfg config.ProvidersConfig, timeout time.Duration, opts ...Option) *Set {
	base := append([]Option{WithTimeout(timeout)}, opts...)

	geocodeOpts := append(base[:len(base):len(base)],
		WithUserAgent(cfg.Geocode.UserAgent),
		WithRateLimit(cfg.Geocode.RatePerSecond),
	)

	return &Set{
		Weather:  NewWeather(cfg.Weather.BaseURL, cfg.Weather.APIKey, base...),
		Soil:     NewSoil(cfg.Soil.BaseURL, base...),
		Geocoder: NewGeocoder(cfg.Geocode.BaseURL, geocodeOpts...),
		Locator:  NewLocator(cfg.IPInfo.BaseURL, base...),
	}
}
