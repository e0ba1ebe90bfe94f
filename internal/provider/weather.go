package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
)

// ForecastDays is the number of daily records in a snapshot.
const ForecastDays = 7

// ForecastDay is one day of the forecast.
type ForecastDay struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"temperature"`
	TempMin     float64 `json:"tempMin"`
	TempMax     float64 `json:"tempMax"`
	Rainfall    float64 `json:"rainfall"`
	Humidity    float64 `json:"humidity"`
	Conditions  string  `json:"conditions"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// WeatherSnapshot is today's weather plus the forecast starting today.
type WeatherSnapshot struct {
	Temperature float64       `json:"temperature"`
	Rainfall    float64       `json:"rainfall"`
	Humidity    float64       `json:"humidity"`
	Forecast    []ForecastDay `json:"forecast"`
}

// DefaultWeather is reported when the weather service cannot be reached.
func DefaultWeather() *WeatherSnapshot {
	return &WeatherSnapshot{Temperature: 25, Rainfall: 0, Humidity: 60, Forecast: []ForecastDay{}}
}

type timelineResponse struct {
	Days []struct {
		Datetime    string  `json:"datetime"`
		Temp        float64 `json:"temp"`
		TempMin     float64 `json:"tempmin"`
		TempMax     float64 `json:"tempmax"`
		Precip      float64 `json:"precip"`
		Humidity    float64 `json:"humidity"`
		Conditions  string  `json:"conditions"`
		Description string  `json:"description"`
		Icon        *string `json:"icon"`
	} `json:"days"`
}

// Weather reads the Visual Crossing timeline API.
type Weather struct {
	client *client
	apiKey string
}

// NewWeather creates a weather adapter.
func NewWeather(baseURL, apiKey string, opts ...Option) *Weather {
	return &Weather{
		client: newClient("weather", strings.TrimSuffix(baseURL, "/"), opts),
		apiKey: apiKey,
	}
}

// FormatCoordinates renders a location as the "lat,lon" form accepted by Get.
func FormatCoordinates(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}

// Get fetches the weather for a place name or "lat,lon" pair.
func (w *Weather) Get(ctx context.Context, location string) (*WeatherSnapshot, error) {
	if w.apiKey == "" {
		return nil, fmt.Errorf("%w: weather: %w", ErrProvider, ErrNoAPIKey)
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: weather: empty location", ErrProvider)
	}

	q := url.Values{}
	q.Set("unitGroup", "metric")
	q.Set("key", w.apiKey)
	q.Set("contentType", "json")
	rawURL := w.client.baseURL + "/" + url.PathEscape(location) + "?" + q.Encode()

	var body timelineResponse
	if err := w.client.getJSON(ctx, rawURL, &body); err != nil {
		return nil, err
	}
	if len(body.Days) == 0 {
		return nil, fmt.Errorf("%w: weather: %w", ErrProvider, ErrNoData)
	}

	today := body.Days[0]
	snap := &WeatherSnapshot{
		Temperature: today.Temp,
		Rainfall:    today.Precip,
		Humidity:    today.Humidity,
		Forecast:    make([]ForecastDay, 0, ForecastDays),
	}
	for _, d := range body.Days[:min(len(body.Days), ForecastDays)] {
		icon := "cloudy"
		if d.Icon != nil {
			icon = *d.Icon
		}
		snap.Forecast = append(snap.Forecast, ForecastDay{
			Date:        d.Datetime,
			Temperature: d.Temp,
			TempMin:     d.TempMin,
			TempMax:     d.TempMax,
			Rainfall:    d.Precip,
			Humidity:    d.Humidity,
			Conditions:  d.Conditions,
			Description: d.Description,
			Icon:        icon,
		})
	}
	return snap, nil
}

// GetOrDefault fetches the weather, returning DefaultWeather on any failure.
// The boolean reports whether the snapshot is live.
func (w *Weather) GetOrDefault(ctx context.Context, location string) (*WeatherSnapshot, bool) {
	snap, err := w.Get(ctx, location)
	if err != nil {
		slog.Warn("Weather unavailable, using defaults", "location", location, "error", err)
		return DefaultWeather(), false
	}
	return snap, true
}
