package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/plantx/internal/config"
)

func serveJSON(t *testing.T, status int, body any, check func(*http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func timeline(days int) map[string]any {
	list := make([]map[string]any, days)
	for i := range list {
		list[i] = map[string]any{
			"datetime":    fmt.Sprintf("2025-06-%02d", i+1),
			"temp":        30.5,
			"tempmin":     24.0,
			"tempmax":     35.1,
			"precip":      12.4,
			"humidity":    78.0,
			"conditions":  "Rain",
			"description": "Showers in the afternoon.",
			"icon":        "rain",
		}
	}
	return map[string]any{"days": list}
}

func TestWeather_Get(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, timeline(15), func(r *http.Request) {
		assert.Equal(t, "/Pune,India", r.URL.Path)
		assert.Equal(t, "metric", r.URL.Query().Get("unitGroup"))
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
	})

	snap, err := NewWeather(srv.URL+"/", "secret").Get(context.Background(), "Pune,India")
	require.NoError(t, err)

	assert.InDelta(t, 30.5, snap.Temperature, 1e-9)
	assert.InDelta(t, 12.4, snap.Rainfall, 1e-9)
	assert.InDelta(t, 78.0, snap.Humidity, 1e-9)
	require.Len(t, snap.Forecast, ForecastDays)
	assert.Equal(t, "2025-06-01", snap.Forecast[0].Date)
	assert.Equal(t, "rain", snap.Forecast[0].Icon)
	assert.InDelta(t, 35.1, snap.Forecast[6].TempMax, 1e-9)
}

func TestWeather_MissingIconDefaultsToCloudy(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, map[string]any{
		"days": []map[string]any{{"datetime": "2025-06-01", "temp": 20}},
	}, nil)

	snap, err := NewWeather(srv.URL, "k").Get(context.Background(), FormatCoordinates(18.52, 73.85))
	require.NoError(t, err)
	require.Len(t, snap.Forecast, 1)
	assert.Equal(t, "cloudy", snap.Forecast[0].Icon)
}

func TestWeather_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("No account found with API key"))
	}))
	defer srv.Close()

	w := NewWeather(srv.URL, "bad")
	_, err := w.Get(context.Background(), "Nowhere")
	require.ErrorIs(t, err, ErrProvider)

	var werr *WeatherProviderError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, http.StatusUnauthorized, werr.Status)
	assert.Contains(t, werr.Body, "No account found")

	snap, live := w.GetOrDefault(context.Background(), "Nowhere")
	assert.False(t, live)
	assert.Equal(t, DefaultWeather(), snap)
}

func TestWeather_NoAPIKey(t *testing.T) {
	_, err := NewWeather("http://127.0.0.1:0", "").Get(context.Background(), "Pune")
	require.ErrorIs(t, err, ErrNoAPIKey)
	require.ErrorIs(t, err, ErrProvider)
}

func TestWeather_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewWeather(srv.URL, "k", WithTimeout(50*time.Millisecond)).Get(context.Background(), "Pune")
	require.ErrorIs(t, err, ErrProvider)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestSoil_Get(t *testing.T) {
	body := map[string]any{
		"properties": map[string]any{
			"layers": []map[string]any{
				{"name": "phh2o", "depths": []map[string]any{{"label": "0-5cm", "values": map[string]any{"mean": 63}}}},
				{"name": "clay", "depths": []map[string]any{{"label": "0-5cm", "values": map[string]any{"mean": 312}}}},
				{"name": "sand", "depths": []map[string]any{{"label": "5-15cm", "values": map[string]any{"mean": 400}}}},
				{"name": "silt", "depths": []map[string]any{{"label": "0-5cm", "values": map[string]any{"mean": nil}}}},
			},
		},
	}
	srv := serveJSON(t, http.StatusOK, body, func(r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, []string{"phh2o", "ocd", "clay", "sand", "silt"}, q["property"])
		assert.Equal(t, "0-5cm", q.Get("depth"))
		assert.Equal(t, "18.5", q.Get("lat"))
		assert.Equal(t, "73.8", q.Get("lon"))
	})

	props, err := NewSoil(srv.URL).Get(context.Background(), 18.5, 73.8)
	require.NoError(t, err)

	require.NotNil(t, props.PH)
	assert.InDelta(t, 63.0, *props.PH, 1e-9)
	require.NotNil(t, props.Clay)
	assert.InDelta(t, 312.0, *props.Clay, 1e-9)
	assert.Nil(t, props.OrganicCarbon)
	assert.Nil(t, props.Sand)
	assert.Nil(t, props.Silt)
}

func TestSoil_LookupSwallowsErrors(t *testing.T) {
	srv := serveJSON(t, http.StatusInternalServerError, map[string]any{"detail": "boom"}, nil)

	assert.Nil(t, NewSoil(srv.URL).Lookup(context.Background(), 0, 0))
}

func TestGeocoder(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, []map[string]any{{"lat": "18.5204", "lon": "73.8567"}}, func(r *http.Request) {
		assert.Equal(t, "PlantX Climate Risk App", r.Header.Get("User-Agent"))
		assert.Equal(t, "Pune", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
	})

	g := NewGeocoder(srv.URL, WithUserAgent("PlantX Climate Risk App"))
	c := g.Geocode(context.Background(), "Pune")
	require.NotNil(t, c)
	assert.InDelta(t, 18.5204, c.Latitude, 1e-9)
	assert.InDelta(t, 73.8567, c.Longitude, 1e-9)
}

func TestGeocoder_NoMatch(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, []map[string]any{}, nil)

	g := NewGeocoder(srv.URL)
	assert.Nil(t, g.Geocode(context.Background(), "Atlantis"))

	_, err := g.Search(context.Background(), "Atlantis")
	require.ErrorIs(t, err, ErrNoData)
}

func TestGeocoder_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := serveJSON(t, http.StatusOK, []map[string]any{{"lat": "1", "lon": "2"}}, func(*http.Request) {
		calls.Add(1)
	})

	g := NewGeocoder(srv.URL, WithRateLimit(20))
	started := time.Now()
	for range 3 {
		require.NotNil(t, g.Geocode(context.Background(), "Pune"))
	}

	assert.Equal(t, int32(3), calls.Load())
	assert.GreaterOrEqual(t, time.Since(started), 90*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, g.Geocode(ctx, "Pune"))
}

func TestLocator(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		want   string
	}{
		{"city", http.StatusOK, map[string]any{"city": "Pune", "region": "Maharashtra", "country": "IN"}, "Pune, IN"},
		{"no city", http.StatusOK, map[string]any{"country": "IN"}, DefaultLocation},
		{"malformed", http.StatusOK, "not an object", DefaultLocation},
		{"error status", http.StatusTooManyRequests, map[string]any{}, DefaultLocation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveJSON(t, tt.status, tt.body, nil)
			assert.Equal(t, tt.want, NewLocator(srv.URL).Locate(context.Background()))
		})
	}

	assert.Equal(t, DefaultLocation, NewLocator("http://127.0.0.1:1").Locate(context.Background()))
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "https://example.com/x?key=REDACTED&unitGroup=metric", redact("https://example.com/x?key=secret&unitGroup=metric"))
	assert.Equal(t, "https://example.com/x", redact("https://example.com/x"))
}

func TestNewSet(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, []map[string]any{{"lat": "1", "lon": "2"}}, func(r *http.Request) {
		assert.Equal(t, "PlantX test", r.Header.Get("User-Agent"))
	})

	set := NewSet(config.ProvidersConfig{
		Geocode: config.GeocodeConfig{BaseURL: srv.URL, UserAgent: "PlantX test", RatePerSecond: 100},
	}, time.Second)

	require.NotNil(t, set.Weather)
	require.NotNil(t, set.Soil)
	require.NotNil(t, set.Locator)
	assert.Equal(t, &Coordinates{Latitude: 1, Longitude: 2}, set.Geocoder.Geocode(context.Background(), "x"))
	assert.Empty(t, set.Soil.client.userAgent)
}
