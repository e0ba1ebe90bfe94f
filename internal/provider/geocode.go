package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves place names with the Nominatim search API.
type Geocoder struct {
	client *client
}

// NewGeocoder creates a geocoding adapter. Nominatim requires an identifying
// User-Agent and at most one request per second.
func NewGeocoder(baseURL string, opts ...Option) *Geocoder {
	return &Geocoder{client: newClient("geocode", baseURL, opts)}
}

// Search resolves place to the best matching coordinates.
func (g *Geocoder) Search(ctx context.Context, place string) (*Coordinates, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, fmt.Errorf("%w: geocode: empty place", ErrProvider)
	}

	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "json")
	q.Set("limit", "1")

	var body []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := g.client.getJSON(ctx, g.client.baseURL+"?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: geocode: %w for %q", ErrProvider, ErrNoData, place)
	}

	lat, err := strconv.ParseFloat(body[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: geocode: latitude %q: %w", ErrProvider, body[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(body[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: geocode: longitude %q: %w", ErrProvider, body[0].Lon, err)
	}
	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}

// Geocode resolves place, returning nil when there is no match or the service fails.
func (g *Geocoder) Geocode(ctx context.Context, place string) *Coordinates {
	c, err := g.Search(ctx, place)
	if err != nil {
		slog.Debug("Geocoding failed", "place", place, "error", err)
		return nil
	}
	return c
}
