package provider

import (
	"context"
	"log/slog"
	"strings"
)

// DefaultLocation is reported whenever the IP location cannot be determined.
const DefaultLocation = "New Delhi, India"

// Locator estimates the caller's location from its public IP using ipinfo.
type Locator struct {
	client *client
}

// NewLocator creates an IP location adapter.
func NewLocator(baseURL string, opts ...Option) *Locator {
	return &Locator{client: newClient("ipinfo", baseURL, opts)}
}

// Locate returns "City, Country", or DefaultLocation on any failure or when
// the response has no city.
func (l *Locator) Locate(ctx context.Context) string {
	var body struct {
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
	}
	if err := l.client.getJSON(ctx, l.client.baseURL, &body); err != nil {
		slog.Debug("IP location failed", "error", err)
		return DefaultLocation
	}

	city := strings.TrimSpace(body.City)
	if city == "" || city == "Unknown" {
		return DefaultLocation
	}
	return city + ", " + body.Country
}
