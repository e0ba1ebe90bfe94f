package provider

import (
	"errors"
	"fmt"
)

// Error definitions for the provider package.
var (
	// ErrProvider is matched by every adapter failure.
	ErrProvider = errors.New("provider error")

	ErrNoAPIKey = errors.New("api key not configured")
	ErrNoData   = errors.New("response carried no data")
)

// StatusError reports a non-2xx response from an external service.
type StatusError struct {
	Provider string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.Status, e.Body)
}

// Is matches ErrProvider.
func (e *StatusError) Is(target error) bool {
	return target == ErrProvider
}

// WeatherProviderError is the StatusError of the weather service.
type WeatherProviderError = StatusError
