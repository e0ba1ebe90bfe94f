package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/plantx/internal/provider"
)

type (
	// GetWeatherInput is the huma input for the GetWeather operation.
	GetWeatherInput struct {
		Location string `query:"location" doc:"City name or lat,lon; detected from the caller IP when empty"`
	}

	// WeatherReport is a weather snapshot for a resolved location.
	WeatherReport struct {
		Location string                    `json:"location"`
		Live     bool                      `json:"live"`
		Weather  *provider.WeatherSnapshot `json:"weather"`
	}

	// GetWeatherOutput is the huma output for the GetWeather operation.
	GetWeatherOutput struct {
		Body WeatherReport
	}

	// GetSoilDataInput is the huma input for the GetSoilData operation.
	GetSoilDataInput struct {
		Latitude  float64 `query:"lat" minimum:"-90" maximum:"90" required:"true"`
		Longitude float64 `query:"lon" minimum:"-180" maximum:"180" required:"true"`
	}

	// SoilReport wraps the topsoil properties of a point.
	SoilReport struct {
		Available  bool                     `json:"available"`
		Properties *provider.SoilProperties `json:"properties,omitempty"`
	}

	// GetSoilDataOutput is the huma output for the GetSoilData operation.
	GetSoilDataOutput struct {
		Body SoilReport
	}

	// GeocodeInput is the huma input for the Geocode operation.
	GeocodeInput struct {
		Place string `query:"place" required:"true" minLength:"1"`
	}

	// GeocodeOutput is the huma output for the Geocode operation.
	GeocodeOutput struct {
		Body *provider.Coordinates
	}

	// LocationReport is the detected location of the server.
	LocationReport struct {
		Location string `json:"location"`
	}

	// GetLocationOutput is the huma output for the GetLocation operation.
	GetLocationOutput struct {
		Body LocationReport
	}
)

// DataHandler exposes the external data providers.
type DataHandler struct {
	providers *provider.Set
}

// NewDataHandler creates a new DataHandler instance.
func NewDataHandler(api huma.API, providers *provider.Set) *DataHandler {
	h := &DataHandler{providers: providers}

	huma.Register(api, huma.Operation{
		OperationID: "get-weather",
		Method:      http.MethodGet,
		Path:        "/weather",
		Summary:     "Current weather and a seven day forecast",
		Tags:        []string{"data"},
	}, h.handleGetWeather)

	huma.Register(api, huma.Operation{
		OperationID: "get-soil-data",
		Method:      http.MethodGet,
		Path:        "/soil-data",
		Summary:     "Topsoil properties at a point",
		Tags:        []string{"data"},
	}, h.handleGetSoilData)

	huma.Register(api, huma.Operation{
		OperationID: "geocode",
		Method:      http.MethodGet,
		Path:        "/geocode",
		Summary:     "Resolve a place name to coordinates",
		Tags:        []string{"data"},
	}, h.handleGeocode)

	huma.Register(api, huma.Operation{
		OperationID: "get-location",
		Method:      http.MethodGet,
		Path:        "/location",
		Summary:     "Approximate location of the server",
		Tags:        []string{"data"},
	}, h.handleGetLocation)

	return h
}

func (h *DataHandler) handleGetWeather(ctx context.Context, input *GetWeatherInput) (*GetWeatherOutput, error) {
	location := input.Location
	if location == "" {
		location = h.providers.Locator.Locate(ctx)
	}

	snap, live := h.providers.Weather.GetOrDefault(ctx, location)
	return &GetWeatherOutput{Body: WeatherReport{Location: location, Live: live, Weather: snap}}, nil
}

func (h *DataHandler) handleGetSoilData(ctx context.Context, input *GetSoilDataInput) (*GetSoilDataOutput, error) {
	props := h.providers.Soil.Lookup(ctx, input.Latitude, input.Longitude)
	return &GetSoilDataOutput{Body: SoilReport{Available: props != nil, Properties: props}}, nil
}

func (h *DataHandler) handleGeocode(ctx context.Context, input *GeocodeInput) (*GeocodeOutput, error) {
	coords := h.providers.Geocoder.Geocode(ctx, input.Place)
	if coords == nil {
		return nil, huma.Error404NotFound("place not found: " + input.Place)
	}
	return &GeocodeOutput{Body: coords}, nil
}

func (h *DataHandler) handleGetLocation(ctx context.Context, _ *struct{}) (*GetLocationOutput, error) {
	return &GetLocationOutput{Body: LocationReport{Location: h.providers.Locator.Locate(ctx)}}, nil
}
