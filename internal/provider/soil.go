package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
)

// Topsoil depth interval reported by the soil adapter.
const topsoilDepth = "0-5cm"

// SoilGrids property names, in SoilProperties field order.
var soilProperties = []string{"phh2o", "ocd", "clay", "sand", "silt"}

// SoilProperties are SoilGrids mean values at 0-5 cm as reported, so pH is
// scaled by 10. A nil field means the response lacked that property.
type SoilProperties struct {
	PH            *float64 `json:"ph"`
	OrganicCarbon *float64 `json:"organic_carbon"`
	Clay          *float64 `json:"clay"`
	Sand          *float64 `json:"sand"`
	Silt          *float64 `json:"silt"`
}

type soilGridsResponse struct {
	Properties struct {
		Layers []struct {
			Name   string `json:"name"`
			Depths []struct {
				Label  string `json:"label"`
				Values struct {
					Mean *float64 `json:"mean"`
				} `json:"values"`
			} `json:"depths"`
		} `json:"layers"`
	} `json:"properties"`
}

// mean returns the topsoil mean of the named layer, or nil.
func (r *soilGridsResponse) mean(name string) *float64 {
	for _, layer := range r.Properties.Layers {
		if layer.Name != name {
			continue
		}
		for _, d := range layer.Depths {
			if d.Label == topsoilDepth {
				return d.Values.Mean
			}
		}
	}
	return nil
}

// Soil reads the SoilGrids v2 properties API.
type Soil struct {
	client *client
}

// NewSoil creates a soil adapter.
func NewSoil(baseURL string, opts ...Option) *Soil {
	return &Soil{client: newClient("soil", baseURL, opts)}
}

// Get fetches topsoil properties at a coordinate.
func (s *Soil) Get(ctx context.Context, lat, lon float64) (*SoilProperties, error) {
	q := url.Values{}
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	for _, p := range soilProperties {
		q.Add("property", p)
	}
	q.Set("depth", topsoilDepth)

	var body soilGridsResponse
	if err := s.client.getJSON(ctx, s.client.baseURL+"?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	if len(body.Properties.Layers) == 0 {
		return nil, fmt.Errorf("%w: soil: %w", ErrProvider, ErrNoData)
	}

	return &SoilProperties{
		PH:            body.mean("phh2o"),
		OrganicCarbon: body.mean("ocd"),
		Clay:          body.mean("clay"),
		Sand:          body.mean("sand"),
		Silt:          body.mean("silt"),
	}, nil
}

// Lookup fetches topsoil properties, returning nil on any failure.
func (s *Soil) Lookup(ctx context.Context, lat, lon float64) *SoilProperties {
	props, err := s.Get(ctx, lat, lon)
	if err != nil {
		slog.Warn("Soil data unavailable", "lat", lat, "lon", lon, "error", err)
		return nil
	}
	return props
}
