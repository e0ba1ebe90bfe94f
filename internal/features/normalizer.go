package features

import (
	"fmt"

	"github.com/ekisa-team/plantx/internal/mapsafe"
)

// CropInput holds the user-supplied crop recommendation fields.
type CropInput struct {
	N           float64 `json:"n"`
	P           float64 `json:"p"`
	K           float64 `json:"k"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
}

// YieldInput holds the yield prediction fields. SoilPH and OrganicCarbon are
// auto-filled from the state profile when nil.
type YieldInput struct {
	Crop          string   `json:"crop"`
	State         string   `json:"state"`
	Area          float64  `json:"area"`
	Pesticide     float64  `json:"pesticide"`
	Temperature   float64  `json:"temperature"`
	Humidity      float64  `json:"humidity"`
	Rainfall      float64  `json:"rainfall"`
	SoilPH        *float64 `json:"soil_ph,omitempty"`
	OrganicCarbon *float64 `json:"organic_carbon,omitempty"`
}

// RiskInput holds the flood risk fields.
type RiskInput struct {
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Rainfall          float64 `json:"rainfall"`
	Temperature       float64 `json:"temperature"`
	Humidity          float64 `json:"humidity"`
	RiverDischarge    float64 `json:"river_discharge"`
	WaterLevel        float64 `json:"water_level"`
	Elevation         float64 `json:"elevation"`
	LandCover         string  `json:"land_cover"`
	SoilType          string  `json:"soil_type"`
	PopulationDensity float64 `json:"population_density"`
	Infrastructure    float64 `json:"infrastructure"`
	HistoricalFloods  float64 `json:"historical_floods"`
}

// Normalizer maps raw inputs onto task feature vectors.
type Normalizer struct {
	crops      *CategoryMap
	states     *CategoryMap
	landCovers *CategoryMap
	soils      *CategoryMap
	stateSoils map[string]StateSoil
}

// NewNormalizer returns a normalizer over the built-in category maps.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		crops:      Crops,
		states:     States,
		landCovers: LandCovers,
		soils:      FloodSoils,
		stateSoils: StateSoils,
	}
}

// Crop builds the crop recommendation vector. All fields pass through unchanged.
func (n *Normalizer) Crop(in CropInput) (Vector, error) {
	return newVector(TaskCrop,
		in.N, in.P, in.K, in.Temperature, in.Humidity, in.PH, in.Rainfall,
	), nil
}

// Yield builds the yield prediction vector.
func (n *Normalizer) Yield(in YieldInput) (Vector, error) {
	cropID, err := n.crops.Code(in.Crop)
	if err != nil {
		return Vector{}, err
	}

	stateID, err := n.states.Code(in.State)
	if err != nil {
		return Vector{}, err
	}

	state, _ := n.states.Name(stateID)
	profile, hasProfile := n.stateSoils[state]

	var ph float64
	switch {
	case in.SoilPH != nil:
		ph = *in.SoilPH
	case hasProfile:
		ph = profile.PH()
	default:
		return Vector{}, fmt.Errorf("%w: soil_pH for state %q", ErrMissingField, state)
	}

	var oc float64
	switch {
	case in.OrganicCarbon != nil:
		oc = *in.OrganicCarbon
	case hasProfile:
		oc = profile.OrganicCarbon
	default:
		return Vector{}, fmt.Errorf("%w: organic_carbon for state %q", ErrMissingField, state)
	}

	return newVector(TaskYield,
		float64(cropID), float64(stateID), in.Area, in.Pesticide, in.Temperature,
		in.Humidity, in.Rainfall, ph, oc,
	), nil
}

// Risk builds the flood risk vector.
func (n *Normalizer) Risk(in RiskInput) (Vector, error) {
	landCover, err := n.landCovers.Code(in.LandCover)
	if err != nil {
		return Vector{}, err
	}

	soil, err := n.soils.Code(in.SoilType)
	if err != nil {
		return Vector{}, err
	}

	return newVector(TaskRisk,
		in.Latitude, in.Longitude, in.Rainfall, in.Temperature, in.Humidity,
		in.RiverDischarge, in.WaterLevel, in.Elevation, float64(landCover), float64(soil),
		in.PopulationDensity, in.Infrastructure, in.HistoricalFloods,
	), nil
}

// Normalize dispatches a loosely typed document (e.g. decoded JSON) to the task normalizer.
// Keys are the task's schema names; categorical fields take names rather than codes.
func (n *Normalizer) Normalize(task Task, raw map[string]any) (Vector, error) {
	f := func(key string) float64 { return mapsafe.Get(raw, key, 0.0) }

	switch task {
	case TaskCrop:
		return n.Crop(CropInput{
			N: f("N"), P: f("P"), K: f("K"),
			Temperature: f("temperature"), Humidity: f("humidity"),
			PH: f("ph"), Rainfall: f("rainfall"),
		})
	case TaskYield:
		in := YieldInput{
			Crop:        mapsafe.Get(raw, "crop", ""),
			State:       mapsafe.Get(raw, "state", ""),
			Area:        f("area"),
			Pesticide:   f("pesticide"),
			Temperature: f("temperature"),
			Humidity:    f("humidity"),
			Rainfall:    f("rainfall"),
		}
		if _, ok := raw["soil_pH"]; ok {
			ph := f("soil_pH")
			in.SoilPH = &ph
		}
		if _, ok := raw["organic_carbon"]; ok {
			oc := f("organic_carbon")
			in.OrganicCarbon = &oc
		}
		return n.Yield(in)
	case TaskRisk:
		return n.Risk(RiskInput{
			Latitude: f("latitude"), Longitude: f("longitude"),
			Rainfall: f("rainfall"), Temperature: f("temperature"), Humidity: f("humidity"),
			RiverDischarge: f("river_discharge"), WaterLevel: f("water_level"), Elevation: f("elevation"),
			LandCover: mapsafe.Get(raw, "land_cover", ""), SoilType: mapsafe.Get(raw, "soil_type", ""),
			PopulationDensity: f("population_density"), Infrastructure: f("infrastructure"),
			HistoricalFloods: f("historical_floods"),
		})
	default:
		return Vector{}, fmt.Errorf("%w: %s", ErrUnknownTask, task)
	}
}
