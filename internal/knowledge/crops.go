package knowledge

import (
	"fmt"
	"strings"
)

// CropProfile holds the typical growing conditions of a crop the recommender knows.
type CropProfile struct {
	Name        string  `json:"name"`
	N           float64 `json:"n"`
	P           float64 `json:"p"`
	K           float64 `json:"k"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
}

// Features returns the profile in crop feature order.
func (p CropProfile) Features() []float64 {
	return []float64{p.N, p.P, p.K, p.Temperature, p.Humidity, p.PH, p.Rainfall}
}

// Mean conditions per class of the crop recommendation dataset.
var cropProfiles = []CropProfile{
	{Name: "rice", N: 79.9, P: 47.6, K: 39.9, Temperature: 23.7, Humidity: 82.3, PH: 6.4, Rainfall: 236.2},
	{Name: "maize", N: 77.8, P: 48.4, K: 19.8, Temperature: 22.4, Humidity: 65.1, PH: 6.2, Rainfall: 84.8},
	{Name: "chickpea", N: 40.1, P: 67.8, K: 79.9, Temperature: 18.9, Humidity: 16.9, PH: 7.3, Rainfall: 80.1},
	{Name: "kidneybeans", N: 20.8, P: 67.5, K: 20.1, Temperature: 20.1, Humidity: 21.6, PH: 5.7, Rainfall: 105.9},
	{Name: "pigeonpeas", N: 20.7, P: 67.7, K: 20.3, Temperature: 27.7, Humidity: 48.1, PH: 5.8, Rainfall: 149.5},
	{Name: "mothbeans", N: 21.4, P: 48.0, K: 20.2, Temperature: 28.2, Humidity: 53.2, PH: 6.8, Rainfall: 51.2},
	{Name: "mungbean", N: 21.0, P: 47.3, K: 19.9, Temperature: 28.5, Humidity: 85.5, PH: 6.7, Rainfall: 48.4},
	{Name: "blackgram", N: 40.0, P: 67.5, K: 19.2, Temperature: 30.0, Humidity: 65.1, PH: 7.1, Rainfall: 67.9},
	{Name: "lentil", N: 18.8, P: 68.4, K: 19.4, Temperature: 24.5, Humidity: 64.8, PH: 6.9, Rainfall: 45.7},
	{Name: "pomegranate", N: 18.9, P: 18.8, K: 40.2, Temperature: 21.8, Humidity: 90.1, PH: 6.4, Rainfall: 107.5},
	{Name: "banana", N: 100.2, P: 82.0, K: 50.1, Temperature: 27.4, Humidity: 80.4, PH: 6.0, Rainfall: 104.6},
	{Name: "mango", N: 20.1, P: 27.2, K: 29.9, Temperature: 31.2, Humidity: 50.2, PH: 5.8, Rainfall: 94.7},
	{Name: "grapes", N: 23.2, P: 132.5, K: 200.1, Temperature: 23.8, Humidity: 81.9, PH: 6.0, Rainfall: 69.6},
	{Name: "watermelon", N: 99.4, P: 17.0, K: 50.2, Temperature: 25.6, Humidity: 85.2, PH: 6.5, Rainfall: 50.8},
	{Name: "muskmelon", N: 100.3, P: 17.7, K: 50.1, Temperature: 28.7, Humidity: 92.3, PH: 6.4, Rainfall: 24.7},
	{Name: "apple", N: 20.8, P: 134.2, K: 199.9, Temperature: 22.6, Humidity: 92.3, PH: 5.9, Rainfall: 112.7},
	{Name: "orange", N: 19.6, P: 16.6, K: 10.0, Temperature: 22.8, Humidity: 92.2, PH: 7.0, Rainfall: 110.5},
	{Name: "papaya", N: 49.9, P: 59.1, K: 50.0, Temperature: 33.7, Humidity: 92.4, PH: 6.7, Rainfall: 142.6},
	{Name: "coconut", N: 22.0, P: 16.9, K: 30.6, Temperature: 27.4, Humidity: 94.8, PH: 6.0, Rainfall: 175.7},
	{Name: "cotton", N: 117.8, P: 46.2, K: 19.6, Temperature: 24.0, Humidity: 79.8, PH: 6.9, Rainfall: 80.4},
	{Name: "jute", N: 78.4, P: 46.9, K: 40.0, Temperature: 25.0, Humidity: 79.6, PH: 6.7, Rainfall: 174.8},
	{Name: "coffee", N: 101.2, P: 28.7, K: 29.9, Temperature: 25.5, Humidity: 58.9, PH: 6.8, Rainfall: 158.1},
}

// CropProfiles returns every profile in classifier label order.
func CropProfiles() []CropProfile {
	return append([]CropProfile(nil), cropProfiles...)
}

// CropProfileFor finds a profile by name, ignoring case.
func CropProfileFor(name string) (CropProfile, error) {
	for _, p := range cropProfiles {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return CropProfile{}, fmt.Errorf("%w: crop profile %q", ErrLookupMiss, name)
}
