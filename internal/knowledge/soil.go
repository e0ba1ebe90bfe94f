package knowledge

import "fmt"

// UnknownSoil is returned for labels without a catalogue entry.
var UnknownSoil = SoilCharacteristics{
	Texture:        "Not available for this soil type",
	WaterRetention: "Not available",
	Fertility:      "Not available",
	PHTendency:     "Not available",
	SuitableCrops:  []string{},
	ManagementTips: []string{"Conduct a detailed soil test for more information"},
}

// Soils resolves soil labels to characteristics by exact name.
type Soils struct {
	byName map[string]SoilCharacteristics
}

// NewSoils builds the lookup from the built-in catalogue.
func NewSoils() *Soils {
	s := &Soils{byName: make(map[string]SoilCharacteristics, len(soilCatalogue))}
	for _, rec := range soilCatalogue {
		s.byName[rec.SoilType] = rec
	}
	return s
}

// Lookup returns the characteristics for label. Matching is exact; on a miss the
// UnknownSoil record is returned together with ErrLookupMiss.
func (s *Soils) Lookup(label string) (SoilCharacteristics, error) {
	if rec, ok := s.byName[label]; ok {
		return rec, nil
	}

	rec := UnknownSoil
	rec.SoilType = label
	return rec, fmt.Errorf("%w: soil type %q", ErrLookupMiss, label)
}

// All returns the catalogue in model output order.
func (s *Soils) All() []SoilCharacteristics {
	return append([]SoilCharacteristics(nil), soilCatalogue...)
}
