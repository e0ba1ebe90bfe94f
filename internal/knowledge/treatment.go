package knowledge

import (
	"fmt"
	"strings"
)

// Treatment is the reference record for a plant disease.
type Treatment struct {
	Name       string   `json:"name"`
	Cause      string   `json:"cause"`
	Symptoms   string   `json:"symptoms"`
	Treatment  []string `json:"treatment"`
	Prevention string   `json:"prevention"`
}

// Matcher decides whether a predicted label selects a record.
type Matcher func(label string) bool

type treatmentRule struct {
	match  Matcher
	record Treatment
}

// Treatments resolves predicted disease labels to treatment records.
// Rules are evaluated in order and the first match wins.
type Treatments struct {
	rules []treatmentRule
}

// ContainsFold matches when label and key contain one another, ignoring case.
func ContainsFold(key string) Matcher {
	k := strings.ToLower(key)
	return func(label string) bool {
		l := strings.ToLower(label)
		return strings.Contains(k, l) || strings.Contains(l, k)
	}
}

// HealthyMatcher matches any label that mentions "healthy".
func HealthyMatcher(label string) bool {
	return strings.Contains(strings.ToLower(label), "healthy")
}

// NewTreatments builds the lookup from the built-in records.
//
// Priority: the healthy rule first, then each disease in catalogue order, then
// the generic record (which only matches labels naming it).
func NewTreatments() *Treatments {
	t := &Treatments{}
	t.rules = append(t.rules, treatmentRule{match: HealthyMatcher, record: healthyTreatment})
	for _, rec := range diseaseCatalogue {
		t.rules = append(t.rules, treatmentRule{match: ContainsFold(rec.Name), record: rec})
	}
	t.rules = append(t.rules, treatmentRule{match: ContainsFold(genericTreatment.Name), record: genericTreatment})
	return t
}

// Lookup returns the first record whose rule matches label.
func (t *Treatments) Lookup(label string) (Treatment, error) {
	if strings.TrimSpace(label) == "" {
		return Treatment{}, fmt.Errorf("%w: empty label", ErrLookupMiss)
	}
	for _, r := range t.rules {
		if r.match(label) {
			return r.record, nil
		}
	}
	return Treatment{}, fmt.Errorf("%w: %q", ErrLookupMiss, label)
}

// All returns every record in priority order.
func (t *Treatments) All() []Treatment {
	out := make([]Treatment, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.record
	}
	return out
}

var healthyTreatment = Treatment{
	Name:     "Healthy",
	Cause:    "No disease detected",
	Symptoms: "Plant appears healthy with normal coloration and growth pattern",
	Treatment: []string{
		"Continue regular plant care",
		"Monitor for early signs of pests or disease",
		"Maintain proper watering and fertilization",
		"Practice preventative measures",
	},
	Prevention: "Regular monitoring, proper spacing, crop rotation, and sanitation will help maintain plant health",
}

var genericTreatment = Treatment{
	Name:     "Generic",
	Cause:    "Various pathogens including fungi, bacteria, or viruses",
	Symptoms: "Symptoms vary by disease but may include spots, wilting, or abnormal growth",
	Treatment: []string{
		"Remove and destroy infected plant parts",
		"Apply appropriate fungicides or pesticides if needed",
		"Improve air circulation around plants",
		"Avoid overhead watering",
	},
	Prevention: "Practice crop rotation, use resistant varieties, maintain proper plant spacing",
}
