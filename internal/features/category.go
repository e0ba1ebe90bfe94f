package features

import (
	"strings"
)

// CategoryMap is a closed bijection between category names and small integer codes.
// Codes are the position in the name list and never change at runtime.
type CategoryMap struct {
	category string
	names    []string
	codes    map[string]int
	folded   map[string]int
}

// NewCategoryMap builds a map from an ordered list of unique names.
func NewCategoryMap(category string, names ...string) *CategoryMap {
	m := &CategoryMap{
		category: category,
		names:    append([]string(nil), names...),
		codes:    make(map[string]int, len(names)),
		folded:   make(map[string]int, len(names)),
	}
	for i, name := range names {
		if _, dup := m.codes[name]; dup {
			panic("features: duplicate " + category + " " + name)
		}
		m.codes[name] = i
		m.folded[strings.ToLower(name)] = i
	}
	return m
}

// Category names what the map encodes, e.g. "state".
func (m *CategoryMap) Category() string {
	return m.category
}

// Code returns the code for name. Matching ignores case and surrounding spaces.
func (m *CategoryMap) Code(name string) (int, error) {
	if code, ok := m.codes[name]; ok {
		return code, nil
	}
	if code, ok := m.folded[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code, nil
	}
	return 0, &UnknownCategoryError{Category: m.category, Value: name}
}

// Name returns the canonical name for code.
func (m *CategoryMap) Name(code int) (string, bool) {
	if code < 0 || code >= len(m.names) {
		return "", false
	}
	return m.names[code], true
}

// Canonical returns the canonical spelling of name.
func (m *CategoryMap) Canonical(name string) (string, error) {
	code, err := m.Code(name)
	if err != nil {
		return "", err
	}
	return m.names[code], nil
}

// Names returns the names in code order.
func (m *CategoryMap) Names() []string {
	return append([]string(nil), m.names...)
}

// Len returns the number of categories.
func (m *CategoryMap) Len() int {
	return len(m.names)
}

// Crops used by the yield model. Order is the training encoding.
var Crops = NewCategoryMap("crop",
	"Arecanut", "Arhar/Tur", "Bajra", "Banana", "Barley", "Black pepper",
	"Cardamom", "Cashewnut", "Castor seed", "Coconut", "Coriander", "Cotton(lint)",
	"Dry chillies", "Garlic", "Ginger", "Gram", "Groundnut", "Horse-gram",
	"Jowar", "Jute", "Linseed", "Maize", "Masoor", "Moong(Green Gram)",
	"Niger seed", "Onion", "Potato", "Ragi", "Rapeseed &Mustard", "Rice",
	"Safflower", "Sesamum", "Small millets", "Soyabean", "Sugarcane", "Sunflower",
	"Sweet potato", "Tapioca", "Tobacco", "Turmeric", "Urad", "Wheat",
)

// States used by the yield model. Order is the training encoding.
var States = NewCategoryMap("state",
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Delhi", "Goa", "Gujarat", "Haryana", "Himachal Pradesh",
	"Jammu and Kashmir", "Jharkhand", "Karnataka", "Kerala", "Madhya Pradesh",
	"Maharashtra", "Manipur", "Meghalaya", "Mizoram", "Nagaland",
	"Odisha", "Puducherry", "Punjab", "Sikkim", "Tamil Nadu",
	"Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand", "West Bengal",
)

// LandCovers used by the flood risk model.
var LandCovers = NewCategoryMap("land cover",
	"Agricultural", "Desert", "Forest", "Urban", "Water Body",
)

// FloodSoils are the soil types used by the flood risk model.
var FloodSoils = NewCategoryMap("soil type",
	"Clay", "Loam", "Peat", "Sandy", "Silt",
)
