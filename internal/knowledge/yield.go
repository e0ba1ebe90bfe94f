package knowledge

import "slices"

// Yield levels.
const (
	LevelLow      = "low"
	LevelModerate = "moderate"
	LevelHigh     = "high"
)

// YieldThresholds are the lower bounds, in tons per hectare, of each yield level.
type YieldThresholds struct {
	Low      float64 `json:"low"`
	Moderate float64 `json:"moderate"`
	High     float64 `json:"high"`
}

// DefaultThresholds apply to crops without their own table.
var DefaultThresholds = YieldThresholds{Low: 0, Moderate: 1.5, High: 3}

// Level classifies y against the thresholds.
func (t YieldThresholds) Level(y float64) string {
	switch {
	case y < t.Moderate:
		return LevelLow
	case y < t.High:
		return LevelModerate
	default:
		return LevelHigh
	}
}

// YieldCap bounds the final yield of a crop whose magnitude the regressor cannot
// be trusted with, and rewards its traditional growing states.
type YieldCap struct {
	Min    float64
	Max    float64
	Bonus  float64
	States []string
}

// Clamp bounds y to [Min, Max].
func (c YieldCap) Clamp(y float64) float64 {
	return min(max(y, c.Min), c.Max)
}

// BonusFor returns the multiplier for state.
func (c YieldCap) BonusFor(state string) float64 {
	if slices.Contains(c.States, state) {
		return c.Bonus
	}
	return 1
}

// YieldProfile is the agronomic reference data for one yield crop.
type YieldProfile struct {
	Crop         string          `json:"crop"`
	BaseYield    float64         `json:"base_yield"`
	SuitedStates []string        `json:"suited_states,omitempty"`
	Thresholds   YieldThresholds `json:"thresholds"`
	Cap          *YieldCap       `json:"-"`
}

// Suited reports whether state is one of the crop's historically suited states.
func (p YieldProfile) Suited(state string) bool {
	return slices.Contains(p.SuitedStates, state)
}

// DefaultBaseYield is used for crops missing from the table.
const DefaultBaseYield = 2.0

var cardamomStates = []string{"Kerala", "Karnataka", "Tamil Nadu"}

// yieldProfiles are national average yields in tons per hectare.
var yieldProfiles = map[string]YieldProfile{
	"Arecanut":          {BaseYield: 1.8, SuitedStates: []string{"Karnataka", "Kerala", "Assam"}},
	"Arhar/Tur":         {BaseYield: 0.8, SuitedStates: []string{"Maharashtra", "Karnataka", "Madhya Pradesh"}},
	"Bajra":             {BaseYield: 1.2, SuitedStates: []string{"Uttar Pradesh", "Haryana", "Gujarat"}},
	"Banana":            {BaseYield: 30, SuitedStates: []string{"Tamil Nadu", "Maharashtra", "Gujarat"}, Thresholds: YieldThresholds{Low: 0, Moderate: 20, High: 40}},
	"Barley":            {BaseYield: 2.5, SuitedStates: []string{"Uttar Pradesh", "Madhya Pradesh", "Haryana"}},
	"Black pepper":      {BaseYield: 0.3, SuitedStates: []string{"Kerala", "Karnataka"}, Thresholds: YieldThresholds{Low: 0, Moderate: 0.2, High: 0.4}},
	"Cardamom":          {BaseYield: 0.25, SuitedStates: cardamomStates, Thresholds: YieldThresholds{Low: 0, Moderate: 0.2, High: 0.3}, Cap: &YieldCap{Min: 0.15, Max: 0.35, Bonus: 1.2, States: cardamomStates}},
	"Cashewnut":         {BaseYield: 0.8, SuitedStates: []string{"Maharashtra", "Andhra Pradesh", "Odisha"}},
	"Castor seed":       {BaseYield: 1.5, SuitedStates: []string{"Gujarat", "Telangana"}},
	"Coconut":           {BaseYield: 9, SuitedStates: []string{"Kerala", "Tamil Nadu", "Karnataka"}, Thresholds: YieldThresholds{Low: 0, Moderate: 6, High: 12}},
	"Coriander":         {BaseYield: 0.9, SuitedStates: []string{"Madhya Pradesh", "Gujarat"}},
	"Cotton(lint)":      {BaseYield: 0.5, SuitedStates: []string{"Gujarat", "Maharashtra", "Telangana"}, Thresholds: YieldThresholds{Low: 0, Moderate: 0.4, High: 0.7}},
	"Dry chillies":      {BaseYield: 2.0, SuitedStates: []string{"Andhra Pradesh", "Telangana", "Karnataka"}},
	"Garlic":            {BaseYield: 5.5, SuitedStates: []string{"Madhya Pradesh", "Gujarat"}, Thresholds: YieldThresholds{Low: 0, Moderate: 4, High: 7}},
	"Ginger":            {BaseYield: 4.0, SuitedStates: []string{"Kerala", "Meghalaya", "Sikkim"}, Thresholds: YieldThresholds{Low: 0, Moderate: 3, High: 6}},
	"Gram":              {BaseYield: 1.0, SuitedStates: []string{"Madhya Pradesh", "Maharashtra", "Karnataka"}},
	"Groundnut":         {BaseYield: 1.5, SuitedStates: []string{"Gujarat", "Andhra Pradesh", "Tamil Nadu"}},
	"Horse-gram":        {BaseYield: 0.5, SuitedStates: []string{"Karnataka", "Odisha"}},
	"Jowar":             {BaseYield: 1.0, SuitedStates: []string{"Maharashtra", "Karnataka"}},
	"Jute":              {BaseYield: 2.5, SuitedStates: []string{"West Bengal", "Bihar", "Assam"}},
	"Linseed":           {BaseYield: 0.5, SuitedStates: []string{"Madhya Pradesh", "Chhattisgarh"}},
	"Maize":             {BaseYield: 3.0, SuitedStates: []string{"Karnataka", "Madhya Pradesh", "Bihar"}, Thresholds: YieldThresholds{Low: 0, Moderate: 2, High: 4}},
	"Masoor":            {BaseYield: 0.9, SuitedStates: []string{"Madhya Pradesh", "Uttar Pradesh"}},
	"Moong(Green Gram)": {BaseYield: 0.6, SuitedStates: []string{"Maharashtra", "Karnataka"}},
	"Niger seed":        {BaseYield: 0.35, SuitedStates: []string{"Odisha", "Madhya Pradesh"}},
	"Onion":             {BaseYield: 17, SuitedStates: []string{"Maharashtra", "Karnataka", "Madhya Pradesh"}, Thresholds: YieldThresholds{Low: 0, Moderate: 12, High: 20}},
	"Potato":            {BaseYield: 22, SuitedStates: []string{"Uttar Pradesh", "West Bengal", "Bihar"}, Thresholds: YieldThresholds{Low: 0, Moderate: 15, High: 25}},
	"Ragi":              {BaseYield: 1.6, SuitedStates: []string{"Karnataka", "Tamil Nadu"}},
	"Rapeseed &Mustard": {BaseYield: 1.3, SuitedStates: []string{"Haryana", "Madhya Pradesh", "Uttar Pradesh"}},
	"Rice":              {BaseYield: 2.7, SuitedStates: []string{"West Bengal", "Punjab", "Andhra Pradesh"}, Thresholds: YieldThresholds{Low: 0, Moderate: 2, High: 3.5}},
	"Safflower":         {BaseYield: 0.7, SuitedStates: []string{"Maharashtra", "Karnataka"}},
	"Sesamum":           {BaseYield: 0.45, SuitedStates: []string{"West Bengal", "Gujarat"}},
	"Small millets":     {BaseYield: 0.8, SuitedStates: []string{"Madhya Pradesh", "Chhattisgarh"}},
	"Soyabean":          {BaseYield: 1.1, SuitedStates: []string{"Madhya Pradesh", "Maharashtra"}},
	"Sugarcane":         {BaseYield: 70, SuitedStates: []string{"Uttar Pradesh", "Maharashtra", "Karnataka"}, Thresholds: YieldThresholds{Low: 0, Moderate: 50, High: 80}},
	"Sunflower":         {BaseYield: 0.8, SuitedStates: []string{"Karnataka", "Andhra Pradesh"}},
	"Sweet potato":      {BaseYield: 11, SuitedStates: []string{"Odisha", "West Bengal"}, Thresholds: YieldThresholds{Low: 0, Moderate: 8, High: 14}},
	"Tapioca":           {BaseYield: 30, SuitedStates: []string{"Kerala", "Tamil Nadu"}, Thresholds: YieldThresholds{Low: 0, Moderate: 20, High: 35}},
	"Tobacco":           {BaseYield: 1.8, SuitedStates: []string{"Andhra Pradesh", "Gujarat"}},
	"Turmeric":          {BaseYield: 5.0, SuitedStates: []string{"Telangana", "Maharashtra", "Tamil Nadu"}, Thresholds: YieldThresholds{Low: 0, Moderate: 4, High: 6}},
	"Urad":              {BaseYield: 0.6, SuitedStates: []string{"Madhya Pradesh", "Uttar Pradesh"}},
	"Wheat":             {BaseYield: 3.4, SuitedStates: []string{"Punjab", "Haryana", "Uttar Pradesh"}, Thresholds: YieldThresholds{Low: 0, Moderate: 2.5, High: 4.5}},
}

// YieldProfileFor returns the profile for crop. Unknown crops get the default
// base yield and thresholds with no suited states.
func YieldProfileFor(crop string) YieldProfile {
	p, ok := yieldProfiles[crop]
	if !ok {
		return YieldProfile{Crop: crop, BaseYield: DefaultBaseYield, Thresholds: DefaultThresholds}
	}
	p.Crop = crop
	if p.Thresholds == (YieldThresholds{}) {
		p.Thresholds = DefaultThresholds
	}
	return p
}

// BaseYield returns the national average yield of crop.
func BaseYield(crop string) float64 {
	return YieldProfileFor(crop).BaseYield
}

// YieldCrops returns the names of every crop with a profile, sorted.
func YieldCrops() []string {
	names := make([]string, 0, len(yieldProfiles))
	for name := range yieldProfiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
