package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreatments_LookupIgnoresCase(t *testing.T) {
	tr := NewTreatments()

	got, err := tr.Lookup("tomato - late blight")
	require.NoError(t, err)
	assert.Equal(t, "Tomato - Late blight", got.Name)

	got, err = tr.Lookup("TOMATO - LATE BLIGHT")
	require.NoError(t, err)
	assert.Equal(t, "Tomato - Late blight", got.Name)
}

func TestTreatments_LookupMatchesBothDirections(t *testing.T) {
	tr := NewTreatments()

	// Label contained in the key.
	got, err := tr.Lookup("Apple - Scab")
	require.NoError(t, err)
	assert.Equal(t, "Apple - Scab", got.Name)

	// Key contained in the label.
	got, err = tr.Lookup("Grape - Black rot (Black Measles)")
	require.NoError(t, err)
	assert.Equal(t, "Grape - Black rot", got.Name)
}

func TestTreatments_FirstMatchWins(t *testing.T) {
	tr := NewTreatments()

	// "Tomato" is a substring of several keys; catalogue order decides.
	got, err := tr.Lookup("Tomato")
	require.NoError(t, err)
	assert.Equal(t, "Tomato - Late blight", got.Name)
}

func TestTreatments_HealthyOverridesDiseaseMatch(t *testing.T) {
	tr := NewTreatments()

	for _, label := range []string{"Tomato - Healthy", "Apple - healthy", "HEALTHY", "Corn - Common rust healthy"} {
		got, err := tr.Lookup(label)
		require.NoError(t, err, label)
		assert.Equal(t, "Healthy", got.Name, label)
	}
}

func TestTreatments_Miss(t *testing.T) {
	tr := NewTreatments()

	_, err := tr.Lookup("Cassava - Mosaic")
	require.ErrorIs(t, err, ErrLookupMiss)

	_, err = tr.Lookup("   ")
	require.ErrorIs(t, err, ErrLookupMiss)
}

func TestTreatments_GenericOnlyByName(t *testing.T) {
	tr := NewTreatments()

	got, err := tr.Lookup("generic")
	require.NoError(t, err)
	assert.Equal(t, "Generic", got.Name)
}

func TestTreatments_All(t *testing.T) {
	all := NewTreatments().All()

	require.Len(t, all, len(diseaseCatalogue)+2)
	assert.Equal(t, "Healthy", all[0].Name)
	assert.Equal(t, "Generic", all[len(all)-1].Name)
}

func TestSoils_ExactLookup(t *testing.T) {
	s := NewSoils()

	got, err := s.Lookup("Clay")
	require.NoError(t, err)
	assert.Equal(t, "Clay", got.SoilType)
	assert.Contains(t, got.SuitableCrops, "Rice")

	got, err = s.Lookup("clay")
	require.ErrorIs(t, err, ErrLookupMiss)
	assert.Equal(t, "clay", got.SoilType)
	assert.Equal(t, "Not available", got.Fertility)
	assert.Empty(t, got.SuitableCrops)
	assert.Equal(t, []string{"Conduct a detailed soil test for more information"}, got.ManagementTips)
}

func TestSoils_AllInOutputOrder(t *testing.T) {
	all := NewSoils().All()

	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.SoilType
	}
	assert.Equal(t, []string{"Clay", "Loamy", "Sandy", "Silty", "Peaty", "Chalky"}, names)
}

func TestCropProfileFor(t *testing.T) {
	p, err := CropProfileFor("Rice")
	require.NoError(t, err)
	assert.Equal(t, "rice", p.Name)
	assert.Len(t, p.Features(), 7)

	_, err = CropProfileFor("quinoa")
	require.ErrorIs(t, err, ErrLookupMiss)
}

func TestYieldThresholds_Level(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		want string
	}{
		{"zero", 0, LevelLow},
		{"below moderate", 1.49, LevelLow},
		{"at moderate", 1.5, LevelModerate},
		{"below high", 2.99, LevelModerate},
		{"at high", 3, LevelHigh},
		{"far above", 40, LevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultThresholds.Level(tt.y))
		})
	}
}

func TestYieldProfileFor(t *testing.T) {
	p := YieldProfileFor("Cardamom")
	assert.Equal(t, 0.25, p.BaseYield)
	require.NotNil(t, p.Cap)
	assert.Equal(t, 0.35, p.Cap.Clamp(1))
	assert.Equal(t, 0.15, p.Cap.Clamp(0.01))
	assert.Equal(t, 1.2, p.Cap.BonusFor("Kerala"))
	assert.Equal(t, 1.0, p.Cap.BonusFor("Punjab"))
	assert.True(t, p.Suited("Tamil Nadu"))

	p = YieldProfileFor("Bajra")
	assert.Equal(t, DefaultThresholds, p.Thresholds)
	assert.Nil(t, p.Cap)

	p = YieldProfileFor("Dragonfruit")
	assert.Equal(t, DefaultBaseYield, p.BaseYield)
	assert.Equal(t, DefaultThresholds, p.Thresholds)
	assert.False(t, p.Suited("Kerala"))
}

func TestYieldCrops_CoverEveryCategory(t *testing.T) {
	assert.Len(t, YieldCrops(), 42)
	assert.Equal(t, 70.0, BaseYield("Sugarcane"))
}
