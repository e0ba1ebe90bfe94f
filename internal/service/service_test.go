package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/plantx/internal/backend"
	"github.com/ekisa-team/plantx/internal/config"
	"github.com/ekisa-team/plantx/internal/envvar"
	"github.com/ekisa-team/plantx/internal/features"
	"github.com/ekisa-team/plantx/internal/imaging"
	"github.com/ekisa-team/plantx/internal/knowledge"
	"github.com/ekisa-team/plantx/internal/model"
)

// MockBackend is a mock implementation of the backend.Backend interface.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Provider() backend.Provider {
	return backend.ProviderONNX
}

func (m *MockBackend) Infer(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*backend.Response)
	return resp, args.Error(1)
}

func (m *MockBackend) Close() error {
	return nil
}

// stubDecoder accepts any artifact and serves b.
type stubDecoder struct {
	b backend.Backend
}

func (d stubDecoder) Provider() backend.Provider {
	return backend.ProviderONNX
}

func (d stubDecoder) Decode(backend.Spec, []byte) (backend.Backend, error) {
	return d.b, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(envvar.PlantXModelsPath, "")
	cfg := config.Default()
	cfg.Storage.ModelsDir = t.TempDir()
	return cfg
}

// fallbackModels returns a registry with no artifacts, so every kind that has
// a backup model is served by it.
func fallbackModels(t *testing.T) *model.Registry {
	t.Helper()
	cfg := testConfig(t)
	reg := model.NewRegistry(cfg, model.DefaultFallbacks()...)
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}

// mockedModels returns a registry whose kind is served by b.
func mockedModels(t *testing.T, kind model.Kind, b backend.Backend) *model.Registry {
	t.Helper()
	cfg := testConfig(t)
	path := filepath.Join(cfg.Storage.ModelsDir, cfg.Models[string(kind)].Path)
	require.NoError(t, os.WriteFile(path, []byte("artifact"), 0o644))

	decoders := backend.NewRegistry()
	require.NoError(t, decoders.Register(stubDecoder{b: b}))

	reg := model.NewRegistry(cfg, model.WithDecoders(decoders))
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}

func response(out ...float32) *backend.Response {
	return &backend.Response{
		Output:   out,
		Metadata: backend.NewMetadata(backend.ProviderONNX, "mock", time.Now()),
	}
}

func solidPNG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := range 32 {
		for x := range 32 {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func ptr[T any](v T) *T {
	return &v
}

func TestRank(t *testing.T) {
	r := Rank([]string{"a", "b", "a", "c"}, []float64{0.1, 0.5, 0.3, 0.05, 0.05}, 3)

	require.Len(t, r, 3)
	assert.Equal(t, Prediction{Label: "b", Confidence: 0.5}, r[0])
	assert.Equal(t, Prediction{Label: "a", Confidence: 0.3}, r[1])
	assert.Equal(t, "c", r[2].Label)

	all := Rank([]string{"x"}, []float64{0.2, 0.8}, 0)
	assert.Equal(t, "class_1", all[0].Label)
	assert.Len(t, all, 2)

	_, ok := Ranking{}.Top()
	assert.False(t, ok)
}

func TestFormatDiseaseLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tomato_Late_blight", "Tomato - Late blight"},
		{"Healthy", "Healthy"},
		{"Apple_healthy", "Apple - Healthy"},
		{"Corn_Northern_Leaf_Blight", "Corn - Northern Leaf Blight"},
		{"Bell Pepper_Bacterial_spot", "Bell Pepper - Bacterial spot"},
		{"Tomato__Target_Spot", "Tomato - Target Spot"},
		{"Tomato_", "Tomato"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDiseaseLabel(tt.in))
		})
	}
}

func TestBucketRisk(t *testing.T) {
	tests := []struct {
		p    float64
		want RiskLevel
	}{
		{0, RiskLow},
		{0.3, RiskLow},
		{0.31, RiskModerate},
		{0.5, RiskModerate},
		{0.51, RiskHigh},
		{0.95, RiskHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketRisk(tt.p), "p=%v", tt.p)
	}
	assert.NotEmpty(t, Recommendations(RiskHigh))
}

func TestRisk_ProbabilityAtThresholdIsNotRisk(t *testing.T) {
	b := &MockBackend{}
	b.On("Infer", mock.Anything, mock.Anything).Return(response(0.5, 0.5), nil)

	engine := NewRisk(mockedModels(t, model.KindRisk, b), features.NewNormalizer())
	res, err := engine.Assess(context.Background(), features.RiskInput{LandCover: "Urban", SoilType: "Clay"})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.False(t, res.AtRisk)
	assert.Equal(t, RiskModerate, res.Level)
	assert.False(t, res.Degraded)
	b.AssertExpectations(t)
}

func TestRisk_RuleScoreAtModerateBoundaryIsLow(t *testing.T) {
	engine := NewRisk(fallbackModels(t), features.NewNormalizer())

	res, err := engine.Assess(context.Background(), features.RiskInput{
		Elevation: 100,
		LandCover: "Urban",
		SoilType:  "Clay",
	})
	require.NoError(t, err)

	require.True(t, res.Success)
	require.NotNil(t, res.Probability)
	assert.Equal(t, 0.2+0.05+0.05, *res.Probability)
	assert.Equal(t, RiskLow, res.Level)
	assert.False(t, res.AtRisk)
	assert.True(t, res.Degraded)
}

func TestRisk_SinglePrecisionBoundaries(t *testing.T) {
	tests := []struct {
		out  []float32
		want RiskLevel
	}{
		{[]float32{0.7, 0.3}, RiskLow},
		{[]float32{0.69, 0.31}, RiskModerate},
		{[]float32{0.5, 0.5}, RiskModerate},
		{[]float32{0.49, 0.51}, RiskHigh},
	}

	for _, tt := range tests {
		b := &MockBackend{}
		b.On("Infer", mock.Anything, mock.Anything).Return(response(tt.out...), nil)

		engine := NewRisk(mockedModels(t, model.KindRisk, b), features.NewNormalizer())
		res, err := engine.Assess(context.Background(), features.RiskInput{LandCover: "Forest", SoilType: "Sandy"})
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.Level, "p=%v", tt.out[1])
	}
}

func TestRisk_SingleClassOutput(t *testing.T) {
	b := &MockBackend{}
	b.On("Infer", mock.Anything, mock.Anything).Return(response(1), nil)

	engine := NewRisk(mockedModels(t, model.KindRisk, b), features.NewNormalizer())
	res, err := engine.Assess(context.Background(), features.RiskInput{LandCover: "Forest", SoilType: "Sandy"})
	require.NoError(t, err)

	assert.True(t, res.AtRisk)
	assert.Nil(t, res.Probability)
	assert.Equal(t, "High Risk", res.Label)
}

func TestRisk_AllThresholdsBreachedUsesRules(t *testing.T) {
	engine := NewRisk(fallbackModels(t), features.NewNormalizer())

	res, err := engine.Assess(context.Background(), features.RiskInput{
		Rainfall:         150,
		RiverDischarge:   250,
		HistoricalFloods: 5,
		Elevation:        30,
		WaterLevel:       5,
		LandCover:        "Urban",
		SoilType:         "Clay",
	})
	require.NoError(t, err)

	require.True(t, res.Success)
	require.NotNil(t, res.Probability)
	assert.InDelta(t, 0.95, *res.Probability, 1e-6)
	assert.True(t, res.AtRisk)
	assert.Equal(t, RiskHigh, res.Level)
	assert.Equal(t, "High Risk", res.Label)
	assert.True(t, res.Degraded)
}

func TestRisk_UnknownLandCoverRejected(t *testing.T) {
	engine := NewRisk(fallbackModels(t), features.NewNormalizer())

	res, err := engine.Assess(context.Background(), features.RiskInput{LandCover: "Lava", SoilType: "Clay"})
	require.ErrorIs(t, err, features.ErrUnknownCategory)
	assert.Nil(t, res)
}

func TestCrop_RecommendReturnsLabel(t *testing.T) {
	engine := NewCrop(fallbackModels(t), features.NewNormalizer())

	res, err := engine.Recommend(context.Background(), features.CropInput{
		N: 40, P: 30, K: 40, Temperature: 25, Humidity: 65, PH: 6.5, Rainfall: 1000,
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.NotEmpty(t, res.Crop)
	assert.Equal(t, Capitalize(res.Crop), res.Crop)
	assert.True(t, res.Degraded)
	assert.Len(t, res.Candidates, 3)
}

func TestCrop_ClassIndexOutput(t *testing.T) {
	b := &MockBackend{}
	b.On("Infer", mock.Anything, mock.Anything).Return(response(0), nil)

	engine := NewCrop(mockedModels(t, model.KindCrop, b), features.NewNormalizer())
	res, err := engine.Recommend(context.Background(), features.CropInput{})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "Rice", res.Crop)
	assert.Empty(t, res.Candidates)
}

func TestCrop_UnavailableWithoutFallback(t *testing.T) {
	cfg := testConfig(t)
	mc := cfg.Models[config.KindCrop]
	mc.Fallback = ptr(false)
	cfg.Models[config.KindCrop] = mc

	reg := model.NewRegistry(cfg, model.DefaultFallbacks()...)
	engine := NewCrop(reg, features.NewNormalizer())

	res, err := engine.Recommend(context.Background(), features.CropInput{})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "model unavailable")
}

func TestCrop_CancelledContext(t *testing.T) {
	engine := NewCrop(fallbackModels(t), features.NewNormalizer())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Recommend(ctx, features.CropInput{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestAdjustYield_NeverBelowFloor(t *testing.T) {
	harsh := ComputeFactors(60, 0, 1, 0, 100, false)
	require.Zero(t, harsh.Product())

	for _, crop := range knowledge.YieldCrops() {
		profile := knowledge.YieldProfileFor(crop)
		for _, raw := range []float64{0, 0.05, 1, 500} {
			y := AdjustYield(raw, profile, "Kerala", harsh, false, 1)
			assert.GreaterOrEqual(t, y, 0.3*profile.BaseYield, "%s raw=%v", crop, raw)
		}
	}
}

func TestAdjustYield_ImplausibleUsesBase(t *testing.T) {
	profile := knowledge.YieldProfileFor("Rice")
	f := YieldFactors{Temperature: 1, Rainfall: 1, PH: 1, OrganicCarbon: 1, Area: 1, StateBonus: 1}

	assert.InDelta(t, profile.BaseYield, AdjustYield(0.05, profile, "Punjab", f, false, 1), 1e-9)
	assert.InDelta(t, 7.0, AdjustYield(7, profile, "Punjab", f, false, 1), 1e-9)
	assert.InDelta(t, profile.BaseYield*1.05, AdjustYield(7, profile, "Punjab", f, true, 1.05), 1e-9)
}

func TestComputeFactors(t *testing.T) {
	f := ComputeFactors(25, 1000, 6.5, 0, 5, true)
	assert.InDelta(t, 1.2, f.Product(), 1e-9)

	f = ComputeFactors(55, 2000, 0, 20, 11, false)
	assert.InDelta(t, 0.7, f.Temperature, 1e-9)
	assert.InDelta(t, 1.3, f.Rainfall, 1e-9)
	assert.InDelta(t, 0.8, f.PH, 1e-9)
	assert.InDelta(t, 1.3, f.OrganicCarbon, 1e-9)
	assert.InDelta(t, 0.9, f.Area, 1e-9)
	assert.InDelta(t, 1.0, f.StateBonus, 1e-9)
}

func TestYield_CardamomInKerala(t *testing.T) {
	engine := NewYield(fallbackModels(t), features.NewNormalizer(), WithYieldRand(7))

	res, err := engine.Predict(context.Background(), features.YieldInput{
		Crop:          "Cardamom",
		State:         "Kerala",
		Area:          1,
		Temperature:   28,
		Rainfall:      900,
		Humidity:      70,
		SoilPH:        ptr(6.5),
		OrganicCarbon: ptr(0.8),
	})
	require.NoError(t, err)

	require.True(t, res.Success, res.Error)
	assert.True(t, res.Degraded)
	assert.InDelta(t, 1.2, res.Factors.StateBonus, 1e-9)
	assert.GreaterOrEqual(t, res.Yield, 0.15)
	assert.LessOrEqual(t, res.Yield, 0.35)
	assert.GreaterOrEqual(t, res.RandomFactor, 0.95)
	assert.LessOrEqual(t, res.RandomFactor, 1.05)
	assert.NotEmpty(t, res.Level)
}

func TestYield_SeededRandomFactorIsReproducible(t *testing.T) {
	models := fallbackModels(t)
	in := features.YieldInput{Crop: "Rice", State: "Punjab", Area: 2, Temperature: 25, Rainfall: 1200, Humidity: 60}

	a, err := NewYield(models, features.NewNormalizer(), WithYieldRand(3)).Predict(context.Background(), in)
	require.NoError(t, err)
	b, err := NewYield(models, features.NewNormalizer(), WithYieldRand(3)).Predict(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, a.Yield, b.Yield)
	assert.Equal(t, a.RandomFactor, b.RandomFactor)
	assert.GreaterOrEqual(t, a.Yield, 0.3*knowledge.BaseYield("Rice"))
}

func TestYield_RealModelSkipsRandomFactor(t *testing.T) {
	b := &MockBackend{}
	b.On("Infer", mock.Anything, mock.Anything).Return(response(4), nil)

	engine := NewYield(mockedModels(t, model.KindYield, b), features.NewNormalizer(), WithYieldRand(1))
	res, err := engine.Predict(context.Background(), features.YieldInput{
		Crop: "rice", State: "punjab", Area: 1, Temperature: 25, Rainfall: 1000,
	})
	require.NoError(t, err)

	assert.False(t, res.Degraded)
	assert.Equal(t, "Rice", res.Crop)
	assert.Equal(t, "Punjab", res.State)
	assert.InDelta(t, 1.0, res.RandomFactor, 1e-9)
	assert.InDelta(t, 4.0, res.RawPrediction, 1e-6)
	assert.InDelta(t, 4*res.Adjustment, res.Yield, 1e-6)
}

func TestYield_UnknownStateRejected(t *testing.T) {
	engine := NewYield(fallbackModels(t), features.NewNormalizer())

	res, err := engine.Predict(context.Background(), features.YieldInput{Crop: "Rice", State: "Atlantis"})
	require.ErrorIs(t, err, features.ErrUnknownCategory)
	assert.Nil(t, res)

	var unknown *features.UnknownCategoryError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Atlantis", unknown.Value)
}

func TestDisease_Classify(t *testing.T) {
	logits := make([]float32, len(config.DiseaseLabels))
	logits[slices.Index(config.DiseaseLabels, "Tomato_Late_blight")] = 8
	logits[slices.Index(config.DiseaseLabels, "Tomato_Early_blight")] = 4
	logits[slices.Index(config.DiseaseLabels, "Potato_Late_blight")] = 3

	b := &MockBackend{}
	b.On("Infer", mock.Anything, mock.MatchedBy(func(req *backend.Request) bool {
		return slices.Equal(req.Shape, []int64{1, 3, 224, 224}) && len(req.Input) == 3*224*224
	})).Return(response(logits...), nil)

	engine := NewDisease(mockedModels(t, model.KindDisease, b), knowledge.NewTreatments())
	res, err := engine.ClassifyBytes(context.Background(), solidPNG(t, color.RGBA{40, 120, 40, 255}))
	require.NoError(t, err)

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Tomato - Late blight", res.Disease)
	require.Len(t, res.Predictions, 3)
	assert.Equal(t, "Tomato - Early blight", res.Predictions[1].Label)
	assert.Greater(t, res.Confidence, 90.0)
	assert.LessOrEqual(t, res.Confidence, 100.0)
	require.NotNil(t, res.Treatment)
	assert.Equal(t, "Tomato - Late blight", res.Treatment.Name)
	assert.Empty(t, res.TreatmentMessage)
	b.AssertExpectations(t)
}

func TestDisease_LookupMissIsNotFailure(t *testing.T) {
	logits := make([]float32, len(config.DiseaseLabels))
	logits[slices.Index(config.DiseaseLabels, "Squash_Powdery_mildew")] = 9

	b := &MockBackend{}
	b.On("Infer", mock.Anything, mock.Anything).Return(response(logits...), nil)

	engine := NewDisease(mockedModels(t, model.KindDisease, b), knowledge.NewTreatments())
	res, err := engine.ClassifyBytes(context.Background(), solidPNG(t, color.White))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "Squash - Powdery mildew", res.Disease)
	assert.Nil(t, res.Treatment)
	assert.Equal(t, NoTreatmentMessage, res.TreatmentMessage)
}

func TestDisease_NoModel(t *testing.T) {
	engine := NewDisease(fallbackModels(t), knowledge.NewTreatments())

	res, err := engine.ClassifyBytes(context.Background(), solidPNG(t, color.White))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "model unavailable")
}

func TestDisease_UndecodableImage(t *testing.T) {
	engine := NewDisease(fallbackModels(t), knowledge.NewTreatments())

	res, err := engine.ClassifyBytes(context.Background(), []byte("not an image"))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, ErrInference.Error())

	res, err = engine.ClassifyFile(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestSoil_OversizedImageIsFailure(t *testing.T) {
	engine := NewSoil(fallbackModels(t), knowledge.NewSoils())
	header := []byte{'G', 'I', 'F', '8', '9', 'a', 0x40, 0x9c, 0x40, 0x9c, 0, 0, 0}

	res, err := engine.AnalyzeBytes(context.Background(), header)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, imaging.ErrTooLarge.Error())
}

func TestSoil_FallbackIsDeterministic(t *testing.T) {
	engine := NewSoil(fallbackModels(t), knowledge.NewSoils())
	img := solidPNG(t, color.RGBA{90, 60, 40, 255})

	first, err := engine.AnalyzeBytes(context.Background(), img)
	require.NoError(t, err)
	second, err := engine.AnalyzeBytes(context.Background(), img)
	require.NoError(t, err)

	require.True(t, first.Success, first.Error)
	assert.True(t, first.Degraded)
	assert.Equal(t, first.Predictions, second.Predictions)
	require.Len(t, first.Predictions, 6)

	var total float64
	for i, p := range first.Predictions {
		total += p.Confidence
		if i > 0 {
			assert.GreaterOrEqual(t, first.Predictions[i-1].Confidence, p.Confidence)
		}
	}
	assert.InDelta(t, 100, total, 1e-3)

	// Dark brown soil reads as clay.
	assert.Equal(t, "Clay", first.SoilType)
	assert.True(t, first.CharacteristicsFound)
	assert.Equal(t, "Clay", first.Characteristics.SoilType)
}

func TestSoil_Primary(t *testing.T) {
	b := &MockBackend{}
	b.On("Infer", mock.Anything, mock.MatchedBy(func(req *backend.Request) bool {
		return slices.Equal(req.Shape, []int64{1, 224, 224, 3})
	})).Return(response(0.1, 0.6, 0.1, 0.1, 0.05, 0.05), nil)

	engine := NewSoil(mockedModels(t, model.KindSoil, b), knowledge.NewSoils())
	res, err := engine.AnalyzeBytes(context.Background(), solidPNG(t, color.Gray{128}))
	require.NoError(t, err)

	require.True(t, res.Success, res.Error)
	assert.False(t, res.Degraded)
	assert.Equal(t, "Loamy", res.SoilType)
	assert.InDelta(t, 60, res.Confidence, 1e-3)
	assert.Equal(t, "Loamy", res.Characteristics.SoilType)
}

func TestSoil_UnknownLabelGetsPlaceholder(t *testing.T) {
	b := &MockBackend{}
	b.On("Infer", mock.Anything, mock.Anything).Return(response(0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.4), nil)

	engine := NewSoil(mockedModels(t, model.KindSoil, b), knowledge.NewSoils())
	res, err := engine.AnalyzeBytes(context.Background(), solidPNG(t, color.Black))
	require.NoError(t, err)

	require.True(t, res.Success)
	assert.Len(t, res.Predictions, 7)
	assert.Equal(t, "class_6", res.SoilType)
	assert.False(t, res.CharacteristicsFound)
	assert.Equal(t, knowledge.UnknownSoil.Texture, res.Characteristics.Texture)
}
