package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock types ---

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Provider() Provider {
	args := m.Called()
	return args.Get(0).(Provider)
}

func (m *MockBackend) Infer(ctx context.Context, req *Request) (*Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockDecoder struct {
	mock.Mock
}

func (m *MockDecoder) Provider() Provider {
	args := m.Called()
	return args.Get(0).(Provider)
}

func (m *MockDecoder) Decode(spec Spec, data []byte) (Backend, error) {
	args := m.Called(spec, data)
	if b, ok := args.Get(0).(Backend); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockClosingDecoder struct {
	MockDecoder
}

func (m *MockClosingDecoder) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- Tests ---

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	dec := new(MockDecoder)
	dec.On("Provider").Return(ProviderONNX)

	require.NoError(t, reg.Register(dec))

	got, ok := reg.Get(ProviderONNX)
	assert.True(t, ok)
	assert.Equal(t, dec, got)

	// Ensure a missing decoder returns false
	_, ok = reg.Get(ProviderEnsemble)
	assert.False(t, ok)

	dec.AssertExpectations(t)
}

func TestRegistry_RegisterTwice(t *testing.T) {
	reg := NewRegistry()
	dec := new(MockDecoder)
	dec.On("Provider").Return(ProviderONNX)

	require.NoError(t, reg.Register(dec))
	require.ErrorIs(t, reg.Register(dec), ErrAlreadyRegistered)
}

func TestRegistry_DecodeFirstSuccessWins(t *testing.T) {
	reg := NewRegistry()
	spec := Spec{Name: "yield_regressor"}
	data := []byte("artifact")

	first := new(MockDecoder)
	first.On("Provider").Return(ProviderONNX)
	first.On("Decode", spec, data).Return(nil, errors.New("not an onnx graph")).Once()

	built := new(MockBackend)
	second := new(MockDecoder)
	second.On("Provider").Return(ProviderEnsemble)
	second.On("Decode", spec, data).Return(built, nil).Once()

	third := new(MockDecoder)
	third.On("Provider").Return(ProviderFallback)

	require.NoError(t, reg.Register(first))
	require.NoError(t, reg.Register(second))
	require.NoError(t, reg.Register(third))

	b, err := reg.Decode(spec, data)
	require.NoError(t, err)
	assert.Same(t, built, b)

	first.AssertExpectations(t)
	second.AssertExpectations(t)
	third.AssertNotCalled(t, "Decode", mock.Anything, mock.Anything)
}

func TestRegistry_DecodeExhausted(t *testing.T) {
	reg := NewRegistry()
	spec := Spec{Name: "risk_classifier"}

	onnx := new(MockDecoder)
	onnx.On("Provider").Return(ProviderONNX)
	onnx.On("Decode", spec, mock.Anything).Return(nil, errors.New("bad graph"))

	ens := new(MockDecoder)
	ens.On("Provider").Return(ProviderEnsemble)
	ens.On("Decode", spec, mock.Anything).Return(nil, errors.New("bad value"))

	require.NoError(t, reg.Register(onnx))
	require.NoError(t, reg.Register(ens))

	_, err := reg.Decode(spec, []byte{0x01})
	require.ErrorIs(t, err, ErrUnrecognizedArtifact)
	assert.ErrorContains(t, err, "onnx: bad graph")
	assert.ErrorContains(t, err, "ensemble: bad value")
}

func TestRegistry_DecodeEmpty(t *testing.T) {
	_, err := NewRegistry().Decode(Spec{}, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_Close(t *testing.T) {
	reg := NewRegistry()

	plain := new(MockDecoder)
	plain.On("Provider").Return(ProviderEnsemble)

	closing := new(MockClosingDecoder)
	closing.On("Provider").Return(ProviderONNX)
	closing.On("Close").Return(nil).Once()

	require.NoError(t, reg.Register(plain))
	require.NoError(t, reg.Register(closing))

	assert.NoError(t, reg.Close())

	closing.AssertExpectations(t)
}

func TestRegistry_CloseErrorPropagation(t *testing.T) {
	reg := NewRegistry()

	closing := new(MockClosingDecoder)
	closing.On("Provider").Return(ProviderONNX)
	closing.On("Close").Return(errors.New("close failed")).Once()

	require.NoError(t, reg.Register(closing))

	err := reg.Close()
	assert.EqualError(t, err, "close failed")

	closing.AssertExpectations(t)
}

func TestNewRequest(t *testing.T) {
	req := NewRequest([]float32{1, 2, 3})
	assert.Equal(t, []int64{1, 3}, req.Shape)
}
