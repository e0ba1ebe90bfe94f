package ensemble

import (
	"fmt"
	"sync"

	"github.com/ekisa-team/plantx/internal/backend"
)

// BaseFunc returns n synthetic base estimators for a model that shipped only
// its estimator weights.
type BaseFunc func(n int) (*Ensemble, error)

// Decoder reads protobuf Value artifacts.
type Decoder struct {
	mu   sync.RWMutex
	base map[string]BaseFunc
}

// NewDecoder creates a decoder with no base estimator sources.
func NewDecoder() *Decoder {
	return &Decoder{base: make(map[string]BaseFunc)}
}

// SetBase registers the base estimator source for the named model.
func (d *Decoder) SetBase(name string, fn BaseFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.base[name] = fn
}

// Provider returns the backend provider.
func (d *Decoder) Provider() backend.Provider {
	return backend.ProviderEnsemble
}

// Decode parses data and builds a model according to its structural form.
func (d *Decoder) Decode(spec backend.Spec, data []byte) (backend.Backend, error) {
	v, err := ParseValue(data)
	if err != nil {
		return nil, err
	}

	switch form := Classify(v); form {
	case FormEnsemble:
		e, err := FromValue(v)
		if err != nil {
			return nil, err
		}
		if len(spec.Labels) > 0 && len(e.Classes) == 0 {
			e.Classes = spec.Labels
		}
		return NewModel(spec.Name, e, form), nil

	case FormRawWeights:
		weights, err := Weights(v)
		if err != nil {
			return nil, err
		}
		d.mu.RLock()
		fn, ok := d.base[spec.Name]
		d.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoBase, spec.Name)
		}
		base, err := fn(len(weights))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoBase, err)
		}
		e, err := Reweight(base, weights)
		if err != nil {
			return nil, err
		}
		return NewModel(spec.Name, e, form), nil

	default:
		return nil, fmt.Errorf("%w: value has neither trees nor estimator weights", ErrInvalidArtifact)
	}
}
