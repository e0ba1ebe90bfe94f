package backend

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// Registry manages artifact decoders in the order they should be tried.
type Registry struct {
	decoders []Decoder
	byName   map[Provider]Decoder
	mu       sync.RWMutex
}

// NewRegistry creates a new decoder registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[Provider]Decoder),
	}
}

// Register appends a decoder. Registration order is decode priority.
func (r *Registry) Register(d Decoder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[d.Provider()]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, d.Provider())
	}
	r.byName[d.Provider()] = d
	r.decoders = append(r.decoders, d)
	return nil
}

// Get retrieves a decoder by provider.
func (r *Registry) Get(p Provider) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byName[p]
	return d, ok
}

// Decoders returns the registered decoders in priority order.
func (r *Registry) Decoders() []Decoder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Decoder(nil), r.decoders...)
}

// Decode tries each decoder in order and returns the first backend built.
// The returned error joins every decoder's failure.
func (r *Registry) Decode(spec Spec, data []byte) (Backend, error) {
	decoders := r.Decoders()
	if len(decoders) == 0 {
		return nil, ErrNotFound
	}

	var errs []error
	for _, d := range decoders {
		b, err := d.Decode(spec, data)
		if err == nil {
			return b, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", d.Provider(), err))
	}
	return nil, fmt.Errorf("%w: %w", ErrUnrecognizedArtifact, errors.Join(errs...))
}

// Close closes decoders that hold resources.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.decoders {
		if c, ok := d.(io.Closer); ok {
			if err := c.Close(); err != nil {
				return err
			}
		}
	}

	return nil
}
