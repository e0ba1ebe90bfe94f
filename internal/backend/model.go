package backend

// Spec describes a model artifact to a Decoder.
type Spec struct {
	// Name identifies the model, usually its kind.
	Name string

	// Path is the artifact location, kept for diagnostics.
	Path string

	// Inputs and Outputs name the graph tensors for formats that need them.
	Inputs  []string
	Outputs []string

	// Labels are the class names in output order, if any.
	Labels []string
}

// Decoder turns raw artifact bytes into a ready Backend.
type Decoder interface {
	// Provider returns the provider of the backends this decoder builds.
	Provider() Provider

	// Decode builds a backend from data or reports why the bytes are not in its format.
	Decode(spec Spec, data []byte) (Backend, error)
}
