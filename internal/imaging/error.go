package imaging

import "errors"

// Error definitions for the imaging package.
var (
	ErrDecode        = errors.New("unable to decode image")
	ErrTooLarge      = errors.New("image dimensions too large")
	ErrInvalidLayout = errors.New("invalid tensor layout")
	ErrEmptyTensor   = errors.New("empty tensor")
)
