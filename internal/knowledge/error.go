package knowledge

import "errors"

// Error definitions for the knowledge package.
var (
	// ErrLookupMiss means no reference record matches a predicted label.
	ErrLookupMiss = errors.New("no matching knowledge base entry")
)
