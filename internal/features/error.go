package features

import (
	"errors"
	"fmt"
)

// Error definitions for the features package.
var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownTask     = errors.New("unknown task")
	ErrMissingField    = errors.New("missing required field")
)

// UnknownCategoryError reports a categorical input outside a task's vocabulary.
type UnknownCategoryError struct {
	Category string
	Value    string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Category, e.Value)
}

// Is matches ErrUnknownCategory.
func (e *UnknownCategoryError) Is(target error) bool {
	return target == ErrUnknownCategory
}
