package staffing

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is wrapped by every boundary validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParameterError describes one out-of-range input.
type ParameterError struct {
	Field string
	Value any
	Rule  string
	Limit string
}

func (e *ParameterError) Error() string {
	var want string
	switch e.Rule {
	case "min", "gte":
		want = "must be >= " + e.Limit
	case "max", "lte":
		want = "must be <= " + e.Limit
	case "oneof":
		want = "must be one of [" + e.Limit + "]"
	case "required":
		want = "is required"
	default:
		want = fmt.Sprintf("failed %s %s", e.Rule, e.Limit)
	}
	return fmt.Sprintf("%s: %s=%v %s", ErrInvalidParameter, e.Field, e.Value, want)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}
