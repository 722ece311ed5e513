package neighbour

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the sentinel matched by every *ParameterError.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParameterError reports a query parameter that violates its precondition.
type ParameterError struct {
	Name   string
	Value  int
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%d: %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }
