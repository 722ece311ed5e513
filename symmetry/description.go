package symmetry

import (
	"errors"
	"fmt"

	"github.com/hupe1980/millerindex/miller"
)

var (
	// ErrEmptyDescription is returned when a description has no operators.
	ErrEmptyDescription = errors.New("symmetry: description has no operators")

	// ErrMissingIdentity is returned when a description does not contain the identity.
	ErrMissingIdentity = errors.New("symmetry: description does not contain the identity")

	// ErrSingularOperator is returned for an operator whose determinant is
	// not +1 or -1. Such a matrix is not a point-group operation.
	ErrSingularOperator = errors.New("symmetry: operator determinant is not +1 or -1")
)

// Description is an ordered point-group operator list plus the anomalous flag.
//
// When Anomalous is false a Miller index and its Friedel mate are merged
// into one equivalence class. When true they are looked up independently.
type Description struct {
	Operators []Operator
	Anomalous bool
}

// P1 returns the identity-only description with anomalous set, under which
// every index is its own orbit.
func P1() Description {
	return Description{Operators: []Operator{Identity()}, Anomalous: true}
}

// NewDescription validates ops and returns the description.
func NewDescription(ops []Operator, anomalous bool) (Description, error) {
	d := Description{Operators: ops, Anomalous: anomalous}
	if err := d.Validate(); err != nil {
		return Description{}, err
	}
	return d, nil
}

// Validate reports a degenerate description.
func (d Description) Validate() error {
	if len(d.Operators) == 0 {
		return ErrEmptyDescription
	}
	for _, op := range d.Operators {
		if det := op.Determinant(); det != 1 && det != -1 {
			return fmt.Errorf("%w: %s has determinant %d", ErrSingularOperator, op, det)
		}
	}
	for _, op := range d.Operators {
		if op.IsIdentity() {
			return nil
		}
	}
	return ErrMissingIdentity
}

// Order returns the number of operators.
func (d Description) Order() int {
	return len(d.Operators)
}

// MaxOrbitSize is the upper bound on the size of any orbit under d.
func (d Description) MaxOrbitSize() int {
	if d.Anomalous {
		return len(d.Operators)
	}
	return 2 * len(d.Operators)
}

// Orbit returns the indices equivalent to v.
//
// Rotational images come first in operator order, followed (when Anomalous
// is false) by their Friedel mates in the same order. Repeated images are
// dropped, keeping the first occurrence.
//
// Orbit panics if d has no operators.
func (d Description) Orbit(v miller.Index) []miller.Index {
	return d.AppendOrbit(make([]miller.Index, 0, d.MaxOrbitSize()), v)
}

// AppendOrbit appends the orbit of v to dst and returns the extended slice.
// It does not allocate when dst has room for MaxOrbitSize more elements.
func (d Description) AppendOrbit(dst []miller.Index, v miller.Index) []miller.Index {
	if len(d.Operators) == 0 {
		panic(ErrEmptyDescription)
	}

	start := len(dst)
	for _, op := range d.Operators {
		dst = appendUnique(dst, start, op.Apply(v))
	}

	if !d.Anomalous {
		end := len(dst)
		for i := start; i < end; i++ {
			dst = appendUnique(dst, start, dst[i].Neg())
		}
	}

	return dst
}

// Equivalent reports whether a and b lie in the same orbit.
func (d Description) Equivalent(a, b miller.Index) bool {
	for _, op := range d.Operators {
		w := op.Apply(a)
		if w == b || (!d.Anomalous && w.Neg() == b) {
			return true
		}
	}
	return false
}

func appendUnique(dst []miller.Index, start int, w miller.Index) []miller.Index {
	for _, seen := range dst[start:] {
		if seen == w {
			return dst
		}
	}
	return append(dst, w)
}
