package millerindex

import (
	"errors"

	"github.com/hupe1980/millerindex/lookup"
	"github.com/hupe1980/millerindex/mask"
	"github.com/hupe1980/millerindex/neighbour"
	"github.com/hupe1980/millerindex/resource"
	"github.com/hupe1980/millerindex/symmetry"
)

// ErrClosed is returned by queries on a closed Index.
var ErrClosed = errors.New("index closed")

// Sentinels of the lower packages, re-exported for errors.Is.
var (
	ErrEmptyDescription    = symmetry.ErrEmptyDescription
	ErrMissingIdentity     = symmetry.ErrMissingIdentity
	ErrSingularOperator    = symmetry.ErrSingularOperator
	ErrTooManyIndices      = lookup.ErrTooManyIndices
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
	ErrInvalidParameter    = neighbour.ErrInvalidParameter
)

// Typed errors of the lower packages, re-exported for errors.As.
type (
	DuplicateOrbitError = lookup.DuplicateOrbitError
	ParameterError      = neighbour.ParameterError
	MaskLengthError     = mask.LengthError
)
