package lookup

import (
	"errors"
	"fmt"

	"github.com/hupe1980/millerindex/miller"
)

// ErrTooManyIndices is returned when the indexed set does not fit int32 positions.
var ErrTooManyIndices = errors.New("lookup: too many indices")

// DuplicateOrbitError reports two stored indices that share an orbit member,
// i.e. an indexed set that is not symmetry-unique.
type DuplicateOrbitError struct {
	Index    miller.Index // shared orbit member
	Existing int          // position already occupying the cell
	Position int          // position that tried to claim it
}

func (e *DuplicateOrbitError) Error() string {
	return fmt.Sprintf("lookup: positions %d and %d share orbit member %s", e.Existing, e.Position, e.Index)
}
