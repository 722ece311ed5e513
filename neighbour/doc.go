// Package neighbour enumerates lattice neighbours of the indices stored in a
// lookup tensor.
//
// Two query shapes are supported, both symmetry-aware (candidates are
// resolved through the tensor) and fully deterministic:
//
//   - Neighbourhood: the six axis neighbours at a fixed step, visited in the
//     order (-k,0,0), (0,-k,0), (0,0,-k), (0,0,k), (0,k,0), (k,0,0).
//   - Area: the seed itself followed by every eligible position reachable by
//     an offset whose L1 norm lies in [MinDistance, MaxDistance], shell by
//     shell, capped at MaxNeighbours entries.
//
// Within a shell, offsets are ordered by breadth-first expansion from the
// origin: shell d+1 is produced by walking shell d in order and trying the
// six unit steps in axis order, keeping each new offset of norm d+1. Shells
// are cached on the Enumerator and generated only when a walk first reaches
// them, so a small MaxNeighbours keeps memory small whatever MaxDistance is.
//
// Results are positions in the indexed set, never indices. Whole-dataset
// variants fan out over contiguous seed chunks with an errgroup; every chunk
// writes only its own result slots, so the output does not depend on
// scheduling.
package neighbour
