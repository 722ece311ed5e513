// Package millerindex provides a symmetry-aware lookup over sets of Miller
// indices and enumerates lattice neighbours of the stored reflections.
//
// A set of integer triples (h,k,l) is indexed once under a crystallographic
// point group. Every index is then resolvable, through any of its symmetry
// equivalents, to its position in the input set, and neighbour lists of
// positions can be computed for the whole set in parallel.
//
// # Quick Start
//
//	sym := symmetry.Description{
//	    Operators: []symmetry.Operator{
//	        symmetry.Identity(),
//	        symmetry.MustParse("-h,-k,l"),
//	    },
//	}
//	idx, _ := millerindex.New(indices, sym)
//	defer idx.Close()
//
//	pos, ok := idx.Find(miller.New(1, -2, 3))
//
//	// six axis neighbours of one position
//	nb, _ := idx.Neighbourhood(pos, 1)
//
//	// seed plus everything at L1 distance 1..2, capped at 32 entries
//	areas, _ := idx.AreaAll(ctx, millerindex.AreaParams{
//	    MinDistance:   1,
//	    MaxDistance:   2,
//	    MaxNeighbours: 32,
//	}, nil)
//
// # Symmetry
//
// Operators act on row vectors: h' = h·R. Unless the description is
// anomalous, Friedel mates (-h,-k,-l) are merged with their partners.
// The input set is expected to hold one representative per orbit; when it
// does not, the later position wins, or New fails under
// WithStrictUniqueness.
//
// # Memory
//
// The lookup table is a dense int32 array over the bounding box of the input
// when it fits the memory budget of the resource controller, and a hash map
// otherwise. See WithLayout and WithMemoryLimit.
//
// # Packages
//
//   - miller: the Index value type.
//   - symmetry: operators, descriptions and orbit expansion.
//   - lookup: the lookup tensor.
//   - neighbour: axis and area neighbour enumeration.
//   - mask: eligibility masks for area queries.
//   - observability: a Prometheus MetricsCollector.
package millerindex
