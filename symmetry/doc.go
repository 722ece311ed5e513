// Package symmetry describes the point-group operations used to decide
// which Miller indices are crystallographically equivalent.
//
// A Description is an ordered list of integer rotation matrices plus the
// anomalous flag. The list is produced by an external symmetry library
// and is consumed as-is: operator order is preserved because it fixes
// the order in which orbit members are generated.
//
// Operators act on Miller indices with the row-vector convention h' = h·R.
//
//	desc := symmetry.Description{
//	    Operators: []symmetry.Operator{symmetry.Identity(), symmetry.MustParse("-h,-k,l")},
//	    Anomalous: false,
//	}
//	orbit := desc.Orbit(miller.New(1, 2, 3))
//	// [(1,2,3) (-1,-2,3) (-1,-2,-3) (1,2,-3)]
package symmetry
