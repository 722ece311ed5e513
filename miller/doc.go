// Package miller defines the Miller index value type used throughout the
// library: a signed integer triple (h,k,l) addressing a reciprocal-lattice
// point.
//
// Index is used both as a dataset element and as an offset between two
// lattice points. All arithmetic is exact integer arithmetic.
package miller
