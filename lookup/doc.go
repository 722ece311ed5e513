// Package lookup implements the lookup tensor: a spatial index over a fixed,
// ordered set of Miller indices that resolves any query index, or any of
// its symmetry equivalents, to the position of the matching stored index
// in O(1).
//
// The tensor spans the axis-aligned bounding box of the indexed set. Each
// cell holds either the sentinel -1 or the position of the stored index
// whose orbit contains that cell. Miller index sets from one diffraction
// experiment fill a sphere inside a modest box, so the default layout is a
// dense []int32 table. When the box volume would exceed the memory budget
// the tensor switches to a sparse map holding only occupied cells.
//
// A Tensor is built once and is immutable afterwards. It is safe for
// concurrent use by multiple goroutines.
//
//	t, err := lookup.New(indices, symmetry.P1())
//	if err != nil {
//	    return err
//	}
//	pos, ok := t.Find(miller.New(1, 0, -2))
package lookup
