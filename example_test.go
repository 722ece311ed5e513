package millerindex_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/millerindex"
	"github.com/hupe1980/millerindex/mask"
	"github.com/hupe1980/millerindex/miller"
	"github.com/hupe1980/millerindex/symmetry"
	"github.com/hupe1980/millerindex/testutil"
)

// Example demonstrates axis and area queries on a 3x3x3 grid.
func Example() {
	idx, err := millerindex.New(testutil.Grid(1), symmetry.P1())
	if err != nil {
		log.Fatal(err)
	}
	defer idx.Close()

	center, _ := idx.Find(miller.Origin)
	fmt.Println(center)

	nb, _ := idx.Neighbourhood(center, 1)
	fmt.Println(nb)

	area, _ := idx.Area(center, millerindex.AreaParams{
		MinDistance:   1,
		MaxDistance:   1,
		MaxNeighbours: 10,
	}, nil)
	fmt.Println(area)
	// Output:
	// 13
	// [4 10 12 14 16 22]
	// [13 4 10 12 14 16 22]
}

// Example_symmetry demonstrates resolving symmetry equivalents.
func Example_symmetry() {
	sym := symmetry.Description{
		Operators: []symmetry.Operator{
			symmetry.Identity(),
			symmetry.MustParse("-h,k,-l"),
		},
	}

	idx, err := millerindex.New(testutil.Unique(testutil.Grid(1), sym), sym)
	if err != nil {
		log.Fatal(err)
	}
	defer idx.Close()

	a, _ := idx.Find(miller.New(0, 0, 1))
	b, _ := idx.Find(miller.New(0, 0, -1))
	fmt.Println(idx.At(a), a == b)
	// Output: (0,0,-1) true
}

// Example_mask demonstrates restricting area queries to observed positions.
func Example_mask() {
	idx, err := millerindex.New(testutil.Grid(1), symmetry.P1())
	if err != nil {
		log.Fatal(err)
	}
	defer idx.Close()

	observed := mask.All(idx.Len())
	observed.Clear(4)
	observed.Clear(22)

	areas, err := idx.AreaAll(context.Background(), millerindex.AreaParams{
		MinDistance:   1,
		MaxDistance:   1,
		MaxNeighbours: 10,
	}, observed)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(areas[13])
	fmt.Println(areas[4] == nil)
	// Output:
	// [13 10 12 14 16]
	// true
}
