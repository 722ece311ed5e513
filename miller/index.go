package miller

import (
	"fmt"
	"strconv"
	"strings"
)

// Index is a Miller index (h,k,l).
type Index struct {
	H, K, L int
}

// Origin is the (0,0,0) index.
var Origin = Index{}

// New returns the index (h,k,l).
func New(h, k, l int) Index {
	return Index{H: h, K: k, L: l}
}

// Add returns the componentwise sum a+b.
func (a Index) Add(b Index) Index {
	return Index{H: a.H + b.H, K: a.K + b.K, L: a.L + b.L}
}

// Sub returns the componentwise difference a-b.
func (a Index) Sub(b Index) Index {
	return Index{H: a.H - b.H, K: a.K - b.K, L: a.L - b.L}
}

// Neg returns the Friedel mate (-h,-k,-l).
func (a Index) Neg() Index {
	return Index{H: -a.H, K: -a.K, L: -a.L}
}

// Abs returns the componentwise absolute value.
func (a Index) Abs() Index {
	return Index{H: abs(a.H), K: abs(a.K), L: abs(a.L)}
}

// Norm1 returns the L1 norm |h|+|k|+|l|.
func (a Index) Norm1() int {
	return abs(a.H) + abs(a.K) + abs(a.L)
}

// Manhattan returns the L1 distance between a and b.
func (a Index) Manhattan(b Index) int {
	return a.Sub(b).Norm1()
}

// IsZero reports whether a is the origin.
func (a Index) IsZero() bool {
	return a == Origin
}

// Compare orders indices lexicographically by (h,k,l).
// It returns -1, 0 or +1.
func (a Index) Compare(b Index) int {
	switch {
	case a.H != b.H:
		return cmpInt(a.H, b.H)
	case a.K != b.K:
		return cmpInt(a.K, b.K)
	default:
		return cmpInt(a.L, b.L)
	}
}

// Min returns the componentwise minimum of a and b.
func Min(a, b Index) Index {
	return Index{H: min(a.H, b.H), K: min(a.K, b.K), L: min(a.L, b.L)}
}

// Max returns the componentwise maximum of a and b.
func Max(a, b Index) Index {
	return Index{H: max(a.H, b.H), K: max(a.K, b.K), L: max(a.L, b.L)}
}

// String formats the index as "(h,k,l)".
func (a Index) String() string {
	return fmt.Sprintf("(%d,%d,%d)", a.H, a.K, a.L)
}

// MarshalText implements encoding.TextMarshaler using the "h,k,l" form.
func (a Index) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(a.H) + "," + strconv.Itoa(a.K) + "," + strconv.Itoa(a.L)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Index) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Parse parses an index written as "h,k,l", "h k l" or "(h,k,l)".
func Parse(s string) (Index, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")

	fields := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 {
		return Index{}, fmt.Errorf("miller: parse %q: want 3 components, got %d", s, len(fields))
	}

	var v [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Index{}, fmt.Errorf("miller: parse %q: %w", s, err)
		}
		v[i] = n
	}

	return Index{H: v[0], K: v[1], L: v[2]}, nil
}

// Bounds returns the componentwise minimum and maximum over indices.
// ok is false when indices is empty.
func Bounds(indices []Index) (lo, hi Index, ok bool) {
	if len(indices) == 0 {
		return Index{}, Index{}, false
	}
	lo, hi = indices[0], indices[0]
	for _, v := range indices[1:] {
		lo = Min(lo, v)
		hi = Max(hi, v)
	}
	return lo, hi, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
