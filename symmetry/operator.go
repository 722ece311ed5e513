package symmetry

import (
	"fmt"
	"strings"

	"github.com/hupe1980/millerindex/miller"
)

// Operator is a 3x3 integer rotation matrix stored row-major.
type Operator struct {
	m [9]int
}

// NewOperator returns the operator with the given row-major matrix.
func NewOperator(m [9]int) Operator {
	return Operator{m: m}
}

// Identity returns the identity operator.
func Identity() Operator {
	return Operator{m: [9]int{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// Inversion returns the centre of inversion, -I.
func Inversion() Operator {
	return Operator{m: [9]int{-1, 0, 0, 0, -1, 0, 0, 0, -1}}
}

// Matrix returns the row-major matrix.
func (o Operator) Matrix() [9]int {
	return o.m
}

// Apply returns h·R.
func (o Operator) Apply(v miller.Index) miller.Index {
	m := &o.m
	return miller.Index{
		H: v.H*m[0] + v.K*m[3] + v.L*m[6],
		K: v.H*m[1] + v.K*m[4] + v.L*m[7],
		L: v.H*m[2] + v.K*m[5] + v.L*m[8],
	}
}

// IsIdentity reports whether o is the identity.
func (o Operator) IsIdentity() bool {
	return o == Identity()
}

// Determinant returns det(R). Proper rotations have +1, improper -1.
func (o Operator) Determinant() int {
	m := &o.m
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// String formats o in reciprocal-space triplet notation, e.g. "-k,h,l".
func (o Operator) String() string {
	names := [3]string{"h", "k", "l"}
	parts := make([]string, 3)
	for j := 0; j < 3; j++ {
		var b strings.Builder
		for i := 0; i < 3; i++ {
			c := o.m[i*3+j]
			if c == 0 {
				continue
			}
			switch {
			case c == 1 && b.Len() > 0:
				b.WriteString("+")
			case c == -1:
				b.WriteString("-")
			case c > 0 && b.Len() > 0:
				fmt.Fprintf(&b, "+%d*", c)
			case c != 1:
				fmt.Fprintf(&b, "%d*", c)
			}
			b.WriteString(names[i])
		}
		if b.Len() == 0 {
			b.WriteString("0")
		}
		parts[j] = b.String()
	}
	return strings.Join(parts, ",")
}

// MarshalText implements encoding.TextMarshaler.
func (o Operator) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operator) UnmarshalText(text []byte) error {
	p, err := Parse(string(text))
	if err != nil {
		return err
	}
	*o = p
	return nil
}
