package miller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexArithmetic(t *testing.T) {
	a := New(1, -2, 3)
	b := New(-4, 5, 0)

	assert.Equal(t, New(-3, 3, 3), a.Add(b))
	assert.Equal(t, New(5, -7, 3), a.Sub(b))
	assert.Equal(t, New(-1, 2, -3), a.Neg())
	assert.Equal(t, New(1, 2, 3), a.Abs())
	assert.Equal(t, 6, a.Norm1())
	assert.Equal(t, 15, a.Manhattan(b))
	assert.True(t, Origin.IsZero())
	assert.False(t, a.IsZero())
}

func TestIndexCompare(t *testing.T) {
	tests := []struct {
		a, b Index
		want int
	}{
		{New(0, 0, 0), New(0, 0, 0), 0},
		{New(-1, 5, 5), New(0, 0, 0), -1},
		{New(0, 1, 0), New(0, 0, 9), 1},
		{New(0, 0, -1), New(0, 0, 1), -1},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"vs"+tt.b.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
		})
	}
}

func TestParse(t *testing.T) {
	for _, s := range []string{"1,-2,3", "1 -2 3", "(1,-2,3)", " 1,\t-2 , 3 "} {
		v, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, New(1, -2, 3), v)
	}

	_, err := Parse("1,2")
	assert.Error(t, err)

	_, err = Parse("1,x,2")
	assert.Error(t, err)
}

func TestTextRoundTrip(t *testing.T) {
	v := New(-3, 0, 7)
	text, err := v.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "-3,0,7", string(text))

	var got Index
	require.NoError(t, got.UnmarshalText(text))
	assert.Equal(t, v, got)
}

func TestBounds(t *testing.T) {
	_, _, ok := Bounds(nil)
	assert.False(t, ok)

	lo, hi, ok := Bounds([]Index{New(1, -2, 3), New(-4, 5, 0), New(0, 0, 9)})
	require.True(t, ok)
	assert.Equal(t, New(-4, -2, 0), lo)
	assert.Equal(t, New(1, 5, 9), hi)
}
