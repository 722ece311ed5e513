package mask

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMask(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		m := New(5)
		assert.Equal(t, 5, m.Len())
		assert.Zero(t, m.Count())
		assert.False(t, m.Contains(0))
	})

	t.Run("All", func(t *testing.T) {
		m := All(5)
		assert.Equal(t, 5, m.Count())
		for i := 0; i < 5; i++ {
			assert.True(t, m.Contains(i))
		}
		assert.False(t, m.Contains(5))
		assert.False(t, m.Contains(-1))
		assert.Zero(t, All(0).Count())
	})

	t.Run("FromBools", func(t *testing.T) {
		flags := []bool{true, false, true, false}
		m := FromBools(flags)
		assert.Equal(t, 4, m.Len())
		assert.Equal(t, []int{0, 2}, slices.Collect(m.Positions()))
		assert.Equal(t, flags, m.Bools())
	})

	t.Run("SetClear", func(t *testing.T) {
		m := New(3)
		m.Set(1)
		m.Set(7)
		assert.Equal(t, 1, m.Count())
		assert.True(t, m.Contains(1))

		m.Clear(1)
		m.Clear(-1)
		assert.False(t, m.Contains(1))
		assert.Zero(t, m.Count())
	})

	t.Run("Nil", func(t *testing.T) {
		var m *Mask
		for _, pos := range []int{-1, 0, 123} {
			assert.True(t, m.Contains(pos), "position %d", pos)
		}
		for _, n := range []int{0, 10} {
			assert.NoError(t, m.CheckLength(n))
		}
	})
}

func TestCheckLength(t *testing.T) {
	require.NoError(t, New(4).CheckLength(4))

	err := New(3).CheckLength(4)
	var le *LengthError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 4, le.Expected)
	assert.Equal(t, 3, le.Actual)
	assert.Contains(t, err.Error(), "expected 4, got 3")
}
