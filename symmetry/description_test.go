package symmetry

import (
	"testing"

	"github.com/hupe1980/millerindex/miller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointGroup4() []Operator {
	return []Operator{
		Identity(),
		MustParse("-k,h,l"),
		MustParse("-h,-k,l"),
		MustParse("k,-h,l"),
	}
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Description{}.Validate(), ErrEmptyDescription)
	assert.ErrorIs(t, Description{Operators: []Operator{Inversion()}}.Validate(), ErrMissingIdentity)
	assert.NoError(t, P1().Validate())

	singular := Description{Operators: []Operator{Identity(), MustParse("h,h,l")}}
	err := singular.Validate()
	assert.ErrorIs(t, err, ErrSingularOperator)
	assert.Contains(t, err.Error(), "determinant 0")

	scaled := Description{Operators: []Operator{Identity(), MustParse("2*h,k,l")}}
	assert.ErrorIs(t, scaled.Validate(), ErrSingularOperator)

	_, err = NewDescription(nil, true)
	assert.ErrorIs(t, err, ErrEmptyDescription)

	d, err := NewDescription(pointGroup4(), false)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Order())
	assert.Equal(t, 8, d.MaxOrbitSize())
}

func TestOrbit(t *testing.T) {
	v := miller.New(1, 2, 3)

	t.Run("IdentityAnomalous", func(t *testing.T) {
		assert.Equal(t, []miller.Index{v}, P1().Orbit(v))
	})

	t.Run("IdentityFriedel", func(t *testing.T) {
		d := Description{Operators: []Operator{Identity()}}
		assert.Equal(t, []miller.Index{v, v.Neg()}, d.Orbit(v))
	})

	t.Run("FourFoldAnomalous", func(t *testing.T) {
		d := Description{Operators: pointGroup4(), Anomalous: true}
		assert.Equal(t, []miller.Index{
			miller.New(1, 2, 3),
			miller.New(-2, 1, 3),
			miller.New(-1, -2, 3),
			miller.New(2, -1, 3),
		}, d.Orbit(v))
	})

	t.Run("FourFoldFriedel", func(t *testing.T) {
		d := Description{Operators: pointGroup4()}
		orbit := d.Orbit(v)
		require.Len(t, orbit, 8)
		assert.Equal(t, miller.New(-1, -2, -3), orbit[4])
		assert.Equal(t, miller.New(-2, 1, -3), orbit[7])
	})

	t.Run("FixedPointCollapses", func(t *testing.T) {
		d := Description{Operators: pointGroup4()}
		assert.Equal(t, []miller.Index{miller.New(0, 0, 3), miller.New(0, 0, -3)}, d.Orbit(miller.New(0, 0, 3)))
		assert.Equal(t, []miller.Index{miller.Origin}, d.Orbit(miller.Origin))
	})

	t.Run("FriedelAlreadyInRotationalOrbit", func(t *testing.T) {
		d := Description{Operators: pointGroup4()}
		assert.Len(t, d.Orbit(miller.New(1, 0, 0)), 4)
	})
}

func TestAppendOrbitReusesBuffer(t *testing.T) {
	d := Description{Operators: pointGroup4()}
	buf := make([]miller.Index, 0, d.MaxOrbitSize())

	buf = d.AppendOrbit(buf[:0], miller.New(1, 2, 3))
	assert.Len(t, buf, 8)

	allocs := testing.AllocsPerRun(100, func() {
		buf = d.AppendOrbit(buf[:0], miller.New(3, 1, 2))
	})
	assert.Zero(t, allocs)
}

func TestOrbitPanicsOnEmptyDescription(t *testing.T) {
	assert.Panics(t, func() {
		Description{}.Orbit(miller.Origin)
	})
}

func TestEquivalent(t *testing.T) {
	d := Description{Operators: pointGroup4()}
	assert.True(t, d.Equivalent(miller.New(1, 2, 3), miller.New(2, -1, -3)))
	assert.False(t, d.Equivalent(miller.New(1, 2, 3), miller.New(2, 1, 3)))

	d.Anomalous = true
	assert.False(t, d.Equivalent(miller.New(1, 2, 3), miller.New(2, -1, -3)))
}
