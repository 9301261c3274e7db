package lattice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsSmallGrid(t *testing.T) {
	_, err := New(2, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimension))

	f, err := New(3, 3)
	require.NoError(t, err)
	assert.Equal(t, 9, f.Size())
	for d := 0; d < Q; d++ {
		assert.Len(t, f.F[d], 9)
	}
}

func TestIdx(t *testing.T) {
	f, err := New(7, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, f.Idx(0, 0))
	assert.Equal(t, 6, f.Idx(6, 0))
	assert.Equal(t, 7, f.Idx(0, 1))
	assert.Equal(t, 34, f.Idx(6, 4))
	assert.True(t, f.In(6, 4))
	assert.False(t, f.In(7, 0))
	assert.False(t, f.In(0, -1))
}

func TestDirectionTables(t *testing.T) {
	var sum float64
	for d := 0; d < Q; d++ {
		sum += Weight[d]
		o := Opposite[d]
		assert.Equal(t, -Cx[d], Cx[o], "cx of %v", Direction(d))
		assert.Equal(t, -Cy[d], Cy[o], "cy of %v", Direction(d))
		assert.Equal(t, Direction(d), Opposite[o])
	}
	assert.InDelta(t, 1.0, sum, 1e-15)
	assert.Equal(t, "NE", NE.String())
}

func TestEquilibriumIdempotence(t *testing.T) {
	f, err := New(3, 3)
	require.NoError(t, err)

	cases := []struct{ ux, uy, rho float64 }{
		{0, 0, 1},
		{0.1, 0, 1},
		{0.05, -0.03, 0.97},
		{-0.08, 0.12, 1.2},
	}
	for _, c := range cases {
		f.SetEquilibrium(4, c.ux, c.uy, c.rho)
		rho, ux, uy := f.Moments(4)
		assert.InDelta(t, c.rho, rho, 1e-12)
		assert.InDelta(t, c.ux, ux, 1e-12)
		assert.InDelta(t, c.uy, uy, 1e-12)
	}
}

func TestEquilibriumMatchesClosedForm(t *testing.T) {
	v := 0.1
	feq := Equilibrium(v, 0, 1)
	assert.InDelta(t, 4.0/9*(1-1.5*v*v), feq[Rest], 1e-15)
	assert.InDelta(t, 1.0/9*(1+3*v+3*v*v), feq[E], 1e-15)
	assert.InDelta(t, 1.0/9*(1-3*v+3*v*v), feq[W], 1e-15)
	assert.InDelta(t, 1.0/9*(1-1.5*v*v), feq[N], 1e-15)
	assert.InDelta(t, 1.0/36*(1+3*v+3*v*v), feq[NE], 1e-15)
	assert.InDelta(t, 1.0/36*(1-3*v+3*v*v), feq[SW], 1e-15)
}

func TestSetEquilibriumKeepDensity(t *testing.T) {
	f, err := New(3, 3)
	require.NoError(t, err)
	f.SetEquilibrium(0, 0, 0, 1.05)
	f.SetEquilibriumKeepDensity(0, 0.02, 0.01)
	rho, ux, uy := f.Moments(0)
	assert.InDelta(t, 1.05, rho, 1e-12)
	assert.InDelta(t, 0.02, ux, 1e-12)
	assert.InDelta(t, 0.01, uy, 1e-12)
	assert.Equal(t, 1.05, f.Rho[0])
}

func TestFillAndMass(t *testing.T) {
	f, err := New(4, 5)
	require.NoError(t, err)
	f.Curl[3] = 2
	f.Fill(0.1, 0, 1)
	assert.Equal(t, 0.0, f.Curl[3])
	assert.InDelta(t, 20.0, f.FluidMass(), 1e-12)
	assert.Equal(t, []float64{1, 1, 1, 1}, f.MidlineDensity())
	assert.InDelta(t, 0.1, f.Speed(7), 1e-15)

	mask := make([]bool, 20)
	mask[0], mask[19] = true, true
	require.NoError(t, f.SetBarrier(mask))
	assert.InDelta(t, 18.0, f.FluidMass(), 1e-12)

	assert.Error(t, f.SetBarrier(make([]bool, 3)))
	require.NoError(t, f.SetBarrier(nil))
	assert.False(t, f.Barrier[0])
}
