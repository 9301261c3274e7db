/**
 *
 * D2Q9 格子的存储容器
 * 每个方向一个一维数组（structure of arrays），下标统一为 x + y*xdim，
 * 遍历时按行访问，保持数组的局部性
 *
 */

package lattice

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Direction is one of the nine D2Q9 lattice velocities.
type Direction int

const (
	Rest Direction = iota
	E
	N
	W
	S
	NE
	NW
	SW
	SE

	// Q is the number of lattice directions.
	Q = 9
)

var (
	Cx = [Q]int{0, 1, 0, -1, 0, 1, -1, -1, 1}
	Cy = [Q]int{0, 0, 1, 0, -1, 1, 1, -1, -1}

	Weight = [Q]float64{
		4.0 / 9,
		1.0 / 9, 1.0 / 9, 1.0 / 9, 1.0 / 9,
		1.0 / 36, 1.0 / 36, 1.0 / 36, 1.0 / 36,
	}

	Opposite = [Q]Direction{Rest, W, S, E, N, SW, SE, NE, NW}
)

var ErrDimension = errors.New("lattice: grid needs at least 3x3 sites")

func (d Direction) String() string {
	return [Q]string{"0", "E", "N", "W", "S", "NE", "NW", "SW", "SE"}[d]
}

type Field struct {
	XDim int
	YDim int

	// 各方向的分布函数
	F [Q][]float64

	// 宏观量
	Rho  []float64
	Ux   []float64
	Uy   []float64
	Curl []float64

	Barrier []bool
}

func New(xdim, ydim int) (*Field, error) {
	if xdim < 3 || ydim < 3 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrDimension, xdim, ydim)
	}
	n := xdim * ydim
	f := &Field{
		XDim:    xdim,
		YDim:    ydim,
		Rho:     make([]float64, n),
		Ux:      make([]float64, n),
		Uy:      make([]float64, n),
		Curl:    make([]float64, n),
		Barrier: make([]bool, n),
	}
	for d := 0; d < Q; d++ {
		f.F[d] = make([]float64, n)
	}
	return f, nil
}

func (f *Field) Size() int {
	return f.XDim * f.YDim
}

func (f *Field) Idx(x, y int) int {
	return x + y*f.XDim
}

// In reports whether (x, y) addresses a site of the grid.
func (f *Field) In(x, y int) bool {
	return x >= 0 && x < f.XDim && y >= 0 && y < f.YDim
}

// SetBarrier installs the obstacle mask. The mask is copied.
func (f *Field) SetBarrier(mask []bool) error {
	if mask == nil {
		for i := range f.Barrier {
			f.Barrier[i] = false
		}
		return nil
	}
	if len(mask) != f.Size() {
		return fmt.Errorf("lattice: barrier mask has %d sites, grid has %d", len(mask), f.Size())
	}
	copy(f.Barrier, mask)
	return nil
}

// Equilibrium returns the nine equilibrium values for the given velocity and density.
func Equilibrium(ux, uy, rho float64) [Q]float64 {
	var feq [Q]float64
	u215 := 1.5 * (ux*ux + uy*uy)
	for d := 0; d < Q; d++ {
		cu := float64(Cx[d])*ux + float64(Cy[d])*uy
		feq[d] = Weight[d] * rho * (1 + 3*cu + 4.5*cu*cu - u215)
	}
	return feq
}

// SetEquilibrium sets all nine values of site i to equilibrium and records the macroscopic quantities.
func (f *Field) SetEquilibrium(i int, ux, uy, rho float64) {
	feq := Equilibrium(ux, uy, rho)
	for d := 0; d < Q; d++ {
		f.F[d][i] = feq[d]
	}
	f.Rho[i] = rho
	f.Ux[i] = ux
	f.Uy[i] = uy
}

// SetEquilibriumKeepDensity is SetEquilibrium with the site's current density.
func (f *Field) SetEquilibriumKeepDensity(i int, ux, uy float64) {
	f.SetEquilibrium(i, ux, uy, f.Rho[i])
}

// Moments recomputes density and velocity of site i from its distribution values.
func (f *Field) Moments(i int) (rho, ux, uy float64) {
	var mx, my float64
	for d := 0; d < Q; d++ {
		v := f.F[d][i]
		rho += v
		mx += float64(Cx[d]) * v
		my += float64(Cy[d]) * v
	}
	return rho, mx / rho, my / rho
}

// Fill resets every site to a uniform equilibrium flow.
func (f *Field) Fill(ux, uy, rho float64) {
	for y := 0; y < f.YDim; y++ {
		for x := 0; x < f.XDim; x++ {
			i := f.Idx(x, y)
			f.SetEquilibrium(i, ux, uy, rho)
			f.Curl[i] = 0
		}
	}
}

// MidlineDensity returns a copy of the density row y = ydim/2.
func (f *Field) MidlineDensity() []float64 {
	row := make([]float64, f.XDim)
	start := f.Idx(0, f.YDim/2)
	copy(row, f.Rho[start:start+f.XDim])
	return row
}

// FluidMass sums the density of all non-obstacle sites.
func (f *Field) FluidMass() float64 {
	rho := make([]float64, 0, f.Size())
	for i, b := range f.Barrier {
		if !b {
			rho = append(rho, f.Rho[i])
		}
	}
	if len(rho) == 0 {
		return 0
	}
	return floats.Sum(rho)
}

// Speed returns |u| at site i.
func (f *Field) Speed(i int) float64 {
	return math.Hypot(f.Ux[i], f.Uy[i])
}
