package calculator

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"lbflow/lattice"
)

// 重新进入时 y 的取值范围（占通道高度的比例）
const (
	reentryLow  = 0.09
	reentryHigh = 0.9
)

// TracerSet holds massless marker particles in grid coordinates.
type TracerSet struct {
	X []float64
	Y []float64

	rng *rand.Rand
}

func NewTracerSet(n int, seed int64) *TracerSet {
	return &TracerSet{
		X:   make([]float64, n),
		Y:   make([]float64, n),
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (ts *TracerSet) Len() int {
	return len(ts.X)
}

// Seed lays the tracers out row by row on a square arrangement covering the domain.
func (ts *TracerSet) Seed(xdim, ydim int) {
	n := ts.Len()
	if n == 0 {
		return
	}
	perRow := int(math.Ceil(math.Sqrt(float64(n))))
	dx := float64(xdim) / float64(perRow)
	dy := float64(ydim) / float64(perRow)

	xs := make([]float64, perRow)
	if perRow == 1 {
		xs[0] = dx / 2
	} else {
		floats.Span(xs, dx/2, float64(xdim)-dx/2)
	}
	for t := 0; t < n; t++ {
		ts.X[t] = xs[t%perRow]
		ts.Y[t] = dy/2 + float64(t/perRow)*dy
	}
}

// Advect moves every tracer by the velocity of its rounded cell. Tracers leaving
// through the right edge re-enter at x = 0 at a random height.
func (ts *TracerSet) Advect(f *lattice.Field) {
	for t := range ts.X {
		x := clampInt(int(math.Round(ts.X[t])), 0, f.XDim-1)
		y := clampInt(int(math.Round(ts.Y[t])), 0, f.YDim-1)
		i := f.Idx(x, y)
		ts.X[t] += f.Ux[i]
		ts.Y[t] += f.Uy[i]
		if ts.X[t] > float64(f.XDim-1) {
			ts.X[t] = 0
			ts.Y[t] = (ts.rng.Float64()*(reentryHigh-reentryLow) + reentryLow) * float64(f.YDim)
		}
	}
}

func (ts *TracerSet) Points() []Point {
	points := make([]Point, ts.Len())
	for t := range points {
		points[t] = Point{X: ts.X[t], Y: ts.Y[t]}
	}
	return points
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
