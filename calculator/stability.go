package calculator

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	"lbflow/lattice"
)

// ErrUnstable reports a diverged run. The solver has already been reset to uniform flow when it is returned.
var ErrUnstable = errors.New("simulation became unstable")

// 只检查中间一行：密度 <= 0 或出现 NaN 即认为发散
func stable(f *lattice.Field) bool {
	row := f.MidlineDensity()
	if floats.HasNaN(row) {
		return false
	}
	return floats.Min(row) > 0
}
