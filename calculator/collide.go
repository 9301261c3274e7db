package calculator

import (
	"lbflow/lattice"
)

// 碰撞：每个内部流体格点向平衡态松弛，顺带写回密度和速度。
// 边界一圈由 setBoundaries 负责，不参与碰撞。
func (s *Solver) collide(omega float64) {
	f := s.field
	s.exec.dispatch(1, f.YDim-1, func(t task) {
		for y := t.start; y < t.end; y++ {
			for x := 1; x < f.XDim-1; x++ {
				i := f.Idx(x, y)
				if f.Barrier[i] {
					continue
				}
				collideSite(f, i, omega)
			}
		}
	})

	// 右端开口：从左侧一列复制向西运动的分布
	right := f.XDim - 1
	for y := 1; y < f.YDim-1; y++ {
		i, j := f.Idx(right, y), f.Idx(right-1, y)
		f.F[lattice.W][i] = f.F[lattice.W][j]
		f.F[lattice.NW][i] = f.F[lattice.NW][j]
		f.F[lattice.SW][i] = f.F[lattice.SW][j]
	}
}

func collideSite(f *lattice.Field, i int, omega float64) {
	rho, ux, uy := f.Moments(i)
	f.Rho[i] = rho
	f.Ux[i] = ux
	f.Uy[i] = uy

	feq := lattice.Equilibrium(ux, uy, rho)
	for d := 0; d < lattice.Q; d++ {
		f.F[d][i] += omega * (feq[d] - f.F[d][i])
	}
}
