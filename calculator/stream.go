package calculator

import (
	"lbflow/lattice"
)

// 迁移：内部格点从上游邻居拉取分布值。
// 每对方向的遍历顺序保证源数据在被覆盖之前已经读取：
// N/NW 从上往下；E/NE 从上往下、从右往左；S/SE 从下往上、从右往左；W/SW 从下往上、从左往右。
func (s *Solver) stream() Force {
	f := s.field
	xdim, ydim := f.XDim, f.YDim

	nN, nNW := f.F[lattice.N], f.F[lattice.NW]
	for y := ydim - 2; y > 0; y-- {
		for x := 1; x < xdim-1; x++ {
			i := x + y*xdim
			nN[i] = nN[i-xdim]
			nNW[i] = nNW[i+1-xdim]
		}
	}

	nE, nNE := f.F[lattice.E], f.F[lattice.NE]
	for y := ydim - 2; y > 0; y-- {
		for x := xdim - 2; x > 0; x-- {
			i := x + y*xdim
			nE[i] = nE[i-1]
			nNE[i] = nNE[i-1-xdim]
		}
	}

	nS, nSE := f.F[lattice.S], f.F[lattice.SE]
	for y := 1; y < ydim-1; y++ {
		for x := xdim - 2; x > 0; x-- {
			i := x + y*xdim
			nS[i] = nS[i+xdim]
			nSE[i] = nSE[i-1+xdim]
		}
	}

	nW, nSW := f.F[lattice.W], f.F[lattice.SW]
	for y := 1; y < ydim-1; y++ {
		for x := 1; x < xdim-1; x++ {
			i := x + y*xdim
			nW[i] = nW[i+1]
			nSW[i] = nSW[i+1+xdim]
		}
	}

	return s.bounceBack()
}

// 反弹：到达障碍物的分布沿原路返回到发出它的流体格点的反方向槽位，
// 同时累计障碍物受到的净动量。
func (s *Solver) bounceBack() Force {
	f := s.field
	var force Force
	for y := 1; y < f.YDim-1; y++ {
		for x := 1; x < f.XDim-1; x++ {
			i := f.Idx(x, y)
			if !f.Barrier[i] {
				continue
			}
			for d := 1; d < lattice.Q; d++ {
				src := f.Idx(x-lattice.Cx[d], y-lattice.Cy[d])
				if f.Barrier[src] {
					continue
				}
				v := f.F[d][i]
				f.F[lattice.Opposite[d]][src] = v
				force.Fx += float64(lattice.Cx[d]) * v
				force.Fy += float64(lattice.Cy[d]) * v
			}
		}
	}
	return force
}
