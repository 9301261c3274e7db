package calculator

// 边界：上下两行、左右两列每步都重置为 (u0, 0, 1) 的平衡态
func (s *Solver) setBoundaries(u0 float64) {
	f := s.field
	for x := 0; x < f.XDim; x++ {
		f.SetEquilibrium(f.Idx(x, 0), u0, 0, 1)
		f.SetEquilibrium(f.Idx(x, f.YDim-1), u0, 0, 1)
	}
	for y := 1; y < f.YDim-1; y++ {
		f.SetEquilibrium(f.Idx(0, y), u0, 0, 1)
		f.SetEquilibrium(f.Idx(f.XDim-1, y), u0, 0, 1)
	}
}

// Push drags the fluid around (p.X, p.Y): the brush sites are set to the
// equilibrium for the clamped push velocity, keeping their density.
// Targets within pushMargin of an edge are ignored.
func (s *Solver) Push(p Push) {
	f := s.field
	if p.X <= pushMargin || p.X >= f.XDim-1-pushMargin ||
		p.Y <= pushMargin || p.Y >= f.YDim-1-pushMargin {
		return
	}
	ux, uy := clampPush(p.UX), clampPush(p.UY)

	set := func(x, y int) {
		i := f.Idx(x, y)
		if f.Barrier[i] {
			return
		}
		f.SetEquilibriumKeepDensity(i, ux, uy)
	}
	// 近似圆形：5x3 的方块加上下各 3 个格点
	for dx := -1; dx <= 1; dx++ {
		set(p.X+dx, p.Y+2)
		set(p.X+dx, p.Y-2)
	}
	for dx := -2; dx <= 2; dx++ {
		for dy := -1; dy <= 1; dy++ {
			set(p.X+dx, p.Y+dy)
		}
	}
}
