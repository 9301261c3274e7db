package calculator

import (
	"fmt"
	"math"
)

const (
	// MaxSpeed is the lattice speed of sound, 1/sqrt(3). Inflow at or above it cannot be stable.
	MaxSpeed = 0.5773502691896258

	// 拖拽速度的上限（每个分量）
	MaxPushSpeed = 0.1

	// 拖拽位置距离边界的最小距离
	pushMargin = 3
)

// Params are the per-batch simulation inputs.
type Params struct {
	Speed     float64 // 入口流速 u0
	Viscosity float64 // 运动粘度
	Steps     int     // 本批次的步数
	Tracers   bool    // 是否推进示踪粒子
	Push      *Push   // 拖拽，为 nil 时不施加
}

// Push overwrites a small brush around (X, Y) with the equilibrium for (UX, UY).
type Push struct {
	X  int
	Y  int
	UX float64
	UY float64
}

func (p Params) Validate() error {
	if err := validateSpeed(p.Speed); err != nil {
		return err
	}
	if math.IsNaN(p.Viscosity) || math.IsInf(p.Viscosity, 0) || p.Viscosity < 0 {
		return fmt.Errorf("viscosity must be a non-negative number, got %v", p.Viscosity)
	}
	if p.Steps < 0 {
		return fmt.Errorf("step count must not be negative, got %d", p.Steps)
	}
	if p.Push != nil {
		if math.IsNaN(p.Push.UX) || math.IsNaN(p.Push.UY) {
			return fmt.Errorf("push velocity must be a number, got (%v, %v)", p.Push.UX, p.Push.UY)
		}
	}
	return nil
}

// Omega is the BGK relaxation rate 1/(3*viscosity + 0.5).
func (p Params) Omega() float64 {
	return 1 / (3*p.Viscosity + 0.5)
}

func validateSpeed(u0 float64) error {
	if math.IsNaN(u0) || u0 < 0 || u0 >= MaxSpeed {
		return fmt.Errorf("inflow speed must be in [0, %.4f), got %v", MaxSpeed, u0)
	}
	return nil
}

func clampPush(v float64) float64 {
	return math.Max(-MaxPushSpeed, math.Min(MaxPushSpeed, v))
}
