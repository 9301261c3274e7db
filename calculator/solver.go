package calculator

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"lbflow/lattice"
)

// Solver is a D2Q9 BGK lattice Boltzmann channel-flow solver. It is not safe
// for concurrent use: callers must not read its fields while StepBatch runs.
type Solver struct {
	field   *lattice.Field
	tracers *TracerSet
	exec    *executor
	period  *periodMeter

	time  int // 自上次重置以来的步数
	force Force
}

// NewSolver builds the lattice with the given obstacle mask (nil for none) and
// initializes it to uniform flow at cfg.Speed.
func NewSolver(cfg Config, mask []bool) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	field, err := lattice.New(cfg.XDim, cfg.YDim)
	if err != nil {
		return nil, err
	}
	if err := field.SetBarrier(mask); err != nil {
		return nil, err
	}

	s := &Solver{
		field:   field,
		tracers: NewTracerSet(cfg.Tracers, cfg.Seed),
		exec:    newExecutor(cfg.Workers),
	}
	if err := s.Reset(cfg.Speed); err != nil {
		return nil, err
	}
	s.SeedTracers()
	return s, nil
}

// Reset reinitializes the field to a uniform equilibrium flow (speed, 0, 1).
func (s *Solver) Reset(speed float64) error {
	if err := validateSpeed(speed); err != nil {
		return err
	}
	s.field.Fill(speed, 0, 1)
	s.force = Force{}
	s.period = newPeriodMeter()
	s.time = 0
	log.WithField("speed", speed).Info("初始化为均匀来流")
	return nil
}

// StepBatch runs p.Steps cycles of boundary, collision, streaming, tracers and
// push, then checks stability. On divergence the field is reset and an error
// wrapping ErrUnstable is returned.
func (s *Solver) StepBatch(p Params) (*BatchResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	omega := p.Omega()
	res := &BatchResult{Steps: p.Steps}
	for step := 0; step < p.Steps; step++ {
		s.setBoundaries(p.Speed)
		s.collide(omega)
		s.force = s.stream()
		if p.Tracers {
			s.tracers.Advect(s.field)
		}
		if p.Push != nil {
			s.Push(*p.Push)
		}
		s.time++
		if period, ok := s.period.observe(s.time, s.force.Fy); ok {
			res.Periods = append(res.Periods, period)
		}
	}
	res.Elapsed = time.Since(start)

	if !stable(s.field) {
		t := s.time
		log.WithFields(log.Fields{
			"time":      t,
			"speed":     p.Speed,
			"viscosity": p.Viscosity,
		}).Warn("模拟发散，重置流场")
		if err := s.Reset(p.Speed); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w at step %d (speed %v, viscosity %v)", ErrUnstable, t, p.Speed, p.Viscosity)
	}

	res.Time = s.time
	res.Force = s.force
	res.Mass = s.field.FluidMass()
	log.WithFields(log.Fields{
		"steps":   res.Steps,
		"time":    res.Time,
		"elapsed": res.Elapsed,
	}).Debug("批次完成")
	return res, nil
}

func (s *Solver) Field() *lattice.Field {
	return s.field
}

// Vorticity computes the curl (times two) of the velocity field into Field().Curl
// for interior sites; edge sites stay zero.
func (s *Solver) Vorticity() []float64 {
	f := s.field
	xdim := f.XDim
	for y := 1; y < f.YDim-1; y++ {
		for x := 1; x < xdim-1; x++ {
			i := x + y*xdim
			f.Curl[i] = f.Uy[i+1] - f.Uy[i-1] - f.Ux[i+xdim] + f.Ux[i-xdim]
		}
	}
	return f.Curl
}

func (s *Solver) SeedTracers() {
	s.tracers.Seed(s.field.XDim, s.field.YDim)
}

func (s *Solver) Tracers() []Point {
	return s.tracers.Points()
}

func (s *Solver) Force() Force {
	return s.force
}

func (s *Solver) Time() int {
	return s.time
}

func (s *Solver) Sensor(x, y int) (Reading, error) {
	if !s.field.In(x, y) {
		return Reading{}, fmt.Errorf("sensor position (%d, %d) outside %dx%d grid", x, y, s.field.XDim, s.field.YDim)
	}
	i := s.field.Idx(x, y)
	return Reading{
		X:   x,
		Y:   y,
		Rho: s.field.Rho[i],
		Ux:  s.field.Ux[i],
		Uy:  s.field.Uy[i],
	}, nil
}
