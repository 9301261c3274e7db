package barrier

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// 障碍物布局
// 1. 管道：上下两侧的墙，厚度可配置
// 2. 圆柱：管道 + 通道内的圆形障碍物
// 3. 平板：管道 + 垂直平板

const (
	ShapeNone     = "none"
	ShapePipe     = "pipe"
	ShapeCylinder = "cylinder"
	ShapePlate    = "plate"

	DefaultThickness = 8
)

type Spec struct {
	XDim      int
	YDim      int
	Shape     string
	Thickness int     // 管道壁厚度（格子数）
	Radius    float64 // 圆柱半径，或平板半长
}

// Build returns the obstacle mask for spec, indexed x + y*xdim.
func Build(spec Spec) ([]bool, error) {
	if spec.XDim < 3 || spec.YDim < 3 {
		return nil, fmt.Errorf("barrier: grid %dx%d too small", spec.XDim, spec.YDim)
	}
	mask := make([]bool, spec.XDim*spec.YDim)

	switch spec.Shape {
	case ShapeNone, "":
	case ShapePipe:
		if err := pipe(spec, mask); err != nil {
			return nil, err
		}
	case ShapeCylinder:
		if err := pipe(spec, mask); err != nil {
			return nil, err
		}
		cylinder(spec, mask)
	case ShapePlate:
		if err := pipe(spec, mask); err != nil {
			return nil, err
		}
		plate(spec, mask)
	default:
		return nil, fmt.Errorf("barrier: unknown shape %q", spec.Shape)
	}

	log.WithFields(log.Fields{
		"shape":     spec.Shape,
		"xdim":      spec.XDim,
		"ydim":      spec.YDim,
		"thickness": spec.Thickness,
		"radius":    spec.Radius,
		"sites":     Count(mask),
	}).Info("障碍物布局")
	return mask, nil
}

// Count returns the number of obstacle sites in mask.
func Count(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}
	return n
}

func pipe(spec Spec, mask []bool) error {
	t := spec.Thickness
	if t <= 0 {
		t = DefaultThickness
	}
	// 两侧墙之间至少要留出一行流体
	if 2*t >= spec.YDim-1 {
		return fmt.Errorf("barrier: wall thickness %d leaves no channel in %d rows", t, spec.YDim)
	}
	for x := 0; x < spec.XDim; x++ {
		for l := 0; l < t; l++ {
			mask[x+l*spec.XDim] = true
			mask[x+(spec.YDim-1-l)*spec.XDim] = true
		}
	}
	return nil
}

// 圆心位于通道的左侧 1/4 处
func cylinder(spec Spec, mask []bool) {
	cx, cy := float64(spec.XDim)/4, float64(spec.YDim-1)/2
	r := spec.Radius
	if r <= 0 {
		r = float64(spec.YDim) / 10
	}
	for y := 1; y < spec.YDim-1; y++ {
		for x := 1; x < spec.XDim-1; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy <= r*r {
				mask[x+y*spec.XDim] = true
			}
		}
	}
}

func plate(spec Spec, mask []bool) {
	x := spec.XDim / 4
	cy := (spec.YDim - 1) / 2
	half := int(spec.Radius)
	if half <= 0 {
		half = spec.YDim / 10
	}
	for y := cy - half; y <= cy+half; y++ {
		if y > 0 && y < spec.YDim-1 {
			mask[x+y*spec.XDim] = true
		}
	}
}
