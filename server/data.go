package server

import (
	"lbflow/calculator"
)

// FieldData 是推送给前端的一帧数据，所有场按 x + y*xdim 排列
type FieldData struct {
	XDim    int       `json:"xdim"`
	YDim    int       `json:"ydim"`
	Rho     []float64 `json:"rho"`
	Ux      []float64 `json:"ux"`
	Uy      []float64 `json:"uy"`
	Curl    []float64 `json:"curl,omitempty"`
	Barrier []bool    `json:"barrier"`

	Tracers []calculator.Point `json:"tracers,omitempty"`
	Force   calculator.Force   `json:"force"`
	Periods []float64          `json:"periods,omitempty"`

	Step           int     `json:"step"`
	StepsPerSecond float64 `json:"steps_per_second"`
	Mass           float64 `json:"mass,omitempty"`
}

// res 为 nil 时只输出当前流场（重置、快照）
func buildData(c calculator.Calculator, res *calculator.BatchResult, env frameOptions) FieldData {
	f := c.Field()
	data := FieldData{
		XDim:    f.XDim,
		YDim:    f.YDim,
		Rho:     f.Rho,
		Ux:      f.Ux,
		Uy:      f.Uy,
		Barrier: f.Barrier,
		Force:   c.Force(),
		Step:    c.Time(),
	}
	if env.curl {
		data.Curl = c.Vorticity()
	}
	if env.tracers {
		data.Tracers = c.Tracers()
	}
	if res != nil {
		data.Periods = res.Periods
		data.StepsPerSecond = res.StepsPerSecond()
		data.Mass = res.Mass
	}
	return data
}

type frameOptions struct {
	curl    bool
	tracers bool
}
