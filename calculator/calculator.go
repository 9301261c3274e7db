package calculator

import (
	"time"

	"lbflow/lattice"
)

// calculator 的接口定义

type Calculator interface {
	// 运行一批时间步
	StepBatch(p Params) (*BatchResult, error)

	// 重置为均匀来流
	Reset(speed float64) error

	// 输出
	Field() *lattice.Field
	Vorticity() []float64
	Tracers() []Point
	Force() Force
	Time() int

	// 重新布置示踪粒子
	SeedTracers()

	// 探针
	Sensor(x, y int) (Reading, error)
}

// Force is the net momentum delivered to obstacle sites during the last streaming pass.
type Force struct {
	Fx float64 `json:"fx"`
	Fy float64 `json:"fy"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Reading struct {
	X   int     `json:"x"`
	Y   int     `json:"y"`
	Rho float64 `json:"rho"`
	Ux  float64 `json:"ux"`
	Uy  float64 `json:"uy"`
}

type BatchResult struct {
	Steps   int           // 本批次执行的步数
	Time    int           // 累计步数
	Force   Force         // 最后一步的障碍物受力
	Periods []float64     // 本批次内测得的 Fy 振荡周期
	Mass    float64       // 流体总质量
	Elapsed time.Duration // 计算耗时
}

// StepsPerSecond is the batch throughput.
func (r *BatchResult) StepsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Steps) / r.Elapsed.Seconds()
}
