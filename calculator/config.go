package calculator

import (
	"fmt"
	"runtime"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"lbflow/barrier"
)

type Config struct {
	// 网格
	XDim int
	YDim int

	// 障碍物
	Shape     string
	Thickness int
	Radius    float64

	// 流动参数的初始值
	Speed     float64
	Viscosity float64
	Steps     int

	// 示踪粒子
	Tracers int
	Seed    int64

	Workers int

	Addr     string
	LogLevel string
}

// DefaultConfig is a 200x80 pipe, u0 = 0.1, viscosity 0.02, 20 steps per batch.
func DefaultConfig() Config {
	return Config{
		XDim:      200,
		YDim:      80,
		Shape:     barrier.ShapePipe,
		Thickness: barrier.DefaultThickness,
		Speed:     0.1,
		Viscosity: 0.02,
		Steps:     20,
		Tracers:   100,
		Seed:      1,
		Workers:   1,
		Addr:      ":9000",
		LogLevel:  "info",
	}
}

// LoadConfig reads an ini source (file name, []byte or io.Reader) on top of DefaultConfig.
func LoadConfig(source interface{}) (Config, error) {
	file, err := ini.Load(source)
	if err != nil {
		return Config{}, fmt.Errorf("配置文件读取错误: %w", err)
	}
	cfg := loadCfg(file)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	log.WithFields(log.Fields{
		"xdim":      cfg.XDim,
		"ydim":      cfg.YDim,
		"shape":     cfg.Shape,
		"speed":     cfg.Speed,
		"viscosity": cfg.Viscosity,
		"steps":     cfg.Steps,
		"workers":   cfg.Workers,
	}).Info("读取配置")
	return cfg, nil
}

func loadCfg(file *ini.File) Config {
	def := DefaultConfig()
	return Config{
		XDim:      file.Section("lattice").Key("xdim").MustInt(def.XDim),
		YDim:      file.Section("lattice").Key("ydim").MustInt(def.YDim),
		Shape:     file.Section("barrier").Key("shape").MustString(def.Shape),
		Thickness: file.Section("barrier").Key("thickness").MustInt(def.Thickness),
		Radius:    file.Section("barrier").Key("radius").MustFloat64(def.Radius),
		Speed:     file.Section("flow").Key("speed").MustFloat64(def.Speed),
		Viscosity: file.Section("flow").Key("viscosity").MustFloat64(def.Viscosity),
		Steps:     file.Section("flow").Key("steps").MustInt(def.Steps),
		Tracers:   file.Section("tracer").Key("count").MustInt(def.Tracers),
		Seed:      file.Section("tracer").Key("seed").MustInt64(def.Seed),
		Workers:   file.Section("executor").Key("workers").MustInt(def.Workers),
		Addr:      file.Section("server").Key("addr").MustString(def.Addr),
		LogLevel:  file.Section("log").Key("level").MustString(def.LogLevel),
	}
}

// Validate checks the configuration. A non-positive worker count is replaced by the CPU count.
func (c *Config) Validate() error {
	if c.XDim < 3 || c.YDim < 3 {
		return fmt.Errorf("grid must be at least 3x3, got %dx%d", c.XDim, c.YDim)
	}
	if c.Tracers < 0 {
		return fmt.Errorf("tracer count must not be negative, got %d", c.Tracers)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return c.Params().Validate()
}

// Params returns the flow parameters the configuration starts with.
func (c Config) Params() Params {
	return Params{
		Speed:     c.Speed,
		Viscosity: c.Viscosity,
		Steps:     c.Steps,
		Tracers:   c.Tracers > 0,
	}
}

// BarrierSpec returns the obstacle layout described by the configuration.
func (c Config) BarrierSpec() barrier.Spec {
	return barrier.Spec{
		XDim:      c.XDim,
		YDim:      c.YDim,
		Shape:     c.Shape,
		Thickness: c.Thickness,
		Radius:    c.Radius,
	}
}
