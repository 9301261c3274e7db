package main

import (
	"errors"
	"flag"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"lbflow/barrier"
	"lbflow/calculator"
	"lbflow/server"
)

var (
	configPath = flag.String("config", "conf/config.ini", "ini 配置文件路径")
	headless   = flag.Int("headless", 0, "不启动服务，直接计算 N 个批次后退出")
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func main() {
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.WithError(err).Fatal("配置错误")
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warn("日志级别无效，使用 info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	mask, err := barrier.Build(cfg.BarrierSpec())
	if err != nil {
		log.WithError(err).Fatal("障碍物布局错误")
	}

	if *headless > 0 {
		if err := runHeadless(cfg, mask, *headless); err != nil {
			log.WithError(err).Fatal("计算失败")
		}
		return
	}

	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	s := server.NewServer(cfg.Addr, upgrader, cfg, mask)
	if err := s.Serve(); err != nil {
		log.WithError(err).Fatal("ListenAndServe")
	}
}

// 配置文件不存在时使用默认配置
func loadConfig(path string) (calculator.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.WithField("path", path).Warn("配置文件不存在，使用默认配置")
		cfg := calculator.DefaultConfig()
		return cfg, cfg.Validate()
	}
	return calculator.LoadConfig(path)
}

func runHeadless(cfg calculator.Config, mask []bool, batches int) error {
	s, err := calculator.NewSolver(cfg, mask)
	if err != nil {
		return err
	}
	p := cfg.Params()
	var (
		periods []float64
		res     *calculator.BatchResult
	)
	for b := 0; b < batches; b++ {
		res, err = s.StepBatch(p)
		if err != nil {
			return err
		}
		periods = append(periods, res.Periods...)
	}

	f := s.Field()
	maxSpeed := 0.0
	for i := 0; i < f.Size(); i++ {
		if !f.Barrier[i] && f.Speed(i) > maxSpeed {
			maxSpeed = f.Speed(i)
		}
	}
	fields := log.Fields{
		"time":      res.Time,
		"mass":      res.Mass,
		"fx":        res.Force.Fx,
		"fy":        res.Force.Fy,
		"max_speed": maxSpeed,
		"steps/s":   res.StepsPerSecond(),
	}
	if n := len(periods); n > 0 {
		fields["period"] = periods[n-1]
	}
	log.WithFields(fields).Info("计算完成")
	return nil
}
