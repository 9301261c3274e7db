package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"lbflow/calculator"
	"lbflow/model"
)

type jsonWriter interface {
	WriteJSON(v interface{}) error
}

// Hub 处理一个连接上的全部请求。流场只由 run 所在的 goroutine 读写，
// 读循环通过 msg 通道把请求交给它。
type Hub struct {
	c    calculator.Calculator
	conn jsonWriter

	params  calculator.Params
	opts    frameOptions
	running bool
	pending *calculator.Push // 下一批次施加的拖拽

	// request
	msg chan model.Msg
}

func NewHub(c calculator.Calculator, conn jsonWriter, params calculator.Params) *Hub {
	return &Hub{
		c:      c,
		conn:   conn,
		params: params,
		opts:   frameOptions{tracers: params.Tracers},
		msg:    make(chan model.Msg, 10),
	}
}

// run 在运行状态下不停地计算批次，两批之间处理到达的请求
func (h *Hub) run(ctx context.Context) {
	for {
		if !h.running {
			select {
			case <-ctx.Done():
				return
			case m := <-h.msg:
				h.handle(m)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return
		case m := <-h.msg:
			h.handle(m)
		default:
			h.batch()
		}
	}
}

func (h *Hub) handle(m model.Msg) {
	switch m.Type {
	case model.TypeEnv:
		var env model.Env
		if err := json.Unmarshal([]byte(m.Content), &env); err != nil {
			h.replyError(fmt.Errorf("bad env: %w", err))
			return
		}
		p := calculator.Params{
			Speed:     env.Speed,
			Viscosity: env.Viscosity,
			Steps:     env.Steps,
			Tracers:   env.Tracers,
		}
		if err := p.Validate(); err != nil {
			h.replyError(err)
			return
		}
		h.params = p
		h.opts = frameOptions{curl: env.Curl, tracers: env.Tracers}
		log.WithFields(log.Fields{
			"speed":     env.Speed,
			"viscosity": env.Viscosity,
			"steps":     env.Steps,
		}).Info("参数已设置")
		h.reply(model.TypeEnvSet, env)
	case model.TypeStart:
		h.running = true
		h.reply(model.TypeStarted, "started")
	case model.TypeStop:
		h.running = false
		h.reply(model.TypeStopped, "stopped")
	case model.TypeReset:
		if err := h.c.Reset(h.params.Speed); err != nil {
			h.replyError(err)
			return
		}
		h.sendFrame(nil)
	case model.TypePush:
		var req model.PushReq
		if err := json.Unmarshal([]byte(m.Content), &req); err != nil {
			h.replyError(fmt.Errorf("bad push: %w", err))
			return
		}
		h.pending = &calculator.Push{X: req.X, Y: req.Y, UX: req.UX, UY: req.UY}
	case model.TypeTracers:
		h.c.SeedTracers()
		h.sendFrame(nil)
	case model.TypeSnapshot:
		h.sendFrame(nil)
	case model.TypeSensor:
		var req model.SensorReq
		if err := json.Unmarshal([]byte(m.Content), &req); err != nil {
			h.replyError(fmt.Errorf("bad sensor: %w", err))
			return
		}
		r, err := h.c.Sensor(req.X, req.Y)
		if err != nil {
			h.replyError(err)
			return
		}
		h.reply(model.TypeSensor, r)
	default:
		h.replyError(fmt.Errorf("no such type %q", m.Type))
	}
}

func (h *Hub) batch() {
	p := h.params
	p.Push, h.pending = h.pending, nil
	res, err := h.c.StepBatch(p)
	if err != nil {
		h.running = false
		if errors.Is(err, calculator.ErrUnstable) {
			h.reply(model.TypeUnstable, err.Error())
			return
		}
		h.replyError(err)
		return
	}
	h.sendFrame(res)
}

func (h *Hub) sendFrame(res *calculator.BatchResult) {
	h.reply(model.TypeFrame, buildData(h.c, res, h.opts))
}

func (h *Hub) reply(typ string, v interface{}) {
	var content string
	if s, ok := v.(string); ok {
		content = s
	} else {
		data, err := json.Marshal(v)
		if err != nil {
			log.WithError(err).WithField("type", typ).Error("序列化失败")
			h.writeMsg(model.Msg{Type: model.TypeError, Content: err.Error()})
			return
		}
		content = string(data)
	}
	h.writeMsg(model.Msg{Type: typ, Content: content})
}

func (h *Hub) replyError(err error) {
	log.WithError(err).Warn("请求处理失败")
	h.writeMsg(model.Msg{Type: model.TypeError, Content: err.Error()})
}

func (h *Hub) writeMsg(m model.Msg) {
	if err := h.conn.WriteJSON(&m); err != nil {
		log.WithError(err).WithField("type", m.Type).Error("发送失败")
	}
}
