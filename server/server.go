package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"lbflow/calculator"
	"lbflow/model"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader

	cfg  calculator.Config
	mask []bool
}

// NewServer serves one independent solver per websocket connection, built from cfg and the obstacle mask.
func NewServer(addr string, upgrader websocket.Upgrader, cfg calculator.Config, mask []bool) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		cfg:      cfg,
		mask:     mask,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket 升级失败")
		return
	}
	defer conn.Close()

	solver, err := calculator.NewSolver(s.cfg, s.mask)
	if err != nil {
		log.WithError(err).Error("求解器创建失败")
		_ = conn.WriteJSON(&model.Msg{Type: model.TypeError, Content: err.Error()})
		return
	}
	hub := NewHub(solver, conn, s.cfg.Params())

	ctx, cancel := context.WithCancel(r.Context())
	done := make(chan struct{})
	go func() {
		defer close(done)
		hub.run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	log.WithField("remote", conn.RemoteAddr().String()).Info("连接建立")
	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			log.WithError(err).Info("连接关闭")
			return
		}
		select {
		case hub.msg <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("服务启动")
	return http.ListenAndServe(s.addr, s.Handler())
}
