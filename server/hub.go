package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"thermal/calculator"
	"thermal/model"
)

// 两次进度推送之间的最小间隔
const progressInterval = 100 * time.Millisecond

var errRunning = errors.New("a calculation is already running")

// Hub serves one websocket connection: requests are handled in order and all
// replies go through a single writer goroutine.
type Hub struct {
	conn *websocket.Conn

	mu     sync.Mutex
	c      calculator.Calculator
	cancel context.CancelFunc

	// request
	msg chan model.Msg
	// response
	reply chan model.Msg

	done chan struct{}
	once sync.Once
}

type progressContent struct {
	Sweep   int     `json:"sweep"`
	Error   float64 `json:"error"`
	State   string  `json:"state"`
	Elapsed float64 `json:"elapsed"` // 秒
}

type startedContent struct {
	Divisions int    `json:"divisions"`
	Norm      string `json:"norm"`
}

func NewHub(conn *websocket.Conn) *Hub {
	return &Hub{
		conn:  conn,
		msg:   make(chan model.Msg, 10),
		reply: make(chan model.Msg, 10),
		done:  make(chan struct{}),
	}
}

func (h *Hub) send(reply model.Msg) {
	select {
	case h.reply <- reply:
	case <-h.done:
	}
}

func (h *Hub) sendJSON(typ string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		h.send(model.Msg{Type: model.MsgError, Content: err.Error()})
		return
	}
	h.send(model.Msg{Type: typ, Content: string(data)})
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.Error("err: ", err)
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for msg := range h.msg {
		switch msg.Type {
		case model.MsgSolve:
			if err := h.solve(msg.Content); err != nil {
				h.send(model.Msg{Type: model.MsgError, Content: err.Error()})
			}
		case model.MsgStop:
			h.mu.Lock()
			c := h.c
			h.mu.Unlock()
			if c == nil {
				h.send(model.Msg{Type: model.MsgStopped, Content: "no calculation is running"})
				continue
			}
			c.GetCalcHub().StopSignal()
		default:
			log.WithField("type", msg.Type).Warn("no such type")
			h.send(model.Msg{Type: model.MsgError, Content: "no such type: " + msg.Type})
		}
	}
}

func (h *Hub) solve(content string) error {
	setup := model.DefaultSetup()
	if content != "" {
		if err := json.Unmarshal([]byte(content), &setup); err != nil {
			return err
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.c != nil {
		return errRunning
	}
	c, err := calculator.NewCalculatorFromSetup(setup)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.c, h.cancel = c, cancel

	h.sendJSON(model.MsgStarted, startedContent{Divisions: setup.Solver.Divisions, Norm: setup.Solver.Norm})
	go h.run(ctx, c)
	return nil
}

func (h *Hub) run(ctx context.Context, c calculator.Calculator) {
	type outcome struct {
		res *model.SimulationResult
		err error
	}
	result := make(chan outcome, 1)
	go func() {
		res, err := c.Run(ctx)
		result <- outcome{res, err}
	}()

	// Run 结束时关闭进度通道
	var last time.Time
	for p := range c.GetCalcHub().Progress {
		if p.State == calculator.Running && time.Since(last) < progressInterval {
			continue
		}
		last = time.Now()
		h.sendJSON(model.MsgProgress, progressContent{
			Sweep:   p.Sweep,
			Error:   p.Error,
			State:   p.State.String(),
			Elapsed: p.Elapsed.Seconds(),
		})
	}
	o := <-result

	h.mu.Lock()
	h.c = nil
	h.cancel()
	h.mu.Unlock()
	c.Close()

	switch {
	case o.res == nil:
		h.send(model.Msg{Type: model.MsgError, Content: o.err.Error()})
	case o.res.Converged:
		h.sendJSON(model.MsgResult, o.res)
	default:
		if o.err != nil {
			log.WithField("sweeps", o.res.Sweeps).Warn(o.err)
		}
		h.sendJSON(model.MsgStopped, o.res)
	}
}

// 连接断开后停止正在进行的计算
func (h *Hub) close() {
	h.once.Do(func() {
		h.mu.Lock()
		if h.cancel != nil {
			h.cancel()
		}
		h.mu.Unlock()
		close(h.done)
		close(h.msg)
	})
}
