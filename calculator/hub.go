package calculator

import (
	"sync"
	"time"
)

// 一次迭代后的计算进度
type Progress struct {
	Sweep   int
	Error   float64
	Elapsed time.Duration
	State   State
}

type CalcHub struct {
	// 停止计算
	Stop chan struct{}
	// 计算进度推送，消费方跟不上时丢弃
	Progress chan Progress

	stopOnce  sync.Once
	closeOnce sync.Once
}

func NewCalcHub() *CalcHub {
	return &CalcHub{
		Stop:     make(chan struct{}),
		Progress: make(chan Progress, 16),
	}
}

func (ch *CalcHub) PushProgress(p Progress) {
	select {
	case ch.Progress <- p:
	default:
	}
}

func (ch *CalcHub) StopSignal() {
	ch.stopOnce.Do(func() {
		close(ch.Stop)
	})
}

func (ch *CalcHub) stopped() bool {
	select {
	case <-ch.Stop:
		return true
	default:
		return false
	}
}

// 计算结束后关闭进度通道
func (ch *CalcHub) finish() {
	ch.closeOnce.Do(func() {
		close(ch.Progress)
	})
}
