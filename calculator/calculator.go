package calculator

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"thermal/boundary"
	"thermal/deque"
	"thermal/grid"
	"thermal/model"
)

// 计算状态
type State uint8

const (
	Running State = iota
	Converged
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	}
	return "stopped"
}

// calculator 的接口定义
type Calculator interface {
	// 迭代直到收敛、达到最大迭代次数或被停止
	Run(ctx context.Context) (*model.SimulationResult, error)

	// 完成一次全场迭代，返回两次迭代之间的误差
	Sweep() (float64, error)

	State() State

	// 获取CalcHub
	GetCalcHub() *CalcHub

	// 最近一次迭代得到的温度场
	Field() grid.Field

	// 释放并发计算使用的 goroutine
	Close()
}

type jacobiCalculator struct {
	grid      *grid.Grid
	geometry  grid.Geometry
	bcs       boundary.Set
	formulas  *formulaTable
	norm      Norm
	parameter Parameter

	thermalField  grid.Field // 温度场容器
	thermalField1 grid.Field

	// 每完成一次迭代交换一次
	alternating bool
	previous    grid.Field
	current     grid.Field

	sweeps     int
	lastError  float64
	state      State
	errorDecay model.ErrorData
	snapshots  *deque.ArrDeque
	recorded   int // 最近一次记录的迭代序号，-1 表示没有

	calcHub *CalcHub

	e executor
}

func NewCalculator(g *grid.Grid, geometry grid.Geometry, bcs boundary.Set, norm Norm, p Parameter) (*jacobiCalculator, error) {
	var err error
	if g.Divisions < 2 {
		err = multierr.Append(err, fmt.Errorf("%w: must be at least 2, got %d", ErrDivisions, g.Divisions))
	}
	if !(geometry.K > 0) || math.IsInf(geometry.K, 0) {
		err = multierr.Append(err, fmt.Errorf("%w: must be positive and finite, got %v", ErrConductivity, geometry.K))
	} else if e := geometry.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("%w: %v", ErrSpacing, e))
	}
	err = multierr.Append(err, bcs.Validate())
	err = multierr.Append(err, p.Validate())
	if norm == nil {
		err = multierr.Append(err, fmt.Errorf("%w: nil", ErrUnknownNorm))
	}
	if err != nil {
		return nil, err
	}

	e, err := newExecutor(p.Executor, p.Workers)
	if err != nil {
		return nil, err
	}
	c := newJacobiCalculator(g, geometry, bcs, norm, p, e)
	log.WithFields(log.Fields{
		"divisions": g.Divisions,
		"nodes":     g.Size(),
		"k":         geometry.K,
		"qDot":      geometry.QDot,
		"norm":      norm.Type(),
		"epsilon":   p.Epsilon,
		"executor":  p.Executor,
	}).Info("初始化计算器")
	for _, f := range boundary.Faces() {
		log.WithField("face", f).Debug(bcs.Get(f).String())
	}
	return c, nil
}

func newJacobiCalculator(g *grid.Grid, geometry grid.Geometry, bcs boundary.Set, norm Norm, p Parameter, e executor) *jacobiCalculator {
	c := &jacobiCalculator{
		grid:      g,
		geometry:  geometry,
		bcs:       bcs,
		norm:      norm,
		parameter: p,

		thermalField:  g.NewField(p.InitialTemperature),
		thermalField1: g.NewField(0),
		alternating:   true,

		errorDecay: model.ErrorData{ErrorType: norm.Type()},
		snapshots:  deque.NewArrDeque(p.MaxSnapshots),
		recorded:   -1,

		calcHub: NewCalcHub(),
		e:       e,
	}
	// 公式表引用 c.bcs，保证计算期间不变
	c.formulas = newFormulaTable(&c.bcs)
	c.e.run(c)
	return c
}

func (c *jacobiCalculator) GetCalcHub() *CalcHub {
	return c.calcHub
}

func (c *jacobiCalculator) State() State {
	return c.state
}

func (c *jacobiCalculator) Field() grid.Field {
	if c.alternating {
		return c.thermalField
	}
	return c.thermalField1
}

func (c *jacobiCalculator) Close() {
	c.e.stop()
}

// 计算 [start, end) 范围内的节点，只读 previous，只写 current
func (c *jacobiCalculator) calculateRange(start, end int) error {
	n := c.grid.Divisions
	for i := start; i < end; i++ {
		x, y, z := c.grid.Coordinates(i)
		pt := Classify(x, y, z, n)
		info := c.grid.Information(c.previous, x, y, z)
		t := c.formulas.get(pt).apply(&info, &c.geometry)
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return &NonFiniteError{Sweep: c.sweeps, X: x, Y: y, Z: z, Point: pt.Name(), Value: t}
		}
		c.current[i] = t
	}
	return nil
}

func (c *jacobiCalculator) Sweep() (float64, error) {
	if c.state != Running {
		return c.lastError, nil
	}
	if c.alternating {
		c.previous, c.current = c.thermalField, c.thermalField1
	} else {
		c.previous, c.current = c.thermalField1, c.thermalField
	}
	if _, err := c.e.dispatchTask(0, c.grid.Size()); err != nil {
		c.state = Stopped
		return 0, err
	}
	c.lastError = c.norm.Distance(c.previous, c.current)
	c.errorDecay.AddError(c.lastError)
	c.record()

	c.sweeps++
	c.alternating = !c.alternating // 仅在这里修改
	if c.lastError < c.parameter.Epsilon {
		c.state = Converged
	}
	return c.lastError, nil
}

// 第 0 次迭代开始，每隔 RecordEvery 次记录一次
func (c *jacobiCalculator) record() {
	if c.sweeps%c.parameter.RecordEvery != 0 {
		return
	}
	data := make([]float64, len(c.current))
	copy(data, c.current)
	c.snapshots.AddLast(model.StepData{Step: c.sweeps, Data: data})
	c.recorded = c.sweeps
}

func (c *jacobiCalculator) Run(ctx context.Context) (*model.SimulationResult, error) {
	defer c.calcHub.finish()
	start := time.Now()
	var err error
	for c.state == Running {
		if err = ctx.Err(); err != nil {
			break
		}
		if c.calcHub.stopped() {
			break
		}
		if c.parameter.MaxSweeps > 0 && c.sweeps >= c.parameter.MaxSweeps {
			err = fmt.Errorf("%w: %d", ErrMaxSweeps, c.sweeps)
			break
		}

		distance, sweepErr := c.Sweep()
		if sweepErr != nil {
			log.WithFields(log.Fields{"sweep": c.sweeps}).Error(sweepErr)
			return nil, sweepErr
		}
		if c.parameter.LogEvery > 0 && (c.sweeps-1)%c.parameter.LogEvery == 0 {
			log.WithFields(log.Fields{
				"sweep": c.sweeps - 1,
				"error": distance,
				"cost":  time.Since(start),
			}).Info("迭代计算")
		}
		c.calcHub.PushProgress(Progress{Sweep: c.sweeps, Error: distance, Elapsed: time.Since(start), State: c.state})
	}

	if c.state == Running {
		c.state = Stopped
		c.calcHub.PushProgress(Progress{Sweep: c.sweeps, Error: c.lastError, Elapsed: time.Since(start), State: c.state})
	}
	log.WithFields(log.Fields{
		"sweeps": c.sweeps,
		"error":  c.lastError,
		"state":  c.state,
		"cost":   time.Since(start),
	}).Info("计算结束")
	return c.result(), err
}

func (c *jacobiCalculator) result() *model.SimulationResult {
	// 最后一次迭代的温度场未被记录时追加
	if c.sweeps > 0 && c.recorded != c.sweeps-1 {
		last := c.Field()
		data := make([]float64, len(last))
		copy(data, last)
		c.snapshots.AddLast(model.StepData{Step: c.sweeps - 1, Data: data})
		c.recorded = c.sweeps - 1
	}
	errorDecay := model.ErrorData{ErrorType: c.errorDecay.ErrorType}
	errorDecay.Data = append([]float64(nil), c.errorDecay.Data...)
	return &model.SimulationResult{
		StepData:   c.snapshots.Items(),
		ErrorDecay: errorDecay,
		Size:       c.grid.Divisions,
		Sweeps:     c.sweeps,
		Converged:  c.state == Converged,
	}
}
