package calculator

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	"thermal/model"
)

// 迭代控制参数
type Parameter struct {
	Epsilon            float64 // 收敛判据
	RecordEvery        int     // 每隔多少次迭代记录一次温度场
	MaxSweeps          int     // 最大迭代次数，0 表示不限
	InitialTemperature float64 // 初始温度
	LogEvery           int     // 每隔多少次迭代输出一次日志
	MaxSnapshots       int     // 最多保留的温度场数量，0 表示不限
	Workers            int     // 并发数，0 表示 CPU 核数
	Executor           string  // slice | group | serial
}

func DefaultParameter() Parameter {
	return Parameter{
		Epsilon:            model.Epsilon,
		RecordEvery:        model.RecordEvery,
		InitialTemperature: model.InitialTemperature,
		LogEvery:           model.LogEvery,
		Executor:           model.Executor,
	}
}

func parameterFromCfg(cfg model.SolverCfg) Parameter {
	return Parameter{
		Epsilon:            cfg.Epsilon,
		RecordEvery:        cfg.RecordEvery,
		MaxSweeps:          cfg.MaxSweeps,
		InitialTemperature: cfg.InitialTemperature,
		LogEvery:           cfg.LogEvery,
		MaxSnapshots:       cfg.MaxSnapshots,
		Workers:            cfg.Workers,
		Executor:           cfg.Executor,
	}
}

func (p *Parameter) Validate() error {
	var err error
	if !(p.Epsilon > 0) || math.IsInf(p.Epsilon, 0) {
		err = multierr.Append(err, fmt.Errorf("%w: must be positive and finite, got %v", ErrEpsilon, p.Epsilon))
	}
	if p.RecordEvery <= 0 {
		err = multierr.Append(err, fmt.Errorf("record_every must be positive, got %d", p.RecordEvery))
	}
	if p.MaxSweeps < 0 {
		err = multierr.Append(err, fmt.Errorf("max_sweeps must not be negative, got %d", p.MaxSweeps))
	}
	if math.IsNaN(p.InitialTemperature) || math.IsInf(p.InitialTemperature, 0) {
		err = multierr.Append(err, fmt.Errorf("initial temperature must be finite, got %v", p.InitialTemperature))
	}
	if p.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("workers must not be negative, got %d", p.Workers))
	}
	return err
}
