package calculator

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"thermal/model"
)

// Norm measures the distance between two temperature fields of equal length.
type Norm interface {
	Distance(previous, current []float64) float64
	Type() model.ErrorType
}

// 最大绝对差
type InfinityNorm struct{}

func (InfinityNorm) Distance(previous, current []float64) float64 {
	return floats.Distance(previous, current, math.Inf(1))
}

func (InfinityNorm) Type() model.ErrorType { return model.InfinityNorm }

// L1Norm is sqrt(Σ|d|), not the textbook L1 norm. Recorded error decays
// and epsilon values in existing cases assume this definition.
type L1Norm struct{}

func (L1Norm) Distance(previous, current []float64) float64 {
	return math.Sqrt(floats.Distance(previous, current, 1))
}

func (L1Norm) Type() model.ErrorType { return model.L1Norm }

// sqrt(Σd²)
type L2Norm struct{}

func (L2Norm) Distance(previous, current []float64) float64 {
	return floats.Distance(previous, current, 2)
}

func (L2Norm) Type() model.ErrorType { return model.L2Norm }

func NewNorm(name string) (Norm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "infinity", "inf", "max", strings.ToLower(string(model.InfinityNorm)):
		return InfinityNorm{}, nil
	case "l1", strings.ToLower(string(model.L1Norm)):
		return L1Norm{}, nil
	case "l2", strings.ToLower(string(model.L2Norm)):
		return L2Norm{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNorm, name)
}
