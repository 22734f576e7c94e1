package calculator

import (
	"errors"
	"fmt"

	"thermal/boundary"
)

var (
	ErrDivisions    = errors.New("invalid divisions")
	ErrConductivity = errors.New("invalid conductivity")
	ErrSpacing      = errors.New("invalid spacing")
	ErrGeneration   = errors.New("invalid heat generation")
	ErrEpsilon      = errors.New("invalid epsilon")
	ErrNonFinite    = errors.New("non-finite temperature")
	ErrUnknownNorm  = errors.New("unknown error norm")
	ErrMaxSweeps    = errors.New("max sweeps reached before convergence")
	ErrExecutor     = errors.New("unknown executor")

	ErrUnknownCondition = boundary.ErrUnknownCondition
	ErrInvalidCondition = boundary.ErrInvalidCondition
)

// NonFiniteError reports the first node whose update produced NaN or ±Inf.
type NonFiniteError struct {
	Sweep   int
	X, Y, Z int
	Point   string
	Value   float64
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("sweep %d: node (%d, %d, %d) [%s] evaluated to %v", e.Sweep, e.X, e.Y, e.Z, e.Point, e.Value)
}

func (e *NonFiniteError) Is(target error) bool {
	return target == ErrNonFinite
}
