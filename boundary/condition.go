package boundary

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"thermal/grid"
	"thermal/model"
)

var (
	ErrUnknownCondition = errors.New("unknown boundary condition")
	ErrInvalidCondition = errors.New("invalid boundary condition")
)

// 边界条件类型
type Kind uint8

const (
	Dirichlet Kind = iota // 第一类，固定温度
	Neumann               // 第二类，固定热流密度
	Robin                 // 第三类，对流换热
)

func (k Kind) String() string {
	switch k {
	case Dirichlet:
		return "dirichlet"
	case Neumann:
		return "neumann"
	case Robin:
		return "robin"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dirichlet", "temperature", "constant":
		return Dirichlet, nil
	case "neumann", "flux", "heat_flux":
		return Neumann, nil
	case "robin", "convection":
		return Robin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCondition, s)
}

// 热流方向，outward 表示热量从该表面流出
type Direction int8

const (
	Outward Direction = iota
	Inward
)

func (d Direction) String() string {
	if d == Inward {
		return "inward"
	}
	return "outward"
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "outward", "out":
		return Outward, nil
	case "inward", "in":
		return Inward, nil
	}
	return 0, fmt.Errorf("%w: heat flux direction %q", ErrInvalidCondition, s)
}

// Condition is the boundary behaviour attached to one face of the domain.
// Only the fields belonging to Kind are meaningful.
type Condition struct {
	Kind Kind

	Temperature float64

	Flux      float64
	Direction Direction

	H    float64
	TInf float64
}

func NewDirichlet(temperature float64) Condition {
	return Condition{Kind: Dirichlet, Temperature: temperature}
}

func NewNeumann(flux float64, direction Direction) Condition {
	return Condition{Kind: Neumann, Flux: flux, Direction: direction}
}

func NewRobin(h, tInf float64) Condition {
	return Condition{Kind: Robin, H: h, TInf: tInf}
}

// 绝热表面
func Insulated() Condition {
	return NewNeumann(0, Outward)
}

func FromCfg(cfg model.ConditionCfg) (Condition, error) {
	kind, err := ParseKind(cfg.Type)
	if err != nil {
		return Condition{}, err
	}
	var c Condition
	switch kind {
	case Dirichlet:
		c = NewDirichlet(cfg.Temperature)
	case Neumann:
		direction, err := ParseDirection(cfg.Direction)
		if err != nil {
			return Condition{}, err
		}
		c = NewNeumann(cfg.Flux, direction)
	case Robin:
		c = NewRobin(cfg.H, cfg.TInf)
	}
	return c, c.Validate()
}

func (c Condition) Validate() error {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	switch c.Kind {
	case Dirichlet:
		if !finite(c.Temperature) {
			return fmt.Errorf("%w: dirichlet temperature %v", ErrInvalidCondition, c.Temperature)
		}
	case Neumann:
		if !finite(c.Flux) {
			return fmt.Errorf("%w: neumann flux %v", ErrInvalidCondition, c.Flux)
		}
		if c.Direction != Outward && c.Direction != Inward {
			return fmt.Errorf("%w: heat flux direction %d", ErrInvalidCondition, c.Direction)
		}
	case Robin:
		if !finite(c.H) || c.H < 0 {
			return fmt.Errorf("%w: robin h must be finite and >= 0, got %v", ErrInvalidCondition, c.H)
		}
		if !finite(c.TInf) {
			return fmt.Errorf("%w: robin t_inf %v", ErrInvalidCondition, c.TInf)
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrUnknownCondition, c.Kind)
	}
	return nil
}

// 固定温度的边界直接返回该温度，不参与公式计算
func (c Condition) FixedTemperature() (float64, bool) {
	if c.Kind == Dirichlet {
		return c.Temperature, true
	}
	return 0, false
}

// 带方向的热流密度，流入为正
func (c Condition) SignedFlux() float64 {
	if c.Direction == Inward {
		return c.Flux
	}
	return -c.Flux
}

// LhsCoefficient is the boundary's contribution to the numerator of a node
// update. area is the fraction of a full cell face owned by the node and
// length the grid spacing normal to the face.
func (c Condition) LhsCoefficient(_ grid.Information, s *grid.Geometry, area, length float64) float64 {
	switch c.Kind {
	case Neumann:
		return area * c.SignedFlux() / (s.K * length)
	case Robin:
		return area * c.H * c.TInf / (s.K * length)
	}
	return 0
}

// RhsCoefficient is the boundary's contribution to the denominator.
func (c Condition) RhsCoefficient(_ grid.Information, s *grid.Geometry, area, length float64) float64 {
	if c.Kind == Robin {
		return area * c.H / (s.K * length)
	}
	return 0
}

func (c Condition) String() string {
	switch c.Kind {
	case Dirichlet:
		return fmt.Sprintf("dirichlet(t=%g)", c.Temperature)
	case Neumann:
		return fmt.Sprintf("neumann(flux=%g, %s)", c.Flux, c.Direction)
	case Robin:
		return fmt.Sprintf("robin(h=%g, t_inf=%g)", c.H, c.TInf)
	}
	return c.Kind.String()
}
