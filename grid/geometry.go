package grid

import (
	"fmt"
	"math"
)

// 求解过程中不变的物性与步长，所有节点公式共享且只读
type Geometry struct {
	K    float64 // 导热系数
	QDot float64 // 内热源

	DelX float64
	DelY float64
	DelZ float64

	x2 float64
	y2 float64
	z2 float64
}

func NewGeometry(k, qDot, delX, delY, delZ float64) Geometry {
	return Geometry{
		K:    k,
		QDot: qDot,
		DelX: delX,
		DelY: delY,
		DelZ: delZ,
		x2:   delX * delX,
		y2:   delY * delY,
		z2:   delZ * delZ,
	}
}

// 三个方向步长相同
func NewUniformGeometry(k, qDot, del float64) Geometry {
	return NewGeometry(k, qDot, del, del, del)
}

func (g *Grid) Geometry(k, qDot float64) Geometry {
	delX, delY, delZ := g.Spacing()
	return NewGeometry(k, qDot, delX, delY, delZ)
}

func (s *Geometry) X2() float64 { return s.x2 }
func (s *Geometry) Y2() float64 { return s.y2 }
func (s *Geometry) Z2() float64 { return s.z2 }

// 第 axis 个方向的步长和步长平方，axis: 0 = x, 1 = y, 2 = z
func (s *Geometry) Del(axis int) (del, del2 float64) {
	switch axis {
	case 0:
		return s.DelX, s.x2
	case 1:
		return s.DelY, s.y2
	default:
		return s.DelZ, s.z2
	}
}

func (s *Geometry) Validate() error {
	if !(s.K > 0) || math.IsInf(s.K, 0) {
		return fmt.Errorf("conductivity must be positive and finite, got %v", s.K)
	}
	if math.IsNaN(s.QDot) || math.IsInf(s.QDot, 0) {
		return fmt.Errorf("heat generation must be finite, got %v", s.QDot)
	}
	for _, d := range [3]float64{s.DelX, s.DelY, s.DelZ} {
		if !(d > 0) || math.IsInf(d, 0) {
			return fmt.Errorf("spacing must be positive and finite, got %v, %v, %v", s.DelX, s.DelY, s.DelZ)
		}
	}
	return nil
}
