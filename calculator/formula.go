package calculator

import (
	"thermal/boundary"
	"thermal/grid"
)

// 差分方程的推导
// 对节点的控制体做能量平衡，两边同除 k·Δx·Δy·Δz
// 1. 控制体在某一方向上的长度比例 f：内部方向为 1，边界方向为 1/2
// 2. 垂直于方向 a 的传热面积比例 P_a 为另外两个方向 f 的乘积
// 3. 内部方向 a：分子 += P_a·(back + front)/Δa²，分母 += 2·P_a/Δa²
// 4. 边界方向 a：分子 += P_a·neighbour/Δa² + lhs(P_a, Δa)，分母 += P_a/Δa² + rhs(P_a, Δa)
// 5. 内热源：分子 += f_x·f_y·f_z·q/k
// 内部节点退化为 (六个相邻节点温度之和 + q·Δ²/k) / 6

// formula is the update of one topological class. Boundary axes come first in
// axes, in x, y, z order, followed by the inner axes.
type formula struct {
	point      PointType
	axes       [3]int
	conditions [3]*boundary.Condition // 与 axes 对应，内部方向为 nil
	calculate  func(f *formula, info *grid.Information, s *grid.Geometry) float64
}

type formulaTable [27]formula

// 根据六个表面的边界条件建立 27 种节点的差分方程
func newFormulaTable(bcs *boundary.Set) *formulaTable {
	var table formulaTable
	for _, pt := range PointTypes() {
		f := formula{point: pt}
		n := 0
		for axis := 0; axis < 3; axis++ {
			if e := pt.Axis(axis); e != Inner {
				f.axes[n] = axis
				f.conditions[n] = bcs.Get(boundary.FaceOf(axis, e == Front))
				n++
			}
		}
		for axis := 0; axis < 3; axis++ {
			if pt.Axis(axis) == Inner {
				f.axes[n] = axis
				n++
			}
		}
		switch pt.Kind() {
		case Interior:
			f.calculate = (*formula).calculatePointIN
		case Face:
			f.calculate = (*formula).calculatePointFA
		case Edge:
			f.calculate = (*formula).calculatePointED
		case Corner:
			f.calculate = (*formula).calculatePointCO
		}
		table[pt.Index()] = f
	}
	return &table
}

func (t *formulaTable) get(pt PointType) *formula {
	return &t[pt.Index()]
}

func (f *formula) apply(info *grid.Information, s *grid.Geometry) float64 {
	// 第一类边界直接返回固定温度，按 x, y, z 顺序取第一个
	for _, c := range f.conditions {
		if c == nil {
			break
		}
		if t, ok := c.FixedTemperature(); ok {
			return t
		}
	}
	return f.calculate(f, info, s)
}

// 边界方向上位于区域内部的那个相邻节点
func (f *formula) neighbour(info *grid.Information, axis int) float64 {
	back, front := info.Axis(axis)
	if f.point.Axis(axis) == Back {
		return front
	}
	return back
}

// 边界方向上的分子、分母项，area 为传热面积比例
func (f *formula) boundaryTerm(n int, info *grid.Information, s *grid.Geometry, area float64) (num, den float64) {
	axis := f.axes[n]
	c := f.conditions[n]
	del, del2 := s.Del(axis)
	num = area*f.neighbour(info, axis)/del2 + c.LhsCoefficient(*info, s, area, del)
	den = area/del2 + c.RhsCoefficient(*info, s, area, del)
	return
}

// 内部方向上的分子、分母项
func innerTerm(axis int, info *grid.Information, s *grid.Geometry, area float64) (num, den float64) {
	back, front := info.Axis(axis)
	_, del2 := s.Del(axis)
	return area * (back + front) / del2, 2 * area / del2
}

// 内部节点
func (f *formula) calculatePointIN(info *grid.Information, s *grid.Geometry) float64 {
	x2, y2, z2 := s.X2(), s.Y2(), s.Z2()
	num := (info.IBack+info.IFront)/x2 + (info.JBack+info.JFront)/y2 + (info.KBack+info.KFront)/z2 + s.QDot/s.K
	den := 2/x2 + 2/y2 + 2/z2
	return num / den
}

// 表面节点，控制体为 1/2
func (f *formula) calculatePointFA(info *grid.Information, s *grid.Geometry) float64 {
	numA, denA := f.boundaryTerm(0, info, s, 1)
	numB, denB := innerTerm(f.axes[1], info, s, 0.5)
	numC, denC := innerTerm(f.axes[2], info, s, 0.5)
	num := numA + numB + numC + f.point.Kind().ControlVolume()*s.QDot/s.K
	return num / (denA + denB + denC)
}

// 棱节点，控制体为 1/4
func (f *formula) calculatePointED(info *grid.Information, s *grid.Geometry) float64 {
	numA, denA := f.boundaryTerm(0, info, s, 0.5)
	numB, denB := f.boundaryTerm(1, info, s, 0.5)
	numC, denC := innerTerm(f.axes[2], info, s, 0.25)
	num := numA + numB + numC + f.point.Kind().ControlVolume()*s.QDot/s.K
	return num / (denA + denB + denC)
}

// 角节点，控制体为 1/8
func (f *formula) calculatePointCO(info *grid.Information, s *grid.Geometry) float64 {
	numA, denA := f.boundaryTerm(0, info, s, 0.25)
	numB, denB := f.boundaryTerm(1, info, s, 0.25)
	numC, denC := f.boundaryTerm(2, info, s, 0.25)
	num := numA + numB + numC + f.point.Kind().ControlVolume()*s.QDot/s.K
	return num / (denA + denB + denC)
}
