package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"thermal/boundary"
	"thermal/grid"
)

func sampleInformation() grid.Information {
	return grid.Information{
		IFront: 310, IBack: 290,
		JFront: 305, JBack: 280,
		KFront: 330, KBack: 270,
	}
}

func TestFormula_InteriorSymmetry(t *testing.T) {
	bcs := boundary.Uniform(boundary.Insulated())
	table := newFormulaTable(&bcs)
	s := grid.NewGeometry(43, 1e4, 0.01, 0.02, 0.03)
	f := table.get(PointType{Inner, Inner, Inner})

	info := sampleInformation()
	want := f.apply(&info, &s)

	swapped := info
	swapped.IBack, swapped.IFront = info.IFront, info.IBack
	assert.Equal(t, want, f.apply(&swapped, &s))

	swapped = info
	swapped.JBack, swapped.JFront = info.JFront, info.JBack
	assert.Equal(t, want, f.apply(&swapped, &s))

	swapped = info
	swapped.KBack, swapped.KFront = info.KFront, info.KBack
	assert.Equal(t, want, f.apply(&swapped, &s))
}

func TestFormula_FaceInnerSymmetry(t *testing.T) {
	bcs := boundary.Uniform(boundary.NewRobin(5, 298))
	table := newFormulaTable(&bcs)
	s := grid.NewUniformGeometry(43, 0, 0.1)
	// top 表面，x 和 z 为内部方向
	f := table.get(PointType{Inner, Front, Inner})

	info := sampleInformation()
	want := f.apply(&info, &s)
	swapped := info
	swapped.IBack, swapped.IFront = info.IFront, info.IBack
	swapped.KBack, swapped.KFront = info.KFront, info.KBack
	assert.Equal(t, want, f.apply(&swapped, &s))
}

func TestFormula_Interior(t *testing.T) {
	bcs := boundary.Uniform(boundary.Insulated())
	table := newFormulaTable(&bcs)
	f := table.get(PointType{Inner, Inner, Inner})

	// 只有内热源: q·Δ²/(6k)
	s := grid.NewUniformGeometry(2, 12, 0.5)
	var info grid.Information
	assert.Equal(t, 0.25, f.apply(&info, &s))

	// 无内热源时为六个相邻节点的平均值
	s = grid.NewUniformGeometry(2, 0, 0.5)
	info = grid.Information{IFront: 1, IBack: 2, JFront: 3, JBack: 4, KFront: 5, KBack: 9}
	assert.Equal(t, 4.0, f.apply(&info, &s))
}

func TestFormula_NeumannFace(t *testing.T) {
	bcs := boundary.Uniform(boundary.Insulated())
	bcs.Top = boundary.NewNeumann(8, boundary.Inward)
	table := newFormulaTable(&bcs)
	s := grid.NewUniformGeometry(2, 0, 0.5)
	f := table.get(PointType{Inner, Front, Inner})

	// 分子 = q/(k·Δ) = 8，分母 = 1/Δ² + 2·(2·0.5/Δ²) = 12
	var info grid.Information
	assert.InDelta(t, 8.0/12.0, f.apply(&info, &s), 1e-15)

	bcs.Top = boundary.NewNeumann(8, boundary.Outward)
	table = newFormulaTable(&bcs)
	f = table.get(PointType{Inner, Front, Inner})
	assert.InDelta(t, -8.0/12.0, f.apply(&info, &s), 1e-15)
}

func TestFormula_InsulatedUniform(t *testing.T) {
	bcs := boundary.Uniform(boundary.Insulated())
	table := newFormulaTable(&bcs)
	s := grid.NewUniformGeometry(43, 0, 0.5)
	g := grid.NewCube(3, 1.5)
	field := g.NewField(273)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				info := g.Information(field, x, y, z)
				pt := Classify(x, y, z, 3)
				assert.Equal(t, 273.0, table.get(pt).apply(&info, &s), pt.Name())
			}
		}
	}
}

func TestFormula_RobinEquilibrium(t *testing.T) {
	// 环境温度与初始温度相同时，所有节点保持不变
	bcs := boundary.Uniform(boundary.NewRobin(25, 310))
	table := newFormulaTable(&bcs)
	s := grid.NewGeometry(16.2, 0, 0.01, 0.02, 0.04)
	g := grid.NewCube(4, 0.04)
	field := g.NewField(310)
	for i := range field {
		x, y, z := g.Coordinates(i)
		info := g.Information(field, x, y, z)
		pt := Classify(x, y, z, 4)
		assert.InDelta(t, 310.0, table.get(pt).apply(&info, &s), 1e-9, pt.Name())
	}
}

func TestFormula_RobinCorner(t *testing.T) {
	bcs := boundary.Uniform(boundary.NewRobin(4, 100))
	table := newFormulaTable(&bcs)
	s := grid.NewUniformGeometry(2, 0, 0.5)
	f := table.get(PointType{Back, Back, Back})

	// 每个方向: 分子 = 0.25·h·t/(k·Δ) = 100，分母 = 0.25/Δ² + 0.25·h/(k·Δ) = 2
	var info grid.Information
	assert.Equal(t, 50.0, f.apply(&info, &s))
}

func TestFormula_DirichletPrecedence(t *testing.T) {
	bcs := boundary.Uniform(boundary.Insulated())
	bcs.Left = boundary.NewDirichlet(100)
	bcs.Bottom = boundary.NewDirichlet(200)
	bcs.Back = boundary.NewDirichlet(300)
	table := newFormulaTable(&bcs)
	s := grid.NewUniformGeometry(1, 0, 1)
	info := sampleInformation()

	assert.Equal(t, 100.0, table.get(PointType{Back, Back, Back}).apply(&info, &s))
	assert.Equal(t, 200.0, table.get(PointType{Inner, Back, Back}).apply(&info, &s))
	assert.Equal(t, 300.0, table.get(PointType{Front, Front, Back}).apply(&info, &s))
	assert.Equal(t, 300.0, table.get(PointType{Inner, Inner, Back}).apply(&info, &s))
	// 不在第一类边界上的节点正常计算
	assert.NotEqual(t, 300.0, table.get(PointType{Front, Front, Front}).apply(&info, &s))
}

func TestFormulaTable_Conditions(t *testing.T) {
	bcs := boundary.Set{
		Left:   boundary.NewDirichlet(1),
		Right:  boundary.NewDirichlet(2),
		Bottom: boundary.NewDirichlet(3),
		Top:    boundary.NewDirichlet(4),
		Back:   boundary.NewDirichlet(5),
		Front:  boundary.NewDirichlet(6),
	}
	table := newFormulaTable(&bcs)
	for _, pt := range PointTypes() {
		f := table.get(pt)
		assert.Equal(t, pt, f.point)
		faces := pt.Faces()
		for i, face := range faces {
			assert.Same(t, bcs.Get(face), f.conditions[i], pt.Name())
		}
		for i := len(faces); i < 3; i++ {
			assert.Nil(t, f.conditions[i])
		}
	}
}

// 绝热且相邻节点温度相同时，各类节点都升高 q·Δ²/(6k)
func TestFormula_GenerationShare(t *testing.T) {
	bcs := boundary.Uniform(boundary.Insulated())
	table := newFormulaTable(&bcs)
	s := grid.NewUniformGeometry(2, 12, 0.5)
	info := grid.Information{IFront: 300, IBack: 300, JFront: 300, JBack: 300, KFront: 300, KBack: 300}

	for _, pt := range PointTypes() {
		assert.InDelta(t, 300.25, table.get(pt).apply(&info, &s), 1e-12, pt.Name())
	}

	// 去掉内热源后不变
	s = grid.NewUniformGeometry(2, 0, 0.5)
	for _, pt := range PointTypes() {
		assert.InDelta(t, 300.0, table.get(pt).apply(&info, &s), 1e-12, pt.Name())
	}
}
