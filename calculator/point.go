package calculator

import (
	"strings"

	"thermal/boundary"
)

// 节点在某一坐标轴上的位置
type Extreme uint8

const (
	Inner Extreme = iota // 0 < i < n-1
	Back                 // i == 0
	Front                // i == n-1
)

func extremeOf(i, divisions int) Extreme {
	switch i {
	case 0:
		return Back
	case divisions - 1:
		return Front
	}
	return Inner
}

// 节点类型
type Kind uint8

const (
	Interior Kind = iota
	Face
	Edge
	Corner
)

func (k Kind) String() string {
	switch k {
	case Interior:
		return "interior"
	case Face:
		return "face"
	case Edge:
		return "edge"
	}
	return "corner"
}

// 节点控制体占完整网格单元的比例
func (k Kind) ControlVolume() float64 {
	return 1.0 / float64(int(1)<<k)
}

// PointType is the topological class of a node, one extreme per axis.
// There are 3³ = 27 of them.
type PointType struct {
	X, Y, Z Extreme
}

// Classify maps a grid coordinate to its class. divisions must be at least 2.
func Classify(x, y, z, divisions int) PointType {
	return PointType{
		X: extremeOf(x, divisions),
		Y: extremeOf(y, divisions),
		Z: extremeOf(z, divisions),
	}
}

// 全部 27 种节点类型，下标与 Index 一致
func PointTypes() []PointType {
	pts := make([]PointType, 0, 27)
	for x := Inner; x <= Front; x++ {
		for y := Inner; y <= Front; y++ {
			for z := Inner; z <= Front; z++ {
				pts = append(pts, PointType{X: x, Y: y, Z: z})
			}
		}
	}
	return pts
}

func (p PointType) Axis(axis int) Extreme {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	}
	return p.Z
}

func (p PointType) Index() int {
	return int(p.X)*9 + int(p.Y)*3 + int(p.Z)
}

func (p PointType) Kind() Kind {
	count := 0
	for axis := 0; axis < 3; axis++ {
		if p.Axis(axis) != Inner {
			count++
		}
	}
	return Kind(count)
}

// 节点所在的表面，按 x, y, z 顺序
func (p PointType) Faces() []boundary.Face {
	faces := make([]boundary.Face, 0, 3)
	for axis := 0; axis < 3; axis++ {
		if e := p.Axis(axis); e != Inner {
			faces = append(faces, boundary.FaceOf(axis, e == Front))
		}
	}
	return faces
}

// 例如 right-top-back，内部节点为 interior
func (p PointType) Name() string {
	faces := p.Faces()
	if len(faces) == 0 {
		return Interior.String()
	}
	names := make([]string, len(faces))
	for i, f := range faces {
		names[i] = f.String()
	}
	return strings.Join(names, "-")
}

func (p PointType) String() string {
	return p.Name()
}
