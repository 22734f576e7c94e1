package grid

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
)

// 网格划分
// 1. x方向 left(0) -> right(n-1)
// 2. y方向 bottom(0) -> top(n-1)
// 3. z方向 back(0) -> front(n-1)
// 每个方向 divisions 个节点，步长 = 长度 / divisions

// 元素类型，按 x, y, z 顺序展开，z 变化最快
type Field []float64

type Grid struct {
	Divisions int
	LengthX   float64
	LengthY   float64
	LengthZ   float64
}

func NewGrid(divisions int, lengthX, lengthY, lengthZ float64) *Grid {
	g := &Grid{
		Divisions: divisions,
		LengthX:   lengthX,
		LengthY:   lengthY,
		LengthZ:   lengthZ,
	}
	log.WithFields(log.Fields{
		"divisions": divisions,
		"lengthX":   lengthX,
		"lengthY":   lengthY,
		"lengthZ":   lengthZ,
	}).Debug("设置网格")
	return g
}

// 立方体网格
func NewCube(divisions int, length float64) *Grid {
	return NewGrid(divisions, length, length, length)
}

func (g *Grid) Validate() error {
	if g.Divisions < 2 {
		return fmt.Errorf("divisions must be at least 2, got %d", g.Divisions)
	}
	for _, l := range [3]float64{g.LengthX, g.LengthY, g.LengthZ} {
		if !(l > 0) || math.IsInf(l, 0) {
			return fmt.Errorf("domain extents must be positive and finite, got %v x %v x %v",
				g.LengthX, g.LengthY, g.LengthZ)
		}
	}
	return nil
}

// 节点总数
func (g *Grid) Size() int {
	return g.Divisions * g.Divisions * g.Divisions
}

// 最后一个节点的下标
func (g *Grid) End() int {
	return g.Divisions - 1
}

func (g *Grid) Index(x, y, z int) int {
	return (x*g.Divisions+y)*g.Divisions + z
}

func (g *Grid) Coordinates(i int) (x, y, z int) {
	n := g.Divisions
	z = i % n
	y = (i / n) % n
	x = i / (n * n)
	return
}

func (g *Grid) Contains(x, y, z int) bool {
	n := g.Divisions
	return x >= 0 && x < n && y >= 0 && y < n && z >= 0 && z < n
}

func (g *Grid) Spacing() (delX, delY, delZ float64) {
	div := float64(g.Divisions)
	return g.LengthX / div, g.LengthY / div, g.LengthZ / div
}

// 是否等步长
func (g *Grid) Uniform() bool {
	return g.LengthX == g.LengthY && g.LengthY == g.LengthZ
}

func (g *Grid) NewField(initial float64) Field {
	f := make(Field, g.Size())
	for i := range f {
		f[i] = initial
	}
	return f
}

// 取 x = const 的截面，返回 [y][z]
func (g *Grid) SliceX(f Field, x int) [][]float64 {
	n := g.Divisions
	s := make([][]float64, n)
	for y := 0; y < n; y++ {
		s[y] = make([]float64, n)
		copy(s[y], f[g.Index(x, y, 0):g.Index(x, y, 0)+n])
	}
	return s
}
