package grid

// Information holds the temperatures of the six axis neighbours of a node.
//
// IFront denotes the temperature at x + 1, IBack the temperature at x - 1, and
// likewise J for y and K for z. Neighbours outside the domain read as 0.
type Information struct {
	IFront float64
	IBack  float64
	JFront float64
	JBack  float64
	KFront float64
	KBack  float64
}

// 取节点 (x, y, z) 周围的温度，越界为 0
func (g *Grid) Information(f Field, x, y, z int) Information {
	var info Information
	end := g.End()
	if x > 0 {
		info.IBack = f[g.Index(x-1, y, z)]
	}
	if x < end {
		info.IFront = f[g.Index(x+1, y, z)]
	}
	if y > 0 {
		info.JBack = f[g.Index(x, y-1, z)]
	}
	if y < end {
		info.JFront = f[g.Index(x, y+1, z)]
	}
	if z > 0 {
		info.KBack = f[g.Index(x, y, z-1)]
	}
	if z < end {
		info.KFront = f[g.Index(x, y, z+1)]
	}
	return info
}

// 第 axis 个方向的前后温度
func (info *Information) Axis(axis int) (back, front float64) {
	switch axis {
	case 0:
		return info.IBack, info.IFront
	case 1:
		return info.JBack, info.JFront
	default:
		return info.KBack, info.KFront
	}
}
