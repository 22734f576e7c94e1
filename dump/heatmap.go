package dump

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"thermal/grid"
	"thermal/model"
)

// x = const 截面，列为 z，行为 y
type slice struct {
	data [][]float64
	del  float64
}

func (s slice) Dims() (c, r int)   { return len(s.data[0]), len(s.data) }
func (s slice) Z(c, r int) float64 { return s.data[r][c] }
func (s slice) X(c int) float64    { return float64(c) * s.del }
func (s slice) Y(r int) float64    { return float64(r) * s.del }

// 将最近一次记录的温度场按 x 方向逐层绘制热力图，所有截面使用相同的色标范围
func WriteHeatMaps(res *model.SimulationResult, dir string) ([]string, error) {
	last, ok := res.Latest()
	if !ok {
		return nil, ErrNoSnapshot
	}
	n := res.Size
	if n < 2 || len(last.Data) != n*n*n {
		return nil, fmt.Errorf("snapshot has %d values, want %d", len(last.Data), n*n*n)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	g := grid.NewCube(n, 1)
	lo, hi := floats.Min(last.Data), floats.Max(last.Data)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	pal := palette.Heat(12, 1)
	paths := make([]string, 0, n)
	for x := 0; x < n; x++ {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("step %d, x = %d", last.Step, x)
		p.X.Label.Text = "z"
		p.Y.Label.Text = "y"

		h := plotter.NewHeatMap(slice{data: g.SliceX(last.Data, x), del: 1}, pal)
		h.Min, h.Max = lo, hi
		p.Add(h)

		path := filepath.Join(dir, fmt.Sprintf("%d.png", x))
		if err := p.Save(5*vg.Inch, 5*vg.Inch, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	log.WithFields(log.Fields{
		"dir":    dir,
		"slices": len(paths),
		"min":    lo,
		"max":    hi,
	}).Info("截面热力图已生成")
	return paths, nil
}
