package dump

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"thermal/model"
)

var ErrNoSnapshot = errors.New("result has no recorded snapshot")

// 最近一次记录的温度场的统计信息
type Summary struct {
	Size       int
	Sweeps     int
	Converged  bool
	ErrorType  model.ErrorType
	FinalError float64
	Step       int
	Min        float64
	Max        float64
	Mean       float64
}

func Summarize(res *model.SimulationResult) (Summary, error) {
	last, ok := res.Latest()
	if !ok || len(last.Data) == 0 {
		return Summary{}, ErrNoSnapshot
	}
	s := Summary{
		Size:      res.Size,
		Sweeps:    res.Sweeps,
		Converged: res.Converged,
		ErrorType: res.ErrorDecay.ErrorType,
		Step:      last.Step,
		Min:       floats.Min(last.Data),
		Max:       floats.Max(last.Data),
		Mean:      stat.Mean(last.Data, nil),
	}
	if n := len(res.ErrorDecay.Data); n > 0 {
		s.FinalError = res.ErrorDecay.Data[n-1]
	}
	return s, nil
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "size:        %d x %d x %d\n", s.Size, s.Size, s.Size)
	fmt.Fprintf(&b, "sweeps:      %d (converged: %t)\n", s.Sweeps, s.Converged)
	fmt.Fprintf(&b, "final error: %.6g (%s)\n", s.FinalError, s.ErrorType)
	fmt.Fprintf(&b, "latest step: %d\n", s.Step)
	fmt.Fprintf(&b, "min / max:   %.4f / %.4f\n", s.Min, s.Max)
	fmt.Fprintf(&b, "mean:        %.4f\n", s.Mean)
	return b.String()
}

// 误差衰减曲线，纵轴为 log10(error)
func ErrorChart(res *model.SimulationResult, height, width int) string {
	data := logErrors(res.ErrorDecay.Data)
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("log10 %s over %d sweeps", res.ErrorDecay.ErrorType, len(data))),
	)
}

// 误差为 0 时取最小正误差的对数
func logErrors(errs []float64) []float64 {
	floor := math.Inf(1)
	for _, e := range errs {
		if e > 0 && e < floor {
			floor = e
		}
	}
	if math.IsInf(floor, 1) {
		floor = 1
	}
	data := make([]float64, len(errs))
	for i, e := range errs {
		if !(e > 0) {
			e = floor
		}
		data[i] = math.Log10(e)
	}
	return data
}
