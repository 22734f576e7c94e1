package model

type ErrorType string

const (
	InfinityNorm ErrorType = "InfinityNorm"
	L1Norm       ErrorType = "L1Norm"
	L2Norm       ErrorType = "L2Norm"
)

// 计算结果，step_data 中每个元素是按 x, y, z 顺序展开的温度场
type SimulationResult struct {
	StepData   []StepData `json:"step_data"`
	ErrorDecay ErrorData  `json:"error_decay"`
	Size       int        `json:"size"` // 每个方向的节点数
	Sweeps     int        `json:"sweeps"`
	Converged  bool       `json:"converged"`
}

type StepData struct {
	Step int       `json:"step"`
	Data []float64 `json:"data"`
}

type ErrorData struct {
	ErrorType ErrorType `json:"error_type"`
	Data      []float64 `json:"data"`
}

func (e *ErrorData) AddError(newPoint float64) {
	e.Data = append(e.Data, newPoint)
}

// 最近一次记录的温度场
func (r *SimulationResult) Latest() (StepData, bool) {
	if len(r.StepData) == 0 {
		return StepData{}, false
	}
	return r.StepData[len(r.StepData)-1], true
}
