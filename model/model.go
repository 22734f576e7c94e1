package model

// 参数解释
// 1. 导热系数 conductivity，单位 W/(m·K)
// 2. 内热源 generation，单位 W/m³
// 3. 边界热流密度 flux，单位 W/m²
// 4. 边界综合换热系数 h，单位 W/(m²·K)

// 求解器参数配置
type SolverCfg struct {
	Divisions          int     `json:"divisions" yaml:"divisions"`
	Length             float64 `json:"length" yaml:"length"`
	LengthX            float64 `json:"length_x" yaml:"length_x"`
	LengthY            float64 `json:"length_y" yaml:"length_y"`
	LengthZ            float64 `json:"length_z" yaml:"length_z"`
	Conductivity       float64 `json:"conductivity" yaml:"conductivity"`
	Material           string  `json:"material" yaml:"material"`
	Generation         float64 `json:"generation" yaml:"generation"`
	Epsilon            float64 `json:"epsilon" yaml:"epsilon"`
	RecordEvery        int     `json:"record_every" yaml:"record_every"`
	Norm               string  `json:"norm" yaml:"norm"`
	Workers            int     `json:"workers" yaml:"workers"`
	Executor           string  `json:"executor" yaml:"executor"`
	MaxSweeps          int     `json:"max_sweeps" yaml:"max_sweeps"`
	InitialTemperature float64 `json:"initial_temperature" yaml:"initial_temperature"`
	LogEvery           int     `json:"log_every" yaml:"log_every"`
	MaxSnapshots       int     `json:"max_snapshots" yaml:"max_snapshots"`
}

// 单个表面的边界条件配置
// type: dirichlet | neumann | robin
type ConditionCfg struct {
	Type        string  `json:"type" yaml:"type"`
	Temperature float64 `json:"temperature" yaml:"temperature"` // 第一类边界，固定温度
	Flux        float64 `json:"flux" yaml:"flux"`               // 第二类边界，热流密度
	Direction   string  `json:"direction" yaml:"direction"`     // outward | inward
	H           float64 `json:"h" yaml:"h"`                     // 第三类边界，换热系数
	TInf        float64 `json:"t_inf" yaml:"t_inf"`             // 第三类边界，环境温度
}

// 一次计算的全部输入
type Setup struct {
	Solver SolverCfg    `json:"solver" yaml:"solver"`
	Left   ConditionCfg `json:"left" yaml:"left"`
	Right  ConditionCfg `json:"right" yaml:"right"`
	Bottom ConditionCfg `json:"bottom" yaml:"bottom"`
	Top    ConditionCfg `json:"top" yaml:"top"`
	Back   ConditionCfg `json:"back" yaml:"back"`
	Front  ConditionCfg `json:"front" yaml:"front"`
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 消息类型
const (
	MsgSolve    = "solve"
	MsgStop     = "stop"
	MsgStarted  = "started"
	MsgProgress = "progress"
	MsgResult   = "result"
	MsgStopped  = "stopped"
	MsgError    = "error"
)
