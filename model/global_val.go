package model

// 默认参数
const (
	InitialTemperature = 273.0 // 初始温度，0℃
	Epsilon            = 1e-4
	RecordEvery        = 1000
	LogEvery           = 1000
	Divisions          = 30
	Length             = 0.5
	Norm               = "l1"
	Executor           = "slice"
)

// 默认表面条件为绝热
func DefaultSetup() Setup {
	insulated := ConditionCfg{Type: "neumann", Direction: "outward"}
	return Setup{
		Solver: SolverCfg{
			Divisions:          Divisions,
			Length:             Length,
			Epsilon:            Epsilon,
			RecordEvery:        RecordEvery,
			Norm:               Norm,
			Executor:           Executor,
			InitialTemperature: InitialTemperature,
			LogEvery:           LogEvery,
		},
		Left:   insulated,
		Right:  insulated,
		Bottom: insulated,
		Top:    insulated,
		Back:   insulated,
		Front:  insulated,
	}
}
