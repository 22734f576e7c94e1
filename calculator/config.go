package calculator

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"thermal/boundary"
	"thermal/grid"
	"thermal/material"
	"thermal/model"
)

// 根据扩展名读取 ini 或 yaml 格式的算例
func LoadSetup(path string) (model.Setup, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return model.Setup{}, err
		}
		return parseYaml(data)
	default:
		file, err := ini.Load(path)
		if err != nil {
			log.WithField("path", path).Error("配置文件读取错误，请检查文件路径")
			return model.Setup{}, err
		}
		return loadCfg(file), nil
	}
}

func parseYaml(data []byte) (model.Setup, error) {
	setup := model.DefaultSetup()
	if err := yaml.Unmarshal(data, &setup); err != nil {
		return model.Setup{}, fmt.Errorf("parse yaml setup: %w", err)
	}
	return setup, nil
}

func loadCfg(file *ini.File) model.Setup {
	d := model.DefaultSetup()
	solver := file.Section("solver")
	setup := model.Setup{
		Solver: model.SolverCfg{
			Divisions:          solver.Key("divisions").MustInt(d.Solver.Divisions),
			Length:             solver.Key("length").MustFloat64(d.Solver.Length),
			LengthX:            solver.Key("length_x").MustFloat64(0),
			LengthY:            solver.Key("length_y").MustFloat64(0),
			LengthZ:            solver.Key("length_z").MustFloat64(0),
			Conductivity:       solver.Key("conductivity").MustFloat64(0),
			Material:           solver.Key("material").MustString(""),
			Generation:         solver.Key("generation").MustFloat64(0),
			Epsilon:            solver.Key("epsilon").MustFloat64(d.Solver.Epsilon),
			RecordEvery:        solver.Key("record_every").MustInt(d.Solver.RecordEvery),
			Norm:               solver.Key("norm").MustString(d.Solver.Norm),
			Workers:            solver.Key("workers").MustInt(0),
			Executor:           solver.Key("executor").MustString(d.Solver.Executor),
			MaxSweeps:          solver.Key("max_sweeps").MustInt(0),
			InitialTemperature: solver.Key("initial_temperature").MustFloat64(d.Solver.InitialTemperature),
			LogEvery:           solver.Key("log_every").MustInt(d.Solver.LogEvery),
			MaxSnapshots:       solver.Key("max_snapshots").MustInt(0),
		},
		Left:   loadCondition(file.Section("left")),
		Right:  loadCondition(file.Section("right")),
		Bottom: loadCondition(file.Section("bottom")),
		Top:    loadCondition(file.Section("top")),
		Back:   loadCondition(file.Section("back")),
		Front:  loadCondition(file.Section("front")),
	}
	return setup
}

// 未配置的表面为绝热
func loadCondition(section *ini.Section) model.ConditionCfg {
	return model.ConditionCfg{
		Type:        section.Key("type").MustString("neumann"),
		Temperature: section.Key("temperature").MustFloat64(0),
		Flux:        section.Key("flux").MustFloat64(0),
		Direction:   section.Key("direction").MustString("outward"),
		H:           section.Key("h").MustFloat64(0),
		TInf:        section.Key("t_inf").MustFloat64(0),
	}
}

// 解析算例，一次性返回全部配置错误
func resolveSetup(setup model.Setup) (*grid.Grid, grid.Geometry, boundary.Set, Norm, Parameter, error) {
	cfg := setup.Solver
	var err error

	length := func(l float64) float64 {
		if l == 0 {
			return cfg.Length
		}
		return l
	}
	g := grid.NewGrid(cfg.Divisions, length(cfg.LengthX), length(cfg.LengthY), length(cfg.LengthZ))
	if cfg.Divisions < 2 {
		err = multierr.Append(err, fmt.Errorf("%w: must be at least 2, got %d", ErrDivisions, cfg.Divisions))
	} else if e := g.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("%w: %v", ErrSpacing, e))
	}

	k, known := cfg.Conductivity, true
	if k == 0 && cfg.Material != "" {
		m, ok := material.Lookup(cfg.Material)
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%w: unknown material %q, known: %s", ErrConductivity, cfg.Material, strings.Join(material.Keys(), ", ")))
		}
		k = m.Conductivity
		known = ok
	}
	if known && (!(k > 0) || math.IsInf(k, 0)) {
		err = multierr.Append(err, fmt.Errorf("%w: must be positive and finite, got %v", ErrConductivity, k))
	}
	if math.IsNaN(cfg.Generation) || math.IsInf(cfg.Generation, 0) {
		err = multierr.Append(err, fmt.Errorf("%w: %v", ErrGeneration, cfg.Generation))
	}
	geometry := g.Geometry(k, cfg.Generation)

	bcs, e := boundary.SetFromCfg(setup)
	err = multierr.Append(err, e)

	norm, e := NewNorm(cfg.Norm)
	err = multierr.Append(err, e)

	p := parameterFromCfg(cfg)
	err = multierr.Append(err, p.Validate())

	return g, geometry, bcs, norm, p, err
}

// 根据算例创建计算器
func NewCalculatorFromSetup(setup model.Setup) (Calculator, error) {
	g, geometry, bcs, norm, p, err := resolveSetup(setup)
	if err != nil {
		return nil, err
	}
	c, err := NewCalculator(g, geometry, bcs, norm, p)
	if err != nil {
		return nil, err
	}
	return c, nil
}
