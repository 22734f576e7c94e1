package calculator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gopkg.in/ini.v1"

	"thermal/boundary"
	"thermal/model"
)

const iniCase = `
[solver]
divisions = 6
length = 0.3
material = steel
epsilon = 1e-5
record_every = 100
norm = inf
executor = group
workers = 2

[top]
type = neumann
flux = 100
direction = inward

[bottom]
type = dirichlet
temperature = 350

[left]
type = robin
h = 5
t_inf = 298
`

const yamlCase = `
solver:
  divisions: 4
  length_x: 0.2
  length_y: 0.4
  length_z: 0.8
  conductivity: 16.2
  generation: 1000
  epsilon: 0.001
  record_every: 10
  norm: l2
  executor: serial
  initial_temperature: 300
  max_sweeps: 5000
left:
  type: dirichlet
  temperature: 300
right:
  type: convection
  h: 10
  t_inf: 290
bottom:
  type: neumann
back:
  type: neumann
top:
  type: neumann
  flux: 50
front:
  type: neumann
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSetup_Ini(t *testing.T) {
	setup, err := LoadSetup(writeFile(t, "case.ini", iniCase))
	require.NoError(t, err)

	assert.Equal(t, 6, setup.Solver.Divisions)
	assert.Equal(t, 0.3, setup.Solver.Length)
	assert.Equal(t, "steel", setup.Solver.Material)
	assert.Equal(t, 1e-5, setup.Solver.Epsilon)
	assert.Equal(t, 100, setup.Solver.RecordEvery)
	assert.Equal(t, "inf", setup.Solver.Norm)
	assert.Equal(t, model.InitialTemperature, setup.Solver.InitialTemperature)
	assert.Equal(t, model.LogEvery, setup.Solver.LogEvery)

	assert.Equal(t, model.ConditionCfg{Type: "neumann", Flux: 100, Direction: "inward"}, setup.Top)
	assert.Equal(t, "dirichlet", setup.Bottom.Type)
	assert.Equal(t, 350.0, setup.Bottom.Temperature)
	assert.Equal(t, 5.0, setup.Left.H)
	assert.Equal(t, 298.0, setup.Left.TInf)
	// 未配置的表面为绝热
	assert.Equal(t, model.ConditionCfg{Type: "neumann", Direction: "outward"}, setup.Front)

	g, s, bcs, norm, p, err := resolveSetup(setup)
	require.NoError(t, err)
	assert.Equal(t, 6, g.Divisions)
	assert.InDelta(t, 0.05, s.DelX, 1e-15)
	assert.Equal(t, 43.0, s.K)
	assert.Equal(t, boundary.NewNeumann(100, boundary.Inward), bcs.Top)
	assert.Equal(t, boundary.NewRobin(5, 298), bcs.Left)
	assert.Equal(t, model.InfinityNorm, norm.Type())
	assert.Equal(t, "group", p.Executor)
	assert.Equal(t, 2, p.Workers)
}

func TestLoadSetup_Yaml(t *testing.T) {
	setup, err := LoadSetup(writeFile(t, "case.yaml", yamlCase))
	require.NoError(t, err)

	assert.Equal(t, 4, setup.Solver.Divisions)
	assert.Equal(t, 0.8, setup.Solver.LengthZ)
	assert.Equal(t, 16.2, setup.Solver.Conductivity)
	assert.Equal(t, 1000.0, setup.Solver.Generation)
	assert.Equal(t, 5000, setup.Solver.MaxSweeps)
	assert.Equal(t, "convection", setup.Right.Type)
	assert.Equal(t, 50.0, setup.Top.Flux)

	c, err := NewCalculatorFromSetup(setup)
	require.NoError(t, err)
	defer c.Close()
	res, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, model.L2Norm, res.ErrorDecay.ErrorType)
	assert.Equal(t, 4, res.Size)
	for _, v := range res.StepData[len(res.StepData)-1].Data {
		assert.Greater(t, v, 280.0)
		assert.Less(t, v, 400.0)
	}
}

func TestLoadSetup_Missing(t *testing.T) {
	_, err := LoadSetup(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
	_, err = LoadSetup(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = LoadSetup(writeFile(t, "broken.yml", "solver: [1, 2"))
	assert.Error(t, err)
}

func TestLoadCfg_Defaults(t *testing.T) {
	setup := loadCfg(ini.Empty())
	d := model.DefaultSetup()
	assert.Equal(t, d.Solver.Divisions, setup.Solver.Divisions)
	assert.Equal(t, d.Solver.Epsilon, setup.Solver.Epsilon)
	assert.Equal(t, d.Solver.Norm, setup.Solver.Norm)
	assert.Equal(t, d.Top, setup.Top)
}

func TestResolveSetup_Errors(t *testing.T) {
	setup := model.DefaultSetup()
	setup.Solver.Divisions = 1
	setup.Solver.Material = "unobtainium"
	setup.Solver.Norm = "l7"
	setup.Solver.Epsilon = -1
	setup.Top = model.ConditionCfg{Type: "laser"}

	_, err := NewCalculatorFromSetup(setup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDivisions))
	assert.True(t, errors.Is(err, ErrConductivity))
	assert.True(t, errors.Is(err, ErrUnknownNorm))
	assert.True(t, errors.Is(err, ErrEpsilon))
	assert.True(t, errors.Is(err, ErrUnknownCondition))
	assert.GreaterOrEqual(t, len(multierr.Errors(err)), 5)
}

func TestResolveSetup_Material(t *testing.T) {
	setup := model.DefaultSetup()
	setup.Solver.Material = "copper"
	_, s, _, _, _, err := resolveSetup(setup)
	require.NoError(t, err)
	assert.Equal(t, 401.0, s.K)

	// 显式给出的导热系数优先
	setup.Solver.Conductivity = 12
	_, s, _, _, _, err = resolveSetup(setup)
	require.NoError(t, err)
	assert.Equal(t, 12.0, s.K)
}

func TestResolveSetup_UnknownMaterial(t *testing.T) {
	setup := model.DefaultSetup()
	setup.Solver.Conductivity = 0
	setup.Solver.Material = "unobtainium"
	_, _, _, _, _, err := resolveSetup(setup)
	require.Error(t, err)

	var conductivity []error
	for _, e := range multierr.Errors(err) {
		if errors.Is(e, ErrConductivity) {
			conductivity = append(conductivity, e)
		}
	}
	require.Len(t, conductivity, 1)
	assert.Contains(t, conductivity[0].Error(), "unknown material")

	// 未给出材料时导热系数必须为正
	setup.Solver.Material = ""
	_, _, _, _, _, err = resolveSetup(setup)
	assert.True(t, errors.Is(err, ErrConductivity))
}

func TestLoadSetup_Conf(t *testing.T) {
	for _, path := range []string{"../conf/case.ini", "../conf/case.yaml"} {
		setup, err := LoadSetup(path)
		require.NoError(t, err, path)
		_, _, _, _, _, err = resolveSetup(setup)
		assert.NoError(t, err, path)
	}
}
