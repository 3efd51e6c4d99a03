package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/powerplan/core/model"
)

const payload = `{
  "load": 500,
  "fuels": {"gas(euro/MWh)": 2, "kerosine(euro/MWh)": 50.8, "co2(euro/ton)": 20, "wind(%)": 60},
  "powerplants": [
    {"name": "w", "type": "windturbine", "efficiency": 1, "pmin": 0, "pmax": 100},
    {"name": "g", "type": "gasfired", "efficiency": 0.5, "pmin": 20, "pmax": 200}
  ]
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCalculateFromStdin(t *testing.T) {
	out, err := run(t, payload, "calculate")
	require.NoError(t, err)
	var plan []model.Production
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.Len(t, plan, 2)
	assert.Equal(t, "g", plan[0].Name)
	assert.InDelta(t, 80.0, plan[0].P, 1e-9)
	assert.InDelta(t, 4.2, plan[1].P, 1e-9)
}

func TestCalculateFromFileWithSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	out, err := run(t, "", "calculate", "-f", path, "--summary", "-s", "unit-consistent")
	require.NoError(t, err)
	var res struct {
		ID       string             `json:"id"`
		Strategy string             `json:"strategy"`
		Plan     []model.Production `json:"plan"`
		Summary  model.PlanSummary  `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "unit-consistent", res.Strategy)
	assert.Equal(t, 500.0, res.Summary.Requested)
	assert.Len(t, res.Plan, 2)
}

func TestCalculateErrors(t *testing.T) {
	_, err := run(t, "{", "calculate")
	assert.ErrorContains(t, err, "decode payload")

	_, err = run(t, `{"load": 1, "powerplants": [{"name": "g", "type": "gasfired", "efficiency": 0.5, "pmax": 10}]}`, "calculate")
	assert.ErrorIs(t, err, model.ErrInvalidPayload)

	out, err := run(t, `{"load": 1}`, "calculate")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)

	_, err = run(t, payload, "calculate", "-s", "simplex")
	assert.Error(t, err)

	_, err = run(t, "", "calculate", "-f", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestCost(t *testing.T) {
	out, err := run(t, payload, "cost")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"PLANT", "TYPE", "EUR/MWh"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"w", "windturbine", "0.000"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"g", "gasfired", "4.000"}, strings.Fields(lines[2]))
}
