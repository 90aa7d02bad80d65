package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yanqian/diveplanner/internal/domain/budget"
	"github.com/yanqian/diveplanner/internal/domain/gasplan"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGasDefaultsHumanOutput(t *testing.T) {
	out, err := execute(t, "gas")
	require.NoError(t, err)
	require.Contains(t, out, "2000 L")
	require.Contains(t, out, "800 L")
	require.Contains(t, out, gasplan.WarningText)
}

func TestGasShowsFractionalATA(t *testing.T) {
	out, err := execute(t, "gas", "--depth", "18")
	require.NoError(t, err)
	require.Contains(t, out, "18 m (2.8 ATA)")

	out, err = execute(t, "gas", "--depth", "18.5")
	require.NoError(t, err)
	require.Contains(t, out, "18.5 m (2.85 ATA)")
}

func TestFormatNumber(t *testing.T) {
	require.Equal(t, "2.8", formatNumber(2.8))
	require.Equal(t, "3", formatNumber(3))
	require.Equal(t, "4.5", formatNumber(4.5))
	require.Equal(t, "2.85", formatNumber(18.5/10+1))
}

func TestGasJSONFallsBackOnInvalidInput(t *testing.T) {
	out, err := execute(t, "gas", "--json", "--sac", "abc", "--tank", "15", "--pressure", "220", "--depth", "18", "--time", "40")
	require.NoError(t, err)

	var report gasplan.AirBudgetReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, gasplan.DefaultSACRate, report.Parameters.SACRate)
	require.InDelta(t, 2240, report.NeededLiters, 1e-9)
	require.True(t, report.Warning)
}

func TestGasWritesDiveSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")
	_, err := execute(t, "gas", "--pdf", path, "--title", "Cueva")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestBudgetJSON(t *testing.T) {
	out, err := execute(t, "budget", "--json", "--currency", "usd", "--cost", "flights=450", "--cost", "diving=600.5", "--cost", "tips=abc")
	require.NoError(t, err)

	var estimate budget.Estimate
	require.NoError(t, json.Unmarshal([]byte(out), &estimate))
	require.Equal(t, "USD", estimate.Currency)
	require.InDelta(t, 1050.5, estimate.Total, 1e-9)
	require.Equal(t, "$1051", estimate.Display)
}

func TestBudgetRejectsUnknownCategory(t *testing.T) {
	_, err := execute(t, "budget", "--cost", "yacht=10")
	require.Error(t, err)
}

func TestBudgetWritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presupuesto.xlsx")
	out, err := execute(t, "budget", "--cost", "accom=300", "--xlsx", path)
	require.NoError(t, err)
	require.Contains(t, out, "€300")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	require.Contains(t, f.GetSheetList(), "Presupuesto")
}
