package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanqian/diveplanner/internal/domain/gasplan"
	"github.com/yanqian/diveplanner/internal/infra/export"
)

type gasOptions struct {
	raw       gasplan.RawParameters
	pdfPath   string
	title     string
	objective string
}

func newGasCommand(root *options) *cobra.Command {
	opts := &gasOptions{}
	cmd := &cobra.Command{
		Use:   "gas",
		Short: "Compute the air budget for a dive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGas(cmd, root, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar((*string)(&opts.raw.SACRate), "sac", "", "surface air consumption in L/min (default 20)")
	flags.StringVar((*string)(&opts.raw.TankSize), "tank", "", "tank volume in liters (default 12)")
	flags.StringVar((*string)(&opts.raw.StartPressure), "pressure", "", "start pressure in bar (default 200)")
	flags.StringVar((*string)(&opts.raw.MaxDepth), "depth", "", "maximum depth in meters (default 30)")
	flags.StringVar((*string)(&opts.raw.BottomTime), "time", "", "bottom time in minutes (default 25)")
	flags.StringVar(&opts.pdfPath, "pdf", "", "also write a printable dive sheet to this path")
	flags.StringVar(&opts.title, "title", "", "dive sheet title")
	flags.StringVar(&opts.objective, "objective", "", "dive objective printed on the sheet")
	return cmd
}

func runGas(cmd *cobra.Command, root *options, opts *gasOptions) error {
	report := gasplan.Plan(opts.raw)
	out := cmd.OutOrStdout()

	if opts.pdfPath != "" {
		if err := writeDiveSheet(cmd, opts, report); err != nil {
			return err
		}
	}

	if root.jsonOutput {
		return writeJSON(out, report)
	}
	printGasReport(out, report)
	return nil
}

func printGasReport(w io.Writer, report gasplan.AirBudgetReport) {
	p := report.Parameters
	writeRow(w, "Profundidad", fmt.Sprintf("%s m (%s ATA)", formatNumber(p.MaxDepth), formatNumber(report.ATA)))
	writeRow(w, "Tiempo de fondo", formatNumber(p.BottomTime)+" min")
	writeRow(w, "Aire total", gasplan.FormatLiters(report.TotalLiters)+" L")
	writeRow(w, "Aire necesario", report.Display.Needed)
	writeRow(w, "Reserva (1/3)", report.Display.Reserve)
	if report.Warning {
		fmt.Fprintln(w, warningStyle.Render(report.Display.Warning))
	}
}

// formatNumber keeps meaningful decimals (18.5 m, 2.8 ATA).
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func writeDiveSheet(cmd *cobra.Command, opts *gasOptions, report gasplan.AirBudgetReport) error {
	f, err := os.Create(opts.pdfPath)
	if err != nil {
		return fmt.Errorf("create dive sheet: %w", err)
	}
	defer f.Close()
	sheet := export.DiveSheet{
		Title:       opts.title,
		Objective:   opts.objective,
		Report:      report,
		GeneratedAt: time.Now(),
	}
	if err := export.NewRenderer().DiveSheetPDF(cmd.Context(), f, sheet); err != nil {
		return fmt.Errorf("render dive sheet: %w", err)
	}
	return f.Close()
}
