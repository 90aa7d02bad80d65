package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/diveplanner/internal/domain/budget"
	"github.com/yanqian/diveplanner/internal/domain/gasplan"
	"github.com/yanqian/diveplanner/internal/infra/export"
)

type budgetOptions struct {
	currency string
	costs    map[string]string
	xlsxPath string
}

func newBudgetCommand(root *options) *cobra.Command {
	opts := &budgetOptions{}
	keys := make([]string, 0, len(budget.Categories))
	for _, c := range budget.Categories {
		keys = append(keys, c.Key)
	}
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Total the costs of a dive trip",
		Example: `  diveplan budget --currency EUR --cost flights=450 --cost diving=600
  diveplan budget --cost accom=300 --xlsx presupuesto.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBudget(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.currency, "currency", "EUR", "currency code (EUR, USD, GBP, MXN)")
	cmd.Flags().StringToStringVar(&opts.costs, "cost", nil, "category=amount, categories: "+strings.Join(keys, ", "))
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "also write the budget to this XLSX path")
	return cmd
}

func runBudget(cmd *cobra.Command, root *options, opts *budgetOptions) error {
	req := budget.Request{Currency: opts.currency, Costs: make(map[string]gasplan.Input, len(opts.costs))}
	for k, v := range opts.costs {
		req.Costs[k] = gasplan.Input(v)
	}
	estimate, err := budget.Calculate(req)
	if err != nil {
		return err
	}

	if opts.xlsxPath != "" {
		if err := writeWorkbook(cmd, opts.xlsxPath, estimate); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if root.jsonOutput {
		return writeJSON(out, estimate)
	}
	printEstimate(out, estimate)
	return nil
}

func printEstimate(w io.Writer, estimate budget.Estimate) {
	for _, item := range estimate.Breakdown {
		writeRow(w, item.Label, fmt.Sprintf("%s%.2f", estimate.Symbol, item.Amount))
	}
	writeRow(w, "Total", estimate.Display)
}

func writeWorkbook(cmd *cobra.Command, path string, estimate budget.Estimate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	defer f.Close()
	if err := export.NewRenderer().BudgetWorkbook(cmd.Context(), f, estimate); err != nil {
		return fmt.Errorf("render workbook: %w", err)
	}
	return f.Close()
}
