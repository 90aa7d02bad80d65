package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/yanqian/diveplanner/internal/domain/budget"
)

const budgetSheet = "Presupuesto"

// BudgetWorkbook writes the estimate as a one-sheet workbook.
func (r *Renderer) BudgetWorkbook(ctx context.Context, w io.Writer, estimate budget.Estimate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", budgetSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	numFmt := fmt.Sprintf(`"%s"#,##0.00`, estimate.Symbol)
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("money style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("bold style: %w", err)
	}

	if err := f.SetSheetRow(budgetSheet, "A1", &[]any{"Concepto", "Importe (" + estimate.Currency + ")"}); err != nil {
		return err
	}
	for i, item := range estimate.Breakdown {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(budgetSheet, cell, &[]any{item.Label, item.Amount}); err != nil {
			return err
		}
	}
	totalRow := len(estimate.Breakdown) + 2
	labelCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(2, totalRow)
	if err := f.SetCellValue(budgetSheet, labelCell, "Total"); err != nil {
		return err
	}
	if err := f.SetCellValue(budgetSheet, totalCell, estimate.Total); err != nil {
		return err
	}

	if err := f.SetCellStyle(budgetSheet, "A1", "B1", boldStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(budgetSheet, labelCell, labelCell, boldStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(budgetSheet, "B2", totalCell, moneyStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(budgetSheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(budgetSheet, "B", "B", 16); err != nil {
		return err
	}

	return f.Write(w)
}

var _ budget.Exporter = (*Renderer)(nil)
