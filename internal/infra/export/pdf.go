package export

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/yanqian/diveplanner/internal/domain/gasplan"
)

// DiveSheet is the printable summary of a planned dive.
type DiveSheet struct {
	Title       string
	Objective   string
	Report      gasplan.AirBudgetReport
	SafetyNotes string
	GeneratedAt time.Time
}

// Renderer produces PDF and XLSX documents.
type Renderer struct{}

// NewRenderer constructs the renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// DiveSheetPDF writes an A4 dive sheet.
func (r *Renderer) DiveSheetPDF(ctx context.Context, w io.Writer, sheet DiveSheet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	title := strings.TrimSpace(sheet.Title)
	if title == "" {
		title = "Plan de Inmersión"
	}
	generated := sheet.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	p := sheet.Report.Parameters

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(title), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Fecha: %s", generated.Format("2006-01-02"))))
	pdf.Ln(6)
	if obj := strings.TrimSpace(sheet.Objective); obj != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Objetivo: %s", obj)))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	section(pdf, tr, "Parámetros")
	row(pdf, tr, "Consumo en superficie (SAC)", number(p.SACRate)+" L/min")
	row(pdf, tr, "Volumen de la botella", number(p.TankSize)+" L")
	row(pdf, tr, "Presión inicial", number(p.StartPressure)+" bar")
	row(pdf, tr, "Profundidad máxima", number(p.MaxDepth)+" m")
	row(pdf, tr, "Tiempo de fondo", number(p.BottomTime)+" min")
	pdf.Ln(4)

	rep := sheet.Report
	section(pdf, tr, "Consumo de aire")
	row(pdf, tr, "Aire total disponible", gasplan.FormatLiters(rep.TotalLiters)+" L")
	row(pdf, tr, "Presión absoluta", number(rep.ATA)+" ATA")
	row(pdf, tr, "Consumo a profundidad", gasplan.FormatLiters(rep.ConsumptionAtDepth)+" L/min")
	row(pdf, tr, "Aire necesario", rep.Display.Needed)
	row(pdf, tr, "Reserva (1/3)", rep.Display.Reserve)
	if rep.Warning {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 30, 30)
		pdf.MultiCell(0, 6, tr(rep.Display.Warning), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	if notes := strings.TrimSpace(sheet.SafetyNotes); notes != "" {
		pdf.Ln(4)
		section(pdf, tr, "Resumen de seguridad")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(notes), "", "L", false)
	}

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, tr func(string) string, label string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, tr(label))
	pdf.Ln(9)
}

func row(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(90, 6, tr(label), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
