package budget

import (
	"context"
	"io"

	"github.com/yanqian/diveplanner/internal/domain/gasplan"
	"github.com/yanqian/diveplanner/pkg/metrics"
)

// Config configures the tips prompt.
type Config struct {
	SystemPrompt string
	Temperature  float32
	TipCount     int
}

// Category is a cost line of the trip.
type Category struct {
	Key   string
	Label string
}

// Categories lists the cost lines in display order.
var Categories = []Category{
	{Key: "flights", Label: "Vuelos"},
	{Key: "accom", Label: "Alojamiento"},
	{Key: "diving", Label: "Paquete de Buceo"},
	{Key: "rental", Label: "Alquiler de Equipo"},
	{Key: "food", Label: "Comida y Bebida"},
	{Key: "fees", Label: "Tasas / Nitrox"},
	{Key: "tips", Label: "Propinas"},
	{Key: "other", Label: "Otros"},
}

// DefaultCurrency is used when none is given.
const DefaultCurrency = "EUR"

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"MXN": "$",
}

// Request carries raw cost inputs keyed by category.
type Request struct {
	Currency string                   `json:"currency"`
	Costs    map[string]gasplan.Input `json:"costs"`
}

// LineItem is one parsed cost.
type LineItem struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Estimate is the computed trip budget.
type Estimate struct {
	Currency  string     `json:"currency"`
	Symbol    string     `json:"symbol"`
	Total     float64    `json:"total"`
	Display   string     `json:"display"`
	Breakdown []LineItem `json:"breakdown"`
}

// TipsRequest asks for money saving advice.
type TipsRequest struct {
	Destination string                   `json:"destination"`
	Currency    string                   `json:"currency"`
	Costs       map[string]gasplan.Input `json:"costs"`
}

// TipsResponse carries the generated advice.
type TipsResponse struct {
	Destination string              `json:"destination"`
	Budget      string              `json:"budget"`
	Tips        string              `json:"tips"`
	TokenUsage  *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// Exporter renders an estimate as a spreadsheet.
type Exporter interface {
	BudgetWorkbook(ctx context.Context, w io.Writer, estimate Estimate) error
}
