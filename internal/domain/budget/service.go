package budget

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/yanqian/diveplanner/internal/domain/gasplan"
	"github.com/yanqian/diveplanner/internal/domain/llm"
	apperrors "github.com/yanqian/diveplanner/pkg/errors"
)

const errTipsFailed = "No se pudieron generar los consejos de presupuesto. Por favor, inténtelo de nuevo."

// Service computes trip budgets.
type Service interface {
	Calculate(req Request) (Estimate, error)
	Tips(ctx context.Context, req TipsRequest) (TipsResponse, error)
	Export(ctx context.Context, req Request) ([]byte, error)
}

type service struct {
	cfg      Config
	llm      llm.TextGenerator
	exporter Exporter
	logger   *slog.Logger
}

// NewService wires the budget domain.
func NewService(cfg Config, generator llm.TextGenerator, exporter Exporter, logger *slog.Logger) Service {
	if cfg.TipCount <= 0 {
		cfg.TipCount = 3
	}
	return &service{cfg: cfg, llm: generator, exporter: exporter, logger: logger.With("component", "budget.service")}
}

func (s *service) Calculate(req Request) (Estimate, error) {
	return Calculate(req)
}

// Calculate sums the cost lines. Blank or non numeric values count as zero.
func Calculate(req Request) (Estimate, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	symbol, ok := currencySymbols[currency]
	if !ok {
		return Estimate{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("moneda no soportada: %q", req.Currency), nil)
	}
	known := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		known[c.Key] = true
	}
	for key := range req.Costs {
		if !known[key] {
			return Estimate{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("categoría de gasto desconocida: %q", key), nil)
		}
	}

	breakdown := make([]LineItem, 0, len(Categories))
	total := 0.0
	for _, c := range Categories {
		amount := parseAmount(string(req.Costs[c.Key]))
		total += amount
		breakdown = append(breakdown, LineItem{Key: c.Key, Label: c.Label, Amount: amount})
	}
	return Estimate{
		Currency:  currency,
		Symbol:    symbol,
		Total:     total,
		Display:   symbol + formatAmount(total),
		Breakdown: breakdown,
	}, nil
}

func (s *service) Tips(ctx context.Context, req TipsRequest) (TipsResponse, error) {
	dest := strings.TrimSpace(req.Destination)
	if dest == "" {
		return TipsResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Por favor, introduce un destino para buscar.", nil)
	}
	estimate, err := Calculate(Request{Currency: req.Currency, Costs: req.Costs})
	if err != nil {
		return TipsResponse{}, err
	}

	prompt := fmt.Sprintf("Dame %d consejos clave para ahorrar dinero en un viaje de buceo a %q con un presupuesto aproximado de %s.\n"+
		"Formatea la respuesta como una lista con viñetas o puntos. No uses markdown.", s.cfg.TipCount, dest, estimate.Display)
	result, err := s.llm.GenerateText(ctx, llm.UserPrompt(s.cfg.SystemPrompt, prompt, s.cfg.Temperature))
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeLLMUnavailable) {
			return TipsResponse{}, err
		}
		return TipsResponse{}, apperrors.Wrap(apperrors.CodeLLM, errTipsFailed, err)
	}
	tips := strings.TrimSpace(result.Text)
	if tips == "" {
		return TipsResponse{}, apperrors.Wrap(apperrors.CodeLLM, errTipsFailed, nil)
	}
	s.logger.Info("budget tips generated", "currency", estimate.Currency)
	return TipsResponse{
		Destination: dest,
		Budget:      estimate.Display,
		Tips:        tips,
		TokenUsage:  result.Usage.Ptr(),
	}, nil
}

func (s *service) Export(ctx context.Context, req Request) ([]byte, error) {
	estimate, err := Calculate(req)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := s.exporter.BudgetWorkbook(ctx, &buf, estimate); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to render budget workbook", err)
	}
	return buf.Bytes(), nil
}

func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func formatAmount(v float64) string {
	return gasplan.FormatLiters(v)
}
