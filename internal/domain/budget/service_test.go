package budget

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/diveplanner/internal/domain/gasplan"
	"github.com/yanqian/diveplanner/internal/domain/llm"
	apperrors "github.com/yanqian/diveplanner/pkg/errors"
)

type stubGenerator struct {
	text        string
	err         error
	lastRequest llm.TextRequest
}

func (s *stubGenerator) GenerateText(_ context.Context, req llm.TextRequest) (llm.TextResult, error) {
	s.lastRequest = req
	return llm.TextResult{Text: s.text}, s.err
}

type stubExporter struct {
	estimate Estimate
	err      error
}

func (s *stubExporter) BudgetWorkbook(_ context.Context, w io.Writer, estimate Estimate) error {
	s.estimate = estimate
	if s.err != nil {
		return s.err
	}
	_, err := w.Write([]byte("xlsx"))
	return err
}

func newTestService(gen llm.TextGenerator, exp Exporter) Service {
	return NewService(Config{SystemPrompt: "experto"}, gen, exp, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCalculate(t *testing.T) {
	cases := []struct {
		name        string
		req         Request
		wantTotal   float64
		wantDisplay string
	}{
		{name: "empty defaults to euro", req: Request{}, wantTotal: 0, wantDisplay: "€0"},
		{
			name: "sums and rounds",
			req: Request{Currency: "usd", Costs: map[string]gasplan.Input{
				"flights": "650.4", "accom": "420", "diving": "380.2", "tips": "abc", "other": "",
			}},
			wantTotal:   1450.6,
			wantDisplay: "$1451",
		},
		{
			name:        "negative values count",
			req:         Request{Currency: "GBP", Costs: map[string]gasplan.Input{"flights": "100", "other": "-40"}},
			wantTotal:   60,
			wantDisplay: "£60",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			est, err := Calculate(tc.req)
			require.NoError(t, err)
			require.InDelta(t, tc.wantTotal, est.Total, 1e-9)
			require.Equal(t, tc.wantDisplay, est.Display)
			require.Len(t, est.Breakdown, len(Categories))
			require.Equal(t, "flights", est.Breakdown[0].Key)
		})
	}
}

func TestCalculateRejectsUnknownInputs(t *testing.T) {
	_, err := Calculate(Request{Currency: "JPY"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = Calculate(Request{Costs: map[string]gasplan.Input{"casino": "10"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestTips(t *testing.T) {
	gen := &stubGenerator{text: " - Viaja en temporada baja "}
	svc := newTestService(gen, &stubExporter{})

	res, err := svc.Tips(context.Background(), TipsRequest{
		Destination: " Egipto (Mar Rojo) ",
		Currency:    "EUR",
		Costs:       map[string]gasplan.Input{"flights": "400", "diving": "350"},
	})
	require.NoError(t, err)
	require.Equal(t, "Egipto (Mar Rojo)", res.Destination)
	require.Equal(t, "€750", res.Budget)
	require.Equal(t, "- Viaja en temporada baja", res.Tips)
	require.Equal(t, "experto", gen.lastRequest.System)
	require.Contains(t, gen.lastRequest.Messages[0].Text, `Dame 3 consejos clave para ahorrar dinero en un viaje de buceo a "Egipto (Mar Rojo)" con un presupuesto aproximado de €750.`)
}

func TestTipsErrors(t *testing.T) {
	_, err := newTestService(&stubGenerator{}, nil).Tips(context.Background(), TipsRequest{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = newTestService(&stubGenerator{err: errors.New("boom")}, nil).Tips(context.Background(), TipsRequest{Destination: "x"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeLLM))

	_, err = newTestService(llm.Unavailable{}, nil).Tips(context.Background(), TipsRequest{Destination: "x"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeLLMUnavailable))
}

func TestExport(t *testing.T) {
	exp := &stubExporter{}
	data, err := newTestService(&stubGenerator{}, exp).Export(context.Background(), Request{Costs: map[string]gasplan.Input{"food": "99.5"}})
	require.NoError(t, err)
	require.Equal(t, []byte("xlsx"), data)
	require.Equal(t, "€100", exp.estimate.Display)

	_, err = newTestService(&stubGenerator{}, &stubExporter{err: errors.New("disk")}).Export(context.Background(), Request{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
}

func TestFormatAmountRounding(t *testing.T) {
	cases := map[float64]string{
		1050.5: "1051",
		2.5:    "3",
		-0.4:   "0",
		-2.5:   "-3",
		0:      "0",
	}
	for in, want := range cases {
		require.Equal(t, want, formatAmount(in), in)
	}
}
