package safety

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/yanqian/diveplanner/internal/domain/gasplan"
	"github.com/yanqian/diveplanner/internal/domain/llm"
	apperrors "github.com/yanqian/diveplanner/pkg/errors"
)

// Service generates dive safety summaries.
type Service interface {
	Summarize(ctx context.Context, req Request) (Response, error)
}

type service struct {
	cfg    Config
	llm    llm.TextGenerator
	logger *slog.Logger
}

// NewService wires the safety domain.
func NewService(cfg Config, generator llm.TextGenerator, logger *slog.Logger) Service {
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = 100
	}
	return &service{cfg: cfg, llm: generator, logger: logger.With("component", "safety.service")}
}

func (s *service) Summarize(ctx context.Context, req Request) (Response, error) {
	objective := strings.TrimSpace(req.Objective)
	if objective == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "El objetivo de la inmersión no puede estar vacío.", nil)
	}
	risks, err := resolveRisks(req.Risks)
	if err != nil {
		return Response{}, err
	}
	profile, err := resolveProfile(req.Profile)
	if err != nil {
		return Response{}, err
	}
	depth := gasplan.ParseWithDefault(string(req.MaxDepth), gasplan.DefaultMaxDepth)
	bottomTime := gasplan.ParseWithDefault(string(req.BottomTime), gasplan.DefaultBottomTime)

	prompt := buildPrompt(objective, depth, bottomTime, risks, profile, s.cfg.MaxWords)
	result, err := s.llm.GenerateText(ctx, llm.UserPrompt(s.cfg.SystemPrompt, prompt, s.cfg.Temperature))
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeLLMUnavailable) {
			return Response{}, err
		}
		return Response{}, apperrors.Wrap(apperrors.CodeLLM, "No se pudo generar el resumen de seguridad. Por favor, inténtelo de nuevo.", err)
	}
	summary := strings.TrimSpace(result.Text)
	if summary == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeLLM, "No se pudo generar el resumen de seguridad. Por favor, inténtelo de nuevo.", nil)
	}
	s.logger.Info("safety summary generated", "profile", profile, "risks", len(risks))

	res := Response{
		Summary:      summary,
		Objective:    objective,
		MaxDepth:     depth,
		BottomTime:   bottomTime,
		Risks:        risks,
		Profile:      profile,
		ProfileLabel: profileLabels[profile],
		TokenUsage:   result.Usage.Ptr(),
	}
	if profile == ProfileSawtooth {
		res.ProfileWarning = SawtoothWarning
	}
	return res, nil
}

// resolveRisks validates risk keys and returns their labels in a stable order.
func resolveRisks(keys []string) ([]string, error) {
	selected := make(map[string]bool, len(keys))
	for _, key := range keys {
		k := strings.ToLower(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		if _, ok := riskLabels[k]; !ok {
			return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("riesgo desconocido: %q", key), nil)
		}
		selected[k] = true
	}
	labels := make([]string, 0, len(selected))
	for _, k := range riskOrder {
		if selected[k] {
			labels = append(labels, riskLabels[k])
		}
	}
	return labels, nil
}

func resolveProfile(p Profile) (Profile, error) {
	p = Profile(strings.ToLower(strings.TrimSpace(string(p))))
	if p == "" {
		return ProfileMultilevelAscending, nil
	}
	if _, ok := profileLabels[p]; !ok {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("perfil desconocido: %q", p), nil)
	}
	return p, nil
}

func buildPrompt(objective string, depth, bottomTime float64, risks []string, profile Profile, maxWords int) string {
	riskText := "Sin riesgos adicionales reportados."
	if len(risks) > 0 {
		riskText = fmt.Sprintf("Riesgos adicionales: %s.", strings.Join(risks, ", "))
	}
	profileText := profileLabels[profile]
	if profile == ProfileSawtooth {
		profileText += " (peligroso, desaconsejado)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Genera un resumen de seguridad en 3 puntos clave (máximo %d palabras) para esta inmersión:\n", maxWords)
	fmt.Fprintf(&b, "- Objetivo: %s\n", objective)
	fmt.Fprintf(&b, "- Profundidad Máxima: %s metros\n", formatNumber(depth))
	fmt.Fprintf(&b, "- Tiempo de Fondo: %s minutos\n", formatNumber(bottomTime))
	fmt.Fprintf(&b, "- Perfil: %s\n", profileText)
	fmt.Fprintf(&b, "- %s\n", riskText)
	b.WriteString("Responde en español. No uses markdown. Formatea la respuesta con saltos de línea.")
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
