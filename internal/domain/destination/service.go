package destination

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/diveplanner/internal/domain/llm"
	apperrors "github.com/yanqian/diveplanner/pkg/errors"
	"github.com/yanqian/diveplanner/pkg/util"
)

const errLookupFailed = "No se pudo obtener la información del destino. Por favor, inténtelo de nuevo."

// Service answers destination questions with search grounding.
type Service interface {
	Info(ctx context.Context, req Request) (Response, error)
	Trending(ctx context.Context) ([]TrendingDestination, error)
}

type service struct {
	cfg    Config
	llm    llm.TextGenerator
	cache  Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the destination domain.
func NewService(cfg Config, generator llm.TextGenerator, cache Cache, logger *slog.Logger) Service {
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = 150
	}
	if cfg.TrendingLimit <= 0 {
		cfg.TrendingLimit = 10
	}
	return &service{
		cfg:    cfg,
		llm:    generator,
		cache:  cache,
		logger: logger.With("component", "destination.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Info(ctx context.Context, req Request) (Response, error) {
	dest := strings.TrimSpace(req.Destination)
	if dest == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Por favor, introduce un destino para buscar.", nil)
	}
	if loc := req.Location; loc != nil && (loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180) {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "ubicación fuera de rango", nil)
	}

	nearby := isNearby(dest) && req.Location != nil
	key := normalizeDestination(dest)

	if !nearby && key != "" {
		if err := s.cache.IncrementQuery(ctx, key, dest); err != nil {
			s.logger.Warn("destination trending increment failed", "key", key, "error", err)
		}
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("destination cache lookup failed", "key", key, "error", err)
		} else if ok {
			s.logger.Info("destination cache hit", "key", key)
			return Response{
				Destination: dest,
				Info:        cached.Info,
				Sources:     nonNil(cached.Sources),
				Cached:      true,
			}, nil
		}
	}

	req.Destination = dest
	result, err := s.llm.GenerateText(ctx, s.buildRequest(req, nearby))
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeLLMUnavailable) {
			return Response{}, err
		}
		return Response{}, apperrors.Wrap(apperrors.CodeLLM, errLookupFailed, err)
	}
	info := strings.TrimSpace(result.Text)
	if info == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeLLM, errLookupFailed, nil)
	}

	if !nearby && key != "" {
		record := CachedInfo{Key: key, Destination: dest, Info: info, Sources: result.Sources, CachedAt: s.now().UTC()}
		if err := s.cache.Save(ctx, record, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("destination cache save failed", "key", key, "error", err)
		}
	}
	s.logger.Info("destination info generated", "nearby", nearby, "sources", len(result.Sources))

	return Response{
		Destination: dest,
		Info:        info,
		Sources:     nonNil(result.Sources),
		Nearby:      nearby,
		TokenUsage:  result.Usage.Ptr(),
	}, nil
}

func (s *service) Trending(ctx context.Context) ([]TrendingDestination, error) {
	items, err := s.cache.TopQueries(ctx, s.cfg.TrendingLimit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to load trending destinations", err)
	}
	if items == nil {
		items = []TrendingDestination{}
	}
	return items, nil
}

func (s *service) buildRequest(req Request, nearby bool) llm.TextRequest {
	var prompt string
	if nearby {
		prompt = "Describe sitios de buceo interesantes cerca de mi ubicación actual. Incluye detalles sobre qué ver, el tipo de buceo y por qué son recomendables."
	} else {
		prompt = fmt.Sprintf("Proporciona una descripción concisa (máximo %d palabras) del destino de buceo: %q.\n"+
			"Incluye los tipos de buceo más famosos (pecios, arrecifes, etc.) y la fauna marina destacada que se puede encontrar allí.\n"+
			"Basa tu respuesta en información actualizada. No uses markdown. Formatea la respuesta con saltos de línea.",
			s.cfg.MaxWords, req.Destination)
	}
	out := llm.UserPrompt(s.cfg.SystemPrompt, prompt, s.cfg.Temperature)
	out.Grounding = &llm.Grounding{Search: true, Maps: true, Location: req.Location}
	return out
}

func nonNil(sources []llm.Source) []llm.Source {
	if sources == nil {
		return []llm.Source{}
	}
	return sources
}
