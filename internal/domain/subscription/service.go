package subscription

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"

	apperrors "github.com/yanqian/diveplanner/pkg/errors"
)

const maxEmailLen = 254

// Service manages newsletter sign-ups.
type Service interface {
	Subscribe(ctx context.Context, req Request) (Response, error)
	Unsubscribe(ctx context.Context, email string) error
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the subscription domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, logger: logger.With("component", "subscription.service")}
}

func (s *service) Subscribe(ctx context.Context, req Request) (Response, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return Response{}, err
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "popup"
	}
	sub, created, err := s.repo.Create(ctx, email, source)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save subscription", err)
	}
	if created {
		s.logger.Info("subscriber added", "subscriber_id", sub.ID, "source", source)
	}
	return Response{Subscriber: sub, AlreadySubscribed: !created}, nil
}

func (s *service) Unsubscribe(ctx context.Context, raw string) error {
	email, err := normalizeEmail(raw)
	if err != nil {
		return err
	}
	removed, err := s.repo.Delete(ctx, email)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to remove subscription", err)
	}
	if !removed {
		return apperrors.Wrap(apperrors.CodeNotFound, "subscription not found", nil)
	}
	return nil
}

// normalizeEmail accepts a bare address only; display names are rejected.
func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	invalid := apperrors.Wrap(apperrors.CodeInvalidInput, "Por favor, introduce un correo electrónico válido.", nil)
	if trimmed == "" || len(trimmed) > maxEmailLen {
		return "", invalid
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Name != "" || addr.Address != trimmed {
		return "", invalid
	}
	at := strings.LastIndex(addr.Address, "@")
	if at <= 0 || !strings.Contains(addr.Address[at+1:], ".") {
		return "", invalid
	}
	return strings.ToLower(addr.Address), nil
}
