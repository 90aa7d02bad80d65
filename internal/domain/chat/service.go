package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/diveplanner/internal/domain/llm"
	apperrors "github.com/yanqian/diveplanner/pkg/errors"
	"github.com/yanqian/diveplanner/pkg/util"
)

// Service exposes the DiveBot conversation.
type Service interface {
	Send(ctx context.Context, req SendRequest) (SendResponse, error)
	Transcript(ctx context.Context, sessionID string) (TranscriptView, error)
	Reset(ctx context.Context, sessionID string) error
}

type service struct {
	cfg     Config
	llm     llm.TextGenerator
	store   SessionStore
	counter TokenCounter
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// NewService wires the chat domain.
func NewService(cfg Config, generator llm.TextGenerator, store SessionStore, counter TokenCounter, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		llm:     generator,
		store:   store,
		counter: counter,
		logger:  logger.With("component", "chat.service"),
		now:     util.NowUTC,
		newID:   uuid.NewString,
	}
}

func (s *service) Send(ctx context.Context, req SendRequest) (SendResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return SendResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "El mensaje no puede estar vacío.", nil)
	}

	session, err := s.load(ctx, req.SessionID)
	if err != nil {
		return SendResponse{}, err
	}

	recreated := false
	if !session.Valid {
		session.History = nil
		session.Valid = true
		recreated = true
		s.logger.Info("chat session recreated", "session_id", session.ID)
	}

	now := s.now().UTC()
	session.History = append(session.History, llm.Message{Role: llm.RoleUser, Text: message})
	session.Transcript = append(session.Transcript, Turn{Role: llm.RoleUser, Text: message, At: now})
	session.History = trimHistory(session.History, s.counter, s.cfg.MaxHistoryTokens)

	result, genErr := s.llm.GenerateText(ctx, llm.TextRequest{
		System:      s.cfg.SystemPrompt,
		Messages:    session.History,
		Temperature: s.cfg.Temperature,
	})
	reply := strings.TrimSpace(result.Text)
	if genErr == nil && reply == "" {
		genErr = apperrors.Wrap(apperrors.CodeLLM, "empty model reply", nil)
	}
	if genErr != nil {
		s.logger.Error("chat generation failed, invalidating session", "session_id", session.ID, "error", genErr)
		session.History = nil
		session.Valid = false
		session.Transcript = append(session.Transcript, Turn{Role: llm.RoleModel, Text: s.cfg.Apology, At: now})
		session.UpdatedAt = now
		if err := s.store.Save(ctx, session, s.cfg.SessionTTL); err != nil {
			s.logger.Error("chat session save failed", "session_id", session.ID, "error", err)
		}
		code := apperrors.CodeLLM
		if apperrors.IsCode(genErr, apperrors.CodeLLMUnavailable) {
			code = apperrors.CodeLLMUnavailable
		}
		return SendResponse{}, apperrors.Wrap(code, s.cfg.Apology, genErr)
	}

	session.History = append(session.History, llm.Message{Role: llm.RoleModel, Text: reply})
	session.Transcript = append(session.Transcript, Turn{Role: llm.RoleModel, Text: reply, At: now})
	session.UpdatedAt = now
	if err := s.store.Save(ctx, session, s.cfg.SessionTTL); err != nil {
		return SendResponse{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save chat session", err)
	}

	return SendResponse{
		SessionID:  session.ID,
		Reply:      reply,
		Transcript: session.Transcript,
		Recreated:  recreated,
		TokenUsage: result.Usage.Ptr(),
	}, nil
}

func (s *service) Transcript(ctx context.Context, sessionID string) (TranscriptView, error) {
	session, ok, err := s.get(ctx, sessionID)
	if err != nil {
		return TranscriptView{}, err
	}
	if !ok {
		return TranscriptView{}, apperrors.Wrap(apperrors.CodeNotFound, "chat session not found", nil)
	}
	return TranscriptView{
		SessionID:  session.ID,
		Valid:      session.Valid,
		Transcript: session.Transcript,
		UpdatedAt:  session.UpdatedAt,
	}, nil
}

func (s *service) Reset(ctx context.Context, sessionID string) error {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "session id is required", nil)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete chat session", err)
	}
	return nil
}

// load returns the stored session or a fresh one that opens with the greeting.
func (s *service) load(ctx context.Context, sessionID string) (Session, error) {
	session, ok, err := s.get(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if ok {
		return session, nil
	}
	now := s.now().UTC()
	session = Session{
		ID:        s.newID(),
		Valid:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if greeting := strings.TrimSpace(s.cfg.Greeting); greeting != "" {
		session.Transcript = []Turn{{Role: llm.RoleModel, Text: greeting, At: now}}
	}
	s.logger.Info("chat session created", "session_id", session.ID)
	return session, nil
}

func (s *service) get(ctx context.Context, sessionID string) (Session, bool, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return Session{}, false, nil
	}
	session, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, false, apperrors.Wrap(apperrors.CodeStorage, "failed to load chat session", err)
	}
	return session, ok, nil
}

// trimHistory drops the oldest messages until the history fits the budget.
// The latest message is always kept.
func trimHistory(history []llm.Message, counter TokenCounter, budget int) []llm.Message {
	if budget <= 0 || counter == nil || len(history) == 0 {
		return history
	}
	total := 0
	start := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		n := counter.Count(history[i].Text)
		if total+n > budget && i < len(history)-1 {
			break
		}
		total += n
		start = i
	}
	// Gemini expects the history to open with a user turn.
	for start < len(history)-1 && history[start].Role != llm.RoleUser {
		start++
	}
	if start == 0 {
		return history
	}
	return append([]llm.Message(nil), history[start:]...)
}
