package chat

import (
	"context"
	"time"

	"github.com/yanqian/diveplanner/internal/domain/llm"
	"github.com/yanqian/diveplanner/pkg/metrics"
)

// Config configures the DiveBot conversation.
type Config struct {
	SystemPrompt     string
	Greeting         string
	Apology          string
	Temperature      float32
	MaxHistoryTokens int
	SessionTTL       time.Duration
}

// Turn is a transcript entry shown to the user.
type Turn struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Session holds one conversation. History is what the model sees; Transcript
// is what the user sees and survives invalidation.
type Session struct {
	ID         string        `json:"id"`
	History    []llm.Message `json:"history"`
	Transcript []Turn        `json:"transcript"`
	Valid      bool          `json:"valid"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// SendRequest is a user message for a session. A blank or unknown SessionID
// starts a new session.
type SendRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// SendResponse carries the model reply.
type SendResponse struct {
	SessionID  string              `json:"sessionId"`
	Reply      string              `json:"reply"`
	Transcript []Turn              `json:"transcript"`
	Recreated  bool                `json:"recreated,omitempty"`
	TokenUsage *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// TranscriptView is the public view of a session.
type TranscriptView struct {
	SessionID  string    `json:"sessionId"`
	Valid      bool      `json:"valid"`
	Transcript []Turn    `json:"transcript"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SessionStore persists sessions.
type SessionStore interface {
	Get(ctx context.Context, id string) (Session, bool, error)
	Save(ctx context.Context, session Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// TokenCounter measures history size.
type TokenCounter interface {
	Count(text string) int
}
