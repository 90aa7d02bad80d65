package tokenizer

import (
	"log/slog"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

// Counter counts tokens with a BPE encoding and falls back to an estimate
// when the encoding cannot be loaded.
type Counter struct {
	enc *tiktoken.Tiktoken
}

// New loads the named encoding. A load failure is logged and the counter
// estimates instead.
func New(encoding string, logger *slog.Logger) *Counter {
	if encoding == "" {
		encoding = defaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		if logger != nil {
			logger.Warn("tokenizer encoding unavailable, estimating token counts", "encoding", encoding, "error", err)
		}
		return &Counter{}
	}
	return &Counter{enc: enc}
}

// Count returns the token count of text.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	if c == nil || c.enc == nil {
		return Estimate(text)
	}
	return len(c.enc.Encode(text, nil, nil))
}

// Estimate approximates tokens from word and character counts.
func Estimate(text string) int {
	words := len(strings.Fields(text))
	chars := len([]rune(text))
	n := (words + chars/4) / 2
	if n == 0 && strings.TrimSpace(text) != "" {
		return 1
	}
	return n
}
