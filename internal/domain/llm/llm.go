package llm

import (
	"context"

	"github.com/yanqian/diveplanner/pkg/metrics"
)

// Roles used in conversation history.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is a single conversation turn sent to the model.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// LatLng is a geographic hint for grounded lookups.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Grounding enables search backed answers.
type Grounding struct {
	Search   bool
	Maps     bool
	Location *LatLng
}

// TextRequest asks the model for a text completion.
type TextRequest struct {
	System      string
	Messages    []Message
	Temperature float32
	Grounding   *Grounding
}

// Source is a grounding reference returned with an answer.
type Source struct {
	Kind  string `json:"kind"`
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Source kinds.
const (
	SourceWeb  = "web"
	SourceMaps = "maps"
)

// TextResult is the model answer.
type TextResult struct {
	Text    string
	Sources []Source
	Usage   metrics.TokenUsage
}

// ImageRequest asks for a single generated image.
type ImageRequest struct {
	Prompt      string
	AspectRatio string
	MIMEType    string
}

// ImageResult carries the raw image bytes.
type ImageResult struct {
	Bytes    []byte
	MIMEType string
}

// TextGenerator produces text completions.
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (TextResult, error)
}

// ImageGenerator produces images from a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (ImageResult, error)
}

// Generator is implemented by provider adapters that support both modalities.
type Generator interface {
	TextGenerator
	ImageGenerator
}

// UserPrompt builds the common single-turn request.
func UserPrompt(system, prompt string, temperature float32) TextRequest {
	return TextRequest{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Text: prompt}},
		Temperature: temperature,
	}
}
