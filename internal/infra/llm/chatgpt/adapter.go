package chatgpt

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/yanqian/diveplanner/internal/domain/llm"
	"github.com/yanqian/diveplanner/pkg/metrics"
)

// Generator adapts the client to the llm ports. Grounding requests are served
// without sources because the API has no search tool.
type Generator struct {
	client     *Client
	model      string
	imageModel string
}

// NewGenerator constructs the adapter.
func NewGenerator(client *Client, model, imageModel string) *Generator {
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	if strings.TrimSpace(imageModel) == "" {
		imageModel = "gpt-image-1"
	}
	return &Generator{client: client, model: model, imageModel: imageModel}
}

// GenerateText sends a chat completion request.
func (g *Generator) GenerateText(ctx context.Context, req llm.TextRequest) (llm.TextResult, error) {
	resp, err := g.client.CreateChatCompletion(ctx, ChatCompletionRequest{
		Model:       g.model,
		Messages:    toMessages(req),
		Temperature: req.Temperature,
	})
	if err != nil {
		return llm.TextResult{}, err
	}
	if len(resp.Choices) == 0 {
		return llm.TextResult{}, errors.New("chatgpt returned no choices")
	}
	return llm.TextResult{
		Text: strings.TrimSpace(resp.Choices[0].Message.Content),
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// GenerateImage requests one image.
func (g *Generator) GenerateImage(ctx context.Context, req llm.ImageRequest) (llm.ImageResult, error) {
	resp, err := g.client.CreateImage(ctx, ImageRequest{
		Model:  g.imageModel,
		Prompt: req.Prompt,
		N:      1,
		Size:   sizeFor(req.AspectRatio),
	})
	if err != nil {
		return llm.ImageResult{}, err
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return llm.ImageResult{}, nil
	}
	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return llm.ImageResult{}, fmt.Errorf("decode image bytes: %w", err)
	}
	return llm.ImageResult{Bytes: data, MIMEType: "image/png"}, nil
}

func toMessages(req llm.TextRequest) []Message {
	out := make([]Message, 0, len(req.Messages)+1)
	if system := strings.TrimSpace(req.System); system != "" {
		out = append(out, Message{Role: "system", Content: system})
	}
	for _, msg := range req.Messages {
		role := "user"
		if msg.Role == llm.RoleModel {
			role = "assistant"
		}
		out = append(out, Message{Role: role, Content: msg.Text})
	}
	return out
}

func sizeFor(aspectRatio string) string {
	switch aspectRatio {
	case "16:9", "4:3":
		return "1536x1024"
	case "9:16", "3:4":
		return "1024x1536"
	default:
		return "1024x1024"
	}
}

var _ llm.Generator = (*Generator)(nil)
