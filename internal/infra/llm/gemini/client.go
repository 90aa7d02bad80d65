package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yanqian/diveplanner/internal/domain/llm"
	"github.com/yanqian/diveplanner/pkg/metrics"
)

const (
	defaultTextModel  = "gemini-2.5-flash"
	defaultImageModel = "imagen-4.0-generate-001"
)

// models is the subset of genai.Models used by the adapter.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// Client implements llm.Generator on top of the Gemini API.
type Client struct {
	models     models
	textModel  string
	imageModel string
}

// NewClient builds a Gemini client for the developer API.
func NewClient(ctx context.Context, apiKey, textModel, imageModel string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newClient(client.Models, textModel, imageModel), nil
}

func newClient(m models, textModel, imageModel string) *Client {
	if strings.TrimSpace(textModel) == "" {
		textModel = defaultTextModel
	}
	if strings.TrimSpace(imageModel) == "" {
		imageModel = defaultImageModel
	}
	return &Client{models: m, textModel: textModel, imageModel: imageModel}
}

// GenerateText calls GenerateContent with optional search and maps grounding.
func (c *Client) GenerateText(ctx context.Context, req llm.TextRequest) (llm.TextResult, error) {
	resp, err := c.models.GenerateContent(ctx, c.textModel, toContents(req.Messages), buildConfig(req))
	if err != nil {
		return llm.TextResult{}, fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil {
		return llm.TextResult{}, errors.New("gemini returned an empty response")
	}
	return llm.TextResult{
		Text:    strings.TrimSpace(resp.Text()),
		Sources: sourcesFromResponse(resp),
		Usage:   usageFromResponse(resp),
	}, nil
}

// GenerateImage requests a single image.
func (c *Client) GenerateImage(ctx context.Context, req llm.ImageRequest) (llm.ImageResult, error) {
	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	resp, err := c.models.GenerateImages(ctx, c.imageModel, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: mimeType,
		AspectRatio:    req.AspectRatio,
	})
	if err != nil {
		return llm.ImageResult{}, fmt.Errorf("gemini generate images: %w", err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return llm.ImageResult{}, nil
	}
	image := resp.GeneratedImages[0].Image
	if image == nil {
		return llm.ImageResult{}, nil
	}
	if image.MIMEType != "" {
		mimeType = image.MIMEType
	}
	return llm.ImageResult{Bytes: image.ImageBytes, MIMEType: mimeType}, nil
}

func toContents(messages []llm.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		var role genai.Role = genai.RoleUser
		if msg.Role == llm.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Text, role))
	}
	return contents
}

func buildConfig(req llm.TextRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if system := strings.TrimSpace(req.System); system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(req.Temperature)
	}
	g := req.Grounding
	if g == nil {
		return cfg
	}
	if g.Search {
		cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}
	if g.Maps {
		cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleMaps: &genai.GoogleMaps{}})
	}
	if g.Location != nil {
		cfg.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(g.Location.Latitude),
					Longitude: genai.Ptr(g.Location.Longitude),
				},
			},
		}
	}
	return cfg
}

func sourcesFromResponse(resp *genai.GenerateContentResponse) []llm.Source {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []llm.Source
	seen := make(map[string]struct{})
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		var src llm.Source
		switch {
		case chunk.Web != nil && chunk.Web.URI != "":
			src = llm.Source{Kind: llm.SourceWeb, URI: chunk.Web.URI, Title: chunk.Web.Title}
		case chunk.Maps != nil && chunk.Maps.URI != "":
			src = llm.Source{Kind: llm.SourceMaps, URI: chunk.Maps.URI, Title: chunk.Maps.Title}
		default:
			continue
		}
		if _, dup := seen[src.URI]; dup {
			continue
		}
		seen[src.URI] = struct{}{}
		sources = append(sources, src)
	}
	return sources
}

func usageFromResponse(resp *genai.GenerateContentResponse) metrics.TokenUsage {
	if resp.UsageMetadata == nil {
		return metrics.TokenUsage{}
	}
	return metrics.TokenUsage{
		PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
		CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
	}
}

var _ llm.Generator = (*Client)(nil)
