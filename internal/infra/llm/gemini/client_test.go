package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/yanqian/diveplanner/internal/domain/llm"
)

type stubModels struct {
	contentResp *genai.GenerateContentResponse
	imageResp   *genai.GenerateImagesResponse
	err         error

	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
	lastPrompt   string
	lastImageCfg *genai.GenerateImagesConfig
}

func (s *stubModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.lastModel = model
	s.lastContents = contents
	s.lastConfig = config
	return s.contentResp, s.err
}

func (s *stubModels) GenerateImages(_ context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	s.lastModel = model
	s.lastPrompt = prompt
	s.lastImageCfg = config
	return s.imageResp, s.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}

func TestBuildConfigWithoutGrounding(t *testing.T) {
	cfg := buildConfig(llm.TextRequest{System: "Eres DiveBot", Temperature: 0.7})
	require.NotNil(t, cfg.SystemInstruction)
	require.Equal(t, "Eres DiveBot", cfg.SystemInstruction.Parts[0].Text)
	require.NotNil(t, cfg.Temperature)
	require.InDelta(t, 0.7, *cfg.Temperature, 1e-6)
	require.Empty(t, cfg.Tools)
	require.Nil(t, cfg.ToolConfig)
}

func TestBuildConfigWithGrounding(t *testing.T) {
	cfg := buildConfig(llm.TextRequest{
		Grounding: &llm.Grounding{
			Search:   true,
			Maps:     true,
			Location: &llm.LatLng{Latitude: 20.5, Longitude: -87.1},
		},
	})
	require.Nil(t, cfg.SystemInstruction)
	require.Nil(t, cfg.Temperature)
	require.Len(t, cfg.Tools, 2)
	require.NotNil(t, cfg.Tools[0].GoogleSearch)
	require.NotNil(t, cfg.Tools[1].GoogleMaps)
	require.NotNil(t, cfg.ToolConfig)
	require.InDelta(t, 20.5, *cfg.ToolConfig.RetrievalConfig.LatLng.Latitude, 1e-9)
	require.InDelta(t, -87.1, *cfg.ToolConfig.RetrievalConfig.LatLng.Longitude, 1e-9)
}

func TestToContentsMapsRoles(t *testing.T) {
	contents := toContents([]llm.Message{
		{Role: llm.RoleUser, Text: "hola"},
		{Role: llm.RoleModel, Text: "¡Hola!"},
	})
	require.Len(t, contents, 2)
	require.Equal(t, string(genai.RoleUser), contents[0].Role)
	require.Equal(t, string(genai.RoleModel), contents[1].Role)
	require.Equal(t, "¡Hola!", contents[1].Parts[0].Text)
}

func TestSourcesFromResponseDedupes(t *testing.T) {
	resp := textResponse("info")
	resp.Candidates[0].GroundingMetadata = &genai.GroundingMetadata{
		GroundingChunks: []*genai.GroundingChunk{
			{Web: &genai.GroundingChunkWeb{URI: "https://a.example", Title: "A"}},
			{Web: &genai.GroundingChunkWeb{URI: "https://a.example", Title: "A again"}},
			{Maps: &genai.GroundingChunkMaps{URI: "https://maps.example/1", Title: "Cenote"}},
			{},
			nil,
		},
	}
	require.Equal(t, []llm.Source{
		{Kind: llm.SourceWeb, URI: "https://a.example", Title: "A"},
		{Kind: llm.SourceMaps, URI: "https://maps.example/1", Title: "Cenote"},
	}, sourcesFromResponse(resp))
	require.Nil(t, sourcesFromResponse(textResponse("plain")))
}

func TestGenerateText(t *testing.T) {
	resp := textResponse("  Respuesta  ")
	resp.UsageMetadata = &genai.GenerateContentResponseUsageMetadata{
		PromptTokenCount:     12,
		CandidatesTokenCount: 8,
		TotalTokenCount:      20,
	}
	stub := &stubModels{contentResp: resp}
	client := newClient(stub, "", "")

	res, err := client.GenerateText(context.Background(), llm.UserPrompt("sys", "pregunta", 0))
	require.NoError(t, err)
	require.Equal(t, "Respuesta", res.Text)
	require.Equal(t, 20, res.Usage.TotalTokens)
	require.Equal(t, defaultTextModel, stub.lastModel)
	require.Len(t, stub.lastContents, 1)
}

func TestGenerateTextError(t *testing.T) {
	client := newClient(&stubModels{err: errors.New("boom")}, "m", "")
	_, err := client.GenerateText(context.Background(), llm.UserPrompt("", "x", 0))
	require.ErrorContains(t, err, "boom")
}

func TestGenerateImage(t *testing.T) {
	stub := &stubModels{imageResp: &genai.GenerateImagesResponse{
		GeneratedImages: []*genai.GeneratedImage{{Image: &genai.Image{ImageBytes: []byte{1, 2, 3}}}},
	}}
	client := newClient(stub, "", "")

	res, err := client.GenerateImage(context.Background(), llm.ImageRequest{Prompt: "manta", AspectRatio: "16:9"})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, res.Bytes)
	require.Equal(t, "image/jpeg", res.MIMEType)
	require.Equal(t, defaultImageModel, stub.lastModel)
	require.Equal(t, "manta", stub.lastPrompt)
	require.Equal(t, "16:9", stub.lastImageCfg.AspectRatio)
	require.Equal(t, int32(1), stub.lastImageCfg.NumberOfImages)
}

func TestGenerateImageEmpty(t *testing.T) {
	client := newClient(&stubModels{imageResp: &genai.GenerateImagesResponse{}}, "", "")
	res, err := client.GenerateImage(context.Background(), llm.ImageRequest{Prompt: "x"})
	require.NoError(t, err)
	require.Empty(t, res.Bytes)
}
