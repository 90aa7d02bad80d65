package chatgpt

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/diveplanner/internal/domain/llm"
)

func TestGenerateTextMapsRoles(t *testing.T) {
	var captured ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Hola buzo  "}}],"usage":{"prompt_tokens":7,"completion_tokens":3,"total_tokens":10}}`))
	}))
	defer server.Close()

	client, err := NewClient("key", server.URL)
	require.NoError(t, err)
	gen := NewGenerator(client, "gpt-test", "")

	res, err := gen.GenerateText(context.Background(), llm.TextRequest{
		System: "Eres DiveBot",
		Messages: []llm.Message{
			{Role: llm.RoleUser, Text: "hola"},
			{Role: llm.RoleModel, Text: "¡Hola!"},
			{Role: llm.RoleUser, Text: "¿nitrox?"},
		},
		Temperature: 0.3,
	})
	require.NoError(t, err)
	require.Equal(t, "Hola buzo", res.Text)
	require.Equal(t, 10, res.Usage.TotalTokens)
	require.Empty(t, res.Sources)

	require.Equal(t, "gpt-test", captured.Model)
	require.Equal(t, []Message{
		{Role: "system", Content: "Eres DiveBot"},
		{Role: "user", Content: "hola"},
		{Role: "assistant", Content: "¡Hola!"},
		{Role: "user", Content: "¿nitrox?"},
	}, captured.Messages)
}

func TestGenerateTextUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient("key", server.URL)
	require.NoError(t, err)

	_, err = NewGenerator(client, "", "").GenerateText(context.Background(), llm.UserPrompt("", "hola", 0))
	require.ErrorContains(t, err, "status=429")
}

func TestGenerateImageDecodesBase64(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ImageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "1536x1024", req.Size)
		require.Equal(t, "b64_json", req.ResponseFormat)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(payload)}},
		})
	}))
	defer server.Close()

	client, err := NewClient("key", server.URL)
	require.NoError(t, err)

	res, err := NewGenerator(client, "", "").GenerateImage(context.Background(), llm.ImageRequest{Prompt: "pulpo", AspectRatio: "16:9"})
	require.NoError(t, err)
	require.Equal(t, payload, res.Bytes)
	require.Equal(t, "image/png", res.MIMEType)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(" ", "")
	require.Error(t, err)
}
