package ai

import (
	"context"
	"net/http"
	"strings"

	"prepos_backend/internal/config"

	"google.golang.org/genai"
)

type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, cfg config.AIConfig, httpClient *http.Client) (*GeminiGenerator, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: "v1beta",
		}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, &ProviderError{Provider: "gemini", Message: "failed to create client", Err: err}
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultAIModel
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Name() string {
	return "gemini"
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Message: "generate content failed", Err: err}
	}
	if result == nil {
		return "", &ProviderError{Provider: "gemini", Message: "no response generated"}
	}

	text, err := result.Text()
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Message: "failed to extract response text", Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ProviderError{Provider: "gemini", Message: "empty response generated"}
	}
	return text, nil
}
