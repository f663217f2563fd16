package ai

import (
	"context"
	"fmt"
	"net/http"

	"prepos_backend/internal/config"
)

// TextGenerator 一次提示词到文本的生成调用
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// ProviderError 上游生成服务返回的错误
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewGenerator 未配置 API Key 时返回 nil，调用方走兜底内容
func NewGenerator(ctx context.Context, cfg config.AIConfig, httpClient *http.Client) (TextGenerator, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	switch cfg.Provider {
	case "openai":
		return NewOpenAIGenerator(cfg, httpClient), nil
	case "gemini", "":
		return NewGeminiGenerator(ctx, cfg, httpClient)
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}
}
