package ai

import (
	"context"
	"sync"
	"time"

	"prepos_backend/internal/config"
	"prepos_backend/pkg/logger"
	"prepos_backend/pkg/monitoring"
	"prepos_backend/pkg/tracing"

	"go.uber.org/zap"
)

// Outcome 一次 AI 调用的结果来源
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeFallback    Outcome = "fallback"
)

// Gateway 持有当前生成器和超时，配置热更新时整体替换
type Gateway struct {
	mu        sync.RWMutex
	generator TextGenerator
	timeout   time.Duration
}

func NewGateway(generator TextGenerator, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = config.DefaultAITimeout
	}
	return &Gateway{generator: generator, timeout: timeout}
}

func (g *Gateway) Swap(generator TextGenerator, timeout time.Duration) {
	if timeout <= 0 {
		timeout = config.DefaultAITimeout
	}
	g.mu.Lock()
	g.generator = generator
	g.timeout = timeout
	g.mu.Unlock()
}

func (g *Gateway) current() (TextGenerator, time.Duration) {
	if g == nil {
		return nil, 0
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.generator, g.timeout
}

// Available 是否配置了生成器
func (g *Gateway) Available() bool {
	gen, _ := g.current()
	return gen != nil
}

// GenerateText 带超时调用生成器，失败只记录日志并由调用方决定兜底文案
func (g *Gateway) GenerateText(ctx context.Context, adapter, prompt string) (string, Outcome) {
	gen, timeout := g.current()
	if gen == nil {
		monitoring.AIRequests.WithLabelValues(adapter, string(OutcomeUnavailable)).Inc()
		return "", OutcomeUnavailable
	}

	ctx, span := tracing.StartSpan(ctx, "ai."+adapter, "")
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := gen.Generate(callCtx, prompt)
	tracing.EndSpan(span, err)
	if err != nil {
		logger.Log.Warn("AI generation failed, using fallback",
			zap.String("adapter", adapter),
			zap.String("provider", gen.Name()),
			zap.Error(err))
		monitoring.AIRequests.WithLabelValues(adapter, string(OutcomeFallback)).Inc()
		return "", OutcomeFallback
	}

	monitoring.AIRequests.WithLabelValues(adapter, string(OutcomeOK)).Inc()
	return text, OutcomeOK
}
