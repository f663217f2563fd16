package ai

import (
	"context"
	"encoding/json"

	"prepos_backend/pkg/logger"
	"prepos_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// Request 期望模型返回 JSON 对象的一次调用
type Request[T any] struct {
	Adapter  string
	Prompt   string
	Fallback T
	// Merge 为 true 时模型字段覆盖在 Fallback 上，缺失字段保留兜底值。
	// 只适用于不含切片和指针的结构体
	Merge    bool
	Validate func(*T) error
}

// Complete 调用模型并解析 JSON，任何失败都返回 Fallback
func Complete[T any](ctx context.Context, gw *Gateway, req Request[T]) (T, Outcome) {
	text, outcome := gw.GenerateText(ctx, req.Adapter, req.Prompt)
	if outcome != OutcomeOK {
		return req.Fallback, outcome
	}

	raw, err := ExtractJSON(text)
	if err != nil {
		return parseFailed(req, err)
	}

	var out T
	if req.Merge {
		out = req.Fallback
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return parseFailed(req, err)
	}
	if req.Validate != nil {
		if err := req.Validate(&out); err != nil {
			return parseFailed(req, err)
		}
	}
	return out, OutcomeOK
}

func parseFailed[T any](req Request[T], err error) (T, Outcome) {
	logger.Log.Warn("AI response rejected, using fallback",
		zap.String("adapter", req.Adapter),
		zap.Error(err))
	monitoring.AIRequests.WithLabelValues(req.Adapter, "rejected").Inc()
	return req.Fallback, OutcomeFallback
}
