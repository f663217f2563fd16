package controller

import (
	"context"
	"net/http"
	"time"

	"prepos_backend/internal/ai"
	"prepos_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
	AI    *ai.Gateway
}

func NewHealthController(db *gorm.DB, rdb *redis.Client, gateway *ai.Gateway) *HealthController {
	return &HealthController{DB: db, Redis: rdb, AI: gateway}
}

// @Summary 健康检查
// @Description 检查服务状态。Redis 只用于目录缓存，不可用时不影响整体状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	components := gin.H{"database": "up", "redis": "disabled", "ai": "fallback"}
	if c.Redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.Redis.Ping(pingCtx).Err(); err != nil {
			components["redis"] = "down"
		} else {
			components["redis"] = "up"
		}
	}
	if c.AI.Available() {
		components["ai"] = "up"
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
