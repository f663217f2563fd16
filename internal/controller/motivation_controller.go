package controller

import (
	"prepos_backend/internal/service"
	"prepos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MotivationController struct {
	MotivationService *service.MotivationService
}

func NewMotivationController(motivationService *service.MotivationService) *MotivationController {
	return &MotivationController{MotivationService: motivationService}
}

// @Summary 获取今日激励短句
// @Description 同一天内返回同一条
// @Tags 激励短句
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/motivation [get]
func (c *MotivationController) GetDailyMotivation(ctx *gin.Context) {
	motivation, err := c.MotivationService.GetDailyMotivation()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"content": motivation})
}
