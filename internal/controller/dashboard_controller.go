package controller

import (
	"prepos_backend/internal/service"
	"prepos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// @Summary 获取仪表盘
// @Description 按当前目标返回考试或就业仪表盘，并刷新准备度
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	dashboard, err := c.DashboardService.GetDashboard(ctx.Request.Context(), uid)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// @Summary 考试仪表盘
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ExamDashboard}
// @Router /api/dashboard/exam [get]
func (c *DashboardController) GetExamDashboard(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	dashboard, err := c.DashboardService.GetExamDashboard(ctx.Request.Context(), uid)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// @Summary 就业仪表盘
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.PlacementDashboard}
// @Router /api/dashboard/placement [get]
func (c *DashboardController) GetPlacementDashboard(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	dashboard, err := c.DashboardService.GetPlacementDashboard(ctx.Request.Context(), uid)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}
