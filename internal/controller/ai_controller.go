package controller

import (
	"prepos_backend/internal/service"
	"prepos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AIController AI 建议接口，模型不可用时返回兜底内容而不是错误
type AIController struct {
	AdvisorService *service.AdvisorService
}

func NewAIController(advisorService *service.AdvisorService) *AIController {
	return &AIController{AdvisorService: advisorService}
}

// @Summary 考试学习建议
// @Description 免费用户每天生成一次，之后返回当天已生成的建议（limited=true）
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.RecommendationRequest true "当前学习情况"
// @Success 200 {object} util.Response{data=service.RecommendationResponse}
// @Router /api/ai/recommendation [post]
func (c *AIController) Recommendation(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	var req service.RecommendationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AdvisorService.Recommendation(ctx.Request.Context(), uid, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 就业导师建议
// @Description 仅就业模式可用，配额规则同考试学习建议
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PlacementMentorRequest true "求职情况"
// @Success 200 {object} util.Response{data=service.PlacementMentorResponse}
// @Router /api/ai/placement [post]
func (c *AIController) PlacementMentor(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	var req service.PlacementMentorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AdvisorService.PlacementMentor(ctx.Request.Context(), uid, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 生成模考题目
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.MockTestRequest true "考试与科目"
// @Success 200 {object} util.Response{data=service.MockTestResponse}
// @Router /api/ai/mock-test [post]
func (c *AIController) MockTest(ctx *gin.Context) {
	if _, ok := currentUID(ctx); !ok {
		return
	}

	var req service.MockTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AdvisorService.GenerateMockTest(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 评估模拟面试回答
// @Description 只返回评分，保存结果请调用 POST /api/mock-interviews
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.MockInterviewEvalRequest true "面试回答"
// @Success 200 {object} util.Response{data=service.MockInterviewEvaluation}
// @Router /api/ai/mock-interview [post]
func (c *AIController) MockInterview(ctx *gin.Context) {
	if _, ok := currentUID(ctx); !ok {
		return
	}

	var req service.MockInterviewEvalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AdvisorService.EvaluateMockInterview(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary MindWell 对话
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.MindWellRequest true "用户消息"
// @Success 200 {object} util.Response{data=service.MindWellResponse}
// @Router /api/ai/mindwell [post]
func (c *AIController) MindWell(ctx *gin.Context) {
	if _, ok := currentUID(ctx); !ok {
		return
	}

	var req service.MindWellRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AdvisorService.MindWell(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
