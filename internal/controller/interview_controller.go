package controller

import (
	"prepos_backend/internal/service"
	"prepos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InterviewController struct {
	InterviewService *service.InterviewService
}

func NewInterviewController(interviewService *service.InterviewService) *InterviewController {
	return &InterviewController{InterviewService: interviewService}
}

// @Summary 开始虚拟面试或追加一题
// @Description 不传 sessionId 时新建会话；传 seedQuestion 时直接使用该题作为追问
// @Tags 虚拟面试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.InterviewStartRequest true "面试设置"
// @Success 200 {object} util.Response{data=service.InterviewStartResponse}
// @Router /api/ai/interview/start [post]
func (c *InterviewController) Start(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	var req service.InterviewStartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.InterviewService.Start(ctx.Request.Context(), uid, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 评估面试回答
// @Description 写回评分并返回会话最终得分
// @Tags 虚拟面试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.InterviewEvaluateRequest true "回答"
// @Success 200 {object} util.Response{data=service.InterviewEvaluateResponse}
// @Router /api/ai/interview/evaluate [post]
func (c *InterviewController) Evaluate(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	var req service.InterviewEvaluateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.InterviewService.Evaluate(ctx.Request.Context(), uid, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 面试会话详情
// @Tags 虚拟面试
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话 ID"
// @Success 200 {object} util.Response{data=repository.SessionDetail}
// @Router /api/interviews/{id} [get]
func (c *InterviewController) GetSession(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	detail, err := c.InterviewService.GetSession(uid, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}
