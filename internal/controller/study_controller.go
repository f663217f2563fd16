package controller

import (
	"prepos_backend/internal/service"
	"prepos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudyController struct {
	StudyService *service.StudyService
}

func NewStudyController(studyService *service.StudyService) *StudyController {
	return &StudyController{StudyService: studyService}
}

// @Summary 记录学习时长
// @Description 追加一条学习记录并更新连续天数和经验值
// @Tags 学习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.StudySessionRequest true "学习记录"
// @Success 201 {object} util.Response{data=service.StudySessionResult}
// @Router /api/study-sessions [post]
func (c *StudyController) LogSession(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	var req service.StudySessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.StudyService.LogSession(ctx.Request.Context(), uid, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// @Summary 学习记录列表
// @Tags 学习
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.StudySession}
// @Router /api/study-sessions [get]
func (c *StudyController) ListSessions(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	sessions, err := c.StudyService.ListSessions(uid)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}
