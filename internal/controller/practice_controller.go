package controller

import (
	"prepos_backend/internal/service"
	"prepos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// PracticeController 模考记录、模拟面试、DSA 清单和投递记录
type PracticeController struct {
	PracticeService *service.PracticeService
}

func NewPracticeController(practiceService *service.PracticeService) *PracticeController {
	return &PracticeController{PracticeService: practiceService}
}

// @Summary 保存模考成绩
// @Tags 练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.MockTestAttemptRequest true "模考成绩"
// @Success 201 {object} util.Response{data=model.MockTestAttempt}
// @Router /api/mock-tests [post]
func (c *PracticeController) SaveMockTest(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	var req service.MockTestAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.PracticeService.SaveMockTestAttempt(uid, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// @Summary 模考记录
// @Tags 练习
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.MockTestAttempt}
// @Router /api/mock-tests [get]
func (c *PracticeController) ListMockTests(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	attempts, err := c.PracticeService.ListMockTests(uid)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary 保存模拟面试结果
// @Tags 练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.MockInterviewRequest true "面试结果"
// @Success 201 {object} util.Response{data=model.MockInterview}
// @Router /api/mock-interviews [post]
func (c *PracticeController) SaveMockInterview(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	var req service.MockInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.PracticeService.SaveMockInterview(uid, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, record)
}

// @Summary DSA 清单
// @Description 首次访问时写入默认清单
// @Tags 练习
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.DsaTopic}
// @Router /api/dsa-topics [get]
func (c *PracticeController) ListDsaTopics(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	topics, err := c.PracticeService.ListDsaTopics(uid)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}

// @Summary 标记 DSA 清单项
// @Tags 练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "清单项 ID"
// @Param request body service.DsaToggleRequest true "完成状态"
// @Success 200 {object} util.Response{data=model.DsaTopic}
// @Router /api/dsa-topics/{id} [patch]
func (c *PracticeController) ToggleDsaTopic(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	var req service.DsaToggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.PracticeService.ToggleDsaTopic(uid, ctx.Param("id"), *req.Completed)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// @Summary 新增投递记录
// @Tags 练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CompanyApplicationRequest true "投递记录"
// @Success 201 {object} util.Response{data=model.CompanyApplication}
// @Router /api/company-applications [post]
func (c *PracticeController) CreateCompanyApplication(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	var req service.CompanyApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	app, err := c.PracticeService.CreateCompanyApplication(uid, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, app)
}

// @Summary 投递记录列表
// @Tags 练习
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.CompanyApplication}
// @Router /api/company-applications [get]
func (c *PracticeController) ListCompanyApplications(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	apps, err := c.PracticeService.ListCompanyApplications(uid)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, apps)
}
