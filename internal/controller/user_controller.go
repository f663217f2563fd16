package controller

import (
	"prepos_backend/internal/repository"
	"prepos_backend/internal/service"
	"prepos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	ProfileService *service.ProfileService
}

func NewUserController(profileService *service.ProfileService) *UserController {
	return &UserController{ProfileService: profileService}
}

// currentUID 未认证时直接写 401
func currentUID(ctx *gin.Context) (string, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return "", false
	}
	return user.UID(), true
}

// @Summary 登录后同步资料
// @Description 首次登录创建默认资料，之后合并令牌中的姓名、邮箱和头像
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/session [post]
func (c *UserController) EnsureSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.ProfileService.EnsureProfile(repository.ProfileInput{
		UID:      claims.UID(),
		Name:     claims.Name,
		Email:    claims.Email,
		PhotoURL: claims.Picture,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 获取个人资料
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	user, err := c.ProfileService.GetProfile(uid)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 完成引导
// @Description 设置备考目标（考试或就业）、目标日期、每日学习时长和水平
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.OnboardingRequest true "目标设置"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/onboarding [post]
func (c *UserController) CompleteOnboarding(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	var req service.OnboardingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.ProfileService.CompleteOnboarding(ctx.Request.Context(), uid, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 切换目标
// @Description 未提供的字段沿用当前资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.GoalUpdateRequest true "目标设置"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/goal [put]
func (c *UserController) UpdateGoal(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	var req service.GoalUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.ProfileService.UpdateGoal(ctx.Request.Context(), uid, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 上传头像
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "头像图片"
// @Success 200 {object} util.Response
// @Router /api/user/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}

	url, err := c.ProfileService.UploadAvatar(ctx.Request.Context(), uid, file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"photoURL": url})
}
