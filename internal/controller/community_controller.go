package controller

import (
	"prepos_backend/internal/service"
	"prepos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	CommunityService *service.CommunityService
}

func NewCommunityController(communityService *service.CommunityService) *CommunityController {
	return &CommunityController{CommunityService: communityService}
}

// @Summary 获取社区动态
// @Description 最新的 40 条动态
// @Tags 社区
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Post}
// @Router /api/community/posts [get]
func (c *CommunityController) ListPosts(ctx *gin.Context) {
	posts, err := c.CommunityService.ListPosts()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// @Summary 发布动态
// @Description 内容 5-500 个字符，作者信息取自个人资料
// @Tags 社区
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body service.PostRequest true "帖子内容"
// @Success 201 {object} util.Response{data=model.Post}
// @Router /api/community/posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	uid, ok := currentUID(ctx)
	if !ok {
		return
	}

	var req service.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.CommunityService.CreatePost(uid, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// @Summary 经验值排行榜
// @Tags 社区
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.LeaderboardEntry}
// @Router /api/community/leaderboard [get]
func (c *CommunityController) Leaderboard(ctx *gin.Context) {
	entries, err := c.CommunityService.Leaderboard()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
