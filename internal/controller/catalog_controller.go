package controller

import (
	"prepos_backend/internal/repository"
	"prepos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalog *repository.CatalogCache
}

func NewCatalogController(catalog *repository.CatalogCache) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// @Summary 考试列表
// @Description 只读目录，按名称排序
// @Tags 目录
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Exam}
// @Router /api/exams [get]
func (c *CatalogController) ListExams(ctx *gin.Context) {
	exams, err := c.Catalog.ListExams(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// @Summary 考试大纲
// @Tags 目录
// @Produce json
// @Param id path string true "考试 ID"
// @Success 200 {object} util.Response{data=model.Syllabus}
// @Router /api/exams/{id} [get]
func (c *CatalogController) GetSyllabus(ctx *gin.Context) {
	syllabus, err := c.Catalog.GetSyllabus(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, syllabus)
}
