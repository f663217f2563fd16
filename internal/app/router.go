package app

import (
	"prepos_backend/docs"
	"prepos_backend/internal/config"
	"prepos_backend/internal/middleware"
	"prepos_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer))
	{
		a.registerProfileRoutes(authGroup, c)
		a.registerProgressRoutes(authGroup, c)
		a.registerCommunityRoutes(authGroup, c)
		a.registerAIRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/exams", c.catalog.ListExams)
		public.GET("/exams/:id", c.catalog.GetSyllabus)
		public.GET("/motivation", c.motivation.GetDailyMotivation)
	}
}

func (a *App) registerProfileRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/session", c.user.EnsureSession)
	rg.GET("/profile", c.user.GetProfile)
	rg.POST("/onboarding", c.user.CompleteOnboarding)
	rg.PUT("/goal", c.user.UpdateGoal)
	rg.POST("/user/avatar", c.user.UploadAvatar)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("", c.dashboard.GetDashboard)
		dashboard.GET("/exam", c.dashboard.GetExamDashboard)
		dashboard.GET("/placement", c.dashboard.GetPlacementDashboard)
	}
}

// registerProgressRoutes 学习记录与练习
func (a *App) registerProgressRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/study-sessions", c.study.LogSession)
	rg.GET("/study-sessions", c.study.ListSessions)

	rg.POST("/mock-tests", c.practice.SaveMockTest)
	rg.GET("/mock-tests", c.practice.ListMockTests)
	rg.POST("/mock-interviews", c.practice.SaveMockInterview)

	rg.GET("/dsa-topics", c.practice.ListDsaTopics)
	rg.PATCH("/dsa-topics/:id", c.practice.ToggleDsaTopic)

	rg.POST("/company-applications", c.practice.CreateCompanyApplication)
	rg.GET("/company-applications", c.practice.ListCompanyApplications)

	rg.GET("/interviews/:id", c.interview.GetSession)
}

func (a *App) registerCommunityRoutes(rg *gin.RouterGroup, c *controllers) {
	community := rg.Group("/community")
	{
		community.GET("/posts", c.community.ListPosts)
		community.POST("/posts", c.community.CreatePost)
		community.GET("/leaderboard", c.community.Leaderboard)
	}
}

func (a *App) registerAIRoutes(rg *gin.RouterGroup, c *controllers) {
	aiGroup := rg.Group("/ai")
	{
		aiGroup.POST("/recommendation", c.ai.Recommendation)
		aiGroup.POST("/placement", c.ai.PlacementMentor)
		aiGroup.POST("/mock-test", c.ai.MockTest)
		aiGroup.POST("/mock-interview", c.ai.MockInterview)
		aiGroup.POST("/mindwell", c.ai.MindWell)
		aiGroup.POST("/interview/start", c.interview.Start)
		aiGroup.POST("/interview/evaluate", c.interview.Evaluate)
	}
}
