package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"prepos_backend/internal/ai"
	"prepos_backend/internal/config"
	"prepos_backend/internal/controller"
	"prepos_backend/internal/repository"
	"prepos_backend/internal/service"
	"prepos_backend/pkg/configwatcher"
	"prepos_backend/pkg/database"
	"prepos_backend/pkg/logger"
	"prepos_backend/pkg/monitoring"
	"prepos_backend/pkg/security"
	"prepos_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	ConfigDir string
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client
	AI        *ai.Gateway
	Planner   *repository.QueryPlanner

	scheduler       *cron.Cron
	tracer          *sdktrace.TracerProvider
	stopWatch       context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	catalog       *repository.CatalogCache
	session       *repository.StudySessionRepository
	mockTest      *repository.MockTestRepository
	mockInterview *repository.MockInterviewRepository
	companyApp    *repository.CompanyApplicationRepository
	dsaTopic      *repository.DsaTopicRepository
	interview     *repository.InterviewRepository
	post          *repository.PostRepository
	motivation    *repository.MotivationRepository
}

type services struct {
	calendar   *service.Calendar
	storage    *service.StorageService
	profile    *service.ProfileService
	dashboard  *service.DashboardService
	study      *service.StudyService
	practice   *service.PracticeService
	community  *service.CommunityService
	motivation *service.MotivationService
	interview  *service.InterviewService
	advisor    *service.AdvisorService
}

type controllers struct {
	user       *controller.UserController
	dashboard  *controller.DashboardController
	study      *controller.StudyController
	practice   *controller.PracticeController
	community  *controller.CommunityController
	motivation *controller.MotivationController
	interview  *controller.InterviewController
	ai         *controller.AIController
	catalog    *controller.CatalogController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	catalogTTL := time.Duration(cfg.Redis.CatalogTTLMinutes) * time.Minute
	return &repositories{
		user:          repository.NewUserRepository(db),
		catalog:       repository.NewCatalogCache(repository.NewCatalogRepository(db), rdb, catalogTTL),
		session:       repository.NewStudySessionRepository(db, a.Planner),
		mockTest:      repository.NewMockTestRepository(db, a.Planner),
		mockInterview: repository.NewMockInterviewRepository(db, a.Planner),
		companyApp:    repository.NewCompanyApplicationRepository(db, a.Planner),
		dsaTopic:      repository.NewDsaTopicRepository(db),
		interview:     repository.NewInterviewRepository(db, a.Planner),
		post:          repository.NewPostRepository(db),
		motivation:    repository.NewMotivationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.calendar = service.NewCalendar(cfg.Server.Location())
	s.storage = service.NewStorageService(cfg.Storage)
	s.profile = service.NewProfileService(repos.user, repos.catalog, s.storage, s.calendar)
	s.dashboard = service.NewDashboardService(
		repos.user,
		repos.catalog,
		repos.session,
		repos.mockTest,
		repos.mockInterview,
		repos.companyApp,
		repos.dsaTopic,
		repos.interview,
		s.calendar,
	)
	s.study = service.NewStudyService(repos.user, repos.session, s.calendar)
	s.practice = service.NewPracticeService(repos.mockTest, repos.mockInterview, repos.dsaTopic, repos.companyApp)
	s.community = service.NewCommunityService(repos.post, repos.user)
	s.motivation = service.NewMotivationService(repos.motivation, s.calendar)
	s.interview = service.NewInterviewService(repos.interview, s.dashboard, a.AI)
	s.advisor = service.NewAdvisorService(repos.user, a.AI, s.calendar)

	return s
}

func (a *App) initControllers(s *services, repos *repositories) *controllers {
	return &controllers{
		user:       controller.NewUserController(s.profile),
		dashboard:  controller.NewDashboardController(s.dashboard),
		study:      controller.NewStudyController(s.study),
		practice:   controller.NewPracticeController(s.practice),
		community:  controller.NewCommunityController(s.community),
		motivation: controller.NewMotivationController(s.motivation),
		interview:  controller.NewInterviewController(s.interview),
		ai:         controller.NewAIController(s.advisor),
		catalog:    controller.NewCatalogController(repos.catalog),
		health:     controller.NewHealthController(a.DB, a.Redis, a.AI),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// newAIGateway 未配置 API Key 或初始化失败时所有 AI 接口走兜底内容
func newAIGateway(cfg config.AIConfig) *ai.Gateway {
	gen, err := ai.NewGenerator(context.Background(), cfg, &http.Client{})
	if err != nil {
		logger.Log.Warn("AI generator unavailable, using fallbacks", zap.String("provider", cfg.Provider), zap.Error(err))
		gen = nil
	}
	if gen == nil {
		logger.Log.Info("AI disabled, all advisory endpoints return fallback content")
	} else {
		logger.Log.Info("AI generator ready", zap.String("provider", gen.Name()), zap.String("model", cfg.Model))
	}
	return ai.NewGateway(gen, cfg.Timeout())
}

// build 组装仓储、服务、控制器和路由，DB/Redis 由调用方提供
func build(cfg *config.Config, db *gorm.DB, rdb *redis.Client, gateway *ai.Gateway) *App {
	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		AI:      gateway,
		Planner: repository.NewQueryPlanner(db),
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, repos)

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}
	return app
}

func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 目录缓存可选，连接失败时直接读库
		logger.Log.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		rdb = nil
	}

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := build(cfg, db, rdb, newAIGateway(cfg.AI))
	app.ConfigDir = configDir

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.RegisterConfigCallback(app.applyConfig)
	app.startBackgroundTasks()

	return app
}

// applyConfig 热更新只切换 AI 模型、超时和日志级别，其余配置需重启生效
func (a *App) applyConfig(newCfg *config.Config) {
	logger.SetMode(newCfg.Server.Mode)

	gen, err := ai.NewGenerator(context.Background(), newCfg.AI, &http.Client{})
	if err != nil {
		logger.Log.Warn("AI generator reload failed, keeping previous generator", zap.Error(err))
		return
	}
	a.AI.Swap(gen, newCfg.AI.Timeout())
	logger.Log.Info("AI settings reloaded",
		zap.String("provider", newCfg.AI.Provider),
		zap.String("model", newCfg.AI.Model),
		zap.Bool("enabled", gen != nil))
}

func (a *App) startBackgroundTasks() {
	if schedule := a.Config.Jobs.QueryPlanRefresh; schedule != "" {
		a.scheduler = cron.New()
		_, err := a.scheduler.AddFunc(schedule, func() {
			a.Planner.Probe()
			logger.Log.Debug("Query plans refreshed")
		})
		if err != nil {
			logger.Log.Error("Invalid query plan refresh schedule", zap.String("schedule", schedule), zap.Error(err))
		} else {
			a.scheduler.Start()
		}
	}

	if a.ConfigDir != "" {
		ctx, cancel := context.WithCancel(context.Background())
		a.stopWatch = cancel
		configFile := filepath.Join(a.ConfigDir, "config.yaml")
		go func() {
			err := configwatcher.WatchConfig(ctx, configFile, configwatcher.DefaultDebounce, func(newCfg *config.Config) {
				for _, callback := range a.configCallbacks {
					callback(newCfg)
				}
			})
			if err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Info("Server exiting")
}
