package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/config"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/controller"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/repository"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/service"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/database"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/logger"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/monitoring"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/security"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user    *repository.UserRepository
	result  *repository.ResultRepository
	roadmap *repository.RoadmapRepository
}

type services struct {
	storage        *service.StorageService
	career         *service.CareerService
	analytical     *service.AnalyticalService
	leadership     *service.LeadershipService
	problemSolving *service.ProblemSolvingService
	artistic       *service.ArtisticService
	roadmap        *service.RoadmapService
}

type controllers struct {
	user           *controller.UserController
	career         *controller.CareerController
	analytical     *controller.AnalyticalController
	leadership     *controller.LeadershipController
	problemSolving *controller.ProblemSolvingController
	artistic       *controller.ArtisticController
	result         *controller.ResultController
	roadmap        *controller.RoadmapController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 应用热更新后的配置并通知已注册的回调
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		result:  repository.NewResultRepository(db),
		roadmap: repository.NewRoadmapRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	modelClient := service.NewModelClient()

	s.storage = service.NewStorageService(cfg)
	s.career = service.NewCareerService(repos.user, rdb, cfg.Data.CareerSuggestionCSV, cfg.Data.CareerSkillCSV)
	s.analytical = service.NewAnalyticalService(modelClient, repos.result, cfg.Models.AnalyticalURL)
	s.leadership = service.NewLeadershipService(modelClient, repos.result, cfg.Models.LeadershipURL)
	s.problemSolving = service.NewProblemSolvingService(modelClient, repos.result, repos.user, cfg.Models.ProblemSolvingURL)
	s.artistic = service.NewArtisticService(modelClient, repos.result, cfg.Models.ArtisticURL)

	generator := service.NewRoadmapGenerator(cfg.AI)
	s.roadmap = service.NewRoadmapService(repos.roadmap, repos.result, repos.user, generator)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		user:           controller.NewUserController(repos.user),
		career:         controller.NewCareerController(s.career),
		analytical:     controller.NewAnalyticalController(s.analytical),
		leadership:     controller.NewLeadershipController(s.leadership),
		problemSolving: controller.NewProblemSolvingController(s.problemSolving),
		artistic:       controller.NewArtisticController(s.artistic, s.storage),
		result:         controller.NewResultController(repos.result),
		roadmap:        controller.NewRoadmapController(s.roadmap),
		health:         controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, repos, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("auraskill-platform", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
