package app

import (
	"github.com/Senil-d/auraskill-career-guidance-platform/docs"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/config"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/middleware"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/career/suggest", c.career.Suggest)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		// 用户档案
		authGroup.GET("/profile", c.user.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)

		// 职业选定
		authGroup.POST("/career/choose", c.career.Choose)

		// 分析能力测评
		analytical := authGroup.Group("/analytical")
		{
			analytical.POST("/start-quiz", c.analytical.StartQuiz)
			analytical.POST("/submit-answer", c.analytical.SubmitAnswer)
			analytical.POST("/evaluate", c.analytical.Evaluate)
			analytical.GET("/sessions", c.analytical.ActiveSessions)
		}

		// 领导力测评
		leadership := authGroup.Group("/leadership")
		{
			leadership.POST("/start", c.leadership.Start)
			leadership.POST("/answer", c.leadership.Answer)
			leadership.GET("/summary", c.leadership.Summary)
		}

		// 问题解决测评
		problemSolving := authGroup.Group("/problem-solving")
		{
			problemSolving.POST("/start", c.problemSolving.StartQuiz)
			problemSolving.POST("/answer", c.problemSolving.SubmitAnswer)
			problemSolving.POST("/save-result", c.problemSolving.SaveResult)
		}

		// 艺术测评
		artistic := authGroup.Group("/artistic")
		{
			artistic.POST("/classify", c.artistic.ClassifyCV)
			artistic.POST("/save-result", c.artistic.SaveResult)
			artistic.GET("/result", c.artistic.GetResult)
			artistic.POST("/portfolio", c.artistic.UploadPortfolio)
		}

		// 评估结果
		results := authGroup.Group("/results")
		{
			results.GET("", c.result.GetAll)
			results.GET("/:skill", c.result.GetOne)
			results.GET("/:skill/history", c.result.GetHistory)
		}

		// 学习路线图
		roadmap := authGroup.Group("/roadmap")
		{
			roadmap.POST("/generate", c.roadmap.Generate)
			roadmap.GET("/", c.roadmap.GetAll)
			roadmap.GET("/:skill", c.roadmap.GetOne)
			roadmap.PATCH("/:skill/:stageIndex/progress", c.roadmap.UpdateProgress)
		}
	}
}
