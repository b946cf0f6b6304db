package app

import (
	"studentia/docs"
	"studentia/internal/config"
	"studentia/pkg/monitoring"
	"studentia/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/options", c.options.List)

		a.registerQuizRoutes(api, c, cfg)
		a.registerImageRoutes(api, c)
	}
}

func (a *App) registerQuizRoutes(api *gin.RouterGroup, c *controllers, cfg *config.Config) {
	quizzes := api.Group("/quizzes")
	{
		quizzes.POST("", security.BodyLimit(multipartLimit(cfg.Quiz.MaxUploadBytes)), c.quiz.Generate)
		quizzes.GET("/:id", c.quiz.Get)
		quizzes.DELETE("/:id", c.quiz.Delete)
		quizzes.PUT("/:id/answers", c.quiz.SetAnswers)
		quizzes.POST("/:id/submit", c.quiz.Submit)
		quizzes.GET("/:id/result", c.quiz.Result)
		quizzes.GET("/:id/report", c.quiz.Report)
	}
}

func (a *App) registerImageRoutes(api *gin.RouterGroup, c *controllers) {
	images := api.Group("/images")
	{
		images.POST("", c.image.Generate)
	}
}

// multipartLimit 在文件大小上限之外为表单字段和分隔符预留空间
func multipartLimit(maxUpload int64) int64 {
	if maxUpload <= 0 {
		return 0
	}
	return maxUpload + 1<<20
}
