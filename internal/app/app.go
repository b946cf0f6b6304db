package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"studentia/internal/config"
	"studentia/internal/controller"
	"studentia/internal/repository"
	"studentia/internal/service"
	"studentia/internal/util"
	"studentia/pkg/configwatcher"
	"studentia/pkg/database"
	"studentia/pkg/logger"
	"studentia/pkg/monitoring"
	"studentia/pkg/security"
	"studentia/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type services struct {
	ai       *service.AIService
	storage  *service.StorageService
	report   *service.ReportService
	quiz     *service.QuizService
	image    *service.ImageService
	sessions repository.SessionRepository
}

type controllers struct {
	quiz    *controller.QuizController
	image   *controller.ImageController
	options *controller.OptionsController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initSessionRepository(cfg *config.Config) repository.SessionRepository {
	if cfg.Session.Store == util.SessionRedis {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
			log.Fatalf("Failed to initialize redis: %v", err)
		}
		a.Redis = rdb
		return repository.NewRedisSessionRepository(rdb, cfg.Session.TTL)
	}
	return repository.NewMemorySessionRepository(cfg.Session.TTL)
}

func (a *App) initServices(cfg *config.Config, sessions repository.SessionRepository) *services {
	s := &services{sessions: sessions}

	s.ai = service.NewAIService(cfg.AI)
	s.storage = service.NewStorageService(cfg)
	s.report = service.NewReportService(service.ReportConfig{})
	s.quiz = service.NewQuizService(sessions, s.ai, service.NewPDFExtractor(), s.report, cfg.Quiz)
	s.image = service.NewImageService(s.ai, s.storage, cfg.Image)

	// 配置热更新：生成服务的地址、密钥与模型无需重启即可生效
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.ai.UpdateConfig(newCfg.AI)
	})

	return s
}

func (a *App) initControllers(s *services, cfg *config.Config) *controllers {
	return &controllers{
		quiz:    controller.NewQuizController(s.quiz, cfg.Quiz, cfg.Session),
		image:   controller.NewImageController(s.image),
		options: controller.NewOptionsController(cfg.Quiz),
		health:  controller.NewHealthController(a.Redis),
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

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.AI.APIKey == "" {
		logger.Log.Warn("No API key configured, generation requests will fail until one is set")
	}

	gin.SetMode(cfg.Server.Mode)

	app := &App{Config: cfg}

	sessions := app.initSessionRepository(cfg)
	services := app.initServices(cfg, sessions)
	app.services = services
	controllers := app.initControllers(services, cfg)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("studentia", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) watchConfig(ctx context.Context) {
	if a.Config.ConfigPath == "" {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(ctx, a.Config.ConfigPath, func(newCfg *config.Config) {
			for _, callback := range a.configCallbacks {
				callback(newCfg)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	a.watchConfig(watchCtx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
