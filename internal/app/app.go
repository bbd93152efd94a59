package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/controller"
	"edu_platform_backend/internal/repository"
	"edu_platform_backend/internal/schema"
	"edu_platform_backend/internal/service"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/configwatcher"
	"edu_platform_backend/pkg/database"
	"edu_platform_backend/pkg/logger"
	"edu_platform_backend/pkg/monitoring"
	"edu_platform_backend/pkg/security"
	"edu_platform_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Edu    *config.EducationStore
	Live   *service.LiveHub

	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	learningPath  *repository.LearningPathRepository
	module        *repository.ModuleRepository
	lesson        *repository.LessonRepository
	lab           *repository.LabRepository
	certification *repository.CertificationRepository
	assessment    *repository.AssessmentRepository
	progress      *repository.ProgressRepository
	enrollment    *repository.EnrollmentRepository
	scenario      *repository.ScenarioRepository
	knowledgeBase *repository.KnowledgeBaseRepository
	forum         *repository.ForumRepository
	instructor    *repository.InstructorRepository
	statistics    *repository.StatisticsRepository
}

type services struct {
	storage       *service.StorageService
	cache         *service.PathCache
	evaluator     *service.CompletionEvaluator
	learningPath  *service.LearningPathService
	content       *service.ContentService
	progress      *service.ProgressService
	assessment    *service.AssessmentService
	enrollment    *service.EnrollmentService
	scenario      *service.ScenarioService
	knowledgeBase *service.KnowledgeBaseService
	forum         *service.ForumService
	instructor    *service.InstructorService
	statistics    *service.StatisticsService
}

type controllers struct {
	learningPath  *controller.LearningPathController
	content       *controller.ContentController
	assessment    *controller.AssessmentController
	progress      *controller.ProgressController
	enrollment    *controller.EnrollmentController
	scenario      *controller.ScenarioController
	knowledgeBase *controller.KnowledgeBaseController
	forum         *controller.ForumController
	instructor    *controller.InstructorController
	statistics    *controller.StatisticsController
	schema        *controller.SchemaController
	health        *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		learningPath:  repository.NewLearningPathRepository(db),
		module:        repository.NewModuleRepository(db),
		lesson:        repository.NewLessonRepository(db),
		lab:           repository.NewLabRepository(db),
		certification: repository.NewCertificationRepository(db),
		assessment:    repository.NewAssessmentRepository(db),
		progress:      repository.NewProgressRepository(db),
		enrollment:    repository.NewEnrollmentRepository(db),
		scenario:      repository.NewScenarioRepository(db),
		knowledgeBase: repository.NewKnowledgeBaseRepository(db),
		forum:         repository.NewForumRepository(db),
		instructor:    repository.NewInstructorRepository(db),
		statistics:    repository.NewStatisticsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(&cfg.Storage)
	s.cache = service.NewPathCache(rdb, a.Edu)
	s.evaluator = service.NewCompletionEvaluator(repos.progress, repos.assessment)

	s.learningPath = service.NewLearningPathService(
		repos.learningPath,
		repos.module,
		repos.certification,
		repos.enrollment,
		s.evaluator,
		s.cache,
		a.Edu,
	)
	s.content = service.NewContentService(
		repos.module,
		repos.lesson,
		repos.lab,
		repos.assessment,
		s.storage,
		s.cache,
		cfg,
		a.Edu,
	)
	s.progress = service.NewProgressService(
		repos.progress,
		repos.learningPath,
		repos.module,
		repos.lesson,
		repos.lab,
		repos.assessment,
		repos.scenario,
		repos.enrollment,
		s.evaluator,
		a.Edu,
	)
	s.assessment = service.NewAssessmentService(repos.assessment, s.progress)
	s.enrollment = service.NewEnrollmentService(
		repos.enrollment,
		repos.learningPath,
		repos.certification,
		s.evaluator,
		a.Edu,
	)
	s.scenario = service.NewScenarioService(repos.scenario, a.Edu)
	s.scenario.Live = a.Live
	s.knowledgeBase = service.NewKnowledgeBaseService(repos.knowledgeBase, s.storage, rdb, a.Edu)
	s.forum = service.NewForumService(repos.forum, s.storage, a.Edu)
	s.forum.Live = a.Live
	s.instructor = service.NewInstructorService(repos.instructor)
	s.statistics = service.NewStatisticsService(repos.statistics, repos.learningPath, s.cache)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		learningPath:  controller.NewLearningPathController(s.learningPath),
		content:       controller.NewContentController(s.content),
		assessment:    controller.NewAssessmentController(s.assessment),
		progress:      controller.NewProgressController(s.progress),
		enrollment:    controller.NewEnrollmentController(s.enrollment),
		scenario:      controller.NewScenarioController(s.scenario),
		knowledgeBase: controller.NewKnowledgeBaseController(s.knowledgeBase),
		forum:         controller.NewForumController(s.forum),
		instructor:    controller.NewInstructorController(s.instructor),
		statistics:    controller.NewStatisticsController(s.statistics),
		schema:        controller.NewSchemaController(a.Edu),
		health:        controller.NewHealthController(db, rdb),
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

// New 在已建立的连接上组装应用；rdb 可以为 nil，此时不使用缓存
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	schema.InstallGinValidator()
	monitoring.Init()

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Edu:    config.NewEducationStore(cfg.Education),
		Live:   service.NewLiveHub(rdb),
	}
	app.RegisterConfigCallback(func(c *config.Config) {
		app.Edu.Store(c.Education)
		logger.Log.Info("Educational config reloaded",
			zap.Bool("forums", c.Education.Features.Forums),
			zap.Bool("scenarios", c.Education.Features.Scenarios),
			zap.Int("maxAttempts", c.Education.Grading.MaxAttempts))
	})

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode != gin.ReleaseMode {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}
	return app
}

// NewApp 初始化日志、数据库、Redis 和追踪，然后组装应用
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式下默认不自动迁移，需要 --migrate
	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("edu-platform", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}
	return app
}

// WatchConfig 配置文件变化时依次调用注册的回调
func (a *App) WatchConfig(ctx context.Context, configFile string) {
	w := configwatcher.New(configFile)
	for _, cb := range a.configCallbacks {
		w.OnReload(cb)
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run(configFile string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configFile != "" {
		a.WatchConfig(ctx, configFile)
	}
	go a.Live.Run(ctx)

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Live.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
	logger.Log.Sync()
}
