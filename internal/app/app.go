package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/config"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/controller"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/repository"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/service"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/database"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/logger"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/monitoring"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds every wired component of the service.
type App struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine

	tracerProvider *sdktrace.TracerProvider

	CourseController  *controller.CourseController
	SectionController *controller.SectionController
	LessonController  *controller.LessonController
	AuthController    *controller.AuthController
	HealthController  *controller.HealthController
}

func New(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, err
	}

	monitoring.Init()

	a := &App{Config: cfg, DB: db, Redis: rdb}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("silver-edge-academy", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Warn("tracing disabled, collector unreachable", zap.Error(err))
		} else {
			a.tracerProvider = tp
		}
	}

	storage, err := service.NewStorageService(cfg.Storage)
	if err != nil {
		return nil, err
	}

	courseRepo := repository.NewCourseRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	classAssignmentRepo := repository.NewClassAssignmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(rdb)

	courseService := service.NewCourseService(courseRepo, sectionRepo, lessonRepo, classAssignmentRepo, userRepo, db)
	sectionService := service.NewSectionService(sectionRepo, lessonRepo, courseRepo, db)
	lessonService := service.NewLessonService(lessonRepo, sectionRepo, exerciseRepo, quizRepo, storage, cfg, db)
	authService := service.NewAuthService(userRepo, tokenRepo, cfg)

	a.CourseController = controller.NewCourseController(courseService)
	a.SectionController = controller.NewSectionController(sectionService)
	a.LessonController = controller.NewLessonController(lessonService)
	a.AuthController = controller.NewAuthController(authService)
	a.HealthController = controller.NewHealthController(db, rdb)

	a.Router = a.setupRouter(tokenRepo)

	return a, nil
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	return nil
}
