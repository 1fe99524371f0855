package app

import (
	"time"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/middleware"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/repository"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/monitoring"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/security"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupRouter(tokenRepo *repository.TokenRepository) *gin.Engine {
	gin.SetMode(a.Config.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(security.CORS(a.Config.CORS.AllowedOrigins))
	r.Use(security.Secure())
	r.Use(monitoring.MetricsMiddleware())
	if a.Config.Tracing.Enabled {
		r.Use(tracing.GinMiddleware())
	}
	if a.Config.RateLimit.MaxRequests > 0 {
		window := time.Duration(a.Config.RateLimit.WindowMinutes) * time.Minute
		r.Use(security.RateLimiter(a.Config.RateLimit.MaxRequests, window))
	}

	r.GET("/health", a.HealthController.Health)
	r.GET("/metrics", monitoring.PrometheusHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if a.Config.Storage.Type == "local" || a.Config.Storage.Type == "" {
		r.Static("/uploads", a.Config.Storage.LocalPath)
	}

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", a.AuthController.Register)
		auth.POST("/login", a.AuthController.Login)
		auth.POST("/logout", a.AuthController.Logout)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(a.Config, tokenRepo))

	// Reading is open to every authenticated role.
	api.GET("/courses", a.CourseController.ListCourses)
	api.GET("/courses/:courseId", a.CourseController.GetCourse)
	api.GET("/lessons/:id", a.LessonController.GetLesson)
	api.GET("/lessons/:id/lock", a.LessonController.GetLock)

	// Authoring is for admins and teachers.
	edit := api.Group("")
	edit.Use(middleware.RoleMiddleware(model.Admin, model.Teacher))
	{
		edit.POST("/courses", a.CourseController.CreateCourse)
		edit.PUT("/courses/:courseId", a.CourseController.UpdateCourse)
		edit.DELETE("/courses/:courseId", a.CourseController.DeleteCourse)
		edit.POST("/courses/:courseId/publish", a.CourseController.PublishCourse)
		edit.POST("/courses/:courseId/unpublish", a.CourseController.UnpublishCourse)

		edit.POST("/courses/:courseId/sections", a.SectionController.CreateSection)
		edit.PUT("/courses/:courseId/sections/reorder", a.SectionController.ReorderSections)
		edit.PUT("/sections/:sectionId", a.SectionController.UpdateSection)
		edit.DELETE("/sections/:sectionId", a.SectionController.DeleteSection)

		edit.POST("/sections/:sectionId/lessons", a.LessonController.CreateLesson)
		edit.PUT("/sections/:sectionId/lessons/reorder", a.LessonController.ReorderLessons)
		edit.DELETE("/sections/:sectionId/lessons/:id", a.LessonController.DeleteLesson)
		edit.PUT("/lessons/:id", a.LessonController.UpdateLesson)
		edit.POST("/lessons/:id/video", a.LessonController.UploadVideo)

		edit.POST("/lessons/:id/lock", a.LessonController.AcquireLock)
		edit.DELETE("/lessons/:id/lock", a.LessonController.ReleaseLock)

		edit.POST("/lessons/:id/exercises", a.LessonController.CreateExercise)
		edit.PUT("/exercises/:id", a.LessonController.UpdateExercise)
		edit.DELETE("/exercises/:id", a.LessonController.DeleteExercise)

		edit.PUT("/lessons/:id/quiz", a.LessonController.SetQuiz)
		edit.DELETE("/lessons/:id/quiz", a.LessonController.DeleteQuiz)
	}

	return r
}
