package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/minhlq/lingolab/config"
	"github.com/minhlq/lingolab/database"
	_ "github.com/minhlq/lingolab/docs" // Swagger docs - auto-generated
	adminctrl "github.com/minhlq/lingolab/internal/controller/admin"
	studentctrl "github.com/minhlq/lingolab/internal/controller/student"
	"github.com/minhlq/lingolab/internal/logger"
	"github.com/minhlq/lingolab/internal/model"
	"github.com/minhlq/lingolab/internal/repository"
	"github.com/minhlq/lingolab/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title LingoLab Practice API
// @version 1.0
// @description API for language-practice exercises with scored attempts and AI feedback.
// @contact.name API Support
// @contact.email support@lingolab.dev
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewExerciseSetRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
			repository.NewFeedbackRepository,
			repository.NewProgressRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewGradeBandService,
			service.NewExerciseService,
			service.NewAdminExerciseService,
			service.NewGeminiProvider,
			service.NewOpenAIProvider,
			func(
				gemini *service.GeminiProvider,
				openai *service.OpenAIProvider,
				answerRepo repository.AnswerRepository,
				feedbackRepo repository.FeedbackRepository,
			) service.FeedbackService {
				// Gemini handles the standard question types; OpenAI carries
				// the essay rubric.
				return service.NewFeedbackService(gemini, openai, answerRepo, feedbackRepo)
			},
			service.NewAttemptLifecycleService,
			service.NewAnswerService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminExerciseController,
			studentctrl.NewStudentController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminExerciseCtrl *adminctrl.AdminExerciseController,
	studentCtrl *studentctrl.StudentController,
) {
	// Admin routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/exercise-sets", adminExerciseCtrl.CreateExerciseSet)
	}

	// Student routes (prefixed with /api/v1)
	studentAPIGroup := router.Group("/api/v1")
	{
		studentAPIGroup.GET("/exercise-sets", studentCtrl.GetAllExerciseSets)
		studentAPIGroup.GET("/exercise-sets/:set_id", studentCtrl.GetExerciseSetDetails)
		studentAPIGroup.GET("/exercise-sets/:set_id/my-attempts", studentCtrl.GetMyAttempts)

		studentAPIGroup.POST("/exercise-sets/:set_id/attempts", studentCtrl.CreateOrResumeAttempt)
		studentAPIGroup.GET("/attempts/:attempt_id", studentCtrl.GetAttemptDetails)
		studentAPIGroup.POST("/attempts/:attempt_id/answers", studentCtrl.RecordAnswer)
		studentAPIGroup.POST("/attempts/:attempt_id/complete", studentCtrl.CompleteAttempt)

		studentAPIGroup.POST("/feedback/generate", studentCtrl.GenerateFeedback)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("LingoLab API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.ExerciseSet{},
		&model.Question{},
		&model.Option{},
		&model.ExerciseAttempt{},
		&model.StudentAnswer{},
		&model.AIFeedback{},
		&model.StudentProgress{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}

	// At most one in_progress attempt per (exercise set, student). AutoMigrate
	// cannot express a partial index, so it is created directly; the attempt
	// lifecycle service depends on the resulting duplicate-key violation.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_in_progress_attempt
		ON exercise_attempts (exercise_set_id, student_id)
		WHERE status = 'in_progress' AND deleted_at IS NULL`).Error
	if err != nil {
		log.Error().Err(err).Msg("Failed to create in-progress attempt uniqueness index")
		return err
	}

	log.Info().Msg("Database migration completed successfully.")
	return nil
}
