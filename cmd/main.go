package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/sbasnet/pscprep/config"
	"github.com/sbasnet/pscprep/database"
	_ "github.com/sbasnet/pscprep/docs"
	adminctrl "github.com/sbasnet/pscprep/internal/controller/admin"
	userctrl "github.com/sbasnet/pscprep/internal/controller/user"
	"github.com/sbasnet/pscprep/internal/logger"
	"github.com/sbasnet/pscprep/internal/middleware"
	"github.com/sbasnet/pscprep/internal/model"
	"github.com/sbasnet/pscprep/internal/repository"
	"github.com/sbasnet/pscprep/internal/scheduler"
	"github.com/sbasnet/pscprep/internal/service"
)

// @title PSC Prep API
// @version 1.0
// @description Exam preparation backend with mock tests, attempt scoring and branch leaderboards.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewBranchRepository,
			repository.NewQuestionRepository,
			repository.NewMockTestRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
			repository.NewLeaderboardRepository,
			repository.NewStatsRepository,
			repository.NewNotificationRepository,
		),

		fx.Provide(
			service.NewLeaderboardService,
			service.NewAttemptService,
			service.NewTestService,
			service.NewAdminTestService,
			service.NewStatsService,
		),

		fx.Provide(
			userctrl.NewAttemptController,
			userctrl.NewLeaderboardController,
			userctrl.NewTestController,
			userctrl.NewNotificationController,
			adminctrl.NewAdminTestController,
			scheduler.New,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(scheduler.Register),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
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
	attemptCtrl *userctrl.AttemptController,
	leaderboardCtrl *userctrl.LeaderboardController,
	testCtrl *userctrl.TestController,
	notificationCtrl *userctrl.NotificationController,
	adminTestCtrl *adminctrl.AdminTestController,
) {
	api := router.Group("/api/v1")
	{
		// Public catalog and leaderboard reads
		api.GET("/branches", testCtrl.GetBranches)
		api.GET("/tests", testCtrl.GetTests)
		api.GET("/tests/:test_id", testCtrl.GetTestDetails)
		api.GET("/leaderboard", leaderboardCtrl.GetLeaderboard)
		api.GET("/stats", testCtrl.GetPlatformStats)

		// Attempt lifecycle requires an authenticated user
		authed := api.Group("")
		authed.Use(middleware.Auth(cfg.Auth.JWTSecret))
		{
			authed.POST("/attempts", attemptCtrl.StartAttempt)
			authed.POST("/attempts/:attempt_id/answers", attemptCtrl.SubmitAnswer)
			authed.POST("/attempts/:attempt_id/answers/bulk", attemptCtrl.SubmitAnswersBulk)
			authed.POST("/attempts/:attempt_id/complete", attemptCtrl.CompleteAttempt)
			authed.POST("/attempts/:attempt_id/abandon", attemptCtrl.AbandonAttempt)
			authed.GET("/attempts/:attempt_id/results", attemptCtrl.GetResults)

			authed.GET("/notifications", notificationCtrl.GetNotifications)
			authed.PATCH("/notifications/:notification_id/read", notificationCtrl.MarkNotificationRead)
		}
	}

	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.Auth(cfg.Auth.JWTSecret))
	{
		adminAPI.POST("/tests", adminTestCtrl.CreateTest)
		adminAPI.POST("/tests/:test_id/generate-questions", adminTestCtrl.GenerateTestQuestions)
		adminAPI.POST("/questions", adminTestCtrl.CreateQuestion)
		adminAPI.POST("/leaderboard/recalculate", adminTestCtrl.RecalculateLeaderboards)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("PSC Prep API server starting on port %s", cfg.Server.Port)
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
		&model.Branch{},
		&model.SubBranch{},
		&model.Category{},
		&model.Question{},
		&model.Option{},
		&model.MockTest{},
		&model.MockTestQuestion{},
		&model.Attempt{},
		&model.AttemptAnswer{},
		&model.LeaderboardEntry{},
		&model.PlatformStats{},
		&model.Notification{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
