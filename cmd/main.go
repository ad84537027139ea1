package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/nexprep/nexprep/config"
	"github.com/nexprep/nexprep/database"
	_ "github.com/nexprep/nexprep/docs" // Swagger docs - auto-generated
	"github.com/nexprep/nexprep/internal/cache"
	adminctrl "github.com/nexprep/nexprep/internal/controller/admin"
	userctrl "github.com/nexprep/nexprep/internal/controller/user"
	"github.com/nexprep/nexprep/internal/logger"
	"github.com/nexprep/nexprep/internal/model"
	"github.com/nexprep/nexprep/internal/repository"
	"github.com/nexprep/nexprep/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title NexPrep Exam Platform API
// @version 1.0
// @description Backend for exam preparation: content catalog, question papers and the test-attempt lifecycle (start/resume, live progress, submission with deterministic scoring, results).
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			database.NewRedis,
			NewCache,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewCourseRepository,
			repository.NewExamRepository,
			repository.NewTestSeriesRepository,
			repository.NewQuestionPaperRepository,
			repository.NewTestAttemptRepository,
		),

		fx.Provide(
			service.NewAttemptService,
			service.NewCatalogService,
			service.NewContentService,
			service.NewQuestionPaperService,
		),

		fx.Provide(
			userctrl.NewAttemptController,
			userctrl.NewCatalogController,
			adminctrl.NewContentController,
			adminctrl.NewQuestionPaperController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewCache(cfg *config.Config, client *redis.Client) *cache.Cache {
	return cache.New(client, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

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
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires the API surface and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	attemptCtrl *userctrl.AttemptController,
	catalogCtrl *userctrl.CatalogController,
	contentCtrl *adminctrl.ContentController,
	paperCtrl *adminctrl.QuestionPaperController,
) {
	api := router.Group("/api/v1")
	catalogCtrl.RegisterRoutes(api)
	attemptCtrl.RegisterRoutes(api)

	adminAPI := router.Group("/api/v1/admin")
	contentCtrl.RegisterRoutes(adminAPI)
	paperCtrl.RegisterRoutes(adminAPI)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("NexPrep API server starting on port %s", cfg.Server.Port)
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
		&model.Course{},
		&model.Exam{},
		&model.TestSeries{},
		&model.QuestionPaper{},
		&model.TestAttempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}

	// One live attempt per (user, series, paper). AutoMigrate cannot express
	// a partial unique index, so it is created directly.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_test_attempts_active_unique
		ON test_attempts (user_id, test_series_id, question_paper_id)
		WHERE status = 'in-progress' AND deleted_at IS NULL`).Error
	if err != nil {
		log.Error().Err(err).Msg("Failed to create active-attempt unique index")
		return err
	}

	log.Info().Msg("Database migration completed successfully.")
	return nil
}
