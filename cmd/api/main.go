package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/interviewai-go-api/internal/config"
	"github.com/noah-isme/interviewai-go-api/internal/database"
	"github.com/noah-isme/interviewai-go-api/internal/events"
	"github.com/noah-isme/interviewai-go-api/internal/handler"
	"github.com/noah-isme/interviewai-go-api/internal/middleware"
	"github.com/noah-isme/interviewai-go-api/internal/models"
	"github.com/noah-isme/interviewai-go-api/internal/repository"
	"github.com/noah-isme/interviewai-go-api/internal/router"
	"github.com/noah-isme/interviewai-go-api/internal/service"
	"github.com/noah-isme/interviewai-go-api/pkg/ai"
	cloud "github.com/noah-isme/interviewai-go-api/pkg/cloudinary"
	"github.com/noah-isme/interviewai-go-api/pkg/coderun"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Resume{},
		&models.JobDescription{},
		&models.Interview{},
		&models.Question{},
		&models.Answer{},
		&models.Transcript{},
		&models.Feedback{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	publisher := events.Noop()
	if cfg.NATSURL != "" {
		publisher, err = events.NewNATSPublisher(cfg.NATSURL, logger)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
	}

	var uploader *cloud.Uploader
	if cfg.CloudinaryCloudName != "" {
		uploader, err = cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
	}

	generator := buildGenerator(cfg, logger)
	runner := buildRunner(cfg, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	resumeRepo := repository.NewResumeRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	planner := service.NewQuestionPlanner(generator, cfg.AITimeout, logger)
	scorer := service.NewAnswerScorer(generator, runner, cfg.AITimeout, cfg.ExecutionTimeout, logger)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenExpiry, logger)
	resumeService := service.NewResumeService(resumeRepo, uploader, logger)
	interviewService := service.NewInterviewService(
		interviewRepo,
		resumeRepo,
		planner,
		scorer,
		publisher,
		time.Duration(cfg.DefaultDurationMinutes)*time.Minute,
		logger,
	)
	historyService := service.NewHistoryService(interviewRepo, redisClient, cfg.HistoryCacheTTL, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, logger)

	authHandler := handler.NewAuthHandler(authService, validate, logger)
	resumeHandler := handler.NewResumeHandler(resumeService, validate, logger)
	interviewHandler := handler.NewInterviewHandler(interviewService, validate, logger)
	historyHandler := handler.NewHistoryHandler(historyService, logger)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, validate, logger)
	codeHandler := handler.NewCodeHandler(runner, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.AllowedOrigins})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:      authHandler,
		ResumeHandler:    resumeHandler,
		InterviewHandler: interviewHandler,
		HistoryHandler:   historyHandler,
		FeedbackHandler:  feedbackHandler,
		CodeHandler:      codeHandler,
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildGenerator selects the question/evaluation delegate. Missing keys mean
// no delegate; the services then fall back to deterministic behaviour.
func buildGenerator(cfg config.Config, logger zerolog.Logger) ai.Generator {
	switch cfg.AIProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			logger.Warn().Msg("openai provider selected but no api key configured")
			return nil
		}
		generator, err := ai.NewOpenAIGenerator(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.AIModel,
			Logger: logger,
		})
		if err != nil {
			log.Fatalf("failed to create openai generator: %v", err)
		}
		return generator
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			logger.Warn().Msg("anthropic provider selected but no api key configured")
			return nil
		}
		generator, err := ai.NewAnthropicGenerator(ai.AnthropicConfig{
			APIKey: cfg.AnthropicAPIKey,
			Model:  cfg.AIModel,
			Logger: logger,
		})
		if err != nil {
			log.Fatalf("failed to create anthropic generator: %v", err)
		}
		return generator
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			logger.Warn().Msg("gemini provider selected but no api key configured")
			return nil
		}
		generator, err := ai.NewGeminiGenerator(context.Background(), ai.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.AIModel,
			Logger: logger,
		})
		if err != nil {
			log.Fatalf("failed to create gemini generator: %v", err)
		}
		return generator
	default:
		logger.Warn().Str("provider", cfg.AIProvider).Msg("unknown ai provider, questions fall back to canned prompts")
		return nil
	}
}

// buildRunner selects the code execution backend.
func buildRunner(cfg config.Config, logger zerolog.Logger) coderun.Runner {
	switch cfg.CodeRunner {
	case "docker":
		runner, err := coderun.NewDockerRunner(coderun.DockerConfig{
			Host:          cfg.DockerHost,
			Timeout:       cfg.ExecutionTimeout,
			MemoryLimitMB: int64(cfg.CodeRunMemoryMB),
			CPUShares:     int64(cfg.CodeRunCPUShares),
			Logger:        logger,
		})
		if err != nil {
			log.Fatalf("failed to create docker runner: %v", err)
		}
		return runner
	case "judge0":
		if cfg.Judge0URL == "" {
			logger.Warn().Msg("judge0 selected but no url configured, code execution disabled")
			return nil
		}
		runner, err := coderun.NewJudge0Client(coderun.Judge0Config{
			BaseURL: cfg.Judge0URL,
			APIKey:  cfg.Judge0APIKey,
			Timeout: cfg.ExecutionTimeout,
			Logger:  logger,
		})
		if err != nil {
			log.Fatalf("failed to create judge0 client: %v", err)
		}
		return runner
	default:
		logger.Warn().Str("runner", cfg.CodeRunner).Msg("unknown code runner, code execution disabled")
		return nil
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
