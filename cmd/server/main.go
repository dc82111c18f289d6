package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/feedback-systems/ai-feedback-backend/internal/config"
	"github.com/feedback-systems/ai-feedback-backend/internal/database"
	"github.com/feedback-systems/ai-feedback-backend/internal/handlers"
	"github.com/feedback-systems/ai-feedback-backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}

	cfg := config.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := log.Level(level).With().Str("service", "ai-feedback-backend").Logger()

	ctx := context.Background()

	mongo, err := database.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid MongoDB configuration")
	}
	defer mongo.Disconnect(ctx)

	if err := mongo.Ping(ctx); err != nil {
		// The driver reconnects on first use, so start anyway.
		logger.Warn().Err(err).Msg("MongoDB not reachable at startup")
	} else {
		logger.Info().Msg("Connected to MongoDB")
	}

	store := database.NewSubmissionStore(mongo, config.SubmissionsCollection)
	llm := services.NewLLMService(cfg, logger)
	submissions := handlers.NewSubmissionHandler(store, llm, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlog.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	submissions.Register(app)

	logger.Info().Bool("api_key_present", cfg.APIKey != "").Str("model", cfg.Model).Msg("generation client configured")
	logger.Info().Str("port", cfg.Port).Msg("server starting")

	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
