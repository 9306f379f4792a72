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

	"github.com/gradekit/gradekit-api/internal/config"
	"github.com/gradekit/gradekit-api/internal/handler"
	"github.com/gradekit/gradekit-api/internal/middleware"
	"github.com/gradekit/gradekit-api/internal/router"
	"github.com/gradekit/gradekit-api/internal/service"
	"github.com/gradekit/gradekit-api/pkg/llm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var client llm.Client
	if cfg.DispatchEnabled() {
		clientCfg, err := cfg.ClientConfig()
		if err != nil {
			log.Fatalf("invalid provider configuration: %v", err)
		}
		clientCfg.Logger = logger

		client, err = llm.New(clientCfg)
		if err != nil {
			log.Fatalf("failed to create provider client: %v", err)
		}

		if cfg.PingOnStart {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			if err := llm.Ping(ctx, client); err != nil {
				cancel()
				log.Fatalf("provider connection check failed: %v", err)
			}
			cancel()
			logger.Info().Str("provider", client.Provider()).Str("model", client.ModelName()).Msg("provider connection verified")
		}
	} else {
		logger.Warn().Msg("no provider configured, serving prompt composition only")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	gradingService := service.NewGradingService(client, validate, logger)

	promptHandler := handler.NewPromptHandler(gradingService, logger)
	gradingHandler := handler.NewGradingHandler(gradingService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		PromptHandler:  promptHandler,
		GradingHandler: gradingHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
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
