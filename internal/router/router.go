package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gradekit/gradekit-api/internal/config"
	"github.com/gradekit/gradekit-api/internal/handler"
	"github.com/gradekit/gradekit-api/internal/middleware"
	"github.com/gradekit/gradekit-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	PromptHandler  *handler.PromptHandler
	GradingHandler *handler.GradingHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/rubric", handler.DefaultRubric())
	app.Get("/metrics", observability.MetricsHandler())

	// Prompt composition is offline and cheap; no limiter needed.
	if deps.PromptHandler != nil {
		deps.PromptHandler.Register(api.Group("/prompts"))
	}

	// Grading routes block on LLM round trips, so they are rate limited.
	if deps.GradingHandler != nil {
		grade := api.Group("/grade", middleware.RateLimit("grade", cfg.RateLimitMax, cfg.RateLimitWindow))
		deps.GradingHandler.Register(grade)
	}
}
