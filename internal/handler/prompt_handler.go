package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gradekit/gradekit-api/internal/dto"
	"github.com/gradekit/gradekit-api/internal/service"
	"github.com/gradekit/gradekit-api/internal/utils"
)

// PromptHandler exposes offline prompt composition. These endpoints never
// touch the network, so they work without any provider configured.
type PromptHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewPromptHandler constructs the handler.
func NewPromptHandler(service service.GradingService, logger zerolog.Logger) *PromptHandler {
	return &PromptHandler{
		service: service,
		logger:  logger.With().Str("component", "prompt_handler").Logger(),
	}
}

// Register wires the handler endpoints into the router group.
func (h *PromptHandler) Register(router fiber.Router) {
	router.Post("", h.compose)
	router.Post("/compare", h.composeComparative)
}

func (h *PromptHandler) compose(c *fiber.Ctx) error {
	var payload dto.PromptRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.ComposePrompt(payload)
	if err != nil {
		return handleGradingError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "prompt composed", response)
}

func (h *PromptHandler) composeComparative(c *fiber.Ctx) error {
	var payload dto.CompareRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.ComposeComparative(payload)
	if err != nil {
		return handleGradingError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "comparative prompt composed", response)
}
