package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gradekit/gradekit-api/internal/dto"
	"github.com/gradekit/gradekit-api/internal/service"
	"github.com/gradekit/gradekit-api/internal/utils"
)

// GradingHandler exposes the grading endpoints: compose plus dispatch to the
// configured provider.
type GradingHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewGradingHandler constructs the handler.
func NewGradingHandler(service service.GradingService, logger zerolog.Logger) *GradingHandler {
	return &GradingHandler{
		service: service,
		logger:  logger.With().Str("component", "grading_handler").Logger(),
	}
}

// Register wires the handler endpoints into the router group.
func (h *GradingHandler) Register(router fiber.Router) {
	router.Post("", h.grade)
	router.Post("/batch", h.gradeBatch)
	router.Post("/compare", h.compare)
}

func (h *GradingHandler) grade(c *fiber.Ctx) error {
	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Grade(c.UserContext(), payload)
	if err != nil {
		return handleGradingError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submission graded", response)
}

func (h *GradingHandler) gradeBatch(c *fiber.Ctx) error {
	var payload dto.BatchGradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.GradeBatch(c.UserContext(), payload)
	if err != nil {
		return handleGradingError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "batch graded", response)
}

func (h *GradingHandler) compare(c *fiber.Ctx) error {
	var payload dto.CompareRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Compare(c.UserContext(), payload)
	if err != nil {
		return handleGradingError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submissions compared", response)
}
