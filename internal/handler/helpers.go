package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gradekit/gradekit-api/internal/middleware"
	"github.com/gradekit/gradekit-api/internal/prompt"
	"github.com/gradekit/gradekit-api/internal/service"
	"github.com/gradekit/gradekit-api/internal/utils"
	"github.com/gradekit/gradekit-api/pkg/llm"
)

// handleGradingError maps service and provider errors to HTTP statuses.
// Composition errors are the caller's fault; provider errors are upstream
// failures and surface as gateway errors so the two are distinguishable.
func handleGradingError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case errors.Is(err, prompt.ErrUnknownStyle),
		errors.Is(err, prompt.ErrRubricRequired),
		errors.Is(err, prompt.ErrComplexityRequired):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDispatchUnavailable):
		return utils.SendError(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, llm.ErrRateLimited):
		return utils.SendError(c, fiber.StatusTooManyRequests, err.Error())
	case errors.Is(err, llm.ErrAuthentication), errors.Is(err, llm.ErrEmptyReply):
		requestLogger(logger, c).Error().Err(err).Msg("provider call failed")
		return utils.SendError(c, fiber.StatusBadGateway, err.Error())
	default:
		requestLogger(logger, c).Error().Err(err).Msg("grading operation failed")
		return utils.SendError(c, fiber.StatusBadGateway, "provider dispatch failed")
	}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}
