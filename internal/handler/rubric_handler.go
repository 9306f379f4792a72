package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gradekit/gradekit-api/internal/rubric"
	"github.com/gradekit/gradekit-api/internal/utils"
)

// DefaultRubric returns a handler serving the built-in grading rubric, so
// callers can inspect the scale their submissions are graded against.
func DefaultRubric() fiber.Handler {
	return func(c *fiber.Ctx) error {
		r := rubric.Default()
		return utils.SendSuccess(c, "default rubric", fiber.Map{
			"total":  r.Total(),
			"rubric": r,
		})
	}
}
