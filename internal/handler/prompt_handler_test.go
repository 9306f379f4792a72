package handler_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gradekit/gradekit-api/internal/dto"
	"github.com/gradekit/gradekit-api/internal/handler"
	"github.com/gradekit/gradekit-api/internal/prompt"
	"github.com/gradekit/gradekit-api/internal/service"
)

func newPromptApp(svc service.GradingService) *fiber.App {
	app := fiber.New()
	handler.NewPromptHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/prompts"))
	return app
}

func TestPromptHandler_ComposeSuccess(t *testing.T) {
	app := newPromptApp(&mockGradingService{})

	resp := postJSON(t, app, "/api/v1/prompts", dto.PromptRequest{
		Problem:  "Reverse a string.",
		Solution: "s[::-1]",
		Style:    "comprehensive",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool               `json:"success"`
		Data    dto.PromptResponse `json:"data"`
		Message string             `json:"message"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "prompt composed", response.Message)
	require.Equal(t, "comprehensive", response.Data.Style)
	require.NotEmpty(t, response.Data.Prompt)
}

func TestPromptHandler_ComposeUnknownStyle(t *testing.T) {
	app := newPromptApp(&mockGradingService{err: prompt.ErrUnknownStyle})

	resp := postJSON(t, app, "/api/v1/prompts", dto.PromptRequest{Style: "haiku"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPromptHandler_ComposeCustomWithoutRubric(t *testing.T) {
	app := newPromptApp(&mockGradingService{err: prompt.ErrRubricRequired})

	resp := postJSON(t, app, "/api/v1/prompts", dto.PromptRequest{Style: "custom", Solution: "s"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPromptHandler_ComposeInvalidBody(t *testing.T) {
	app := newPromptApp(&mockGradingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/prompts", bytes.NewReader([]byte("nope")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPromptHandler_ComposeComparative(t *testing.T) {
	svc := &mockGradingService{}
	app := newPromptApp(svc)

	resp := postJSON(t, app, "/api/v1/prompts/compare", dto.CompareRequest{
		Problem: "Sort an array.",
		Entries: []dto.CompareEntry{
			{Name: "alice", Solution: "bubble"},
			{Name: "bob", Solution: "merge"},
		},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool               `json:"success"`
		Data    dto.PromptResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "comparative", response.Data.Style)
	require.Len(t, svc.lastCompare.Entries, 2)
}
