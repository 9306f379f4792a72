package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gradekit/gradekit-api/internal/dto"
	"github.com/gradekit/gradekit-api/internal/prompt"
	"github.com/gradekit/gradekit-api/internal/rubric"
	"github.com/gradekit/gradekit-api/pkg/llm"
	"github.com/gradekit/gradekit-api/pkg/result"
)

// ErrDispatchUnavailable indicates no provider client is configured; the
// service can still compose prompts offline.
var ErrDispatchUnavailable = errors.New("no provider client configured")

// GradingService composes prompts and optionally dispatches them to the
// configured provider.
type GradingService interface {
	ComposePrompt(req dto.PromptRequest) (dto.PromptResponse, error)
	ComposeComparative(req dto.CompareRequest) (dto.PromptResponse, error)
	Grade(ctx context.Context, req dto.GradeRequest) (dto.GradeResponse, error)
	GradeBatch(ctx context.Context, req dto.BatchGradeRequest) (dto.BatchGradeResponse, error)
	Compare(ctx context.Context, req dto.CompareRequest) (dto.CompareResponse, error)
}

type gradingService struct {
	client    llm.Client
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGradingService constructs the grading service. A nil client yields a
// compose-only service: dispatch operations fail with ErrDispatchUnavailable.
func NewGradingService(client llm.Client, validate *validator.Validate, logger zerolog.Logger) GradingService {
	return &gradingService{
		client:    client,
		validator: validate,
		logger:    logger.With().Str("component", "grading_service").Logger(),
	}
}

func (s *gradingService) ComposePrompt(req dto.PromptRequest) (dto.PromptResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.PromptResponse{}, err
	}

	style, err := prompt.ParseStyle(req.Style)
	if err != nil {
		return dto.PromptResponse{}, err
	}

	composed, err := prompt.Compose(prompt.Request{
		Problem:            req.Problem,
		Solution:           req.Solution,
		ModelSolution:      req.ModelSolution,
		Style:              style,
		Rubric:             req.Rubric,
		ExpectedComplexity: req.ExpectedComplexity,
	})
	if err != nil {
		return dto.PromptResponse{}, err
	}

	return dto.PromptResponse{
		Style:  string(style),
		Prompt: composed,
		Length: len(composed),
	}, nil
}

func (s *gradingService) ComposeComparative(req dto.CompareRequest) (dto.PromptResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.PromptResponse{}, err
	}

	composed, err := prompt.ComposeComparative(req.Problem, compareEntries(req.Entries))
	if err != nil {
		return dto.PromptResponse{}, err
	}

	return dto.PromptResponse{
		Style:  "comparative",
		Prompt: composed,
		Length: len(composed),
	}, nil
}

func (s *gradingService) Grade(ctx context.Context, req dto.GradeRequest) (dto.GradeResponse, error) {
	if s.client == nil {
		return dto.GradeResponse{}, ErrDispatchUnavailable
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.GradeResponse{}, err
	}

	style, err := prompt.ParseStyle(req.Style)
	if err != nil {
		return dto.GradeResponse{}, err
	}

	composed, err := prompt.Compose(prompt.Request{
		Problem:            req.Problem,
		Solution:           req.Solution,
		ModelSolution:      req.ModelSolution,
		Style:              style,
		Rubric:             req.Rubric,
		ExpectedComplexity: req.ExpectedComplexity,
	})
	if err != nil {
		return dto.GradeResponse{}, err
	}

	start := time.Now()
	reply, err := s.client.Complete(ctx, composed)
	if err != nil {
		return dto.GradeResponse{}, err
	}

	response := dto.GradeResponse{
		Provider:  s.client.Provider(),
		Model:     s.client.ModelName(),
		Style:     string(style),
		Reply:     reply,
		ElapsedMs: time.Since(start).Milliseconds(),
	}
	response.Grading, response.Hints, response.ExtractedScore = interpretReply(style, reply)

	return response, nil
}

// interpretReply lifts structure out of a reply where the style defines one.
// Interpretation is best effort: a reply the model formats badly yields nil
// structured fields, never an error, since the raw text is always returned.
func interpretReply(style prompt.Style, reply string) (*result.Grading, *result.Hints, *float64) {
	switch style {
	case prompt.StyleJSON:
		if grading, err := result.Parse(reply); err == nil {
			if grading.Percentage == 0 {
				grading.Percentage = grading.PercentOf(rubric.Default().Total())
			}
			return &grading, nil, nil
		}
	case prompt.StyleTeachingAssistant:
		if hints, err := result.ParseHints(reply); err == nil {
			return nil, &hints, nil
		}
	}

	if score, ok := result.ExtractScore(reply); ok {
		return nil, nil, &score
	}
	return nil, nil, nil
}

// GradeBatch processes submissions strictly in input order, one at a time.
// A failing item is recorded and the batch continues; result order always
// matches submission order.
func (s *gradingService) GradeBatch(ctx context.Context, req dto.BatchGradeRequest) (dto.BatchGradeResponse, error) {
	if s.client == nil {
		return dto.BatchGradeResponse{}, ErrDispatchUnavailable
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.BatchGradeResponse{}, err
	}

	style, err := prompt.ParseStyle(req.Style)
	if err != nil {
		return dto.BatchGradeResponse{}, err
	}

	response := dto.BatchGradeResponse{
		Provider: s.client.Provider(),
		Model:    s.client.ModelName(),
		Results:  make([]dto.BatchItemResult, 0, len(req.Submissions)),
	}

	for _, submission := range req.Submissions {
		problem := submission.Problem
		if problem == "" {
			problem = req.Problem
		}

		item := dto.BatchItemResult{ID: submission.ID}
		start := time.Now()

		composed, composeErr := prompt.Compose(prompt.Request{
			Problem:            problem,
			Solution:           submission.Solution,
			ModelSolution:      submission.ModelSolution,
			Style:              style,
			Rubric:             req.Rubric,
			ExpectedComplexity: req.ExpectedComplexity,
		})
		if composeErr != nil {
			item.Error = composeErr.Error()
		} else {
			reply, dispatchErr := s.client.Complete(ctx, composed)
			if dispatchErr != nil {
				item.Error = dispatchErr.Error()
				s.logger.Warn().Err(dispatchErr).Str("submission_id", submission.ID).Msg("batch item dispatch failed")
			} else {
				item.Success = true
				item.Reply = reply
			}
		}

		item.ElapsedMs = time.Since(start).Milliseconds()
		if !item.Success {
			response.Failed++
		}
		response.Results = append(response.Results, item)
	}

	return response, nil
}

func (s *gradingService) Compare(ctx context.Context, req dto.CompareRequest) (dto.CompareResponse, error) {
	if s.client == nil {
		return dto.CompareResponse{}, ErrDispatchUnavailable
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.CompareResponse{}, err
	}

	composed, err := prompt.ComposeComparative(req.Problem, compareEntries(req.Entries))
	if err != nil {
		return dto.CompareResponse{}, err
	}

	start := time.Now()
	reply, err := s.client.Complete(ctx, composed)
	if err != nil {
		return dto.CompareResponse{}, err
	}

	return dto.CompareResponse{
		Provider:  s.client.Provider(),
		Model:     s.client.ModelName(),
		Reply:     reply,
		ElapsedMs: time.Since(start).Milliseconds(),
	}, nil
}

func compareEntries(entries []dto.CompareEntry) []prompt.Entry {
	converted := make([]prompt.Entry, 0, len(entries))
	for _, entry := range entries {
		converted = append(converted, prompt.Entry{Name: entry.Name, Solution: entry.Solution})
	}
	return converted
}
