package dto

import (
	"github.com/gradekit/gradekit-api/internal/rubric"
	"github.com/gradekit/gradekit-api/pkg/result"
)

// PromptRequest asks for prompt composition only; no network involved.
type PromptRequest struct {
	Problem            string         `json:"problem"`
	Solution           string         `json:"solution"`
	ModelSolution      string         `json:"model_solution,omitempty"`
	Style              string         `json:"style" validate:"required"`
	Rubric             *rubric.Rubric `json:"rubric,omitempty"`
	ExpectedComplexity string         `json:"expected_complexity,omitempty"`
}

// PromptResponse carries a composed prompt back to the caller.
type PromptResponse struct {
	Style  string `json:"style"`
	Prompt string `json:"prompt"`
	Length int    `json:"length"`
}

// GradeRequest asks for composition plus dispatch of a single submission.
type GradeRequest struct {
	Problem            string         `json:"problem"`
	Solution           string         `json:"solution"`
	ModelSolution      string         `json:"model_solution,omitempty"`
	Style              string         `json:"style" validate:"required"`
	Rubric             *rubric.Rubric `json:"rubric,omitempty"`
	ExpectedComplexity string         `json:"expected_complexity,omitempty"`
}

// GradeResponse carries the provider reply for one graded submission. Reply
// always holds the raw text; the structured fields are filled best effort
// depending on style, so a badly formatted model reply still comes back raw.
type GradeResponse struct {
	Provider       string          `json:"provider"`
	Model          string          `json:"model"`
	Style          string          `json:"style"`
	Reply          string          `json:"reply"`
	Grading        *result.Grading `json:"grading,omitempty"`
	Hints          *result.Hints   `json:"hints,omitempty"`
	ExtractedScore *float64        `json:"extracted_score,omitempty"`
	ElapsedMs      int64           `json:"elapsed_ms"`
}

// Submission is one item of a batch. Problem may be empty when the batch
// shares a single problem statement.
type Submission struct {
	ID            string `json:"id" validate:"required"`
	Problem       string `json:"problem,omitempty"`
	Solution      string `json:"solution"`
	ModelSolution string `json:"model_solution,omitempty"`
}

// BatchGradeRequest grades an ordered sequence of submissions with a shared
// style and optional shared problem statement.
type BatchGradeRequest struct {
	Problem            string         `json:"problem,omitempty"`
	Style              string         `json:"style" validate:"required"`
	Rubric             *rubric.Rubric `json:"rubric,omitempty"`
	ExpectedComplexity string         `json:"expected_complexity,omitempty"`
	Submissions        []Submission   `json:"submissions" validate:"required,min=1,dive"`
}

// BatchItemResult reports the outcome for a single batch submission. Exactly
// one of Reply and Error is set.
type BatchItemResult struct {
	ID        string `json:"id"`
	Success   bool   `json:"success"`
	Reply     string `json:"reply,omitempty"`
	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// BatchGradeResponse preserves submission order; Failed counts items whose
// dispatch or composition failed.
type BatchGradeResponse struct {
	Provider string            `json:"provider"`
	Model    string            `json:"model"`
	Results  []BatchItemResult `json:"results"`
	Failed   int               `json:"failed"`
}

// CompareEntry is one named solution in a comparative request.
type CompareEntry struct {
	Name     string `json:"name" validate:"required"`
	Solution string `json:"solution"`
}

// CompareRequest evaluates several solutions against one shared problem.
type CompareRequest struct {
	Problem string         `json:"problem"`
	Entries []CompareEntry `json:"entries" validate:"required,min=2,dive"`
}

// CompareResponse is the raw provider reply for a comparative evaluation.
type CompareResponse struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Reply     string `json:"reply"`
	ElapsedMs int64  `json:"elapsed_ms"`
}
