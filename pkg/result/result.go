// Package result contains caller-side helpers for interpreting LLM grading
// replies. Dispatch itself never inspects replies; these helpers exist so
// callers do not have to re-implement fence stripping and shape checks.
package result

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// CategoryScore is one entry of the detailed_scores breakdown.
type CategoryScore struct {
	Score    float64 `json:"score"`
	Max      float64 `json:"max"`
	Feedback string  `json:"feedback"`
}

// Issue is a single line-level finding reported by the model.
type Issue struct {
	LineNumber int    `json:"line_number"`
	CodeLine   string `json:"code_line"`
	Hint       string `json:"hint"`
}

// ComplexityAnalysis captures the model's complexity assessment.
type ComplexityAnalysis struct {
	TimeComplexity  string `json:"time_complexity"`
	SpaceComplexity string `json:"space_complexity"`
}

// Grading is the full JSON-style grading reply.
type Grading struct {
	TotalScore         float64                  `json:"total_score"`
	Percentage         float64                  `json:"percentage"`
	IsCorrect          bool                     `json:"is_correct"`
	DetailedScores     map[string]CategoryScore `json:"detailed_scores"`
	Issues             []Issue                  `json:"issues"`
	Strengths          []string                 `json:"strengths"`
	Recommendations    []string                 `json:"recommendations"`
	ComplexityAnalysis *ComplexityAnalysis      `json:"complexity_analysis,omitempty"`
}

// Hints is the minimal teaching-assistant reply shape.
type Hints struct {
	IsCorrect bool    `json:"is_correct"`
	Hints     []Issue `json:"hints"`
}

const gradingSchema = `{
    "$schema": "https://json-schema.org/draft/2020-12/schema",
    "type": "object",
    "required": ["total_score", "detailed_scores"],
    "properties": {
        "total_score": {"type": "number"},
        "percentage": {"type": "number"},
        "is_correct": {"type": "boolean"},
        "detailed_scores": {
            "type": "object",
            "additionalProperties": {
                "type": "object",
                "required": ["score", "max"],
                "properties": {
                    "score": {"type": "number"},
                    "max": {"type": "number"},
                    "feedback": {"type": "string"}
                }
            }
        },
        "issues": {
            "type": "array",
            "items": {
                "type": "object",
                "properties": {
                    "line_number": {"type": "integer"},
                    "code_line": {"type": "string"},
                    "hint": {"type": "string"}
                }
            }
        },
        "strengths": {"type": "array", "items": {"type": "string"}},
        "recommendations": {"type": "array", "items": {"type": "string"}},
        "complexity_analysis": {
            "type": "object",
            "properties": {
                "time_complexity": {"type": "string"},
                "space_complexity": {"type": "string"}
            }
        }
    }
}`

var compiledGradingSchema = jsonschema.MustCompileString("grading.schema.json", gradingSchema)

// Parse interprets a JSON-style grading reply. Markdown code fences are
// stripped before parsing, and the decoded document is checked against the
// grading schema so malformed replies fail loudly instead of yielding a
// zero-valued Grading.
func Parse(reply string) (Grading, error) {
	payload := StripFences(reply)

	var document interface{}
	if err := json.Unmarshal([]byte(payload), &document); err != nil {
		return Grading{}, fmt.Errorf("decode grading reply: %w", err)
	}
	if err := compiledGradingSchema.Validate(document); err != nil {
		return Grading{}, fmt.Errorf("grading reply does not match schema: %w", err)
	}

	var grading Grading
	if err := json.Unmarshal([]byte(payload), &grading); err != nil {
		return Grading{}, fmt.Errorf("decode grading reply: %w", err)
	}
	return grading, nil
}

// ParseHints interprets a teaching-assistant reply.
func ParseHints(reply string) (Hints, error) {
	payload := StripFences(reply)

	var hints Hints
	if err := json.Unmarshal([]byte(payload), &hints); err != nil {
		return Hints{}, fmt.Errorf("decode hints reply: %w", err)
	}
	return hints, nil
}

// PercentOf computes the percentage of the total score against a rubric
// total. Custom rubrics define their own scale, so the caller supplies it.
func (g Grading) PercentOf(total int) float64 {
	if total <= 0 {
		return 0
	}
	return g.TotalScore / float64(total) * 100
}

// StripFences removes a wrapping markdown code fence, if present, and any
// leading "json" language marker.
func StripFences(reply string) string {
	text := strings.TrimSpace(reply)

	if start := strings.Index(text, "```json"); start >= 0 {
		text = text[start+len("```json"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	} else if start := strings.Index(text, "```"); start >= 0 {
		text = text[start+len("```"):]
		if end := strings.LastIndex(text, "```"); end >= 0 {
			text = text[:end]
		}
	}

	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "json\n")
	return strings.TrimSpace(text)
}

var (
	scoreLinePattern = regexp.MustCompile(`(?i)(?:total|score|grade):?\s*\**\s*(\d+(?:\.\d+)?)\s*/\s*\d+`)
	percentPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
)

// ExtractScore pulls a numeric score out of a prose reply, looking first for
// "TOTAL: n/m" style lines and then for a bare percentage. The second return
// reports whether anything was found.
func ExtractScore(reply string) (float64, bool) {
	if match := scoreLinePattern.FindStringSubmatch(reply); match != nil {
		score, err := strconv.ParseFloat(match[1], 64)
		if err == nil {
			return score, true
		}
	}
	if match := percentPattern.FindStringSubmatch(reply); match != nil {
		score, err := strconv.ParseFloat(match[1], 64)
		if err == nil {
			return score, true
		}
	}
	return 0, false
}
