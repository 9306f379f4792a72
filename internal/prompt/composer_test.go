package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gradekit/gradekit-api/internal/rubric"
)

const (
	testProblem  = "Write a function to find the maximum element in a list"
	testSolution = "def find_max(numbers):\n    return max(numbers) if numbers else None"
)

func baseRequest(style Style) Request {
	return Request{
		Problem:            testProblem,
		Solution:           testSolution,
		Style:              style,
		ExpectedComplexity: "O(n) time, O(1) space",
		Rubric: &rubric.Rubric{
			Categories: []rubric.Category{
				{Name: "Elegance", Weight: 60, Criteria: []rubric.Criterion{{Name: "Brevity", Points: 60}}},
				{Name: "Wit", Weight: 40, Criteria: []rubric.Criterion{{Name: "Cleverness", Points: 40}}},
			},
		},
	}
}

func TestComposeIncludesProblemAndSolutionVerbatim(t *testing.T) {
	for _, style := range Styles() {
		t.Run(string(style), func(t *testing.T) {
			composed, err := Compose(baseRequest(style))
			require.NoError(t, err)
			require.NotEmpty(t, composed)
			require.Contains(t, composed, testProblem)
			require.Contains(t, composed, testSolution)
		})
	}
}

func TestComposeIsIdempotent(t *testing.T) {
	for _, style := range Styles() {
		first, err := Compose(baseRequest(style))
		require.NoError(t, err)
		second, err := Compose(baseRequest(style))
		require.NoError(t, err)
		require.Equal(t, first, second, "style %s", style)
	}
}

func TestComposeUnknownStyle(t *testing.T) {
	_, err := Compose(Request{Problem: testProblem, Solution: testSolution, Style: Style("sarcastic")})
	require.ErrorIs(t, err, ErrUnknownStyle)
}

func TestComposeCustomRequiresRubric(t *testing.T) {
	req := baseRequest(StyleCustom)
	req.Rubric = nil
	_, err := Compose(req)
	require.ErrorIs(t, err, ErrRubricRequired)
}

func TestComposeAlgorithmAnalysisRequiresComplexity(t *testing.T) {
	req := baseRequest(StyleAlgorithmAnalysis)
	req.ExpectedComplexity = "  "
	_, err := Compose(req)
	require.ErrorIs(t, err, ErrComplexityRequired)

	req.ExpectedComplexity = "O(log n)"
	composed, err := Compose(req)
	require.NoError(t, err)
	require.Contains(t, composed, "O(log n)")
	require.Contains(t, composed, "EXPECTED COMPLEXITY")
}

func TestComposeEmptyInputPassesThrough(t *testing.T) {
	composed, err := Compose(Request{Style: StyleQuick})
	require.NoError(t, err)
	require.NotEmpty(t, composed)
}

func TestQuickStyleOmitsCriteria(t *testing.T) {
	composed, err := Compose(baseRequest(StyleQuick))
	require.NoError(t, err)

	for _, category := range rubric.Default().Categories {
		require.Equal(t, 1, strings.Count(composed, category.Name), "category %s", category.Name)
		for _, criterion := range category.Criteria {
			require.NotContains(t, composed, criterion.Name)
		}
	}
	require.Contains(t, composed, "out of 100")
}

func TestJSONStyleRendersRubricExactlyOnce(t *testing.T) {
	composed, err := Compose(baseRequest(StyleJSON))
	require.NoError(t, err)

	for _, category := range rubric.Default().Categories {
		header := fmt.Sprintf("%s (%d points):", category.Name, category.Weight)
		require.Equal(t, 1, strings.Count(composed, header), "category %s", category.Name)
		for _, criterion := range category.Criteria {
			line := fmt.Sprintf("%s (%d pts)", criterion.Name, criterion.Points)
			require.Equal(t, 1, strings.Count(composed, line), "criterion %s", criterion.Name)
		}
	}
}

func TestJSONStyleEmbedsParseableExample(t *testing.T) {
	composed, err := Compose(baseRequest(StyleJSON))
	require.NoError(t, err)

	start := strings.Index(composed, "```json")
	require.GreaterOrEqual(t, start, 0)
	rest := composed[start+len("```json"):]
	end := strings.Index(rest, "```")
	require.GreaterOrEqual(t, end, 0)

	var example map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), &example))

	for _, field := range []string{"total_score", "percentage", "is_correct", "detailed_scores", "issues", "strengths", "recommendations", "complexity_analysis"} {
		require.Contains(t, example, field)
	}

	var detailed map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(example["detailed_scores"], &detailed))
	require.Len(t, detailed, 5)
	for _, key := range []string{"correctness", "efficiency", "data_structures", "code_quality", "testing"} {
		require.Contains(t, detailed, key)
		for _, field := range []string{"score", "max", "feedback"} {
			require.Contains(t, detailed[key], field)
		}
	}

	var issues []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(example["issues"], &issues))
	require.NotEmpty(t, issues)
	for _, field := range []string{"line_number", "code_line", "hint"} {
		require.Contains(t, issues[0], field)
	}
}

func TestCustomStyleUsesCallerRubric(t *testing.T) {
	composed, err := Compose(baseRequest(StyleCustom))
	require.NoError(t, err)

	require.Contains(t, composed, "Elegance (60 points):")
	require.Contains(t, composed, "Wit (40 points):")
	require.Contains(t, composed, "Brevity (60 pts)")
	require.Contains(t, composed, "100 points total")
	require.NotContains(t, composed, "Correctness")
	require.NotContains(t, composed, "Data Structures")
}

func TestCustomStyleNonStandardTotal(t *testing.T) {
	req := baseRequest(StyleCustom)
	req.Rubric = &rubric.Rubric{
		Categories: []rubric.Category{{Name: "Only", Weight: 40}},
	}
	composed, err := Compose(req)
	require.NoError(t, err)
	require.Contains(t, composed, "40 points total")
	require.Contains(t, composed, "TOTAL: ___/40 points")
}

func TestTeachingAssistantStyleShape(t *testing.T) {
	composed, err := Compose(baseRequest(StyleTeachingAssistant))
	require.NoError(t, err)

	require.Contains(t, composed, `"is_correct"`)
	require.Contains(t, composed, `"hints"`)
	require.Contains(t, composed, `"line_number"`)
	require.Contains(t, composed, `"code_line"`)
	require.Contains(t, composed, `"hint"`)
	require.NotContains(t, composed, "GRADING RUBRIC")
}

func TestDebugStyleAsksForFixesNotScores(t *testing.T) {
	composed, err := Compose(baseRequest(StyleDebug))
	require.NoError(t, err)
	require.Contains(t, composed, "defect")
	require.NotContains(t, composed, "GRADING RUBRIC")
}

func TestIndustryStyleAsksForReviewVerdict(t *testing.T) {
	composed, err := Compose(baseRequest(StyleIndustry))
	require.NoError(t, err)
	require.Contains(t, composed, "request changes")
	require.NotContains(t, composed, "GRADING RUBRIC")
}

func TestModelSolutionSectionOnlyWhenProvided(t *testing.T) {
	req := baseRequest(StyleComprehensive)
	composed, err := Compose(req)
	require.NoError(t, err)
	require.NotContains(t, composed, "REFERENCE SOLUTION")

	req.ModelSolution = "def find_max(numbers):\n    return max(numbers)"
	composed, err = Compose(req)
	require.NoError(t, err)
	require.Contains(t, composed, "REFERENCE SOLUTION")
	require.Contains(t, composed, req.ModelSolution)
}

func TestComposeComparativeOrderAndUniqueness(t *testing.T) {
	entries := []Entry{
		{Name: "alice", Solution: "def f(): return 1"},
		{Name: "bob", Solution: "def f(): return 2"},
		{Name: "carol", Solution: "def f(): return 3"},
	}

	composed, err := ComposeComparative(testProblem, entries)
	require.NoError(t, err)
	require.Contains(t, composed, testProblem)

	previous := -1
	for _, entry := range entries {
		require.Equal(t, 1, strings.Count(composed, entry.Name), "name %s", entry.Name)
		require.Equal(t, 1, strings.Count(composed, entry.Solution), "solution of %s", entry.Name)

		position := strings.Index(composed, entry.Name)
		require.Greater(t, position, previous)
		previous = position
	}
}

func TestComposeComparativeRequiresEntries(t *testing.T) {
	_, err := ComposeComparative(testProblem, nil)
	require.Error(t, err)
}

func TestParseStyle(t *testing.T) {
	style, err := ParseStyle("  Teaching_Assistant ")
	require.NoError(t, err)
	require.Equal(t, StyleTeachingAssistant, style)

	_, err = ParseStyle("essay")
	require.ErrorIs(t, err, ErrUnknownStyle)
}

func TestCategoryKey(t *testing.T) {
	require.Equal(t, "data_structures", CategoryKey("Data Structures"))
	require.Equal(t, "code_quality", CategoryKey(" Code  Quality "))
	require.Equal(t, "correctness", CategoryKey("Correctness"))
	require.Equal(t, "big_o_analysis", CategoryKey("Big-O Analysis"))
}
