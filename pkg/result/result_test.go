package result

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const fencedReply = "Here is my evaluation:\n```json\n{\n" +
	`    "total_score": 82,
    "percentage": 82,
    "is_correct": true,
    "detailed_scores": {
        "correctness": {"score": 35, "max": 40, "feedback": "solid"},
        "efficiency": {"score": 20, "max": 27, "feedback": "could be linear"}
    },
    "issues": [
        {"line_number": 3, "code_line": "x = x + 2", "hint": "off by one"}
    ],
    "strengths": ["clear naming"],
    "recommendations": ["add tests"],
    "complexity_analysis": {"time_complexity": "O(n^2)", "space_complexity": "O(1)"}
}` + "\n```\nLet me know if you need more detail."

func TestParseFencedReply(t *testing.T) {
	grading, err := Parse(fencedReply)
	require.NoError(t, err)

	require.Equal(t, 82.0, grading.TotalScore)
	require.True(t, grading.IsCorrect)
	require.Len(t, grading.DetailedScores, 2)
	require.Equal(t, 35.0, grading.DetailedScores["correctness"].Score)
	require.Equal(t, "solid", grading.DetailedScores["correctness"].Feedback)
	require.Len(t, grading.Issues, 1)
	require.Equal(t, 3, grading.Issues[0].LineNumber)
	require.Equal(t, "x = x + 2", grading.Issues[0].CodeLine)
	require.NotNil(t, grading.ComplexityAnalysis)
	require.Equal(t, "O(n^2)", grading.ComplexityAnalysis.TimeComplexity)
}

func TestParseBareJSON(t *testing.T) {
	grading, err := Parse(`{"total_score": 50, "detailed_scores": {}}`)
	require.NoError(t, err)
	require.Equal(t, 50.0, grading.TotalScore)
}

func TestParseRejectsNonJSON(t *testing.T) {
	_, err := Parse("The code looks great, 90/100!")
	require.Error(t, err)
}

func TestParseRejectsSchemaViolation(t *testing.T) {
	// total_score must be a number, not a string.
	_, err := Parse(`{"total_score": "eighty", "detailed_scores": {}}`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema")
}

func TestParseRejectsMissingRequiredFields(t *testing.T) {
	_, err := Parse(`{"percentage": 90}`)
	require.Error(t, err)
}

func TestParseHints(t *testing.T) {
	reply := "```json\n" + `{
    "is_correct": false,
    "hints": [
        {"line_number": 2, "code_line": "return n", "hint": "missing base case"}
    ]
}` + "\n```"

	hints, err := ParseHints(reply)
	require.NoError(t, err)
	require.False(t, hints.IsCorrect)
	require.Len(t, hints.Hints, 1)
	require.Equal(t, "missing base case", hints.Hints[0].Hint)
}

func TestStripFences(t *testing.T) {
	require.Equal(t, `{"a": 1}`, StripFences("```json\n{\"a\": 1}\n```"))
	require.Equal(t, `{"a": 1}`, StripFences("```\njson\n{\"a\": 1}\n```"))
	require.Equal(t, `{"a": 1}`, StripFences(`{"a": 1}`))
	require.Equal(t, `{"a": 1}`, StripFences("  prose before ```json\n{\"a\": 1}\n``` prose after"))
}

func TestExtractScore(t *testing.T) {
	score, ok := ExtractScore("**TOTAL: 87/100 points**")
	require.True(t, ok)
	require.Equal(t, 87.0, score)

	score, ok = ExtractScore("Final Grade: 42.5/50")
	require.True(t, ok)
	require.Equal(t, 42.5, score)

	score, ok = ExtractScore("I would give this about 73% overall.")
	require.True(t, ok)
	require.Equal(t, 73.0, score)

	_, ok = ExtractScore("No numbers to speak of here.")
	require.False(t, ok)
}

func TestPercentOf(t *testing.T) {
	grading := Grading{TotalScore: 30}
	require.Equal(t, 60.0, grading.PercentOf(50))
	require.Equal(t, 30.0, grading.PercentOf(100))
	require.Equal(t, 0.0, grading.PercentOf(0))
}
