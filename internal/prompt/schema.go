package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gradekit/gradekit-api/internal/rubric"
)

// resultExample renders the grading response shape embedded in JSON-style
// prompts. The block must stay parseable by a standard JSON parser so that
// callers can round-trip the real model reply through the same field names.
func resultExample(r rubric.Rubric) string {
	b := &strings.Builder{}
	b.WriteString("{\n")
	b.WriteString("    \"total_score\": 0,\n")
	b.WriteString("    \"percentage\": 0,\n")
	b.WriteString("    \"is_correct\": false,\n")
	b.WriteString("    \"detailed_scores\": {\n")
	for i, category := range r.Categories {
		fmt.Fprintf(b, "        %s: {\"score\": 0, \"max\": %d, \"feedback\": \"string\"}", jsonString(CategoryKey(category.Name)), category.Weight)
		if i < len(r.Categories)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("    },\n")
	b.WriteString(`    "issues": [
        {
            "line_number": 0,
            "code_line": "string",
            "hint": "string"
        }
    ],
    "strengths": ["string"],
    "recommendations": ["string"],
    "complexity_analysis": {
        "time_complexity": "string",
        "space_complexity": "string"
    }
}`)
	return b.String()
}

// CategoryKey turns a rubric category name into the JSON object key used in
// detailed_scores, e.g. "Data Structures" -> "data_structures".
func CategoryKey(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

func jsonString(value string) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return `""`
	}
	return string(encoded)
}
