package prompt

import (
	"fmt"
	"strings"
)

// Style selects the prompt template used for a grading request.
type Style string

// Supported prompt styles.
const (
	StyleQuick             Style = "quick"
	StyleComprehensive     Style = "comprehensive"
	StyleJSON              Style = "json"
	StyleTeachingAssistant Style = "teaching_assistant"
	StyleDebug             Style = "debug"
	StyleIndustry          Style = "industry"
	StyleAlgorithmAnalysis Style = "algorithm_analysis"
	StyleCustom            Style = "custom"
)

var allStyles = []Style{
	StyleQuick,
	StyleComprehensive,
	StyleJSON,
	StyleTeachingAssistant,
	StyleDebug,
	StyleIndustry,
	StyleAlgorithmAnalysis,
	StyleCustom,
}

// Styles returns every supported style value.
func Styles() []Style {
	return append([]Style(nil), allStyles...)
}

// ParseStyle normalises and validates a style string.
func ParseStyle(value string) (Style, error) {
	normalised := Style(strings.ToLower(strings.TrimSpace(value)))
	for _, style := range allStyles {
		if normalised == style {
			return style, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, value)
}
