package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gradekit/gradekit-api/internal/rubric"
)

// Composition errors. Empty problem or solution text is deliberately not an
// error: the composer passes caller input through untouched.
var (
	ErrUnknownStyle       = errors.New("unknown prompt style")
	ErrRubricRequired     = errors.New("custom style requires a rubric")
	ErrComplexityRequired = errors.New("algorithm_analysis style requires expected complexity")
)

// Request carries everything needed to compose a single grading prompt.
// It is consumed by value; Compose never mutates it.
type Request struct {
	Problem            string
	Solution           string
	ModelSolution      string
	Style              Style
	Rubric             *rubric.Rubric
	ExpectedComplexity string
}

// Entry is one named solution in a comparative composition.
type Entry struct {
	Name     string
	Solution string
}

const systemPreamble = `You are an expert computer science professor evaluating student code submissions.

Your evaluation approach:
- Thorough analysis across multiple dimensions
- Fair and consistent scoring
- Constructive feedback for learning
- Clear justification for scores`

// Compose renders the prompt for a grading request. It is a pure function:
// identical requests always produce byte-identical output.
func Compose(req Request) (string, error) {
	switch req.Style {
	case StyleQuick:
		return composeQuick(req), nil
	case StyleComprehensive:
		return composeComprehensive(req, rubric.Default()), nil
	case StyleJSON:
		return composeJSON(req, rubric.Default()), nil
	case StyleTeachingAssistant:
		return composeTeachingAssistant(req), nil
	case StyleDebug:
		return composeDebug(req), nil
	case StyleIndustry:
		return composeIndustry(req), nil
	case StyleAlgorithmAnalysis:
		if strings.TrimSpace(req.ExpectedComplexity) == "" {
			return "", ErrComplexityRequired
		}
		return composeAlgorithmAnalysis(req), nil
	case StyleCustom:
		if req.Rubric == nil {
			return "", ErrRubricRequired
		}
		return composeComprehensive(req, *req.Rubric), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, req.Style)
	}
}

// ComposeComparative renders N solutions against one shared problem and asks
// the model for a relative ranking. This is a distinct template, not a loop
// over Compose.
func ComposeComparative(problem string, entries []Entry) (string, error) {
	if len(entries) == 0 {
		return "", errors.New("comparative composition requires at least one entry")
	}

	b := &strings.Builder{}
	b.WriteString(systemPreamble)
	b.WriteString("\n\n## PROBLEM:\n")
	b.WriteString(problem)
	b.WriteString("\n")

	for i, entry := range entries {
		fmt.Fprintf(b, "\n## SUBMISSION %d (%s):\n", i+1, entry.Name)
		writeCodeBlock(b, entry.Solution)
	}

	fmt.Fprintf(b, `
## COMPARATIVE EVALUATION:
Compare the %d submissions above against the same problem. Provide:

1. A ranking from strongest to weakest, referring to each submission by its name.
2. For each submission, a short justification covering correctness, efficiency, and code quality.
3. The key difference that separates the strongest submission from the rest.
`, len(entries))

	return b.String(), nil
}

func composeQuick(req Request) string {
	b := &strings.Builder{}
	b.WriteString(systemPreamble)
	writeProblem(b, req.Problem)
	writeModelSolution(b, req.ModelSolution)
	writeStudentCode(b, req.Solution)

	r := rubric.Default()
	b.WriteString("\n## SCORING CATEGORIES:\n")
	for _, category := range r.Categories {
		fmt.Fprintf(b, "- %s (%d pts)\n", category.Name, category.Weight)
	}
	fmt.Fprintf(b, `
## REQUIRED OUTPUT:
Give a single total score out of %d and one short paragraph of overall feedback. Do not break the score down further.
`, r.Total())

	return b.String()
}

func composeComprehensive(req Request, r rubric.Rubric) string {
	b := &strings.Builder{}
	b.WriteString(systemPreamble)
	writeProblem(b, req.Problem)
	writeModelSolution(b, req.ModelSolution)
	writeStudentCode(b, req.Solution)
	writeRubric(b, r)

	b.WriteString(`
## EVALUATION INSTRUCTIONS:
Provide a comprehensive evaluation including:

1. **FUNCTIONALITY ANALYSIS**
   - Does the code solve the problem correctly?
   - What test cases would it pass or fail?
   - Are there logical errors or bugs?

2. **EFFICIENCY EVALUATION**
   - Time and space complexity analysis
   - Is this optimal for the problem?
   - Suggestions for optimization

3. **CODE QUALITY ASSESSMENT**
   - Readability and maintainability
   - Best practices adherence
   - Areas for improvement

4. **SCORING BREAKDOWN**
`)
	for _, category := range r.Categories {
		fmt.Fprintf(b, "   - %s: ___/%d points\n", category.Name, category.Weight)
	}
	fmt.Fprintf(b, "\n   **TOTAL: ___/%d points**\n", r.Total())
	b.WriteString(`
5. **RECOMMENDATIONS**
   - Top 3 strengths
   - Top 3 areas for improvement
   - Specific suggestions for enhancement
`)

	return b.String()
}

func composeJSON(req Request, r rubric.Rubric) string {
	b := &strings.Builder{}
	b.WriteString(systemPreamble)
	writeProblem(b, req.Problem)
	writeModelSolution(b, req.ModelSolution)
	writeStudentCode(b, req.Solution)
	writeRubric(b, r)

	b.WriteString("\n## REQUIRED OUTPUT:\nRespond with ONLY a valid JSON object in this exact format:\n\n```json\n")
	b.WriteString(resultExample(r))
	b.WriteString("\n```\n\nEvaluate the code now and respond with only the JSON object.\n")

	return b.String()
}

func composeTeachingAssistant(req Request) string {
	return fmt.Sprintf(`I want you to act as a programming teacher that helps students solve programming assignments.

Review the student's code for the following problem:

Problem: %s

Student Code: %s

Identify if the code executes correctly and fulfills the problem's requirements. If not, provide a JSON object with:
- "is_correct": A boolean indicating whether the code is correct.
- "hints": An array of objects, each with:
  - "line_number": The line number of the issue.
  - "code_line": The code line with the issue.
  - "hint": A short explanation of what is wrong.

Example output:
{
    "is_correct": false,
    "hints": [
        {
            "line_number": 3,
            "code_line": "x = x + 2",
            "hint": "The variable 'x' is used before being initialized."
        }
    ]
}

If the code is correct, return:
{
    "is_correct": true,
    "hints": []
}`, req.Problem, req.Solution)
}

func composeDebug(req Request) string {
	b := &strings.Builder{}
	b.WriteString("You are an experienced debugging mentor. Your goal is to find and fix defects, not to assign a score.")
	writeProblem(b, req.Problem)
	writeModelSolution(b, req.ModelSolution)
	writeStudentCode(b, req.Solution)

	b.WriteString(`
## DEBUGGING TASK:
1. Identify every defect in the code above: logic errors, boundary mistakes, crashes, and misuse of language features.
2. For each defect, name the offending line, explain why it misbehaves, and show the corrected line.
3. After fixing all defects, present the fully corrected solution.
4. If the code has no defects, say so explicitly and explain why it is correct.
`)

	return b.String()
}

func composeIndustry(req Request) string {
	b := &strings.Builder{}
	b.WriteString("You are a senior software engineer performing a professional code review, the way you would for a colleague's pull request.")
	writeProblem(b, req.Problem)
	writeModelSolution(b, req.ModelSolution)
	writeStudentCode(b, req.Solution)

	b.WriteString(`
## REVIEW INSTRUCTIONS:
Review the change against professional engineering norms rather than an academic rubric:

- Naming: are identifiers descriptive and consistent?
- Structure: is the code organised into cohesive units with clear responsibilities?
- Maintainability: how easy would this be to modify or extend safely?
- Robustness: how does it behave on unexpected input or failure paths?
- Conventions: does it follow the idioms of its language?

Finish with a verdict of either "approve" or "request changes" and list the blocking issues, if any.
`)

	return b.String()
}

func composeAlgorithmAnalysis(req Request) string {
	b := &strings.Builder{}
	b.WriteString("You are an algorithms instructor analysing the complexity of a student's solution.")
	writeProblem(b, req.Problem)
	writeModelSolution(b, req.ModelSolution)
	writeStudentCode(b, req.Solution)

	fmt.Fprintf(b, "\n## EXPECTED COMPLEXITY:\n%s\n", req.ExpectedComplexity)
	b.WriteString(`
## ANALYSIS TASK:
1. Derive the actual time complexity and space complexity of the student code, showing your reasoning.
2. Compare the actual complexity against the expected complexity stated above.
3. If the code misses the expected bound, identify the operation responsible and outline an approach that meets it.
4. State clearly whether the submission meets, beats, or misses the expected complexity.
`)

	return b.String()
}

func writeProblem(b *strings.Builder, problem string) {
	b.WriteString("\n\n## PROBLEM:\n")
	b.WriteString(problem)
	b.WriteString("\n")
}

func writeModelSolution(b *strings.Builder, modelSolution string) {
	if modelSolution == "" {
		return
	}
	b.WriteString("\n## REFERENCE SOLUTION:\n")
	writeCodeBlock(b, modelSolution)
}

func writeStudentCode(b *strings.Builder, solution string) {
	b.WriteString("\n## STUDENT CODE:\n")
	writeCodeBlock(b, solution)
}

func writeCodeBlock(b *strings.Builder, code string) {
	b.WriteString("```\n")
	b.WriteString(code)
	b.WriteString("\n```\n")
}

func writeRubric(b *strings.Builder, r rubric.Rubric) {
	fmt.Fprintf(b, "\n## GRADING RUBRIC (%d points total):\n", r.Total())
	for _, category := range r.Categories {
		fmt.Fprintf(b, "\n%s (%d points):\n", category.Name, category.Weight)
		for _, criterion := range category.Criteria {
			fmt.Fprintf(b, "- %s (%d pts)\n", criterion.Name, criterion.Points)
		}
	}
}
