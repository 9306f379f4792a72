package rubric

// Criterion is a single named line item within a rubric category.
type Criterion struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Category groups criteria under a weighted scoring dimension.
type Category struct {
	Name     string      `json:"name"`
	Weight   int         `json:"weight"`
	Criteria []Criterion `json:"criteria"`
}

// Rubric is an ordered weighted scoring schema. It is plain data: custom
// rubrics arrive as JSON and are rendered as-is, category order preserved.
type Rubric struct {
	Categories []Category `json:"categories"`
}

// Total returns the sum of category weights. The default rubric totals 100;
// custom rubrics define their own grading scale.
func (r Rubric) Total() int {
	total := 0
	for _, category := range r.Categories {
		total += category.Weight
	}
	return total
}

// CategoryNames returns the category names in rubric order.
func (r Rubric) CategoryNames() []string {
	names := make([]string, 0, len(r.Categories))
	for _, category := range r.Categories {
		names = append(names, category.Name)
	}
	return names
}

// Default returns the fixed 100-point grading rubric.
func Default() Rubric {
	return Rubric{
		Categories: []Category{
			{
				Name:   "Correctness",
				Weight: 40,
				Criteria: []Criterion{
					{Name: "Test Case Coverage", Points: 20},
					{Name: "Edge Case Handling", Points: 10},
					{Name: "No Syntax Errors", Points: 5},
					{Name: "Logical Accuracy", Points: 5},
				},
			},
			{
				Name:   "Efficiency",
				Weight: 27,
				Criteria: []Criterion{
					{Name: "Time Complexity", Points: 11},
					{Name: "Optimal Algorithm", Points: 10},
					{Name: "Space Complexity", Points: 6},
				},
			},
			{
				Name:   "Data Structures",
				Weight: 15,
				Criteria: []Criterion{
					{Name: "Structure Selection", Points: 8},
					{Name: "Usage Efficiency", Points: 7},
				},
			},
			{
				Name:   "Code Quality",
				Weight: 10,
				Criteria: []Criterion{
					{Name: "Documentation", Points: 4},
					{Name: "Modularity", Points: 3},
					{Name: "Naming", Points: 3},
				},
			},
			{
				Name:   "Testing",
				Weight: 8,
				Criteria: []Criterion{
					{Name: "Test Design", Points: 4},
					{Name: "Debugging", Points: 2},
					{Name: "Error Handling", Points: 2},
				},
			},
		},
	}
}
