package rubric

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultTotalsOneHundred(t *testing.T) {
	r := Default()
	require.Equal(t, 100, r.Total())
	require.Len(t, r.Categories, 5)
}

func TestDefaultCategoryOrder(t *testing.T) {
	r := Default()
	require.Equal(t, []string{"Correctness", "Efficiency", "Data Structures", "Code Quality", "Testing"}, r.CategoryNames())
}

func TestDefaultCriteriaSumToCategoryWeight(t *testing.T) {
	for _, category := range Default().Categories {
		points := 0
		for _, criterion := range category.Criteria {
			points += criterion.Points
		}
		require.Equal(t, category.Weight, points, "category %s", category.Name)
	}
}

func TestCustomRubricDefinesOwnScale(t *testing.T) {
	r := Rubric{
		Categories: []Category{
			{Name: "Style", Weight: 30},
			{Name: "Substance", Weight: 20},
		},
	}
	require.Equal(t, 50, r.Total())
}

func TestRubricRoundTripsAsJSON(t *testing.T) {
	encoded, err := json.Marshal(Default())
	require.NoError(t, err)

	var decoded Rubric
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Equal(t, Default(), decoded)
}

func TestEmptyRubricTotalIsZero(t *testing.T) {
	require.Equal(t, 0, Rubric{}.Total())
}
