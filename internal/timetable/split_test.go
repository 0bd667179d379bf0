package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDurations(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		maxSess int
		want    []int
	}{
		{"no cap", 5, 0, []int{5}},
		{"under cap", 2, 4, []int{2}},
		{"exact cap", 4, 4, []int{4}},
		{"five by two", 5, 2, []int{2, 2, 1}},
		{"seven by three", 7, 3, []int{3, 2, 2}},
		{"six by two", 6, 2, []int{2, 2, 2}},
		{"nine by four", 9, 4, []int{3, 3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitDurations(tt.total, tt.maxSess)
			assert.Equal(t, tt.want, got)
			sum := 0
			for _, d := range got {
				assert.LessOrEqual(t, d, max(tt.maxSess, tt.total))
				sum += d
			}
			assert.Equal(t, tt.total, sum)
		})
	}
}

func TestBuildUnitsRejectsNonPositiveDuration(t *testing.T) {
	_, err := buildUnits([]Course{{Name: "Bad", Duration: -1}}, 0)
	var input *InputError
	require.ErrorAs(t, err, &input)
}

func TestBuildUnitsMarksSplitCourses(t *testing.T) {
	units, err := buildUnits([]Course{
		{Name: "Whole", Duration: 2},
		{Name: "Split", Duration: 5},
	}, 2)
	require.NoError(t, err)
	require.Len(t, units, 4)
	assert.False(t, units[0].split)
	for _, u := range units[1:] {
		assert.True(t, u.split)
		assert.Equal(t, 3, u.units)
	}
}
