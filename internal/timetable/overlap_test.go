package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindConflicts(t *testing.T) {
	courses := []ManualCourse{
		{Name: "Calculus", Days: []string{"Monday", "Wednesday"}, Start: 8, End: 10},
		{Name: "Biology", Days: []string{"Monday"}, Start: 9, End: 11},
		{Name: "French", Days: []string{"Tuesday"}, Start: 8, End: 10},
		{Name: "Drawing", Days: []string{"Wednesday"}, Start: 10, End: 12},
	}
	conflicts := FindConflicts(courses)
	require.Len(t, conflicts, 1)
	assert.Equal(t, [2]string{"Calculus", "Biology"}, conflicts[0].Courses)
	assert.Equal(t, []string{"Monday"}, conflicts[0].Days)
}

func TestFindConflictsAdjacentIntervalsDoNotConflict(t *testing.T) {
	// Half-open intervals: 8-10 and 10-12 share the boundary slot only.
	conflicts := FindConflicts([]ManualCourse{
		{Name: "A", Days: []string{"Monday"}, Start: 8, End: 10},
		{Name: "B", Days: []string{"Monday"}, Start: 10, End: 12},
	})
	assert.Empty(t, conflicts)
}

func TestFindConflictsSharedDaysListed(t *testing.T) {
	conflicts := FindConflicts([]ManualCourse{
		{Name: "A", Days: []string{"Monday", "Thursday", "Friday"}, Start: 8, End: 12},
		{Name: "B", Days: []string{"Thursday", "Friday"}, Start: 11, End: 13},
	})
	require.Len(t, conflicts, 1)
	assert.Equal(t, []string{"Thursday", "Friday"}, conflicts[0].Days)
}
