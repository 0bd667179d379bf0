package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultWindow() Window {
	return Window{Start: 8, End: 18}
}

func TestScheduleTrivialFit(t *testing.T) {
	placement, err := Schedule(
		[]Course{{Name: "Algorithms", Duration: 2}},
		defaultWindow(), nil, nil, Preferences{}, Config{},
	)
	require.NoError(t, err)
	require.Len(t, placement.Sessions, 1)
	s := placement.Sessions[0]
	assert.Equal(t, "Algorithms", s.Course)
	assert.Equal(t, "Monday", s.Day)
	assert.Equal(t, 8, s.Start)
	assert.Equal(t, 10, s.End)
}

func TestScheduleForcedInfeasibility(t *testing.T) {
	_, err := Schedule(
		[]Course{{Name: "Marathon", Duration: 10}},
		Window{Start: 8, End: 10}, nil, nil, Preferences{}, Config{},
	)
	var infeasible *InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	assert.Equal(t, []string{"Marathon"}, infeasible.Courses)
}

func TestScheduleFixedEventBlocksHardPreferredDay(t *testing.T) {
	_, err := Schedule(
		[]Course{{Name: "Physics", Duration: 2, PreferredDays: []string{"Monday"}}},
		Window{Start: 8, End: 10},
		[]FixedEvent{{Name: "Assembly", Day: "Monday", Start: 8, End: 10}},
		nil,
		Preferences{},
		Config{PreferredDaysHard: true},
	)
	var infeasible *InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	assert.Equal(t, []string{"Physics"}, infeasible.Courses)
}

func TestScheduleSoftPreferredDayFallsBack(t *testing.T) {
	placement, err := Schedule(
		[]Course{{Name: "Physics", Duration: 2, PreferredDays: []string{"Monday"}}},
		Window{Start: 8, End: 10},
		[]FixedEvent{{Name: "Assembly", Day: "Monday", Start: 8, End: 10}},
		nil,
		Preferences{},
		Config{PreferredDaysHard: false},
	)
	require.NoError(t, err)
	require.Len(t, placement.Sessions, 1)
	assert.Equal(t, "Tuesday", placement.Sessions[0].Day)
}

func TestScheduleGlobalPreferredDayOrdering(t *testing.T) {
	placement, err := Schedule(
		[]Course{{Name: "Lab", Duration: 2}},
		defaultWindow(), nil, nil,
		Preferences{PreferredDays: []string{"Wednesday", "Friday"}},
		Config{},
	)
	require.NoError(t, err)
	assert.Equal(t, "Wednesday", placement.Sessions[0].Day)
}

func TestScheduleSplitsLongCourse(t *testing.T) {
	placement, err := Schedule(
		[]Course{{Name: "Thesis", Duration: 5}},
		defaultWindow(), nil, nil,
		Preferences{MaxSessionDuration: 2},
		Config{},
	)
	require.NoError(t, err)
	require.Len(t, placement.Sessions, 3)

	total := 0
	daysUsed := map[string]bool{}
	for _, s := range placement.Sessions {
		dur := s.End - s.Start
		assert.LessOrEqual(t, dur, 2)
		assert.False(t, daysUsed[s.Day], "split sessions must land on distinct days")
		daysUsed[s.Day] = true
		total += dur
	}
	assert.Equal(t, 5, total)
}

func TestScheduleNoOverlapAndWindowContainment(t *testing.T) {
	courses := []Course{
		{Name: "Math", Duration: 3},
		{Name: "Chemistry", Duration: 2, PreferredDays: []string{"Monday", "Tuesday"}},
		{Name: "History", Duration: 2},
		{Name: "Art", Duration: 4},
	}
	fixed := []FixedEvent{{Name: "Club", Day: "Monday", Start: 10, End: 12}}
	free := []FreePeriod{{Day: "Tuesday", Start: 12, End: 13}}

	placement, err := Schedule(courses, defaultWindow(), fixed, free, Preferences{}, Config{})
	require.NoError(t, err)
	require.Len(t, placement.Sessions, len(courses))

	occupied := map[string][]Session{}
	for _, s := range placement.Sessions {
		assert.GreaterOrEqual(t, s.Start, 8)
		assert.LessOrEqual(t, s.End, 18)
		occupied[s.Day] = append(occupied[s.Day], s)
	}
	for day, sessions := range occupied {
		for i := 0; i < len(sessions); i++ {
			for j := i + 1; j < len(sessions); j++ {
				a, b := sessions[i], sessions[j]
				assert.False(t, a.Start < b.End && b.Start < a.End,
					"sessions %v and %v overlap on %s", a, b, day)
			}
		}
		for _, s := range sessions {
			for _, fe := range fixed {
				if fe.Day == day {
					assert.False(t, s.Start < fe.End && fe.Start < s.End,
						"session %v overlaps fixed event on %s", s, day)
				}
			}
			for _, fp := range free {
				if fp.Day == day {
					assert.False(t, s.Start < fp.End && fp.Start < s.End,
						"session %v overlaps free period on %s", s, day)
				}
			}
		}
	}
}

func TestScheduleDeterminism(t *testing.T) {
	courses := []Course{
		{Name: "A", Duration: 2, PreferredDays: []string{"Tuesday"}},
		{Name: "B", Duration: 3},
		{Name: "C", Duration: 1},
	}
	prefs := Preferences{CompactSchedule: true, PreferredDays: []string{"Friday"}, MaxSessionDuration: 2}

	first, err := Schedule(courses, defaultWindow(), nil, nil, prefs, Config{})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Schedule(courses, defaultWindow(), nil, nil, prefs, Config{})
		require.NoError(t, err)
		assert.Equal(t, first.Sessions, again.Sessions)
		assert.Equal(t, first.Score, again.Score)
	}
}

func TestScheduleCompletenessOnSuccess(t *testing.T) {
	courses := []Course{
		{Name: "A", Duration: 5},
		{Name: "B", Duration: 2},
		{Name: "C", Duration: 3},
	}
	placement, err := Schedule(courses, defaultWindow(), nil, nil,
		Preferences{MaxSessionDuration: 2}, Config{})
	require.NoError(t, err)
	// A splits 2+2+1, B stays whole, C splits 2+1.
	assert.Len(t, placement.Sessions, 6)
}

func TestScheduleHardMaxHoursPerDay(t *testing.T) {
	placement, err := Schedule(
		[]Course{
			{Name: "A", Duration: 3},
			{Name: "B", Duration: 3},
		},
		defaultWindow(), nil, nil,
		Preferences{MaxHoursPerDay: 4},
		Config{MaxHoursHard: true},
	)
	require.NoError(t, err)
	perDay := map[string]int{}
	for _, s := range placement.Sessions {
		perDay[s.Day] += s.End - s.Start
	}
	for day, total := range perDay {
		assert.LessOrEqual(t, total, 4, "day %s exceeds hard cap", day)
	}
}

func TestScheduleBacktrackingResolvesConflict(t *testing.T) {
	// Single day with free segments [8,11) and [12,14). Short is ordered
	// first (explicit day preference) and greedily takes 8-10, which leaves
	// no room for Long; only undoing Short and moving it to 12-14 lets Long
	// claim 8-11.
	placement, err := Schedule(
		[]Course{
			{Name: "Short", Duration: 2, PreferredDays: []string{"Monday"}},
			{Name: "Long", Duration: 3},
		},
		Window{Start: 8, End: 14},
		[]FixedEvent{{Name: "Seminar", Day: "Monday", Start: 11, End: 12}},
		nil,
		Preferences{},
		Config{Days: []string{"Monday"}},
	)
	require.NoError(t, err)
	require.Len(t, placement.Sessions, 2)
	byName := map[string]Session{}
	for _, s := range placement.Sessions {
		byName[s.Course] = s
	}
	assert.Equal(t, 8, byName["Long"].Start)
	assert.Equal(t, 11, byName["Long"].End)
	assert.Equal(t, 12, byName["Short"].Start)
	assert.GreaterOrEqual(t, placement.Backtracks, 1)
}

func TestScheduleReportsAllUnplaceableCourses(t *testing.T) {
	_, err := Schedule(
		[]Course{
			{Name: "Fits", Duration: 1},
			{Name: "TooBig", Duration: 5},
			{Name: "AlsoTooBig", Duration: 6},
		},
		Window{Start: 8, End: 10}, nil, nil, Preferences{}, Config{},
	)
	var infeasible *InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	assert.ElementsMatch(t, []string{"TooBig", "AlsoTooBig"}, infeasible.Courses)
}

func TestScheduleStepBudgetExceeded(t *testing.T) {
	courses := make([]Course, 8)
	for i := range courses {
		courses[i] = Course{Name: string(rune('A' + i)), Duration: 2}
	}
	_, err := Schedule(courses, defaultWindow(), nil, nil, Preferences{}, Config{StepBudget: 3})
	var budget *BudgetError
	require.ErrorAs(t, err, &budget)
}

func TestScheduleInvalidInput(t *testing.T) {
	t.Run("non-positive duration", func(t *testing.T) {
		_, err := Schedule([]Course{{Name: "Zero", Duration: 0}}, defaultWindow(), nil, nil, Preferences{}, Config{})
		var input *InputError
		require.ErrorAs(t, err, &input)
		assert.Contains(t, input.Field, "Zero")
	})
	t.Run("inverted window", func(t *testing.T) {
		_, err := Schedule([]Course{{Name: "X", Duration: 1}}, Window{Start: 18, End: 8}, nil, nil, Preferences{}, Config{})
		var input *InputError
		require.ErrorAs(t, err, &input)
	})
}

func TestScheduleCustomDaysAndGranularity(t *testing.T) {
	placement, err := Schedule(
		[]Course{{Name: "Weekend", Duration: 2}},
		Window{Start: 18, End: 22}, nil, nil,
		Preferences{},
		Config{Days: []string{"Saturday", "Sunday"}, SlotMinutes: 30},
	)
	require.NoError(t, err)
	require.Len(t, placement.Sessions, 1)
	assert.Equal(t, "Saturday", placement.Sessions[0].Day)
	assert.Equal(t, 18, placement.Sessions[0].Start)
}

func TestScheduleCompactKeepsInvariants(t *testing.T) {
	placement, err := Schedule(
		[]Course{
			{Name: "A", Duration: 2},
			{Name: "B", Duration: 2},
			{Name: "C", Duration: 1},
		},
		defaultWindow(),
		[]FixedEvent{{Name: "Lunch Talk", Day: "Monday", Start: 12, End: 13}},
		nil,
		Preferences{CompactSchedule: true},
		Config{},
	)
	require.NoError(t, err)
	byDay := map[string][]Session{}
	for _, s := range placement.Sessions {
		byDay[s.Day] = append(byDay[s.Day], s)
	}
	for _, sessions := range byDay {
		for i := 0; i < len(sessions); i++ {
			for j := i + 1; j < len(sessions); j++ {
				a, b := sessions[i], sessions[j]
				assert.False(t, a.Start < b.End && b.Start < a.End)
			}
		}
	}
	assert.GreaterOrEqual(t, placement.Improvements, 0)
}
