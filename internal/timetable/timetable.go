// Package timetable implements the weekly timetable solver: a pure,
// deterministic computation that places courses onto a discretized week
// under hard occupancy constraints and ranks placements by soft
// preferences. It performs no I/O and holds no state between calls.
package timetable

import "fmt"

// DefaultDays is the day order used when a Config does not override it.
var DefaultDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Config fixes the grid geometry and the hard/soft interpretation of the
// ambiguous preference fields for one solver run.
type Config struct {
	// Days is the ordered set of schedulable day identifiers.
	Days []string
	// SlotMinutes is the grid granularity. Time strings must align to it.
	SlotMinutes int
	// PreferredDaysHard restricts a course with preferred days to exactly
	// those days instead of merely trying them first.
	PreferredDaysHard bool
	// MaxHoursHard turns Preferences.MaxHoursPerDay into a placement
	// rejection instead of a scoring penalty.
	MaxHoursHard bool
	// StepBudget caps the number of candidate evaluations across the whole
	// search. Zero selects defaultStepBudget.
	StepBudget int
}

func (c Config) withDefaults() Config {
	if len(c.Days) == 0 {
		c.Days = DefaultDays
	}
	if c.SlotMinutes <= 0 {
		c.SlotMinutes = 60
	}
	if c.StepBudget <= 0 {
		c.StepBudget = defaultStepBudget
	}
	return c
}

// Course is one unit of demand: a name, a required number of consecutive
// slots, and an optional preferred-day list in priority order.
type Course struct {
	Name          string
	Duration      int
	PreferredDays []string
}

// Window is the daily working-hours window in absolute slot indices,
// half-open: slots [Start, End) are schedulable.
type Window struct {
	Start int
	End   int
}

// FixedEvent is an immovable named occupant of the grid.
type FixedEvent struct {
	Name  string
	Day   string
	Start int
	End   int
}

// FreePeriod blocks an interval without naming it; it never appears in the
// output.
type FreePeriod struct {
	Day   string
	Start int
	End   int
}

// Preferences are soft unless a Config flag promotes them.
type Preferences struct {
	CompactSchedule    bool
	PreferredDays      []string
	MaxHoursPerDay     int
	MinBreakDuration   int
	MaxSessionDuration int
}

// Session is one placed contiguous block of a course.
type Session struct {
	Course string
	Day    string
	Start  int
	End    int
	// Unit and Units describe the split position, e.g. unit 2 of 3 when the
	// course was divided under MaxSessionDuration. Both are 1 for unsplit
	// courses.
	Unit  int
	Units int
}

// Placement is a complete, conflict-free weekly assignment.
type Placement struct {
	Sessions []Session
	Score    float64
	// Improvements counts accepted compaction moves.
	Improvements int
	// Backtracks counts undo steps taken during the search.
	Backtracks int
}

// InputError reports a request rejected before any search began.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

// InfeasibleError reports the courses that exhausted every candidate after
// backtracking. The remaining courses were placeable.
type InfeasibleError struct {
	Courses []string
}

func (e *InfeasibleError) Error() string {
	if len(e.Courses) == 1 {
		return fmt.Sprintf("no feasible placement for course %q", e.Courses[0])
	}
	return fmt.Sprintf("no feasible placement for %d courses", len(e.Courses))
}

// BudgetError reports an aborted search. It is distinct from infeasibility:
// the caller may retry with simpler input or a larger budget.
type BudgetError struct {
	Steps int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("search aborted after %d steps", e.Steps)
}
