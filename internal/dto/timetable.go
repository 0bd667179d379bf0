package dto

// CourseRequest describes one course to place on the weekly grid.
// Duration is counted in grid slots.
type CourseRequest struct {
	Name          string   `json:"name" validate:"required"`
	Duration      int      `json:"duration" validate:"required,min=1"`
	PreferredDays []string `json:"preferredDays"`
}

// FreePeriodRequest blocks an interval from any placement.
type FreePeriodRequest struct {
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// TimeConstraintsRequest bounds the daily working window.
type TimeConstraintsRequest struct {
	StartTime   string              `json:"startTime" validate:"required"`
	EndTime     string              `json:"endTime" validate:"required"`
	FreePeriods []FreePeriodRequest `json:"freePeriods" validate:"omitempty,dive"`
}

// FixedEventRequest is an immovable named occupant supplied by the caller.
type FixedEventRequest struct {
	Name      string `json:"name" validate:"required"`
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// TimetablePreferences carries the soft scheduling preferences. The
// duration fields are counted in grid slots.
type TimetablePreferences struct {
	CompactSchedule    bool     `json:"compactSchedule"`
	PreferredDays      []string `json:"preferredDays"`
	MaxHoursPerDay     int      `json:"maxHoursPerDay" validate:"omitempty,min=1"`
	MinBreakDuration   int      `json:"minBreakDuration" validate:"omitempty,min=1"`
	MaxSessionDuration int      `json:"maxSessionDuration" validate:"omitempty,min=1"`
}

// GenerateTimetableRequest is the scheduler entry payload.
type GenerateTimetableRequest struct {
	Courses     []CourseRequest        `json:"courses" validate:"required,min=1,dive"`
	Constraints TimeConstraintsRequest `json:"constraints" validate:"required"`
	FixedEvents []FixedEventRequest    `json:"fixedEvents" validate:"omitempty,dive"`
	Preferences TimetablePreferences   `json:"preferences"`
}

// TimetableEntry is one rendered row of the generated timetable. Fixed
// events are echoed back alongside placed sessions with a reserved color.
type TimetableEntry struct {
	CourseName string `json:"courseName"`
	Day        string `json:"day"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Color      string `json:"color"`
}

// TimetableStats summarises the search effort behind a proposal.
type TimetableStats struct {
	Backtracks   int     `json:"backtracks"`
	Improvements int     `json:"improvements"`
	Score        float64 `json:"score"`
}

// GenerateTimetableResponse reports either a full placement or, with
// Success false, the courses that could not be placed.
type GenerateTimetableResponse struct {
	ProposalID  string           `json:"proposalId,omitempty"`
	Success     bool             `json:"success"`
	Timetable   []TimetableEntry `json:"timetable"`
	Unplaceable []string         `json:"unplaceable,omitempty"`
	Message     string           `json:"message"`
	Stats       *TimetableStats  `json:"stats,omitempty"`
}

// ManualCourseRequest is a manually-entered course for the conflict check.
type ManualCourseRequest struct {
	Name      string   `json:"name" validate:"required"`
	Days      []string `json:"days" validate:"required,min=1"`
	StartTime string   `json:"startTime" validate:"required"`
	EndTime   string   `json:"endTime" validate:"required"`
}

// ConflictCheckRequest asks for pairwise overlaps among manual courses.
type ConflictCheckRequest struct {
	Courses []ManualCourseRequest `json:"courses" validate:"required,dive"`
}

// ConflictPair names two overlapping courses and their shared days.
type ConflictPair struct {
	Courses []string `json:"courses"`
	Days    []string `json:"days"`
	Message string   `json:"message"`
}

// ConflictCheckResponse lists every detected overlap.
type ConflictCheckResponse struct {
	Conflicts []ConflictPair `json:"conflicts"`
}
