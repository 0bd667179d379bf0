package dto

// GPACourse is one graded course with its credit weight.
type GPACourse struct {
	Name    string  `json:"name"`
	Grade   string  `json:"grade" validate:"required"`
	Credits float64 `json:"credits" validate:"required,gt=0"`
}

// GPARequest computes a credit-weighted GPA on the selected scale.
type GPARequest struct {
	Courses   []GPACourse `json:"courses" validate:"required,min=1,dive"`
	ScaleType string      `json:"scaleType" validate:"omitempty,oneof=4.0 5.0"`
}

// GPAResponse is the rounded GPA plus totals.
type GPAResponse struct {
	GPA          float64 `json:"gpa"`
	TotalCredits float64 `json:"totalCredits"`
	TotalCourses int     `json:"totalCourses"`
	ScaleType    string  `json:"scaleType"`
}

// GPAScalesResponse exposes the supported grade-point mappings.
type GPAScalesResponse struct {
	Scales          map[string]map[string]float64 `json:"scales"`
	AvailableGrades []string                      `json:"availableGrades"`
}
