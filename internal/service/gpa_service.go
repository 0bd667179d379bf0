package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studentools/studentools-api/internal/dto"
	appErrors "github.com/studentools/studentools-api/pkg/errors"
)

const (
	ScaleFourPoint = "4.0"
	ScaleFivePoint = "5.0"
)

var gradeScales = map[string]map[string]float64{
	ScaleFourPoint: {"A": 4, "B": 3, "C": 2, "D": 1, "F": 0},
	ScaleFivePoint: {"A": 5, "B": 4, "C": 3, "D": 2, "E": 1, "F": 0},
}

// GPAService computes credit-weighted grade point averages.
type GPAService struct {
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGPAService constructs a GPAService.
func NewGPAService(validate *validator.Validate, logger *zap.Logger) *GPAService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GPAService{validator: validate, logger: logger}
}

// Calculate averages the grade points of the submitted courses weighted by
// their credits, rounded to two decimals.
func (s *GPAService) Calculate(_ context.Context, req dto.GPARequest) (*dto.GPAResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid GPA payload")
	}

	scaleType := req.ScaleType
	if scaleType == "" {
		scaleType = ScaleFourPoint
	}
	scale := gradeScales[scaleType]

	var totalPoints, totalCredits float64
	for i, course := range req.Courses {
		points, ok := scale[strings.ToUpper(strings.TrimSpace(course.Grade))]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("courses[%d]: grade %q is not on the %s scale", i, course.Grade, scaleType))
		}
		totalPoints += points * course.Credits
		totalCredits += course.Credits
	}
	if totalCredits == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "total credits must be greater than zero")
	}

	gpa := math.Round(totalPoints/totalCredits*100) / 100

	return &dto.GPAResponse{
		GPA:          gpa,
		TotalCredits: totalCredits,
		TotalCourses: len(req.Courses),
		ScaleType:    scaleType,
	}, nil
}

// Scales exposes the supported grade-point mappings.
func (s *GPAService) Scales(_ context.Context) *dto.GPAScalesResponse {
	grades := make(map[string]struct{})
	for _, scale := range gradeScales {
		for grade := range scale {
			grades[grade] = struct{}{}
		}
	}
	available := make([]string, 0, len(grades))
	for grade := range grades {
		available = append(available, grade)
	}
	sort.Strings(available)

	return &dto.GPAScalesResponse{
		Scales:          gradeScales,
		AvailableGrades: available,
	}
}
