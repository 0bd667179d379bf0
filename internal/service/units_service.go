package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studentools/studentools-api/internal/dto"
	appErrors "github.com/studentools/studentools-api/pkg/errors"
)

const (
	CategoryLength      = "length"
	CategoryWeight      = "weight"
	CategoryTemperature = "temperature"
)

// Linear categories convert through a base unit factor. Meters for length,
// grams for weight.
var lengthFactors = map[string]float64{
	"mm":   0.001,
	"cm":   0.01,
	"m":    1,
	"km":   1000,
	"in":   0.0254,
	"ft":   0.3048,
	"yd":   0.9144,
	"mile": 1609.344,
}

var weightFactors = map[string]float64{
	"mg": 0.001,
	"g":  1,
	"kg": 1000,
	"t":  1_000_000,
	"oz": 28.349523125,
	"lb": 453.59237,
}

var temperatureUnits = []string{"celsius", "fahrenheit", "kelvin"}

// UnitsService converts values between measurement units.
type UnitsService struct {
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUnitsService constructs a UnitsService.
func NewUnitsService(validate *validator.Validate, logger *zap.Logger) *UnitsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitsService{validator: validate, logger: logger}
}

// Convert translates a value between two units of the same category.
func (s *UnitsService) Convert(_ context.Context, req dto.ConvertRequest) (*dto.ConvertResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conversion payload")
	}

	var (
		result float64
		err    error
	)
	switch req.Category {
	case CategoryLength:
		result, err = convertLinear(lengthFactors, req.Value, req.FromUnit, req.ToUnit)
	case CategoryWeight:
		result, err = convertLinear(weightFactors, req.Value, req.FromUnit, req.ToUnit)
	case CategoryTemperature:
		result, err = convertTemperature(req.Value, req.FromUnit, req.ToUnit)
	}
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	return &dto.ConvertResponse{
		Category: req.Category,
		Value:    req.Value,
		FromUnit: req.FromUnit,
		ToUnit:   req.ToUnit,
		Result:   math.Round(result*1e6) / 1e6,
	}, nil
}

// Catalog lists the supported units per category.
func (s *UnitsService) Catalog(_ context.Context) *dto.UnitCatalogResponse {
	return &dto.UnitCatalogResponse{
		Categories: map[string][]string{
			CategoryLength:      sortedKeys(lengthFactors),
			CategoryWeight:      sortedKeys(weightFactors),
			CategoryTemperature: append([]string(nil), temperatureUnits...),
		},
	}
}

func convertLinear(factors map[string]float64, value float64, from, to string) (float64, error) {
	fromFactor, ok := factors[from]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", from)
	}
	toFactor, ok := factors[to]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", to)
	}
	return value * fromFactor / toFactor, nil
}

func convertTemperature(value float64, from, to string) (float64, error) {
	var celsius float64
	switch from {
	case "celsius":
		celsius = value
	case "fahrenheit":
		celsius = (value - 32) * 5 / 9
	case "kelvin":
		celsius = value - 273.15
	default:
		return 0, fmt.Errorf("unknown unit %q", from)
	}

	switch to {
	case "celsius":
		return celsius, nil
	case "fahrenheit":
		return celsius*9/5 + 32, nil
	case "kelvin":
		return celsius + 273.15, nil
	default:
		return 0, fmt.Errorf("unknown unit %q", to)
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
