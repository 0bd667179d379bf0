package dto

// ConvertRequest converts a value between two units of one category.
type ConvertRequest struct {
	Category string  `json:"category" validate:"required,oneof=length weight temperature"`
	Value    float64 `json:"value"`
	FromUnit string  `json:"fromUnit" validate:"required"`
	ToUnit   string  `json:"toUnit" validate:"required"`
}

// ConvertResponse echoes the input alongside the converted value.
type ConvertResponse struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	FromUnit string  `json:"fromUnit"`
	ToUnit   string  `json:"toUnit"`
	Result   float64 `json:"result"`
}

// UnitCatalogResponse lists the supported units per category.
type UnitCatalogResponse struct {
	Categories map[string][]string `json:"categories"`
}
