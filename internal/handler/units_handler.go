package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentools/studentools-api/internal/dto"
	"github.com/studentools/studentools-api/internal/service"
	appErrors "github.com/studentools/studentools-api/pkg/errors"
	"github.com/studentools/studentools-api/pkg/response"
)

type unitConverter interface {
	Convert(ctx context.Context, req dto.ConvertRequest) (*dto.ConvertResponse, error)
	Catalog(ctx context.Context) *dto.UnitCatalogResponse
}

// UnitsHandler exposes unit conversion endpoints.
type UnitsHandler struct {
	service unitConverter
}

// NewUnitsHandler constructs the handler.
func NewUnitsHandler(svc *service.UnitsService) *UnitsHandler {
	return &UnitsHandler{service: svc}
}

// Convert godoc
// @Summary Convert a value between measurement units
// @Tags Units
// @Accept json
// @Produce json
// @Param payload body dto.ConvertRequest true "Conversion payload"
// @Success 200 {object} response.Envelope
// @Router /units/convert [post]
func (h *UnitsHandler) Convert(c *gin.Context) {
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid conversion payload"))
		return
	}
	result, err := h.service.Convert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Catalog godoc
// @Summary List supported units per category
// @Tags Units
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /units/catalog [get]
func (h *UnitsHandler) Catalog(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Catalog(c.Request.Context()))
}
