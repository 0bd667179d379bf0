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

type gpaCalculator interface {
	Calculate(ctx context.Context, req dto.GPARequest) (*dto.GPAResponse, error)
	Scales(ctx context.Context) *dto.GPAScalesResponse
}

// GPAHandler exposes GPA calculation endpoints.
type GPAHandler struct {
	service gpaCalculator
}

// NewGPAHandler constructs the handler.
func NewGPAHandler(svc *service.GPAService) *GPAHandler {
	return &GPAHandler{service: svc}
}

// Calculate godoc
// @Summary Compute a credit-weighted GPA
// @Tags GPA
// @Accept json
// @Produce json
// @Param payload body dto.GPARequest true "GPA payload"
// @Success 200 {object} response.Envelope
// @Router /gpa/calculate [post]
func (h *GPAHandler) Calculate(c *gin.Context) {
	var req dto.GPARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid GPA payload"))
		return
	}
	result, err := h.service.Calculate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Scales godoc
// @Summary List supported grading scales
// @Tags GPA
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /gpa/scales [get]
func (h *GPAHandler) Scales(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Scales(c.Request.Context()))
}
