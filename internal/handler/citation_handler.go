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

type citationGenerator interface {
	Generate(ctx context.Context, req dto.CitationRequest) (*dto.CitationResponse, error)
}

// CitationHandler exposes the citation generator endpoint.
type CitationHandler struct {
	service citationGenerator
}

// NewCitationHandler constructs the handler.
func NewCitationHandler(svc *service.CitationService) *CitationHandler {
	return &CitationHandler{service: svc}
}

// Generate godoc
// @Summary Format a citation from a DOI, URL, or paper title
// @Description DOI and title inputs are resolved against CrossRef. URL inputs are formatted from the supplied metadata.
// @Tags Citations
// @Accept json
// @Produce json
// @Param payload body dto.CitationRequest true "Citation payload"
// @Success 200 {object} response.Envelope
// @Router /citations/generate [post]
func (h *CitationHandler) Generate(c *gin.Context) {
	var req dto.CitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid citation payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
