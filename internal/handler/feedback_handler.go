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

type feedbackReceiver interface {
	Submit(ctx context.Context, req dto.FeedbackRequest) (*dto.FeedbackResponse, error)
}

// FeedbackHandler exposes the feedback endpoint.
type FeedbackHandler struct {
	service feedbackReceiver
}

// NewFeedbackHandler constructs the handler.
func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// Submit godoc
// @Summary Submit user feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body dto.FeedbackRequest true "Feedback payload"
// @Success 201 {object} response.Envelope
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid feedback payload"))
		return
	}
	result, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
