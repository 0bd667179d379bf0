package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentools/studentools-api/internal/dto"
	"github.com/studentools/studentools-api/internal/service"
	appErrors "github.com/studentools/studentools-api/pkg/errors"
	"github.com/studentools/studentools-api/pkg/response"
)

const maxCourses = 64

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	CheckConflicts(ctx context.Context, req dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error)
	Proposal(ctx context.Context, id string) (service.Proposal, error)
}

type proposalExporter interface {
	Render(proposal service.Proposal, format string) (*service.ExportFile, error)
}

// TimetableHandler exposes timetable generation, conflict checking, and
// proposal export endpoints.
type TimetableHandler struct {
	service  timetableGenerator
	exporter proposalExporter
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService, exporter *service.ExportService) *TimetableHandler {
	return &TimetableHandler{service: svc, exporter: exporter}
}

// Generate godoc
// @Summary Generate a weekly timetable
// @Description Places the submitted courses on the weekly grid honoring fixed events, free periods, and preferences. Returns a proposal ID usable with the export endpoint.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generate timetable payload"
// @Success 200 {object} response.Envelope
// @Router /timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	if len(req.Courses) > maxCourses {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "courses exceeds supported limit"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// CheckConflicts godoc
// @Summary Detect overlaps among manually entered courses
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.ConflictCheckRequest true "Conflict check payload"
// @Success 200 {object} response.Envelope
// @Router /timetable/conflicts [post]
func (h *TimetableHandler) CheckConflicts(c *gin.Context) {
	var req dto.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid conflict check payload"))
		return
	}
	result, err := h.service.CheckConflicts(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Export godoc
// @Summary Export a stored timetable proposal
// @Description Renders a previously generated proposal as PDF, CSV, ICS, or PNG.
// @Tags Timetable
// @Produce octet-stream
// @Param id path string true "Proposal ID"
// @Param format query string true "Export format" Enums(pdf, csv, ics, png)
// @Success 200 {file} file
// @Router /timetable/proposals/{id}/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatPDF)
	proposal, err := h.service.Proposal(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.Render(proposal, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
