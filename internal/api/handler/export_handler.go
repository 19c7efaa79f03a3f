package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Akhil-Baki/ai-study-pilot/internal/service"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/response"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler file download endpoints
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportTasks
// GET /api/v1/tasks/export
func (h *ExportHandler) ExportTasks(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportTasks(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	sendFile(c, buf, filename, mimeXLSX)
}

// ExportStudyPlanXLSX
// GET /api/v1/study-plans/:id/export.xlsx
func (h *ExportHandler) ExportStudyPlanXLSX(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportStudyPlanXLSX(c.Request.Context(), userID, id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	sendFile(c, buf, filename, mimeXLSX)
}

// ExportStudyPlanICS
// GET /api/v1/study-plans/:id/export.ics
func (h *ExportHandler) ExportStudyPlanICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportStudyPlanICS(c.Request.Context(), userID, id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	sendFile(c, buf, filename, mimeICS)
}

func sendFile(c *gin.Context, buf *bytes.Buffer, filename, contentType string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudyPlanNotFound):
		response.NotFound(c, 18001, "study plan not found")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalErrorWithDetails(c, "failed to generate export file", err)
	default:
		response.InternalError(c)
	}
}
