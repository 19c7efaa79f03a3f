package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/service"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/response"
)

// SummaryHandler summarizer endpoints
type SummaryHandler struct {
	summarySvc     service.SummaryService
	maxUploadBytes int64
}

// NewSummaryHandler creates a SummaryHandler
func NewSummaryHandler(summarySvc service.SummaryService, maxUploadBytes int64) *SummaryHandler {
	return &SummaryHandler{summarySvc: summarySvc, maxUploadBytes: maxUploadBytes}
}

// Summarize JSON body, or multipart with an optional PDF/text file
// POST /api/v1/summarize
func (h *SummaryHandler) Summarize(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SummarizeRequest
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		if err := c.ShouldBind(&req); err != nil {
			response.BadRequest(c, 10001, "validation failed")
			return
		}
		if _, err := c.FormFile("file"); err == nil {
			filename, data, ok := readUpload(c, "file", h.maxUploadBytes)
			if !ok {
				return
			}
			summary, err := h.summarySvc.SummarizeFile(c.Request.Context(), userID, filename, data, &req)
			if err != nil {
				h.handleSummaryError(c, err)
				return
			}
			response.Created(c, summary)
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	summary, err := h.summarySvc.Summarize(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleSummaryError(c, err)
		return
	}

	response.Created(c, summary)
}

// ListSummaries paged, newest first
// GET /api/v1/summaries?page=1&page_size=20
func (h *SummaryHandler) ListSummaries(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}
	page.Normalize()

	list, total, err := h.summarySvc.List(c.Request.Context(), userID, &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, page.Page, page.PageSize)
}

// DeleteSummary
// DELETE /api/v1/summaries/:id
func (h *SummaryHandler) DeleteSummary(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.summarySvc.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleSummaryError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *SummaryHandler) handleSummaryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSummaryNotFound):
		response.NotFound(c, 14001, "summary not found")
	case errors.Is(err, service.ErrInvalidSummaryFormat):
		response.BadRequest(c, 14002, "format must be bullet_points or paragraphs")
	case errors.Is(err, service.ErrEmptyContent):
		response.BadRequest(c, 14003, "content is empty")
	case errors.Is(err, service.ErrUnsupportedFile):
		response.BadRequest(c, 14004, "only PDF or text files are supported")
	case errors.Is(err, service.ErrUnreadableFile):
		response.BadRequest(c, 14005, "could not extract text from file")
	default:
		response.InternalErrorWithDetails(c, "failed to summarize content", err)
	}
}
