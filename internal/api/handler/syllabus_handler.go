package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/service"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/response"
)

// SyllabusHandler syllabus endpoints
type SyllabusHandler struct {
	syllabusSvc    service.SyllabusService
	maxUploadBytes int64
}

// NewSyllabusHandler creates a SyllabusHandler
func NewSyllabusHandler(syllabusSvc service.SyllabusService, maxUploadBytes int64) *SyllabusHandler {
	return &SyllabusHandler{syllabusSvc: syllabusSvc, maxUploadBytes: maxUploadBytes}
}

// UploadSyllabus PDF upload, parsed by the model
// POST /api/v1/syllabi/upload
func (h *SyllabusHandler) UploadSyllabus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	filename, data, ok := readUpload(c, "file", h.maxUploadBytes)
	if !ok {
		return
	}

	syllabus, err := h.syllabusSvc.Upload(c.Request.Context(), userID, filename, data)
	if err != nil {
		h.handleSyllabusError(c, err)
		return
	}

	response.Created(c, syllabus)
}

// CreateSyllabus pasted syllabus text
// POST /api/v1/syllabi
func (h *SyllabusHandler) CreateSyllabus(c *gin.Context) {
	var req dto.CreateSyllabusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	syllabus, err := h.syllabusSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleSyllabusError(c, err)
		return
	}

	response.Created(c, syllabus)
}

// ListSyllabi syllabi of the caller, newest first
// GET /api/v1/syllabi
func (h *SyllabusHandler) ListSyllabi(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	syllabi, err := h.syllabusSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": syllabi})
}

// GetSyllabus
// GET /api/v1/syllabi/:id
func (h *SyllabusHandler) GetSyllabus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	syllabus, err := h.syllabusSvc.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.handleSyllabusError(c, err)
		return
	}

	response.OK(c, syllabus)
}

// UpdateSyllabus corrective edit of title, course name or parsed content
// PUT /api/v1/syllabi/:id
func (h *SyllabusHandler) UpdateSyllabus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSyllabusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	syllabus, err := h.syllabusSvc.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleSyllabusError(c, err)
		return
	}

	response.OK(c, syllabus)
}

// DeleteSyllabus
// DELETE /api/v1/syllabi/:id
func (h *SyllabusHandler) DeleteSyllabus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.syllabusSvc.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleSyllabusError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *SyllabusHandler) handleSyllabusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSyllabusNotFound):
		response.NotFound(c, 12001, "syllabus not found")
	case errors.Is(err, service.ErrUnsupportedFile):
		response.BadRequest(c, 12002, "only PDF files are supported")
	case errors.Is(err, service.ErrUnreadableFile):
		response.BadRequest(c, 12003, "could not extract text from file")
	case errors.Is(err, service.ErrEmptyContent):
		response.BadRequest(c, 12004, "syllabus content is empty")
	case errors.Is(err, service.ErrEmptyTitle):
		response.BadRequest(c, 12005, "syllabus title must not be empty")
	default:
		response.InternalErrorWithDetails(c, "failed to process syllabus", err)
	}
}
