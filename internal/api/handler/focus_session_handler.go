package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/service"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/response"
)

// FocusSessionHandler focus timer endpoints
type FocusSessionHandler struct {
	focusSvc service.FocusSessionService
}

// NewFocusSessionHandler creates a FocusSessionHandler
func NewFocusSessionHandler(focusSvc service.FocusSessionService) *FocusSessionHandler {
	return &FocusSessionHandler{focusSvc: focusSvc}
}

// StartFocusSession
// POST /api/v1/focus-sessions
func (h *FocusSessionHandler) StartFocusSession(c *gin.Context) {
	var req dto.StartFocusSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.focusSvc.Start(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleFocusError(c, err)
		return
	}

	response.Created(c, session)
}

// EndFocusSession
// PUT /api/v1/focus-sessions/:id/end
func (h *FocusSessionHandler) EndFocusSession(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.focusSvc.End(c.Request.Context(), userID, id)
	if err != nil {
		h.handleFocusError(c, err)
		return
	}

	response.OK(c, session)
}

// ListFocusSessions
// GET /api/v1/focus-sessions
func (h *FocusSessionHandler) ListFocusSessions(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	sessions, err := h.focusSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

func (h *FocusSessionHandler) handleFocusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFocusSessionNotFound):
		response.NotFound(c, 16001, "focus session not found")
	case errors.Is(err, service.ErrFocusSessionEnded):
		response.Conflict(c, 16002, "focus session already ended")
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 16003, "task not found")
	default:
		response.InternalError(c)
	}
}
