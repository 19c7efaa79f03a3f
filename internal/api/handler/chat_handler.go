package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/service"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/response"
)

// ChatHandler tutor chat endpoints
type ChatHandler struct {
	chatSvc service.ChatService
}

// NewChatHandler creates a ChatHandler
func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// GetHistory full conversation, oldest first
// GET /api/v1/chat
func (h *ChatHandler) GetHistory(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	messages, err := h.chatSvc.History(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": messages})
}

// SendMessage ask the tutor
// POST /api/v1/chat
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req dto.SendChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	exchange, err := h.chatSvc.Send(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			response.BadRequest(c, 17001, "message is empty")
			return
		}
		response.InternalErrorWithDetails(c, "failed to get tutor response", err)
		return
	}

	response.Created(c, exchange)
}
