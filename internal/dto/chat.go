package dto

// ── tutor chat DTO ──

// SendChatMessageRequest question for the tutor
type SendChatMessageRequest struct {
	Content          string `json:"content"           binding:"required"`
	ReferenceContent string `json:"reference_content"`
}

// ChatMessageResponse stored chat turn
type ChatMessageResponse struct {
	ID            int64  `json:"id"`
	Content       string `json:"content"`
	IsUserMessage bool   `json:"is_user_message"`
	CreatedAt     string `json:"created_at"`
}

// ChatExchangeResponse the user's message and the tutor's reply
type ChatExchangeResponse struct {
	UserMessage ChatMessageResponse `json:"user_message"`
	AIMessage   ChatMessageResponse `json:"ai_message"`
}
