package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Akhil-Baki/ai-study-pilot/internal/ai"
	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
)

const defaultTutorHistoryLimit = 50

// ChatService AI tutor conversation
type ChatService interface {
	History(ctx context.Context, userID int64) ([]dto.ChatMessageResponse, error)
	Send(ctx context.Context, userID int64, req *dto.SendChatMessageRequest) (*dto.ChatExchangeResponse, error)
}

type chatService struct {
	repo         *repository.Repository
	gen          Generator
	historyLimit int
	logger       *zap.Logger
}

// NewChatService historyLimit caps the prior turns sent to the tutor
func NewChatService(repo *repository.Repository, gen Generator, historyLimit int, logger *zap.Logger) ChatService {
	if historyLimit <= 0 {
		historyLimit = defaultTutorHistoryLimit
	}
	return &chatService{repo: repo, gen: gen, historyLimit: historyLimit, logger: logger}
}

// ────────────────────── History ──────────────────────

func (s *chatService) History(ctx context.Context, userID int64) ([]dto.ChatMessageResponse, error) {
	messages, err := s.repo.ChatMessage.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list chat messages failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		result = append(result, toChatMessageResponse(&messages[i]))
	}
	return result, nil
}

// ────────────────────── Send ──────────────────────

// Send stores the question, asks the tutor and stores the answer.
// History is read before the question is written so it never contains the new turn.
func (s *chatService) Send(ctx context.Context, userID int64, req *dto.SendChatMessageRequest) (*dto.ChatExchangeResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	prior, err := s.repo.ChatMessage.ListRecentByUser(ctx, userID, s.historyLimit)
	if err != nil {
		s.logger.Error("load chat history failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	history := make([]ai.HistoryEntry, 0, len(prior))
	for _, m := range prior {
		history = append(history, ai.HistoryEntry{Content: m.Content, IsUserMessage: m.IsUserMessage})
	}

	userMsg := &model.ChatMessage{UserID: userID, Content: content, IsUserMessage: true}
	if err := s.repo.ChatMessage.Create(ctx, userMsg); err != nil {
		s.logger.Error("save user message failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	answer, err := s.gen.TutorResponse(ctx, content, history, req.ReferenceContent)
	if err != nil {
		s.logger.Error("tutor response failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	aiMsg := &model.ChatMessage{UserID: userID, Content: answer, IsUserMessage: false}
	if err := s.repo.ChatMessage.Create(ctx, aiMsg); err != nil {
		s.logger.Error("save tutor message failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.ChatExchangeResponse{
		UserMessage: toChatMessageResponse(userMsg),
		AIMessage:   toChatMessageResponse(aiMsg),
	}, nil
}

func toChatMessageResponse(m *model.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		ID:            m.ID,
		Content:       m.Content,
		IsUserMessage: m.IsUserMessage,
		CreatedAt:     formatTime(m.CreatedAt),
	}
}
