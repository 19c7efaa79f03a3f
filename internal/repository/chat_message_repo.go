package repository

import (
	"context"
	"slices"

	"gorm.io/gorm"

	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
)

// ChatMessageRepository tutor conversation data access
type ChatMessageRepository interface {
	Create(ctx context.Context, msg *model.ChatMessage) error
	// ListByUser full history, oldest first
	ListByUser(ctx context.Context, userID int64) ([]model.ChatMessage, error)
	// ListRecentByUser the last limit messages, still oldest first
	ListRecentByUser(ctx context.Context, userID int64, limit int) ([]model.ChatMessage, error)
}

type chatMessageRepo struct {
	db *gorm.DB
}

// NewChatMessageRepo creates a ChatMessageRepository
func NewChatMessageRepo(db *gorm.DB) ChatMessageRepository {
	return &chatMessageRepo{db: db}
}

func (r *chatMessageRepo) Create(ctx context.Context, msg *model.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatMessageRepo) ListByUser(ctx context.Context, userID int64) ([]model.ChatMessage, error) {
	var list []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *chatMessageRepo) ListRecentByUser(ctx context.Context, userID int64, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		return r.ListByUser(ctx, userID)
	}
	var list []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	slices.Reverse(list)
	return list, nil
}
