package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
)

// SummaryRepository summary data access
type SummaryRepository interface {
	Create(ctx context.Context, summary *model.Summary) error
	GetByID(ctx context.Context, id int64) (*model.Summary, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Summary, error)
	Delete(ctx context.Context, id int64) error
}

type summaryRepo struct {
	db *gorm.DB
}

// NewSummaryRepo creates a SummaryRepository
func NewSummaryRepo(db *gorm.DB) SummaryRepository {
	return &summaryRepo{db: db}
}

func (r *summaryRepo) Create(ctx context.Context, summary *model.Summary) error {
	return r.db.WithContext(ctx).Create(summary).Error
}

func (r *summaryRepo) GetByID(ctx context.Context, id int64) (*model.Summary, error) {
	var s model.Summary
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *summaryRepo) ListByUser(ctx context.Context, userID int64) ([]model.Summary, error) {
	var list []model.Summary
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *summaryRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Summary{}).Error
}
