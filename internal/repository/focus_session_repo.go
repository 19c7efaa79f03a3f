package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	pkgerrors "github.com/Akhil-Baki/ai-study-pilot/pkg/errors"
)

// FocusSessionRepository focus session data access
type FocusSessionRepository interface {
	Create(ctx context.Context, session *model.FocusSession) error
	GetByID(ctx context.Context, id int64) (*model.FocusSession, error)
	ListByUser(ctx context.Context, userID int64) ([]model.FocusSession, error)
	// End stamps end_time once; a session that already ended yields pkgerrors.ErrStateConflict.
	End(ctx context.Context, id int64, endTime time.Time) error
}

type focusSessionRepo struct {
	db *gorm.DB
}

// NewFocusSessionRepo creates a FocusSessionRepository
func NewFocusSessionRepo(db *gorm.DB) FocusSessionRepository {
	return &focusSessionRepo{db: db}
}

func (r *focusSessionRepo) Create(ctx context.Context, session *model.FocusSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *focusSessionRepo) GetByID(ctx context.Context, id int64) (*model.FocusSession, error) {
	var s model.FocusSession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *focusSessionRepo) ListByUser(ctx context.Context, userID int64) ([]model.FocusSession, error) {
	var list []model.FocusSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *focusSessionRepo) End(ctx context.Context, id int64, endTime time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.FocusSession{}).
		Where("id = ? AND end_time IS NULL", id).
		Update("end_time", endTime)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrStateConflict
	}
	return nil
}
