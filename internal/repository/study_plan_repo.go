package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
)

// StudyPlanRepository study plan data access
type StudyPlanRepository interface {
	// Create inserts the plan header only; sessions are created separately.
	Create(ctx context.Context, plan *model.StudyPlan) error
	GetByID(ctx context.Context, id int64) (*model.StudyPlan, error)
	ListByUser(ctx context.Context, userID int64) ([]model.StudyPlan, error)
	// Delete removes the plan together with its sessions.
	Delete(ctx context.Context, id int64) error
}

// StudySessionRepository study session data access
type StudySessionRepository interface {
	Create(ctx context.Context, session *model.StudySession) error
	GetByID(ctx context.Context, id int64) (*model.StudySession, error)
	ListByPlan(ctx context.Context, planID int64) ([]model.StudySession, error)
	UpdateCompleted(ctx context.Context, id int64, completed bool) error
}

// ── StudyPlan ──

type studyPlanRepo struct {
	db *gorm.DB
}

// NewStudyPlanRepo creates a StudyPlanRepository
func NewStudyPlanRepo(db *gorm.DB) StudyPlanRepository {
	return &studyPlanRepo{db: db}
}

func orderedSessions(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

func (r *studyPlanRepo) Create(ctx context.Context, plan *model.StudyPlan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(plan).Error
}

func (r *studyPlanRepo) GetByID(ctx context.Context, id int64) (*model.StudyPlan, error) {
	var plan model.StudyPlan
	err := r.db.WithContext(ctx).
		Preload("Sessions", orderedSessions).
		Where("id = ?", id).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *studyPlanRepo) ListByUser(ctx context.Context, userID int64) ([]model.StudyPlan, error) {
	var plans []model.StudyPlan
	err := r.db.WithContext(ctx).
		Preload("Sessions", orderedSessions).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&plans).Error
	return plans, err
}

func (r *studyPlanRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("study_plan_id = ?", id).Delete(&model.StudySession{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.StudyPlan{}).Error
	})
}

// ── StudySession ──

type studySessionRepo struct {
	db *gorm.DB
}

// NewStudySessionRepo creates a StudySessionRepository
func NewStudySessionRepo(db *gorm.DB) StudySessionRepository {
	return &studySessionRepo{db: db}
}

func (r *studySessionRepo) Create(ctx context.Context, session *model.StudySession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *studySessionRepo) GetByID(ctx context.Context, id int64) (*model.StudySession, error) {
	var s model.StudySession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studySessionRepo) ListByPlan(ctx context.Context, planID int64) ([]model.StudySession, error) {
	var list []model.StudySession
	err := orderedSessions(r.db.WithContext(ctx)).
		Where("study_plan_id = ?", planID).
		Find(&list).Error
	return list, err
}

func (r *studySessionRepo) UpdateCompleted(ctx context.Context, id int64, completed bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.StudySession{}).
		Where("id = ?", id).
		Update("completed", completed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
