package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
)

// SyllabusRepository syllabus data access
type SyllabusRepository interface {
	Create(ctx context.Context, syllabus *model.Syllabus) error
	GetByID(ctx context.Context, id int64) (*model.Syllabus, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Syllabus, error)
	Update(ctx context.Context, syllabus *model.Syllabus) error
	Delete(ctx context.Context, id int64) error
}

type syllabusRepo struct {
	db *gorm.DB
}

// NewSyllabusRepo creates a SyllabusRepository
func NewSyllabusRepo(db *gorm.DB) SyllabusRepository {
	return &syllabusRepo{db: db}
}

func (r *syllabusRepo) Create(ctx context.Context, syllabus *model.Syllabus) error {
	return r.db.WithContext(ctx).Create(syllabus).Error
}

func (r *syllabusRepo) GetByID(ctx context.Context, id int64) (*model.Syllabus, error) {
	var s model.Syllabus
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *syllabusRepo) ListByUser(ctx context.Context, userID int64) ([]model.Syllabus, error) {
	var list []model.Syllabus
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *syllabusRepo) Update(ctx context.Context, syllabus *model.Syllabus) error {
	return r.db.WithContext(ctx).
		Model(syllabus).
		Select("title", "course_name", "parsed_content", "updated_at").
		Updates(syllabus).Error
}

func (r *syllabusRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Syllabus{}).Error
}
