package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
)

// TaskRepository task data access
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id int64) error
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo creates a TaskRepository
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	var t model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByUser open tasks first, then by due date
func (r *taskRepo) ListByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	var list []model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed ASC, due_date IS NULL, due_date ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *taskRepo) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).
		Model(task).
		Select("title", "description", "due_date", "priority", "category", "completed", "updated_at").
		Updates(task).Error
}

func (r *taskRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error
}
