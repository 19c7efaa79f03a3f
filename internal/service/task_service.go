package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
)

// ── task errors ──

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidPriority = errors.New("priority must be one of urgent, high, medium, regular, low")
	ErrInvalidCategory = errors.New("category must be one of study, assignment, personal")
	ErrEmptyTaskTitle  = errors.New("task title must not be empty")
)

// TaskService to-do management
type TaskService interface {
	Create(ctx context.Context, userID int64, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	List(ctx context.Context, userID int64) ([]dto.TaskResponse, error)
	GetByID(ctx context.Context, userID, id int64) (*dto.TaskResponse, error)
	Update(ctx context.Context, userID, id int64, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	Delete(ctx context.Context, userID, id int64) error
}

type taskService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTaskService creates a TaskService
func NewTaskService(repo *repository.Repository, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, logger: logger}
}

var (
	validPriorities = map[string]bool{
		model.PriorityUrgent:  true,
		model.PriorityHigh:    true,
		model.PriorityMedium:  true,
		model.PriorityRegular: true,
		model.PriorityLow:     true,
	}
	validCategories = map[string]bool{
		model.CategoryStudy:      true,
		model.CategoryAssignment: true,
		model.CategoryPersonal:   true,
	}
)

// ────────────────────── Create ──────────────────────

func (s *taskService) Create(ctx context.Context, userID int64, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !validPriorities[priority] {
		return nil, ErrInvalidPriority
	}
	category := req.Category
	if category == "" {
		category = model.CategoryStudy
	}
	if !validCategories[category] {
		return nil, ErrInvalidCategory
	}

	task := &model.Task{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
		Category:    category,
	}
	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("create task failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toTaskResponse(task), nil
}

// ────────────────────── List ──────────────────────

func (s *taskService) List(ctx context.Context, userID int64) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list tasks failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, *toTaskResponse(&tasks[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *taskService) GetByID(ctx context.Context, userID, id int64) (*dto.TaskResponse, error) {
	task, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// ────────────────────── Update ──────────────────────

func (s *taskService) Update(ctx context.Context, userID, id int64, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrEmptyTaskTitle
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.ClearDueDate {
		task.DueDate = nil
	} else if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Priority != nil {
		if !validPriorities[*req.Priority] {
			return nil, ErrInvalidPriority
		}
		task.Priority = *req.Priority
	}
	if req.Category != nil {
		if !validCategories[*req.Category] {
			return nil, ErrInvalidCategory
		}
		task.Category = *req.Category
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("update task failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return toTaskResponse(task), nil
}

// ────────────────────── Delete ──────────────────────

func (s *taskService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Task.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		s.logger.Error("delete task failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *taskService) owned(ctx context.Context, userID, id int64) (*model.Task, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("query task failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func toTaskResponse(t *model.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     formatOptionalTime(t.DueDate),
		Priority:    t.Priority,
		Category:    t.Category,
		Completed:   t.Completed,
		CreatedAt:   formatTime(t.CreatedAt),
		UpdatedAt:   formatTime(t.UpdatedAt),
	}
}
