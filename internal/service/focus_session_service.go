package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
	pkgerrors "github.com/Akhil-Baki/ai-study-pilot/pkg/errors"
)

// ── focus session errors ──

var (
	ErrFocusSessionNotFound = errors.New("focus session not found")
	ErrFocusSessionEnded    = errors.New("focus session already ended")
)

// FocusSessionService timed focus blocks
type FocusSessionService interface {
	Start(ctx context.Context, userID int64, req *dto.StartFocusSessionRequest) (*dto.FocusSessionResponse, error)
	End(ctx context.Context, userID, id int64) (*dto.FocusSessionResponse, error)
	List(ctx context.Context, userID int64) ([]dto.FocusSessionResponse, error)
}

type focusSessionService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewFocusSessionService creates a FocusSessionService
func NewFocusSessionService(repo *repository.Repository, logger *zap.Logger) FocusSessionService {
	return &focusSessionService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Start ──────────────────────

func (s *focusSessionService) Start(ctx context.Context, userID int64, req *dto.StartFocusSessionRequest) (*dto.FocusSessionResponse, error) {
	if req.TaskID != nil {
		task, err := s.repo.Task.GetByID(ctx, *req.TaskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskNotFound
			}
			s.logger.Error("query task failed", zap.Int64("task_id", *req.TaskID), zap.Error(err))
			return nil, err
		}
		if task.UserID != userID {
			return nil, ErrTaskNotFound
		}
	}

	session := &model.FocusSession{
		UserID:    userID,
		TaskID:    req.TaskID,
		Duration:  req.Duration,
		StartTime: s.now(),
	}
	if err := s.repo.FocusSession.Create(ctx, session); err != nil {
		s.logger.Error("create focus session failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toFocusSessionResponse(session), nil
}

// ────────────────────── End ──────────────────────

func (s *focusSessionService) End(ctx context.Context, userID, id int64) (*dto.FocusSessionResponse, error) {
	session, err := s.repo.FocusSession.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFocusSessionNotFound
		}
		s.logger.Error("query focus session failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrFocusSessionNotFound
	}
	if session.EndTime != nil {
		return nil, ErrFocusSessionEnded
	}

	end := s.now()
	if err := s.repo.FocusSession.End(ctx, id, end); err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrStateConflict):
			return nil, ErrFocusSessionEnded
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrFocusSessionNotFound
		}
		s.logger.Error("end focus session failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	session.EndTime = &end
	return toFocusSessionResponse(session), nil
}

// ────────────────────── List ──────────────────────

func (s *focusSessionService) List(ctx context.Context, userID int64) ([]dto.FocusSessionResponse, error) {
	sessions, err := s.repo.FocusSession.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list focus sessions failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.FocusSessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *toFocusSessionResponse(&sessions[i]))
	}
	return result, nil
}

func toFocusSessionResponse(f *model.FocusSession) *dto.FocusSessionResponse {
	return &dto.FocusSessionResponse{
		ID:        f.ID,
		TaskID:    f.TaskID,
		Duration:  f.Duration,
		StartTime: formatTime(f.StartTime),
		EndTime:   formatOptionalTime(f.EndTime),
		CreatedAt: formatTime(f.CreatedAt),
	}
}
