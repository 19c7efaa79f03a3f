package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Akhil-Baki/ai-study-pilot/internal/ai"
	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
)

// ── study plan errors ──

var (
	ErrStudyPlanNotFound    = errors.New("study plan not found")
	ErrStudySessionNotFound = errors.New("study session not found")
	ErrInvalidDate          = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidDateRange     = errors.New("end_date must not be before start_date")
)

// StudyPlanService plan generation and progress tracking
type StudyPlanService interface {
	Generate(ctx context.Context, userID int64, req *dto.CreateStudyPlanRequest) (*dto.StudyPlanResponse, error)
	List(ctx context.Context, userID int64) ([]dto.StudyPlanResponse, error)
	GetByID(ctx context.Context, userID, id int64) (*dto.StudyPlanResponse, error)
	Delete(ctx context.Context, userID, id int64) error
	UpdateSession(ctx context.Context, userID, sessionID int64, completed bool) (*dto.StudySessionResponse, error)
}

type studyPlanService struct {
	repo         *repository.Repository
	gen          Generator
	materializer *PlanMaterializer
	logger       *zap.Logger
}

// NewStudyPlanService creates a StudyPlanService
func NewStudyPlanService(
	repo *repository.Repository,
	gen Generator,
	materializer *PlanMaterializer,
	logger *zap.Logger,
) StudyPlanService {
	return &studyPlanService{
		repo:         repo,
		gen:          gen,
		materializer: materializer,
		logger:       logger,
	}
}

// ────────────────────── Generate ──────────────────────

func (s *studyPlanService) Generate(ctx context.Context, userID int64, req *dto.CreateStudyPlanRequest) (*dto.StudyPlanResponse, error) {
	start, err := time.Parse(model.DateLayout, strings.TrimSpace(req.StartDate))
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse(model.DateLayout, strings.TrimSpace(req.EndDate))
	if err != nil {
		return nil, ErrInvalidDate
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	syllabus, err := s.repo.Syllabus.GetByID(ctx, req.SyllabusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSyllabusNotFound
		}
		s.logger.Error("query syllabus failed", zap.Int64("id", req.SyllabusID), zap.Error(err))
		return nil, err
	}
	if syllabus.UserID != userID {
		return nil, ErrSyllabusNotFound
	}

	parsed := syllabus.Parsed()
	plan, err := s.gen.GenerateStudyPlan(ctx, syllabus.Content, parsed.ExamDateStrings(), ai.PlanPreferences{
		StartDate:           start.Format(model.DateLayout),
		EndDate:             end.Format(model.DateLayout),
		HoursPerDay:         req.Preferences.HoursPerDay,
		PreferredStudyTimes: req.Preferences.PreferredStudyTimes,
		ExcludedDays:        req.Preferences.ExcludedDays,
	})
	if err != nil {
		s.logger.Error("generate study plan failed", zap.Int64("syllabus_id", syllabus.ID), zap.Error(err))
		return nil, err
	}

	syllabusID := syllabus.ID
	stored, err := s.materializer.Materialize(ctx, userID, &syllabusID, plan, start, end)
	if err != nil {
		return nil, err
	}

	return toStudyPlanResponse(stored), nil
}

// ────────────────────── List ──────────────────────

func (s *studyPlanService) List(ctx context.Context, userID int64) ([]dto.StudyPlanResponse, error) {
	plans, err := s.repo.StudyPlan.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list study plans failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudyPlanResponse, 0, len(plans))
	for i := range plans {
		result = append(result, *toStudyPlanResponse(&plans[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studyPlanService) GetByID(ctx context.Context, userID, id int64) (*dto.StudyPlanResponse, error) {
	plan, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toStudyPlanResponse(plan), nil
}

// ────────────────────── Delete ──────────────────────

func (s *studyPlanService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.StudyPlan.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudyPlanNotFound
		}
		s.logger.Error("delete study plan failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── UpdateSession ──────────────────────

func (s *studyPlanService) UpdateSession(ctx context.Context, userID, sessionID int64, completed bool) (*dto.StudySessionResponse, error) {
	session, err := s.repo.StudySession.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudySessionNotFound
		}
		s.logger.Error("query study session failed", zap.Int64("id", sessionID), zap.Error(err))
		return nil, err
	}

	if _, err := s.owned(ctx, userID, session.StudyPlanID); err != nil {
		if errors.Is(err, ErrStudyPlanNotFound) {
			return nil, ErrStudySessionNotFound
		}
		return nil, err
	}

	if err := s.repo.StudySession.UpdateCompleted(ctx, sessionID, completed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudySessionNotFound
		}
		s.logger.Error("update study session failed", zap.Int64("id", sessionID), zap.Error(err))
		return nil, err
	}

	session.Completed = completed
	resp := toStudySessionResponse(session)
	return &resp, nil
}

// ── helpers ──

func (s *studyPlanService) owned(ctx context.Context, userID, id int64) (*model.StudyPlan, error) {
	plan, err := s.repo.StudyPlan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudyPlanNotFound
		}
		s.logger.Error("query study plan failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrStudyPlanNotFound
	}
	return plan, nil
}

func toStudyPlanResponse(p *model.StudyPlan) *dto.StudyPlanResponse {
	sessions := make([]dto.StudySessionResponse, 0, len(p.Sessions))
	for i := range p.Sessions {
		sessions = append(sessions, toStudySessionResponse(&p.Sessions[i]))
	}
	return &dto.StudyPlanResponse{
		ID:          p.ID,
		SyllabusID:  p.SyllabusID,
		Title:       p.Title,
		Description: p.Description,
		StartDate:   p.StartDate.Format(model.DateLayout),
		EndDate:     p.EndDate.Format(model.DateLayout),
		Sessions:    sessions,
		CreatedAt:   formatTime(p.CreatedAt),
	}
}

func toStudySessionResponse(s *model.StudySession) dto.StudySessionResponse {
	return dto.StudySessionResponse{
		ID:          s.ID,
		StudyPlanID: s.StudyPlanID,
		Position:    s.Position,
		Title:       s.Title,
		Description: s.Description,
		Date:        s.Date.Format(model.DateLayout),
		Duration:    s.Duration,
		Completed:   s.Completed,
	}
}
