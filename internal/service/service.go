package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Akhil-Baki/ai-study-pilot/config"
	"github.com/Akhil-Baki/ai-study-pilot/internal/ai"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/jwt"
)

// Generator the AI features the services depend on; *ai.Generator satisfies it
type Generator interface {
	ParseSyllabus(ctx context.Context, rawText string) (model.ParsedSyllabusContent, error)
	GenerateStudyPlan(ctx context.Context, syllabusText string, examDates []string, prefs ai.PlanPreferences) (ai.GeneratedPlan, error)
	SummarizeContent(ctx context.Context, content string, format ai.SummaryFormat) (string, error)
	TutorResponse(ctx context.Context, question string, history []ai.HistoryEntry, referenceContent string) (string, error)
}

// TokenBlacklist revoked token store; *redis.Client satisfies it
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Service aggregate of every business service
type Service struct {
	Auth         AuthService
	Syllabus     SyllabusService
	StudyPlan    StudyPlanService
	Summary      SummaryService
	Task         TaskService
	FocusSession FocusSessionService
	Chat         ChatService
	Export       ExportService
}

// NewService wires the aggregate. blacklist may be nil when Redis is disabled.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	gen Generator,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	materializer := NewPlanMaterializer(repo, cfg.LLM.MaterializeConcurrency, logger)
	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, blacklist, logger),
		Syllabus:     NewSyllabusService(repo, gen, logger),
		StudyPlan:    NewStudyPlanService(repo, gen, materializer, logger),
		Summary:      NewSummaryService(repo, gen, logger),
		Task:         NewTaskService(repo, logger),
		FocusSession: NewFocusSessionService(repo, logger),
		Chat:         NewChatService(repo, gen, cfg.LLM.TutorHistoryLimit, logger),
		Export:       NewExportService(repo, logger),
	}
}

// ── shared helpers ──

const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
