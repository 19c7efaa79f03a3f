package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Akhil-Baki/ai-study-pilot/internal/ai"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
)

// PlanMaterializer persists a generated plan as one plan row plus one row per session.
//
// The plan header is written first and sessions are inserted concurrently afterwards.
// The operation is not atomic: when a session insert fails the header and any sessions
// already written stay behind, and the error is returned.
type PlanMaterializer struct {
	repo        *repository.Repository
	concurrency int
	logger      *zap.Logger
}

// NewPlanMaterializer concurrency bounds in-flight session inserts; values below 1 mean sequential
func NewPlanMaterializer(repo *repository.Repository, concurrency int, logger *zap.Logger) *PlanMaterializer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PlanMaterializer{repo: repo, concurrency: concurrency, logger: logger}
}

// Materialize stores plan for userID over the caller's [start, end] window.
// Sessions come back in input order regardless of insert completion order.
func (m *PlanMaterializer) Materialize(
	ctx context.Context,
	userID int64,
	syllabusID *int64,
	plan ai.GeneratedPlan,
	start, end time.Time,
) (*model.StudyPlan, error) {
	// convert everything up front so a malformed session never leaves a header behind
	sessions := make([]model.StudySession, len(plan.Sessions))
	for i, gs := range plan.Sessions {
		date, err := time.Parse(model.DateLayout, strings.TrimSpace(gs.Date))
		if err != nil {
			return nil, fmt.Errorf("session %d: invalid date %q", i, gs.Date)
		}
		if gs.Duration <= 0 || gs.Duration > model.MaxDuration {
			return nil, fmt.Errorf("session %d: duration %d out of range", i, gs.Duration)
		}
		desc := gs.Description
		sessions[i] = model.StudySession{
			Position:    i,
			Title:       model.ClampTitle(gs.Title),
			Description: &desc,
			Date:        date,
			Duration:    int(gs.Duration),
			Completed:   false,
		}
	}

	header := &model.StudyPlan{
		UserID:      userID,
		SyllabusID:  syllabusID,
		Title:       model.ClampTitle(plan.Title),
		Description: optionalString(plan.Description),
		StartDate:   start,
		EndDate:     end,
	}
	if err := m.repo.StudyPlan.Create(ctx, header); err != nil {
		m.logger.Error("create study plan failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i := range sessions {
		sessions[i].StudyPlanID = header.ID
		g.Go(func() error {
			if err := m.repo.StudySession.Create(gctx, &sessions[i]); err != nil {
				return fmt.Errorf("create session %d: %w", i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		m.logger.Error("materialize sessions failed, plan left partial",
			zap.Int64("plan_id", header.ID),
			zap.Int("sessions", len(sessions)),
			zap.Error(err),
		)
		return nil, err
	}

	header.Sessions = sessions
	return header, nil
}
