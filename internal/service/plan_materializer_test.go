package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Akhil-Baki/ai-study-pilot/internal/ai"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
)

// failingSessionRepo rejects the session whose title matches failTitle
type failingSessionRepo struct {
	repository.StudySessionRepository
	failTitle string
}

var errInsertFailed = errors.New("insert failed")

func (r failingSessionRepo) Create(ctx context.Context, s *model.StudySession) error {
	if s.Title == r.failTitle {
		return errInsertFailed
	}
	return r.StudySessionRepository.Create(ctx, s)
}

func generatedPlan(n int) ai.GeneratedPlan {
	plan := ai.GeneratedPlan{Title: "Midterm prep", Description: "Two weeks of review"}
	for i := 0; i < n; i++ {
		plan.Sessions = append(plan.Sessions, ai.GeneratedSession{
			Title:       fmt.Sprintf("Session %02d", i),
			Description: fmt.Sprintf("Chapter %d", i+1),
			Date:        date("2025-03-01").AddDate(0, 0, i%14).Format(model.DateLayout),
			Duration:    ai.Minutes(30 + i),
		})
	}
	return plan
}

func TestPlanMaterializer_PreservesOrderAndFields(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := newTestRepo()
	m := NewPlanMaterializer(repo, 4, testLogger())
	plan := generatedPlan(25)
	syllabusID := int64(7)

	stored, err := m.Materialize(context.Background(), 1, &syllabusID, plan, date("2025-03-01"), date("2025-03-14"))
	require.NoError(t, err)

	assert.Equal(t, "Midterm prep", stored.Title)
	require.NotNil(t, stored.Description)
	assert.Equal(t, "Two weeks of review", *stored.Description)
	assert.Equal(t, date("2025-03-01"), stored.StartDate)
	assert.Equal(t, date("2025-03-14"), stored.EndDate)
	assert.Equal(t, &syllabusID, stored.SyllabusID)

	require.Len(t, stored.Sessions, len(plan.Sessions))
	for i, got := range stored.Sessions {
		want := plan.Sessions[i]
		assert.Equal(t, i, got.Position)
		assert.Equal(t, want.Title, got.Title)
		require.NotNil(t, got.Description)
		assert.Equal(t, want.Description, *got.Description)
		assert.Equal(t, int(want.Duration), got.Duration)
		assert.Equal(t, want.Date, got.Date.Format(model.DateLayout))
		assert.False(t, got.Completed)
		assert.Equal(t, stored.ID, got.StudyPlanID)
	}

	persisted, err := repo.StudySession.ListByPlan(context.Background(), stored.ID)
	require.NoError(t, err)
	require.Len(t, persisted, len(plan.Sessions))
	for i, p := range persisted {
		assert.Equal(t, plan.Sessions[i].Title, p.Title, "persisted order must follow input order")
	}
}

func TestPlanMaterializer_EmptyPlan(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewPlanMaterializer(newTestRepo(), 4, testLogger())

	stored, err := m.Materialize(context.Background(), 1, nil, ai.GeneratedPlan{Title: "Empty"}, date("2025-03-01"), date("2025-03-02"))
	require.NoError(t, err)
	assert.Empty(t, stored.Sessions)
	assert.Nil(t, stored.Description)
}

func TestPlanMaterializer_RejectsMalformedSessionBeforeWriting(t *testing.T) {
	repo := newTestRepo()
	m := NewPlanMaterializer(repo, 2, testLogger())
	plan := generatedPlan(3)
	plan.Sessions[1].Date = "next tuesday"

	_, err := m.Materialize(context.Background(), 1, nil, plan, date("2025-03-01"), date("2025-03-14"))
	require.Error(t, err)

	plans, err := repo.StudyPlan.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, plans, "no header may be written for an invalid plan")
}

func TestPlanMaterializer_RejectsOversizedDurationBeforeWriting(t *testing.T) {
	repo := newTestRepo()
	m := NewPlanMaterializer(repo, 2, testLogger())
	plan := generatedPlan(3)
	plan.Sessions[2].Duration = ai.Minutes(model.MaxDuration) + 1

	_, err := m.Materialize(context.Background(), 1, nil, plan, date("2025-03-01"), date("2025-03-14"))
	require.Error(t, err)

	plans, err := repo.StudyPlan.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestPlanMaterializer_ClampsLongTitles(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := newTestRepo()
	m := NewPlanMaterializer(repo, 2, testLogger())
	plan := generatedPlan(2)
	plan.Title = strings.Repeat("p", 300)
	plan.Sessions[0].Title = strings.Repeat("日", 256)
	plan.Sessions[1].Duration = ai.Minutes(model.MaxDuration)

	stored, err := m.Materialize(context.Background(), 1, nil, plan, date("2025-03-01"), date("2025-03-14"))
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("p", model.MaxTitleLen), stored.Title)
	persisted, err := repo.StudySession.ListByPlan(context.Background(), stored.ID)
	require.NoError(t, err)
	require.Len(t, persisted, 2)
	assert.Equal(t, strings.Repeat("日", model.MaxTitleLen), persisted[0].Title)
	assert.Equal(t, model.MaxDuration, persisted[1].Duration)
}

func TestPlanMaterializer_PartialFailureLeavesPlan(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := newTestRepo()
	repo.StudySession = failingSessionRepo{StudySessionRepository: repo.StudySession, failTitle: "Session 03"}
	m := NewPlanMaterializer(repo, 1, testLogger())

	_, err := m.Materialize(context.Background(), 1, nil, generatedPlan(6), date("2025-03-01"), date("2025-03-14"))
	require.ErrorIs(t, err, errInsertFailed)

	plans, err := repo.StudyPlan.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, plans, 1, "the header stays behind")
	assert.Less(t, len(plans[0].Sessions), 6)
}

func TestNewPlanMaterializer_ClampsConcurrency(t *testing.T) {
	m := NewPlanMaterializer(newTestRepo(), 0, testLogger())
	assert.Equal(t, 1, m.concurrency)
}
