package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"

	"github.com/Akhil-Baki/ai-study-pilot/internal/ai"
	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
)

func setupStudyPlan(t *testing.T) (StudyPlanService, *repository.Repository, *mockGenerator, int64) {
	t.Helper()
	repo := newTestRepo()
	gen := &mockGenerator{plan: generatedPlan(3)}
	svc := NewStudyPlanService(repo, gen, NewPlanMaterializer(repo, 2, testLogger()), testLogger())

	syllabus := &model.Syllabus{
		UserID:  1,
		Title:   "Algorithms",
		Content: "Week 1: sorting",
		ParsedContent: datatypes.NewJSONType(model.ParsedSyllabusContent{
			CourseName: "CS 161",
			ExamDates:  []model.ExamDate{{Name: "Midterm", Date: "2025-03-20"}},
		}),
	}
	if err := repo.Syllabus.Create(context.Background(), syllabus); err != nil {
		t.Fatal(err)
	}
	return svc, repo, gen, syllabus.ID
}

func TestStudyPlanService_Generate(t *testing.T) {
	svc, _, gen, syllabusID := setupStudyPlan(t)

	resp, err := svc.Generate(context.Background(), 1, &dto.CreateStudyPlanRequest{
		SyllabusID: syllabusID,
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-19",
		Preferences: dto.StudyPreferences{
			HoursPerDay:  2,
			ExcludedDays: []string{"Sunday"},
		},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if resp.StartDate != "2025-03-01" || resp.EndDate != "2025-03-19" {
		t.Errorf("plan window must be the requested one, got %s..%s", resp.StartDate, resp.EndDate)
	}
	if len(resp.Sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(resp.Sessions))
	}
	if resp.SyllabusID == nil || *resp.SyllabusID != syllabusID {
		t.Errorf("expected syllabus id %d, got %v", syllabusID, resp.SyllabusID)
	}

	if gen.planSyllabusText != "Week 1: sorting" {
		t.Errorf("generator got syllabus text %q", gen.planSyllabusText)
	}
	if len(gen.planExamDates) != 1 || gen.planExamDates[0] != "2025-03-20" {
		t.Errorf("exam dates not taken from parsed content: %v", gen.planExamDates)
	}
	if gen.planPrefs.HoursPerDay != 2 || gen.planPrefs.StartDate != "2025-03-01" {
		t.Errorf("preferences not forwarded: %+v", gen.planPrefs)
	}
}

func TestStudyPlanService_Generate_Validation(t *testing.T) {
	svc, _, _, syllabusID := setupStudyPlan(t)

	tests := []struct {
		name    string
		userID  int64
		req     dto.CreateStudyPlanRequest
		wantErr error
	}{
		{"end before start", 1, dto.CreateStudyPlanRequest{SyllabusID: syllabusID, StartDate: "2025-03-10", EndDate: "2025-03-01"}, ErrInvalidDateRange},
		{"bad start", 1, dto.CreateStudyPlanRequest{SyllabusID: syllabusID, StartDate: "03/10/2025", EndDate: "2025-03-20"}, ErrInvalidDate},
		{"missing syllabus", 1, dto.CreateStudyPlanRequest{SyllabusID: 999, StartDate: "2025-03-01", EndDate: "2025-03-02"}, ErrSyllabusNotFound},
		{"someone else's syllabus", 2, dto.CreateStudyPlanRequest{SyllabusID: syllabusID, StartDate: "2025-03-01", EndDate: "2025-03-02"}, ErrSyllabusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tt.userID, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestStudyPlanService_Generate_SameDayWindow(t *testing.T) {
	svc, _, _, syllabusID := setupStudyPlan(t)

	_, err := svc.Generate(context.Background(), 1, &dto.CreateStudyPlanRequest{
		SyllabusID: syllabusID, StartDate: "2025-03-01", EndDate: "2025-03-01",
	})
	if err != nil {
		t.Errorf("a one-day window is valid, got %v", err)
	}
}

func TestStudyPlanService_Generate_GeneratorError(t *testing.T) {
	svc, _, gen, syllabusID := setupStudyPlan(t)
	gen.planErr = errLLMDown

	_, err := svc.Generate(context.Background(), 1, &dto.CreateStudyPlanRequest{
		SyllabusID: syllabusID, StartDate: "2025-03-01", EndDate: "2025-03-05",
	})
	if !errors.Is(err, errLLMDown) {
		t.Errorf("expected generator error to propagate, got %v", err)
	}
}

func TestStudyPlanService_UpdateSession(t *testing.T) {
	svc, _, _, syllabusID := setupStudyPlan(t)
	ctx := context.Background()

	plan, err := svc.Generate(ctx, 1, &dto.CreateStudyPlanRequest{
		SyllabusID: syllabusID, StartDate: "2025-03-01", EndDate: "2025-03-14",
	})
	if err != nil {
		t.Fatal(err)
	}
	sessionID := plan.Sessions[1].ID

	if _, err := svc.UpdateSession(ctx, 2, sessionID, true); !errors.Is(err, ErrStudySessionNotFound) {
		t.Errorf("other users must not see the session, got %v", err)
	}

	updated, err := svc.UpdateSession(ctx, 1, sessionID, true)
	if err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}
	if !updated.Completed {
		t.Error("expected session completed")
	}

	got, _ := svc.GetByID(ctx, 1, plan.ID)
	if !got.Sessions[1].Completed || got.Sessions[0].Completed {
		t.Error("only the targeted session may change")
	}

	if _, err := svc.UpdateSession(ctx, 1, 999, true); !errors.Is(err, ErrStudySessionNotFound) {
		t.Errorf("expected ErrStudySessionNotFound, got %v", err)
	}
}

func TestStudyPlanService_ListAndDelete(t *testing.T) {
	svc, repo, _, syllabusID := setupStudyPlan(t)
	ctx := context.Background()

	plan, _ := svc.Generate(ctx, 1, &dto.CreateStudyPlanRequest{
		SyllabusID: syllabusID, StartDate: "2025-03-01", EndDate: "2025-03-14",
	})

	plans, err := svc.List(ctx, 1)
	if err != nil || len(plans) != 1 {
		t.Fatalf("expected one plan, got %d (%v)", len(plans), err)
	}

	if err := svc.Delete(ctx, 2, plan.ID); !errors.Is(err, ErrStudyPlanNotFound) {
		t.Errorf("expected ErrStudyPlanNotFound for another user, got %v", err)
	}
	if err := svc.Delete(ctx, 1, plan.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, 1, plan.ID); !errors.Is(err, ErrStudyPlanNotFound) {
		t.Errorf("expected ErrStudyPlanNotFound after delete, got %v", err)
	}
	sessions, _ := repo.StudySession.ListByPlan(ctx, plan.ID)
	if len(sessions) != 0 {
		t.Errorf("sessions must be removed with the plan, %d left", len(sessions))
	}
}

func TestStudyPlanService_FallbackPlanIsMaterialized(t *testing.T) {
	svc, _, gen, syllabusID := setupStudyPlan(t)
	gen.plan = ai.GeneratedPlan{
		Title: "Study Plan",
		Sessions: []ai.GeneratedSession{{
			Title: "Review Session", Description: "Review key topics from syllabus", Date: "2025-03-01", Duration: 60,
		}},
	}

	resp, err := svc.Generate(context.Background(), 1, &dto.CreateStudyPlanRequest{
		SyllabusID: syllabusID, StartDate: "2025-03-01", EndDate: "2025-03-14",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Sessions) != 1 || resp.Sessions[0].Duration != 60 {
		t.Errorf("unexpected sessions: %+v", resp.Sessions)
	}
}
