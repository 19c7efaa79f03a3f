package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
	pkgerrors "github.com/Akhil-Baki/ai-study-pilot/pkg/errors"
)

func newTestRepo(t *testing.T) *repository.Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repository.NewRepository(db)
}

func createUser(t *testing.T, repo *repository.Repository, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, PasswordHash: "hash"}
	require.NoError(t, repo.User.Create(context.Background(), u))
	require.NotZero(t, u.ID)
	return u
}

func date(s string) time.Time {
	d, _ := time.Parse(model.DateLayout, s)
	return d
}

func TestUserRepo(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := createUser(t, repo, "ada")

	got, err := repo.User.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.User.GetByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.User.Create(ctx, &model.User{Username: "ada", PasswordHash: "x"})
	assert.Error(t, err, "username must be unique")
}

func TestSyllabusRepo_ParsedContentRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := createUser(t, repo, "ada")

	parsed := model.ParsedSyllabusContent{
		CourseName: "Algorithms",
		Instructor: "Dr. Knuth",
		Topics:     []model.Topic{{Name: "Sorting", Description: "merge, quick"}},
		ExamDates:  []model.ExamDate{{Name: "Midterm", Date: "2025-03-10"}},
	}
	course := "Algorithms"
	s := &model.Syllabus{
		UserID:        u.ID,
		Title:         "algo",
		Content:       "raw text",
		CourseName:    &course,
		ParsedContent: datatypes.NewJSONType(parsed),
	}
	require.NoError(t, repo.Syllabus.Create(ctx, s))

	got, err := repo.Syllabus.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, parsed, got.Parsed())

	newTitle := "algo v2"
	got.Title = newTitle
	require.NoError(t, repo.Syllabus.Update(ctx, got))

	list, err := repo.Syllabus.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, newTitle, list[0].Title)

	require.NoError(t, repo.Syllabus.Delete(ctx, s.ID))
	_, err = repo.Syllabus.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudyPlanRepo_SessionsOrderedAndCascade(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := createUser(t, repo, "ada")

	plan := &model.StudyPlan{
		UserID:    u.ID,
		Title:     "Finals",
		StartDate: date("2025-01-01"),
		EndDate:   date("2025-01-31"),
	}
	require.NoError(t, repo.StudyPlan.Create(ctx, plan))

	// inserted out of order on purpose
	for _, pos := range []int{2, 0, 1} {
		s := &model.StudySession{
			StudyPlanID: plan.ID,
			Position:    pos,
			Title:       fmt.Sprintf("s%d", pos),
			Date:        date("2025-01-02"),
			Duration:    30,
		}
		require.NoError(t, repo.StudySession.Create(ctx, s))
	}

	got, err := repo.StudyPlan.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, got.Sessions, 3)
	for i, s := range got.Sessions {
		assert.Equal(t, fmt.Sprintf("s%d", i), s.Title)
		assert.False(t, s.Completed)
	}
	assert.Equal(t, "2025-01-31", got.EndDate.Format(model.DateLayout))

	require.NoError(t, repo.StudySession.UpdateCompleted(ctx, got.Sessions[0].ID, true))
	s0, err := repo.StudySession.GetByID(ctx, got.Sessions[0].ID)
	require.NoError(t, err)
	assert.True(t, s0.Completed)

	assert.ErrorIs(t, repo.StudySession.UpdateCompleted(ctx, 12345, true), gorm.ErrRecordNotFound)

	require.NoError(t, repo.StudyPlan.Delete(ctx, plan.ID))
	sessions, err := repo.StudySession.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestTaskRepo(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := createUser(t, repo, "ada")

	due := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	task := &model.Task{UserID: u.ID, Title: "essay", DueDate: &due, Priority: model.PriorityHigh, Category: model.CategoryAssignment}
	require.NoError(t, repo.Task.Create(ctx, task))

	task.Completed = true
	task.Title = "essay draft"
	require.NoError(t, repo.Task.Update(ctx, task))

	got, err := repo.Task.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, "essay draft", got.Title)
	assert.Equal(t, model.PriorityHigh, got.Priority)

	require.NoError(t, repo.Task.Delete(ctx, task.ID))
	list, err := repo.Task.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFocusSessionRepo_EndOnce(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := createUser(t, repo, "ada")

	fs := &model.FocusSession{UserID: u.ID, Duration: 25, StartTime: time.Now()}
	require.NoError(t, repo.FocusSession.Create(ctx, fs))

	require.NoError(t, repo.FocusSession.End(ctx, fs.ID, time.Now()))
	assert.ErrorIs(t, repo.FocusSession.End(ctx, fs.ID, time.Now()), pkgerrors.ErrStateConflict)

	got, err := repo.FocusSession.GetByID(ctx, fs.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.EndTime)
}

func TestChatMessageRepo_RecentIsChronological(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := createUser(t, repo, "ada")

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.ChatMessage.Create(ctx, &model.ChatMessage{
			UserID:        u.ID,
			Content:       fmt.Sprintf("m%d", i),
			IsUserMessage: i%2 == 0,
		}))
	}

	recent, err := repo.ChatMessage.ListRecentByUser(ctx, u.ID, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"m2", "m3", "m4"}, []string{recent[0].Content, recent[1].Content, recent[2].Content})

	all, err := repo.ChatMessage.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
