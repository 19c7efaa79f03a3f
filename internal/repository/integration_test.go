//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/database"
	pkgerrors "github.com/Akhil-Baki/ai-study-pilot/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var pgDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=study_pilot password=study_pilot dbname=study_pilot_test sslmode=disable TimeZone=UTC"
	}

	var err error
	pgDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect test database: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := pgDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "get sql.DB: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "run migrations: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// pgUser creates a uniquely named user and removes it (with cascades) after the test
func pgUser(t *testing.T, repo *repository.Repository) *model.User {
	t.Helper()
	u := &model.User{Username: fmt.Sprintf("it-%d", time.Now().UnixNano()), PasswordHash: "hash"}
	require.NoError(t, repo.User.Create(context.Background(), u))
	t.Cleanup(func() {
		pgDB.Exec("DELETE FROM users WHERE id = ?", u.ID)
	})
	return u
}

// ═══════════════════════════════════════════════════════════
// Postgres Tests
// ═══════════════════════════════════════════════════════════

func TestPostgres_DuplicateUsername(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	u := pgUser(t, repo)

	err := repo.User.Create(context.Background(), &model.User{Username: u.Username, PasswordHash: "x"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestPostgres_ParsedContentJSONB(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	ctx := context.Background()
	u := pgUser(t, repo)

	parsed := model.ParsedSyllabusContent{
		CourseName: "Compilers",
		Topics:     []model.Topic{{Name: "Parsing"}},
		ExamDates:  []model.ExamDate{{Name: "Final", Date: "2025-05-10"}},
	}
	s := &model.Syllabus{UserID: u.ID, Title: "CS 401", Content: "raw", ParsedContent: datatypes.NewJSONType(parsed)}
	require.NoError(t, repo.Syllabus.Create(ctx, s))

	got, err := repo.Syllabus.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, parsed, got.Parsed())
}

func TestPostgres_PlanDatesAndCascade(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	ctx := context.Background()
	u := pgUser(t, repo)

	plan := &model.StudyPlan{UserID: u.ID, Title: "Finals", StartDate: date("2025-03-01"), EndDate: date("2025-03-31")}
	require.NoError(t, repo.StudyPlan.Create(ctx, plan))
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.StudySession.Create(ctx, &model.StudySession{
			StudyPlanID: plan.ID,
			Position:    i,
			Title:       fmt.Sprintf("s%d", i),
			Date:        date("2025-03-02"),
			Duration:    45,
		}))
	}

	got, err := repo.StudyPlan.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, got.Sessions, 3)
	assert.Equal(t, "2025-03-01", got.StartDate.Format(model.DateLayout))
	assert.Equal(t, "2025-03-02", got.Sessions[2].Date.Format(model.DateLayout))

	require.NoError(t, repo.StudyPlan.Delete(ctx, plan.ID))
	sessions, err := repo.StudySession.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestPostgres_FocusSessionEndOnce(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	ctx := context.Background()
	u := pgUser(t, repo)

	fs := &model.FocusSession{UserID: u.ID, Duration: 25, StartTime: time.Now()}
	require.NoError(t, repo.FocusSession.Create(ctx, fs))
	require.NoError(t, repo.FocusSession.End(ctx, fs.ID, time.Now()))
	assert.ErrorIs(t, repo.FocusSession.End(ctx, fs.ID, time.Now()), pkgerrors.ErrStateConflict)
}
