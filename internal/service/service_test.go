package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Akhil-Baki/ai-study-pilot/internal/ai"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository/memstore"
)

// ── test helpers ──

var errLLMDown = errors.New("llm unavailable")

// mockGenerator canned AI outputs; records the inputs it was given
type mockGenerator struct {
	mu sync.Mutex

	parsed   model.ParsedSyllabusContent
	parseErr error

	plan    ai.GeneratedPlan
	planErr error

	summary    string
	summaryErr error

	answer    string
	answerErr error

	// captured inputs
	planSyllabusText string
	planExamDates    []string
	planPrefs        ai.PlanPreferences
	summaryFormat    ai.SummaryFormat
	tutorQuestion    string
	tutorHistory     []ai.HistoryEntry
	tutorReference   string
}

func (m *mockGenerator) ParseSyllabus(_ context.Context, _ string) (model.ParsedSyllabusContent, error) {
	return m.parsed, m.parseErr
}

func (m *mockGenerator) GenerateStudyPlan(_ context.Context, syllabusText string, examDates []string, prefs ai.PlanPreferences) (ai.GeneratedPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.planSyllabusText = syllabusText
	m.planExamDates = examDates
	m.planPrefs = prefs
	return m.plan, m.planErr
}

func (m *mockGenerator) SummarizeContent(_ context.Context, _ string, format ai.SummaryFormat) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaryFormat = format
	return m.summary, m.summaryErr
}

func (m *mockGenerator) TutorResponse(_ context.Context, question string, history []ai.HistoryEntry, ref string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tutorQuestion = question
	m.tutorHistory = append([]ai.HistoryEntry(nil), history...)
	m.tutorReference = ref
	return m.answer, m.answerErr
}

func newTestRepo() *repository.Repository {
	return memstore.New().Repository()
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func date(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T {
	return &v
}
