package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Akhil-Baki/ai-study-pilot/internal/llm"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	pkglogger "github.com/Akhil-Baki/ai-study-pilot/pkg/logger"
)

var (
	ErrInvalidSummaryFormat = errors.New("summary format must be bullet_points or paragraphs")
	ErrEmptyInput           = errors.New("input content is empty")
)

// SummaryFormat summarizer output style
type SummaryFormat string

const (
	FormatBulletPoints SummaryFormat = model.SummaryFormatBulletPoints
	FormatParagraphs   SummaryFormat = model.SummaryFormatParagraphs
)

// ParseSummaryFormat empty defaults to bullet points
func ParseSummaryFormat(s string) (SummaryFormat, error) {
	switch SummaryFormat(strings.TrimSpace(s)) {
	case "", FormatBulletPoints:
		return FormatBulletPoints, nil
	case FormatParagraphs:
		return FormatParagraphs, nil
	default:
		return "", ErrInvalidSummaryFormat
	}
}

// PlanPreferences user constraints for plan generation
type PlanPreferences struct {
	StartDate           string
	EndDate             string
	HoursPerDay         float64
	PreferredStudyTimes []string
	ExcludedDays        []string
}

// GeneratedPlan study plan shape returned by the model
type GeneratedPlan struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Sessions    []GeneratedSession `json:"sessions"`
}

// GeneratedSession one session of a generated plan
type GeneratedSession struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Duration    Minutes `json:"duration"`
}

// Minutes session length; accepts integral JSON numbers and numeric strings
type Minutes int

// UnmarshalJSON implements json.Unmarshaler
func (m *Minutes) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("duration %s is not a number", data)
	}
	if f != float64(int(f)) {
		return fmt.Errorf("duration %s is not a whole number of minutes", data)
	}
	*m = Minutes(f)
	return nil
}

// MarshalJSON keeps Minutes a plain number on the wire
func (m Minutes) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(m))
}

// HistoryEntry prior tutor conversation turn
type HistoryEntry struct {
	Content       string
	IsUserMessage bool
}

// Option configures a Generator
type Option func(*Generator)

// WithClock overrides the time source used for fallback dates
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// Generator prompt builders and response decoders for every AI feature
type Generator struct {
	client llm.Client
	logger *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewGenerator creates a Generator over client
func NewGenerator(client llm.Client, logger *zap.Logger, opts ...Option) *Generator {
	g := &Generator{
		client: client,
		logger: logger,
		tracer: otel.Tracer("github.com/Akhil-Baki/ai-study-pilot/internal/ai"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) start(ctx context.Context, op string) (context.Context, trace.Span) {
	return g.tracer.Start(ctx, "ai."+op, trace.WithAttributes(
		attribute.String("llm.provider", g.client.Name()),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ────── ParseSyllabus ──────

// FallbackSyllabus placeholder used when the model output cannot be recovered
func FallbackSyllabus() model.ParsedSyllabusContent {
	return model.ParsedSyllabusContent{
		CourseName: "Untitled Course",
		Instructor: "Unknown",
		Topics:     []model.Topic{{Name: "General Topics", Description: "Extracted from syllabus"}},
		ExamDates:  []model.ExamDate{},
	}
}

// ParseSyllabus extracts course structure from raw syllabus text.
// Unrecoverable model output yields FallbackSyllabus; only the model call itself can fail.
func (g *Generator) ParseSyllabus(ctx context.Context, rawText string) (parsed model.ParsedSyllabusContent, err error) {
	ctx, span := g.start(ctx, "parse_syllabus")
	defer func() { endSpan(span, err) }()

	raw, err := g.client.GenerateContent(ctx, llm.GenerateRequest{
		System:        syllabusSystemPrompt,
		Prompt:        buildSyllabusPrompt(rawText),
		JSON:          true,
		Deterministic: true,
	})
	if err != nil {
		return model.ParsedSyllabusContent{}, fmt.Errorf("parse syllabus: %w", err)
	}

	if err := Recover(raw, &parsed); err != nil {
		g.logger.Warn("syllabus response unrecoverable, using fallback",
			zap.Error(err),
			zap.String("raw", pkglogger.Truncate(raw, 200)),
		)
		span.SetAttributes(attribute.Bool("ai.fallback", true))
		return FallbackSyllabus(), nil
	}

	parsed.Normalize()
	parsed.CourseName = model.ClampTitle(parsed.CourseName)
	return parsed, nil
}

// ────── GenerateStudyPlan ──────

// FallbackPlan single review session dated today
func (g *Generator) FallbackPlan() GeneratedPlan {
	return GeneratedPlan{
		Title:       "Study Plan",
		Description: "Generated study plan based on your syllabus",
		Sessions: []GeneratedSession{{
			Title:       "Review Session",
			Description: "Review key topics from syllabus",
			Date:        g.now().Format(model.DateLayout),
			Duration:    60,
		}},
	}
}

var errMissingSessions = errors.New("plan has no sessions field")

// Validate every session needs a calendar date and a duration in (0, MaxDuration]
func (p *GeneratedPlan) Validate() error {
	if p.Sessions == nil {
		return errMissingSessions
	}
	for i, s := range p.Sessions {
		if _, err := time.Parse(model.DateLayout, strings.TrimSpace(s.Date)); err != nil {
			return fmt.Errorf("session %d: invalid date %q", i, s.Date)
		}
		if s.Duration <= 0 {
			return fmt.Errorf("session %d: duration must be positive, got %d", i, s.Duration)
		}
		if s.Duration > model.MaxDuration {
			return fmt.Errorf("session %d: duration %d out of range", i, s.Duration)
		}
	}
	return nil
}

// GenerateStudyPlan asks the model for a dated session plan.
// Output that cannot be recovered, is not an object with a sessions list,
// or fails validation yields FallbackPlan.
func (g *Generator) GenerateStudyPlan(ctx context.Context, syllabusText string, examDates []string, prefs PlanPreferences) (plan GeneratedPlan, err error) {
	ctx, span := g.start(ctx, "generate_study_plan")
	defer func() { endSpan(span, err) }()

	raw, err := g.client.GenerateContent(ctx, llm.GenerateRequest{
		System:        plannerSystemPrompt,
		Prompt:        buildStudyPlanPrompt(syllabusText, examDates, prefs),
		JSON:          true,
		Deterministic: true,
	})
	if err != nil {
		return GeneratedPlan{}, fmt.Errorf("generate study plan: %w", err)
	}

	decodeErr := Recover(raw, &plan)
	if decodeErr == nil {
		decodeErr = plan.Validate()
	}
	if decodeErr != nil {
		g.logger.Warn("study plan response unusable, using fallback",
			zap.Error(decodeErr),
			zap.String("raw", pkglogger.Truncate(raw, 200)),
		)
		span.SetAttributes(attribute.Bool("ai.fallback", true))
		return g.FallbackPlan(), nil
	}

	if strings.TrimSpace(plan.Title) == "" {
		plan.Title = "Study Plan"
	}
	plan.Title = model.ClampTitle(plan.Title)
	for i := range plan.Sessions {
		plan.Sessions[i].Title = model.ClampTitle(plan.Sessions[i].Title)
		plan.Sessions[i].Date = strings.TrimSpace(plan.Sessions[i].Date)
	}
	span.SetAttributes(attribute.Int("ai.sessions", len(plan.Sessions)))
	return plan, nil
}

// ────── SummarizeContent ──────

// SummarizeContent returns prose; there is no fallback and failures propagate.
func (g *Generator) SummarizeContent(ctx context.Context, content string, format SummaryFormat) (summary string, err error) {
	ctx, span := g.start(ctx, "summarize")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyInput
	}
	if format != FormatBulletPoints && format != FormatParagraphs {
		return "", ErrInvalidSummaryFormat
	}

	text, err := g.client.GenerateContent(ctx, llm.GenerateRequest{
		System: summarizerSystemPrompt(format),
		Prompt: buildSummaryPrompt(content, format),
	})
	if err != nil {
		return "", fmt.Errorf("summarize content: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// ────── TutorResponse ──────

// TutorResponse answers question in the context of history (oldest first).
// Reference content travels as a separate system instruction, never as a conversation turn.
func (g *Generator) TutorResponse(ctx context.Context, question string, history []HistoryEntry, referenceContent string) (answer string, err error) {
	ctx, span := g.start(ctx, "tutor")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyInput
	}

	turns := make([]llm.Message, 0, len(history))
	for _, h := range history {
		role := llm.RoleAssistant
		if h.IsUserMessage {
			role = llm.RoleUser
		}
		turns = append(turns, llm.Message{Role: role, Content: h.Content})
	}
	span.SetAttributes(
		attribute.Int("ai.history", len(turns)),
		attribute.Bool("ai.reference", strings.TrimSpace(referenceContent) != ""),
	)

	text, err := g.client.SendMessage(ctx, llm.ChatRequest{
		System:  tutorSystem(referenceContent),
		History: turns,
		Prompt:  question,
	})
	if err != nil {
		return "", fmt.Errorf("tutor response: %w", err)
	}
	return strings.TrimSpace(text), nil
}
