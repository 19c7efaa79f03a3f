package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Akhil-Baki/ai-study-pilot/internal/ai"
	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/pdftext"
)

// ── summary errors ──

var (
	ErrSummaryNotFound      = errors.New("summary not found")
	ErrInvalidSummaryFormat = ai.ErrInvalidSummaryFormat
)

// SummaryService lecture/notes summarization
type SummaryService interface {
	Summarize(ctx context.Context, userID int64, req *dto.SummarizeRequest) (*dto.SummaryResponse, error)
	// SummarizeFile accepts a PDF or a UTF-8 text file
	SummarizeFile(ctx context.Context, userID int64, filename string, data []byte, req *dto.SummarizeRequest) (*dto.SummaryResponse, error)
	List(ctx context.Context, userID int64, page *dto.PaginationRequest) ([]dto.SummaryResponse, int64, error)
	Delete(ctx context.Context, userID, id int64) error
}

type summaryService struct {
	repo   *repository.Repository
	gen    Generator
	logger *zap.Logger
}

// NewSummaryService creates a SummaryService
func NewSummaryService(repo *repository.Repository, gen Generator, logger *zap.Logger) SummaryService {
	return &summaryService{repo: repo, gen: gen, logger: logger}
}

// ────────────────────── Summarize ──────────────────────

func (s *summaryService) Summarize(ctx context.Context, userID int64, req *dto.SummarizeRequest) (*dto.SummaryResponse, error) {
	return s.summarize(ctx, userID, req.Title, req.Content, req.Format)
}

// ────────────────────── SummarizeFile ──────────────────────

func (s *summaryService) SummarizeFile(ctx context.Context, userID int64, filename string, data []byte, req *dto.SummarizeRequest) (*dto.SummaryResponse, error) {
	var content string
	switch {
	case pdftext.IsPDF(data):
		text, err := pdftext.ExtractBytes(data)
		if err != nil {
			if errors.Is(err, pdftext.ErrNoText) {
				return nil, ErrEmptyContent
			}
			s.logger.Warn("extract pdf text failed", zap.String("filename", filename), zap.Error(err))
			return nil, ErrUnreadableFile
		}
		content = text
	case utf8.Valid(data):
		content = string(data)
	default:
		return nil, ErrUnsupportedFile
	}

	title := req.Title
	if strings.TrimSpace(title) == "" {
		title = titleFromFilename(filename)
	}
	return s.summarize(ctx, userID, title, content, req.Format)
}

func (s *summaryService) summarize(ctx context.Context, userID int64, title, content, rawFormat string) (*dto.SummaryResponse, error) {
	format, err := ai.ParseSummaryFormat(rawFormat)
	if err != nil {
		return nil, ErrInvalidSummaryFormat
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled Summary"
	}

	text, err := s.gen.SummarizeContent(ctx, content, format)
	if err != nil {
		s.logger.Error("summarize content failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	summary := &model.Summary{
		UserID:          userID,
		Title:           title,
		Format:          string(format),
		OriginalContent: content,
		Summary:         text,
	}
	if err := s.repo.Summary.Create(ctx, summary); err != nil {
		s.logger.Error("create summary failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toSummaryResponse(summary), nil
}

// ────────────────────── List ──────────────────────

func (s *summaryService) List(ctx context.Context, userID int64, page *dto.PaginationRequest) ([]dto.SummaryResponse, int64, error) {
	summaries, err := s.repo.Summary.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list summaries failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, 0, err
	}

	total := int64(len(summaries))
	page.Normalize()
	from := min(page.Offset(), len(summaries))
	to := min(from+page.PageSize, len(summaries))

	result := make([]dto.SummaryResponse, 0, to-from)
	for i := from; i < to; i++ {
		result = append(result, *toSummaryResponse(&summaries[i]))
	}
	return result, total, nil
}

// ────────────────────── Delete ──────────────────────

func (s *summaryService) Delete(ctx context.Context, userID, id int64) error {
	summary, err := s.repo.Summary.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSummaryNotFound
		}
		s.logger.Error("query summary failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if summary.UserID != userID {
		return ErrSummaryNotFound
	}

	if err := s.repo.Summary.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSummaryNotFound
		}
		s.logger.Error("delete summary failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toSummaryResponse(s *model.Summary) *dto.SummaryResponse {
	return &dto.SummaryResponse{
		ID:              s.ID,
		Title:           s.Title,
		Format:          s.Format,
		OriginalContent: s.OriginalContent,
		Summary:         s.Summary,
		CreatedAt:       formatTime(s.CreatedAt),
	}
}
