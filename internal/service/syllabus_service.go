package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/pdftext"
)

// ── syllabus errors ──

var (
	ErrSyllabusNotFound = errors.New("syllabus not found")
	ErrUnsupportedFile  = errors.New("only PDF files are supported")
	ErrUnreadableFile   = errors.New("could not extract text from file")
	ErrEmptyContent     = errors.New("content is empty")
	ErrEmptyTitle       = errors.New("title must not be empty")
)

// SyllabusService syllabus ingestion and maintenance
type SyllabusService interface {
	Create(ctx context.Context, userID int64, req *dto.CreateSyllabusRequest) (*dto.SyllabusResponse, error)
	Upload(ctx context.Context, userID int64, filename string, data []byte) (*dto.SyllabusResponse, error)
	List(ctx context.Context, userID int64) ([]dto.SyllabusResponse, error)
	GetByID(ctx context.Context, userID, id int64) (*dto.SyllabusResponse, error)
	Update(ctx context.Context, userID, id int64, req *dto.UpdateSyllabusRequest) (*dto.SyllabusResponse, error)
	Delete(ctx context.Context, userID, id int64) error
}

type syllabusService struct {
	repo   *repository.Repository
	gen    Generator
	logger *zap.Logger
}

// NewSyllabusService creates a SyllabusService
func NewSyllabusService(repo *repository.Repository, gen Generator, logger *zap.Logger) SyllabusService {
	return &syllabusService{repo: repo, gen: gen, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *syllabusService) Create(ctx context.Context, userID int64, req *dto.CreateSyllabusRequest) (*dto.SyllabusResponse, error) {
	return s.ingest(ctx, userID, strings.TrimSpace(req.Title), req.Content)
}

// ────────────────────── Upload ──────────────────────

func (s *syllabusService) Upload(ctx context.Context, userID int64, filename string, data []byte) (*dto.SyllabusResponse, error) {
	if !pdftext.IsPDF(data) {
		return nil, ErrUnsupportedFile
	}

	text, err := pdftext.ExtractBytes(data)
	if err != nil {
		if errors.Is(err, pdftext.ErrNoText) {
			return nil, ErrEmptyContent
		}
		s.logger.Warn("extract pdf text failed", zap.String("filename", filename), zap.Error(err))
		return nil, ErrUnreadableFile
	}

	return s.ingest(ctx, userID, titleFromFilename(filename), text)
}

func (s *syllabusService) ingest(ctx context.Context, userID int64, title, content string) (*dto.SyllabusResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if title == "" {
		title = "Untitled Syllabus"
	}

	parsed, err := s.gen.ParseSyllabus(ctx, content)
	if err != nil {
		s.logger.Error("parse syllabus failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	parsed.Normalize()

	syllabus := &model.Syllabus{
		UserID:        userID,
		Title:         model.ClampTitle(title),
		Content:       content,
		CourseName:    optionalString(model.ClampTitle(strings.TrimSpace(parsed.CourseName))),
		ParsedContent: datatypes.NewJSONType(parsed),
	}
	if err := s.repo.Syllabus.Create(ctx, syllabus); err != nil {
		s.logger.Error("create syllabus failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toSyllabusResponse(syllabus), nil
}

// ────────────────────── List ──────────────────────

func (s *syllabusService) List(ctx context.Context, userID int64) ([]dto.SyllabusResponse, error) {
	syllabi, err := s.repo.Syllabus.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list syllabi failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SyllabusResponse, 0, len(syllabi))
	for i := range syllabi {
		result = append(result, *toSyllabusResponse(&syllabi[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *syllabusService) GetByID(ctx context.Context, userID, id int64) (*dto.SyllabusResponse, error) {
	syllabus, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toSyllabusResponse(syllabus), nil
}

// ────────────────────── Update ──────────────────────

func (s *syllabusService) Update(ctx context.Context, userID, id int64, req *dto.UpdateSyllabusRequest) (*dto.SyllabusResponse, error) {
	syllabus, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		syllabus.Title = title
	}
	if req.CourseName != nil {
		syllabus.CourseName = optionalString(strings.TrimSpace(*req.CourseName))
	}
	if req.ParsedContent != nil {
		parsed := *req.ParsedContent
		parsed.Normalize()
		syllabus.ParsedContent = datatypes.NewJSONType(parsed)
	}

	if err := s.repo.Syllabus.Update(ctx, syllabus); err != nil {
		s.logger.Error("update syllabus failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return toSyllabusResponse(syllabus), nil
}

// ────────────────────── Delete ──────────────────────

func (s *syllabusService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Syllabus.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSyllabusNotFound
		}
		s.logger.Error("delete syllabus failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

// owned loads a syllabus; other users' records are reported as missing
func (s *syllabusService) owned(ctx context.Context, userID, id int64) (*model.Syllabus, error) {
	syllabus, err := s.repo.Syllabus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSyllabusNotFound
		}
		s.logger.Error("query syllabus failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if syllabus.UserID != userID {
		return nil, ErrSyllabusNotFound
	}
	return syllabus, nil
}

func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
}

func toSyllabusResponse(s *model.Syllabus) *dto.SyllabusResponse {
	parsed := s.Parsed()
	parsed.Normalize()
	return &dto.SyllabusResponse{
		ID:            s.ID,
		Title:         s.Title,
		Content:       s.Content,
		CourseName:    s.CourseName,
		ParsedContent: parsed,
		CreatedAt:     formatTime(s.CreatedAt),
		UpdatedAt:     formatTime(s.UpdatedAt),
	}
}
