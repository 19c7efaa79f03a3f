package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
)

func setupSyllabus() (SyllabusService, *mockGenerator) {
	gen := &mockGenerator{
		parsed: model.ParsedSyllabusContent{
			CourseName: "Linear Algebra",
			Instructor: "Dr. Strang",
			Topics:     []model.Topic{{Name: "Vector spaces"}},
		},
	}
	return NewSyllabusService(newTestRepo(), gen, testLogger()), gen
}

func TestSyllabusService_Create(t *testing.T) {
	svc, _ := setupSyllabus()

	resp, err := svc.Create(context.Background(), 1, &dto.CreateSyllabusRequest{
		Title:   "  MATH 18.06  ",
		Content: "Lecture 1: the geometry of linear equations",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if resp.Title != "MATH 18.06" {
		t.Errorf("expected trimmed title, got %q", resp.Title)
	}
	if resp.CourseName == nil || *resp.CourseName != "Linear Algebra" {
		t.Errorf("course name must come from the parsed content, got %v", resp.CourseName)
	}
	if resp.ParsedContent.ExamDates == nil {
		t.Error("exam dates must be an empty sequence, not null")
	}
	if len(resp.ParsedContent.Topics) != 1 {
		t.Errorf("expected 1 topic, got %d", len(resp.ParsedContent.Topics))
	}
}

func TestSyllabusService_Create_EmptyContent(t *testing.T) {
	svc, _ := setupSyllabus()

	_, err := svc.Create(context.Background(), 1, &dto.CreateSyllabusRequest{Title: "x", Content: "   \n\t"})
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
}

func TestSyllabusService_Create_GeneratorError(t *testing.T) {
	svc, gen := setupSyllabus()
	gen.parseErr = errLLMDown

	_, err := svc.Create(context.Background(), 1, &dto.CreateSyllabusRequest{Title: "x", Content: "text"})
	if !errors.Is(err, errLLMDown) {
		t.Errorf("expected generator error, got %v", err)
	}
}

func TestSyllabusService_Upload_RejectsNonPDF(t *testing.T) {
	svc, _ := setupSyllabus()

	_, err := svc.Upload(context.Background(), 1, "notes.docx", []byte("PK\x03\x04 not a pdf"))
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("expected ErrUnsupportedFile, got %v", err)
	}
}

func TestSyllabusService_Upload_CorruptPDF(t *testing.T) {
	svc, _ := setupSyllabus()

	_, err := svc.Upload(context.Background(), 1, "broken.pdf", []byte("%PDF-1.4\ngarbage"))
	if !errors.Is(err, ErrUnreadableFile) && !errors.Is(err, ErrEmptyContent) {
		t.Errorf("expected an extraction error, got %v", err)
	}
}

func TestSyllabusService_OwnershipAndUpdate(t *testing.T) {
	svc, _ := setupSyllabus()
	ctx := context.Background()

	created, _ := svc.Create(ctx, 1, &dto.CreateSyllabusRequest{Title: "Algebra", Content: "content"})

	if _, err := svc.GetByID(ctx, 2, created.ID); !errors.Is(err, ErrSyllabusNotFound) {
		t.Errorf("other users must get ErrSyllabusNotFound, got %v", err)
	}

	updated, err := svc.Update(ctx, 1, created.ID, &dto.UpdateSyllabusRequest{
		CourseName:    ptr("MATH 18.06"),
		ParsedContent: &model.ParsedSyllabusContent{CourseName: "MATH 18.06"},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if *updated.CourseName != "MATH 18.06" {
		t.Errorf("course name not updated: %v", *updated.CourseName)
	}
	if updated.ParsedContent.Topics == nil || updated.ParsedContent.ExamDates == nil {
		t.Error("updated parsed content must keep sequences non-null")
	}
	if updated.Title != "Algebra" {
		t.Errorf("title must be untouched, got %q", updated.Title)
	}

	list, _ := svc.List(ctx, 1)
	if len(list) != 1 {
		t.Errorf("expected 1 syllabus, got %d", len(list))
	}

	if err := svc.Delete(ctx, 2, created.ID); !errors.Is(err, ErrSyllabusNotFound) {
		t.Errorf("expected ErrSyllabusNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, 1, created.ID); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
}

func TestSyllabusService_Create_ClampsLongNames(t *testing.T) {
	svc, gen := setupSyllabus()
	gen.parsed.CourseName = strings.Repeat("c", 300)

	resp, err := svc.Create(context.Background(), 1, &dto.CreateSyllabusRequest{
		Title:   strings.Repeat("t", 300),
		Content: "content",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.CourseName == nil || len(*resp.CourseName) != model.MaxTitleLen {
		t.Errorf("course name must be cut to %d characters, got %v", model.MaxTitleLen, resp.CourseName)
	}
	if len(resp.Title) != model.MaxTitleLen {
		t.Errorf("title must be cut to %d characters, got %d", model.MaxTitleLen, len(resp.Title))
	}
}

func TestSyllabusService_Update_BlankTitle(t *testing.T) {
	svc, _ := setupSyllabus()
	ctx := context.Background()
	created, _ := svc.Create(ctx, 1, &dto.CreateSyllabusRequest{Title: "Algebra", Content: "content"})

	if _, err := svc.Update(ctx, 1, created.ID, &dto.UpdateSyllabusRequest{Title: ptr("   ")}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	got, _ := svc.GetByID(ctx, 1, created.ID)
	if got.Title != "Algebra" {
		t.Errorf("title must be unchanged, got %q", got.Title)
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := map[string]string{
		"CS101 Syllabus.pdf":    "CS101 Syllabus",
		"/tmp/upload/notes.PDF": "notes",
		"":                      "",
	}
	for in, want := range tests {
		if got := titleFromFilename(in); got != want {
			t.Errorf("titleFromFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
