package dto

import "github.com/Akhil-Baki/ai-study-pilot/internal/model"

// ── syllabus DTO ──

// CreateSyllabusRequest pasted syllabus text
type CreateSyllabusRequest struct {
	Title   string `json:"title"   binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// UpdateSyllabusRequest corrective edit of the extracted fields
type UpdateSyllabusRequest struct {
	Title         *string                      `json:"title"          binding:"omitempty,min=1,max=255"`
	CourseName    *string                      `json:"course_name"    binding:"omitempty,max=255"`
	ParsedContent *model.ParsedSyllabusContent `json:"parsed_content"`
}

// SyllabusResponse syllabus with its parsed structure.
// parsed_content keeps the camelCase keys of the stored blob.
type SyllabusResponse struct {
	ID            int64                       `json:"id"`
	Title         string                      `json:"title"`
	Content       string                      `json:"content"`
	CourseName    *string                     `json:"course_name,omitempty"`
	ParsedContent model.ParsedSyllabusContent `json:"parsed_content"`
	CreatedAt     string                      `json:"created_at"`
	UpdatedAt     string                      `json:"updated_at"`
}
