package model

import (
	"strings"

	"gorm.io/datatypes"
)

// Syllabus uploaded course syllabus, table syllabi
type Syllabus struct {
	ID            int64                                     `gorm:"primaryKey;autoIncrement"          json:"id"`
	UserID        int64                                     `gorm:"not null;index"                    json:"user_id"`
	Title         string                                    `gorm:"type:varchar(255);not null"        json:"title"`
	Content       string                                    `gorm:"type:text;not null"                json:"content"`
	CourseName    *string                                   `gorm:"type:varchar(255)"                 json:"course_name,omitempty"`
	ParsedContent datatypes.JSONType[ParsedSyllabusContent] `gorm:"type:jsonb"                        json:"parsed_content"`
	BaseModel
}

// TableName table name
func (Syllabus) TableName() string { return "syllabi" }

// Parsed structured content of the syllabus
func (s *Syllabus) Parsed() ParsedSyllabusContent {
	return s.ParsedContent.Data()
}

// ParsedSyllabusContent structure extracted from a syllabus by the language model.
// Stored as a JSON blob; the camelCase keys match what the model is asked to return.
type ParsedSyllabusContent struct {
	CourseName string     `json:"courseName"`
	Instructor string     `json:"instructor"`
	Topics     []Topic    `json:"topics"`
	ExamDates  []ExamDate `json:"examDates"`
}

// Topic course topic
type Topic struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ExamDate exam or assessment with its ISO date
type ExamDate struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// Normalize guarantees topics and exam dates are sequences, never null.
func (p *ParsedSyllabusContent) Normalize() {
	if p.Topics == nil {
		p.Topics = []Topic{}
	}
	if p.ExamDates == nil {
		p.ExamDates = []ExamDate{}
	}
}

// ExamDateStrings exam dates fed to the study plan prompt
func (p *ParsedSyllabusContent) ExamDateStrings() []string {
	out := make([]string, 0, len(p.ExamDates))
	for _, e := range p.ExamDates {
		if d := strings.TrimSpace(e.Date); d != "" {
			out = append(out, d)
		}
	}
	return out
}
