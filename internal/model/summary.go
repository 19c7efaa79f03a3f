package model

import "time"

// Summary stored AI summary, table summaries
type Summary struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"                      json:"id"`
	UserID          int64     `gorm:"not null;index"                                json:"user_id"`
	Title           string    `gorm:"type:varchar(255);not null"                    json:"title"`
	Format          string    `gorm:"type:varchar(32);not null;default:'bullet_points'" json:"format"`
	OriginalContent string    `gorm:"type:text;not null"                            json:"original_content"`
	Summary         string    `gorm:"type:text;not null"                            json:"summary"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime"                       json:"created_at"`
}

// TableName table name
func (Summary) TableName() string { return "summaries" }

// Summary formats
const (
	SummaryFormatBulletPoints = "bullet_points"
	SummaryFormatParagraphs   = "paragraphs"
)
