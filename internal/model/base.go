package model

import (
	"math"
	"time"
	"unicode/utf8"
)

// BaseModel audit timestamps shared by mutable records
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// DateLayout calendar date format used for plan and session dates
const DateLayout = "2006-01-02"

const (
	// MaxTitleLen column width of every varchar(255) title and name
	MaxTitleLen = 255
	// MaxDuration largest value an INT duration column holds
	MaxDuration = math.MaxInt32
)

// ClampTitle cuts s to MaxTitleLen runes
func ClampTitle(s string) string {
	if utf8.RuneCountInString(s) <= MaxTitleLen {
		return s
	}
	return string([]rune(s)[:MaxTitleLen])
}
