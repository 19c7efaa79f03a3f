package model

import "time"

// FocusSession timed focus block, table focus_sessions
type FocusSession struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64      `gorm:"not null;index"           json:"user_id"`
	TaskID    *int64     `gorm:"index"                    json:"task_id,omitempty"`
	Duration  int        `gorm:"not null"                 json:"duration"` // minutes
	StartTime time.Time  `gorm:"not null"                 json:"start_time"`
	EndTime   *time.Time `                                json:"end_time,omitempty"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime"  json:"created_at"`
}

// TableName table name
func (FocusSession) TableName() string { return "focus_sessions" }
