package model

import "time"

// ChatMessage tutor conversation turn, table chat_messages
type ChatMessage struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64     `gorm:"not null;index"           json:"user_id"`
	Content       string    `gorm:"type:text;not null"       json:"content"`
	IsUserMessage bool      `gorm:"not null"                 json:"is_user_message"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime"  json:"created_at"`
}

// TableName table name
func (ChatMessage) TableName() string { return "chat_messages" }

// All every persisted model, in dependency order
func All() []interface{} {
	return []interface{}{
		&User{}, &Syllabus{}, &StudyPlan{}, &StudySession{},
		&Summary{}, &Task{}, &FocusSession{}, &ChatMessage{},
	}
}
