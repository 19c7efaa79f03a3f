package model

import "time"

// Task to-do item, table tasks
type Task struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"                  json:"id"`
	UserID      int64      `gorm:"not null;index"                            json:"user_id"`
	Title       string     `gorm:"type:varchar(255);not null"                json:"title"`
	Description *string    `gorm:"type:text"                                 json:"description,omitempty"`
	DueDate     *time.Time `                                                 json:"due_date,omitempty"`
	Priority    string     `gorm:"type:varchar(16);not null;default:'medium'"  json:"priority"`
	Category    string     `gorm:"type:varchar(16);not null;default:'study'"   json:"category"`
	Completed   bool       `gorm:"not null;default:false"                    json:"completed"`
	BaseModel
}

// TableName table name
func (Task) TableName() string { return "tasks" }

// Task priorities
const (
	PriorityUrgent  = "urgent"
	PriorityHigh    = "high"
	PriorityMedium  = "medium"
	PriorityRegular = "regular"
	PriorityLow     = "low"
)

// Task categories
const (
	CategoryStudy      = "study"
	CategoryAssignment = "assignment"
	CategoryPersonal   = "personal"
)
