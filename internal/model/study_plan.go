package model

import "time"

// StudyPlan generated study plan header, table study_plans
type StudyPlan struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"   json:"id"`
	UserID      int64     `gorm:"not null;index"             json:"user_id"`
	SyllabusID  *int64    `gorm:"index"                      json:"syllabus_id,omitempty"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description *string   `gorm:"type:text"                  json:"description,omitempty"`
	StartDate   time.Time `gorm:"type:date;not null"         json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null"         json:"end_date"`
	BaseModel

	Sessions []StudySession `gorm:"foreignKey:StudyPlanID;constraint:OnDelete:CASCADE" json:"sessions,omitempty"`
}

// TableName table name
func (StudyPlan) TableName() string { return "study_plans" }

// StudySession one dated block of a plan, table study_sessions
type StudySession struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"   json:"id"`
	StudyPlanID int64     `gorm:"not null;index"             json:"study_plan_id"`
	Position    int       `gorm:"not null;default:0"         json:"position"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description *string   `gorm:"type:text"                  json:"description,omitempty"`
	Date        time.Time `gorm:"type:date;not null"         json:"date"`
	Duration    int       `gorm:"not null"                   json:"duration"` // minutes
	Completed   bool      `gorm:"not null;default:false"     json:"completed"`
	BaseModel
}

// TableName table name
func (StudySession) TableName() string { return "study_sessions" }
