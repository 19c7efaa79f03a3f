package repository

import "gorm.io/gorm"

// Repository aggregate of every data access interface
type Repository struct {
	User         UserRepository
	Syllabus     SyllabusRepository
	StudyPlan    StudyPlanRepository
	StudySession StudySessionRepository
	Summary      SummaryRepository
	Task         TaskRepository
	FocusSession FocusSessionRepository
	ChatMessage  ChatMessageRepository
}

// NewRepository builds the GORM-backed aggregate
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Syllabus:     NewSyllabusRepo(db),
		StudyPlan:    NewStudyPlanRepo(db),
		StudySession: NewStudySessionRepo(db),
		Summary:      NewSummaryRepo(db),
		Task:         NewTaskRepo(db),
		FocusSession: NewFocusSessionRepo(db),
		ChatMessage:  NewChatMessageRepo(db),
	}
}
