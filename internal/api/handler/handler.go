package handler

import "github.com/Akhil-Baki/ai-study-pilot/internal/service"

// Handler aggregate of every HTTP handler
type Handler struct {
	Auth         *AuthHandler
	Syllabus     *SyllabusHandler
	StudyPlan    *StudyPlanHandler
	Summary      *SummaryHandler
	Task         *TaskHandler
	FocusSession *FocusSessionHandler
	Chat         *ChatHandler
	Export       *ExportHandler
}

// NewHandler wires handlers to services. maxUploadBytes caps multipart uploads.
func NewHandler(svc *service.Service, maxUploadBytes int64) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Syllabus:     NewSyllabusHandler(svc.Syllabus, maxUploadBytes),
		StudyPlan:    NewStudyPlanHandler(svc.StudyPlan),
		Summary:      NewSummaryHandler(svc.Summary, maxUploadBytes),
		Task:         NewTaskHandler(svc.Task),
		FocusSession: NewFocusSessionHandler(svc.FocusSession),
		Chat:         NewChatHandler(svc.Chat),
		Export:       NewExportHandler(svc.Export),
	}
}
