package dto

// ── study plan DTO ──

// StudyPreferences scheduling constraints handed to the planner
type StudyPreferences struct {
	HoursPerDay         float64  `json:"hours_per_day"         binding:"omitempty,gt=0,lte=24"`
	PreferredStudyTimes []string `json:"preferred_study_times"`
	ExcludedDays        []string `json:"excluded_days"`
}

// CreateStudyPlanRequest plan generation
type CreateStudyPlanRequest struct {
	SyllabusID  int64            `json:"syllabus_id" binding:"required,min=1"`
	StartDate   string           `json:"start_date"  binding:"required"` // YYYY-MM-DD
	EndDate     string           `json:"end_date"    binding:"required"` // YYYY-MM-DD
	Preferences StudyPreferences `json:"preferences"`
}

// UpdateStudySessionRequest the only mutation a session supports
type UpdateStudySessionRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// StudyPlanResponse plan with its ordered sessions
type StudyPlanResponse struct {
	ID          int64                  `json:"id"`
	SyllabusID  *int64                 `json:"syllabus_id,omitempty"`
	Title       string                 `json:"title"`
	Description *string                `json:"description,omitempty"`
	StartDate   string                 `json:"start_date"`
	EndDate     string                 `json:"end_date"`
	Sessions    []StudySessionResponse `json:"sessions"`
	CreatedAt   string                 `json:"created_at"`
}

// StudySessionResponse one scheduled block
type StudySessionResponse struct {
	ID          int64   `json:"id"`
	StudyPlanID int64   `json:"study_plan_id"`
	Position    int     `json:"position"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	Duration    int     `json:"duration"`
	Completed   bool    `json:"completed"`
}
