package dto

// ── focus session DTO ──

// StartFocusSessionRequest start a timed focus block
type StartFocusSessionRequest struct {
	Duration int    `json:"duration" binding:"required,min=1,max=480"` // minutes
	TaskID   *int64 `json:"task_id"  binding:"omitempty,min=1"`
}

// FocusSessionResponse focus block
type FocusSessionResponse struct {
	ID        int64   `json:"id"`
	TaskID    *int64  `json:"task_id,omitempty"`
	Duration  int     `json:"duration"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time,omitempty"`
	CreatedAt string  `json:"created_at"`
}
