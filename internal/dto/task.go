package dto

import "time"

// ── task DTO ──

// CreateTaskRequest new task
type CreateTaskRequest struct {
	Title       string     `json:"title"       binding:"required,max=255"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"    binding:"omitempty,oneof=urgent high medium regular low"`
	Category    string     `json:"category"    binding:"omitempty,oneof=study assignment personal"`
}

// UpdateTaskRequest partial update; nil fields are left untouched
type UpdateTaskRequest struct {
	Title        *string    `json:"title"          binding:"omitempty,min=1,max=255"`
	Description  *string    `json:"description"`
	DueDate      *time.Time `json:"due_date"`
	ClearDueDate bool       `json:"clear_due_date"`
	Priority     *string    `json:"priority"       binding:"omitempty,oneof=urgent high medium regular low"`
	Category     *string    `json:"category"       binding:"omitempty,oneof=study assignment personal"`
	Completed    *bool      `json:"completed"`
}

// TaskResponse task
type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    string  `json:"priority"`
	Category    string  `json:"category"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
