package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/service"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/response"
)

// TaskHandler task endpoints
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler creates a TaskHandler
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// CreateTask
// POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.Created(c, task)
}

// ListTasks open tasks first, then by due date
// GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": tasks})
}

// GetTask
// GET /api/v1/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskSvc.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, task)
}

// UpdateTask partial update
// PUT /api/v1/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, task)
}

// DeleteTask
// DELETE /api/v1/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskSvc.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *TaskHandler) handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 15001, "task not found")
	case errors.Is(err, service.ErrInvalidPriority):
		response.BadRequest(c, 15002, "invalid priority")
	case errors.Is(err, service.ErrInvalidCategory):
		response.BadRequest(c, 15003, "invalid category")
	case errors.Is(err, service.ErrEmptyTaskTitle):
		response.BadRequest(c, 15004, "task title must not be empty")
	default:
		response.InternalError(c)
	}
}
