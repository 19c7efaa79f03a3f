package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Akhil-Baki/ai-study-pilot/internal/dto"
	"github.com/Akhil-Baki/ai-study-pilot/internal/service"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/response"
)

// StudyPlanHandler study plan endpoints
type StudyPlanHandler struct {
	planSvc service.StudyPlanService
}

// NewStudyPlanHandler creates a StudyPlanHandler
func NewStudyPlanHandler(planSvc service.StudyPlanService) *StudyPlanHandler {
	return &StudyPlanHandler{planSvc: planSvc}
}

// CreateStudyPlan generate and persist a plan for a syllabus
// POST /api/v1/study-plans
func (h *StudyPlanHandler) CreateStudyPlan(c *gin.Context) {
	var req dto.CreateStudyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	plan, err := h.planSvc.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleStudyPlanError(c, err)
		return
	}

	response.Created(c, plan)
}

// ListStudyPlans plans with sessions, newest first
// GET /api/v1/study-plans
func (h *StudyPlanHandler) ListStudyPlans(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	plans, err := h.planSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": plans})
}

// GetStudyPlan
// GET /api/v1/study-plans/:id
func (h *StudyPlanHandler) GetStudyPlan(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.planSvc.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.handleStudyPlanError(c, err)
		return
	}

	response.OK(c, plan)
}

// DeleteStudyPlan removes the plan and its sessions
// DELETE /api/v1/study-plans/:id
func (h *StudyPlanHandler) DeleteStudyPlan(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.planSvc.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleStudyPlanError(c, err)
		return
	}

	response.OK(c, nil)
}

// UpdateStudySession mark a session completed or not
// PUT /api/v1/study-sessions/:id
func (h *StudyPlanHandler) UpdateStudySession(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	session, err := h.planSvc.UpdateSession(c.Request.Context(), userID, id, *req.Completed)
	if err != nil {
		h.handleStudyPlanError(c, err)
		return
	}

	response.OK(c, session)
}

func (h *StudyPlanHandler) handleStudyPlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudyPlanNotFound):
		response.NotFound(c, 13001, "study plan not found")
	case errors.Is(err, service.ErrStudySessionNotFound):
		response.NotFound(c, 13002, "study session not found")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 13003, "dates must use the YYYY-MM-DD format")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 13004, "end_date must not be before start_date")
	case errors.Is(err, service.ErrSyllabusNotFound):
		response.NotFound(c, 13005, "syllabus not found")
	default:
		response.InternalErrorWithDetails(c, "failed to generate study plan", err)
	}
}
