package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/exam-portal-service/internal/repositories"
	"github.com/SAP-F-2025/exam-portal-service/internal/services"
	"github.com/SAP-F-2025/exam-portal-service/internal/utils"
	"github.com/SAP-F-2025/exam-portal-service/internal/validator"
)

// ExamHandler covers the admin authoring surface
type ExamHandler struct {
	BaseHandler
	service services.ExamService
}

func NewExamHandler(service services.ExamService, logger utils.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateExam creates an exam with its questions
// @Summary Create exam
// @Tags admin-exams
// @Accept json
// @Produce json
// @Param request body validator.ExamCreateRequest true "Exam payload"
// @Success 201 {object} services.ExamResponse
// @Failure 400 {object} ErrorResponse "Validation failed (including marks sum)"
// @Router /admin/exams [post]
func (h *ExamHandler) CreateExam(c *gin.Context) {
	h.LogRequest(c, "Creating exam")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req validator.ExamCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	exam, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, exam)
}

// ListExams lists exams with filters and pagination
// @Summary List exams
// @Tags admin-exams
// @Produce json
// @Param subject query string false "Filter by subject"
// @Param scheduled query bool false "Filter by schedule state"
// @Param search query string false "Search in title and subject"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} services.ExamListResponse
// @Router /admin/exams [get]
func (h *ExamHandler) ListExams(c *gin.Context) {
	h.LogRequest(c, "Listing exams")

	filters := repositories.ExamFilters{
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}
	if subject := c.Query("subject"); subject != "" {
		filters.Subject = &subject
	}
	if scheduledStr := c.Query("scheduled"); scheduledStr != "" {
		if scheduled, err := strconv.ParseBool(scheduledStr); err == nil {
			filters.Scheduled = &scheduled
		}
	}
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	exams, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exams)
}

// GetExam returns the full exam, correct options included
// @Summary Get exam
// @Tags admin-exams
// @Produce json
// @Param id path uint true "Exam ID"
// @Success 200 {object} services.ExamResponse
// @Failure 404 {object} ErrorResponse "Exam not found"
// @Router /admin/exams/{id} [get]
func (h *ExamHandler) GetExam(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	exam, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exam)
}

// UpdateExam replaces an exam and its questions
// @Summary Update exam
// @Tags admin-exams
// @Accept json
// @Produce json
// @Param id path uint true "Exam ID"
// @Param request body validator.ExamUpdateRequest true "Exam payload"
// @Success 200 {object} services.ExamResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Exam not found"
// @Router /admin/exams/{id} [put]
func (h *ExamHandler) UpdateExam(c *gin.Context) {
	h.LogRequest(c, "Updating exam")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.ExamUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	exam, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exam)
}

// DeleteExam removes an exam
// @Summary Delete exam
// @Tags admin-exams
// @Param id path uint true "Exam ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Exam not found"
// @Router /admin/exams/{id} [delete]
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	h.LogRequest(c, "Deleting exam")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetSchedule toggles an exam's visibility to students
// @Summary Toggle exam schedule
// @Tags admin-exams
// @Accept json
// @Produce json
// @Param id path uint true "Exam ID"
// @Param request body validator.ScheduleRequest true "Schedule flag"
// @Success 200 {object} services.ExamResponse
// @Failure 404 {object} ErrorResponse "Exam not found"
// @Router /admin/exams/{id}/schedule [patch]
func (h *ExamHandler) SetSchedule(c *gin.Context) {
	h.LogRequest(c, "Toggling exam schedule")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Scheduled == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: "scheduled flag is required",
		})
		return
	}

	exam, err := h.service.SetSchedule(c.Request.Context(), id, *req.Scheduled)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exam)
}

func (h *ExamHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Exam not found",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
