package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/exam-portal-service/internal/services"
	"github.com/SAP-F-2025/exam-portal-service/internal/utils"
	"github.com/SAP-F-2025/exam-portal-service/internal/validator"
)

// StudentHandler covers the exam-taking surface: delivery, submission,
// proctoring reports and the student's own results.
type StudentHandler struct {
	BaseHandler
	studentService    services.StudentService
	scoringService    services.ScoringService
	monitoringService services.MonitoringService
}

func NewStudentHandler(
	studentService services.StudentService,
	scoringService services.ScoringService,
	monitoringService services.MonitoringService,
	logger utils.Logger,
) *StudentHandler {
	return &StudentHandler{
		BaseHandler:       NewBaseHandler(logger),
		studentService:    studentService,
		scoringService:    scoringService,
		monitoringService: monitoringService,
	}
}

// ListExams returns scheduled exams with the caller's attempted flag
// @Summary List available exams
// @Tags student
// @Produce json
// @Success 200 {array} services.StudentExamListItem
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /student/exams [get]
func (h *StudentHandler) ListExams(c *gin.Context) {
	h.LogRequest(c, "Listing available exams")

	studentID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	exams, err := h.studentService.ListAvailableExams(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exams)
}

// GetExam returns the sanitized exam for taking
// @Summary Get exam for taking
// @Tags student
// @Produce json
// @Param id path uint true "Exam ID"
// @Success 200 {object} services.StudentExamResponse
// @Failure 403 {object} ErrorResponse "Already attempted"
// @Failure 404 {object} ErrorResponse "Exam not found or not scheduled"
// @Router /student/exams/{id} [get]
func (h *StudentHandler) GetExam(c *gin.Context) {
	h.LogRequest(c, "Getting exam for student")

	studentID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	exam, err := h.studentService.GetExamForStudent(c.Request.Context(), studentID, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exam)
}

// SubmitExam grades and records the caller's answers
// @Summary Submit exam answers
// @Tags student
// @Accept json
// @Produce json
// @Param request body validator.SubmitExamRequest true "Answers keyed by question ID"
// @Success 201 {object} services.SubmitResultResponse
// @Failure 404 {object} ErrorResponse "Exam not found or not scheduled"
// @Failure 409 {object} ErrorResponse "Already submitted"
// @Router /student/exams/submit [post]
func (h *StudentHandler) SubmitExam(c *gin.Context) {
	h.LogRequest(c, "Submitting exam")

	studentID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req validator.SubmitExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	result, err := h.scoringService.Submit(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Monitor records a proctoring violation for the caller
// @Summary Report proctoring activity
// @Tags student
// @Accept json
// @Produce json
// @Param request body validator.MonitorRequest true "Activity"
// @Success 201 {object} services.MonitoringLogResponse
// @Failure 404 {object} ErrorResponse "Exam not found or not scheduled"
// @Router /student/exams/monitor [post]
func (h *StudentHandler) Monitor(c *gin.Context) {
	studentID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req validator.MonitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	log, err := h.monitoringService.LogActivity(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// GetResults returns the caller's results with exam info
// @Summary Get own results
// @Tags student
// @Produce json
// @Success 200 {array} services.StudentResultResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /student/results [get]
func (h *StudentHandler) GetResults(c *gin.Context) {
	h.LogRequest(c, "Getting student results")

	studentID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	results, err := h.studentService.GetStudentResults(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *StudentHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrExamAlreadyAttempted):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Exam already attempted",
		})
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrExamNotAvailable):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Exam not found",
		})
	case errors.Is(err, services.ErrDuplicateSubmission):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Result already submitted for this exam",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
