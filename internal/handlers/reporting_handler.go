package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"github.com/SAP-F-2025/exam-portal-service/internal/repositories"
	"github.com/SAP-F-2025/exam-portal-service/internal/services"
	"github.com/SAP-F-2025/exam-portal-service/internal/utils"
)

// ReportingHandler covers the admin read side: dashboard, per-student
// results, spreadsheet export and proctoring logs.
type ReportingHandler struct {
	BaseHandler
	reportingService  services.ReportingService
	monitoringService services.MonitoringService
}

func NewReportingHandler(
	reportingService services.ReportingService,
	monitoringService services.MonitoringService,
	logger utils.Logger,
) *ReportingHandler {
	return &ReportingHandler{
		BaseHandler:       NewBaseHandler(logger),
		reportingService:  reportingService,
		monitoringService: monitoringService,
	}
}

// GetDashboard returns portal counts and subject averages
// @Summary Admin dashboard
// @Tags admin-reports
// @Produce json
// @Success 200 {object} services.DashboardResponse
// @Router /admin/dashboard [get]
func (h *ReportingHandler) GetDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard")

	dashboard, err := h.reportingService.GetDashboard(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetResults returns the per-student performance report
// @Summary Per-student results
// @Tags admin-reports
// @Produce json
// @Success 200 {array} services.StudentPerformanceResponse
// @Router /admin/results [get]
func (h *ReportingHandler) GetResults(c *gin.Context) {
	h.LogRequest(c, "Getting per-student results")

	report, err := h.reportingService.GetStudentPerformance(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportResults streams all results as an xlsx workbook
// @Summary Export results
// @Tags admin-reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /admin/results/export [get]
func (h *ReportingHandler) ExportResults(c *gin.Context) {
	h.LogRequest(c, "Exporting results")

	data, err := h.reportingService.ExportResults(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("results-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GetMonitoringLogs lists proctoring logs with filters
// @Summary List monitoring logs
// @Tags admin-reports
// @Produce json
// @Param exam_id query int false "Filter by exam"
// @Param student_id query int false "Filter by student"
// @Param activity_type query string false "Filter by activity type"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Offset"
// @Success 200 {object} services.MonitoringListResponse
// @Router /admin/monitoring [get]
func (h *ReportingHandler) GetMonitoringLogs(c *gin.Context) {
	h.LogRequest(c, "Listing monitoring logs")

	var filters repositories.MonitoringFilters
	if examIDStr := c.Query("exam_id"); examIDStr != "" {
		if id, err := strconv.ParseUint(examIDStr, 10, 32); err == nil {
			examID := uint(id)
			filters.ExamID = &examID
		}
	}
	if studentIDStr := c.Query("student_id"); studentIDStr != "" {
		if id, err := strconv.ParseUint(studentIDStr, 10, 32); err == nil {
			studentID := uint(id)
			filters.StudentID = &studentID
		}
	}
	if activityStr := c.Query("activity_type"); activityStr != "" {
		activity := models.ActivityType(activityStr)
		filters.ActivityType = &activity
	}
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := h.monitoringService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *ReportingHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Resource not found",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
