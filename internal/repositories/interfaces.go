package repositories

import (
	"time"

	"github.com/SAP-F-2025/exam-portal-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type ExamFilters struct {
	Subject   *string `json:"subject"`
	Scheduled *bool   `json:"scheduled"`
	CreatedBy *uint   `json:"created_by"`
	Search    string  `json:"search"` // matches title or subject
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
	SortBy    string  `json:"sort_by"`    // "created_at", "title", "subject"
	SortOrder string  `json:"sort_order"` // "asc", "desc"
}

type ResultFilters struct {
	StudentID *uint                `json:"student_id"`
	ExamID    *uint                `json:"exam_id"`
	Status    *models.ResultStatus `json:"status"`
	DateFrom  *time.Time           `json:"date_from"`
	DateTo    *time.Time           `json:"date_to"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
	SortBy    string               `json:"sort_by"`
	SortOrder string               `json:"sort_order"`
}

type MonitoringFilters struct {
	StudentID    *uint                `json:"student_id"`
	ExamID       *uint                `json:"exam_id"`
	ActivityType *models.ActivityType `json:"activity_type"`
	DateFrom     *time.Time           `json:"date_from"`
	DateTo       *time.Time           `json:"date_to"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

type UserFilters struct {
	Role   *models.UserRole `json:"role"`
	Query  string           `json:"query"` // matches name or email
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

// SubjectPerformance is one row of the dashboard aggregation: the mean
// result percentage across all graded submissions for a subject.
type SubjectPerformance struct {
	Subject           string  `json:"subject"`
	ExamCount         int64   `json:"exam_count"`
	SubmissionCount   int64   `json:"submission_count"`
	AveragePercentage float64 `json:"average_percentage"`
}

// StudentExamScore is one graded row used by the per-student
// performance report.
type StudentExamScore struct {
	StudentID   uint                `json:"student_id"`
	StudentName string              `json:"student_name"`
	Email       string              `json:"email"`
	ExamID      uint                `json:"exam_id"`
	ExamTitle   string              `json:"exam_title"`
	Subject     string              `json:"subject"`
	MaxMarks    int                 `json:"max_marks"`
	Score       int                 `json:"score"`
	Percentage  float64             `json:"percentage"`
	Status      models.ResultStatus `json:"status"`
	SubmittedAt time.Time           `json:"submitted_at"`
}

type PortalOverview struct {
	TotalExams       int64 `json:"total_exams"`
	ScheduledExams   int64 `json:"scheduled_exams"`
	TotalStudents    int64 `json:"total_students"`
	TotalSubmissions int64 `json:"total_submissions"`
}
