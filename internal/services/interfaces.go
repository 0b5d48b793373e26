package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"github.com/SAP-F-2025/exam-portal-service/internal/repositories"
	"github.com/SAP-F-2025/exam-portal-service/internal/validator"
)

// ===== RESPONSE DTOs =====

type UserResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         models.UserRole `json:"role"`
	ProfileImage *string         `json:"profile_image,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}

// ExamResponse is the admin view with correct options included
type ExamResponse struct {
	ID           uint                `json:"id"`
	Title        string              `json:"title"`
	Subject      string              `json:"subject"`
	Duration     int                 `json:"duration"`
	MaxMarks     int                 `json:"max_marks"`
	Instructions *string             `json:"instructions,omitempty"`
	Scheduled    bool                `json:"scheduled"`
	ScheduledAt  *time.Time          `json:"scheduled_at,omitempty"`
	CreatedBy    uint                `json:"created_by"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Questions    []AdminQuestionView `json:"questions,omitempty"`
}

type AdminQuestionView struct {
	ID            uint     `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Marks         int      `json:"marks"`
}

type ExamListResponse struct {
	Exams []ExamResponse `json:"exams"`
	Total int64          `json:"total"`
}

// StudentQuestionView is the sanitized question shape: it has no
// correct-option field at all, so it cannot leak one.
type StudentQuestionView struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Marks    int      `json:"marks"`
}

// StudentExamResponse is the sanitized exam a student takes
type StudentExamResponse struct {
	ID           uint                  `json:"id"`
	Title        string                `json:"title"`
	Subject      string                `json:"subject"`
	Duration     int                   `json:"duration"`
	MaxMarks     int                   `json:"max_marks"`
	Instructions *string               `json:"instructions,omitempty"`
	ScheduledAt  *time.Time            `json:"scheduled_at,omitempty"`
	Questions    []StudentQuestionView `json:"questions"`
}

// StudentExamListItem is one row in the student's exam list
type StudentExamListItem struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Subject       string     `json:"subject"`
	Duration      int        `json:"duration"`
	MaxMarks      int        `json:"max_marks"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	QuestionCount int        `json:"question_count"`
	Attempted     bool       `json:"attempted"`
}

type SubmitResultResponse struct {
	ResultID    uint                `json:"result_id"`
	ExamID      uint                `json:"exam_id"`
	Score       int                 `json:"score"`
	MaxMarks    int                 `json:"max_marks"`
	Percentage  float64             `json:"percentage"`
	Status      models.ResultStatus `json:"status"`
	SubmittedAt time.Time           `json:"submitted_at"`
}

type StudentResultResponse struct {
	ID          uint                `json:"id"`
	ExamID      uint                `json:"exam_id"`
	ExamTitle   string              `json:"exam_title"`
	Subject     string              `json:"subject"`
	MaxMarks    int                 `json:"max_marks"`
	Score       int                 `json:"score"`
	Percentage  float64             `json:"percentage"`
	Status      models.ResultStatus `json:"status"`
	SubmittedAt time.Time           `json:"submitted_at"`
}

type MonitoringLogResponse struct {
	ID           uint                `json:"id"`
	StudentID    uint                `json:"student_id"`
	StudentName  string              `json:"student_name,omitempty"`
	ExamID       uint                `json:"exam_id"`
	ExamTitle    string              `json:"exam_title,omitempty"`
	ActivityType models.ActivityType `json:"activity_type"`
	Timestamp    time.Time           `json:"timestamp"`
}

type MonitoringListResponse struct {
	Logs  []MonitoringLogResponse `json:"logs"`
	Total int64                   `json:"total"`
}

// StudentExamResultRow is one exam line in the per-student report.
// Exams without a submission appear with status "not_attempted".
type StudentExamResultRow struct {
	ExamID     uint                `json:"exam_id"`
	ExamTitle  string              `json:"exam_title"`
	Subject    string              `json:"subject"`
	MaxMarks   int                 `json:"max_marks"`
	Score      *int                `json:"score,omitempty"`
	Percentage *float64            `json:"percentage,omitempty"`
	Status     models.ResultStatus `json:"status"`
}

type StudentPerformanceResponse struct {
	StudentID    uint                   `json:"student_id"`
	Name         string                 `json:"name"`
	Email        string                 `json:"email"`
	AverageScore float64                `json:"average_score"` // mean percentage over attempted exams
	Exams        []StudentExamResultRow `json:"exams"`
}

type SubjectAverageResponse struct {
	Subject           string  `json:"subject"`
	ExamCount         int64   `json:"exam_count"`
	SubmissionCount   int64   `json:"submission_count"`
	AveragePercentage float64 `json:"average_percentage"`
}

type DashboardResponse struct {
	Overview       repositories.PortalOverview `json:"overview"`
	Subjects       []SubjectAverageResponse    `json:"subjects"`
	OverallAverage float64                     `json:"overall_average"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *validator.RegisterRequest) (*UserResponse, error)
	Login(ctx context.Context, req *validator.LoginRequest) (*AuthResponse, error)
	GetProfile(ctx context.Context, userID uint) (*UserResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req *validator.UpdateProfileRequest) (*UserResponse, error)
}

type UserService interface {
	List(ctx context.Context, role *models.UserRole, query string, limit, offset int) (*UserListResponse, error)
	Delete(ctx context.Context, id uint) error
}

type ExamService interface {
	Create(ctx context.Context, creatorID uint, req *validator.ExamCreateRequest) (*ExamResponse, error)
	GetByID(ctx context.Context, id uint) (*ExamResponse, error)
	Update(ctx context.Context, id uint, req *validator.ExamUpdateRequest) (*ExamResponse, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.ExamFilters) (*ExamListResponse, error)
	SetSchedule(ctx context.Context, id uint, scheduled bool) (*ExamResponse, error)
}

type StudentService interface {
	ListAvailableExams(ctx context.Context, studentID uint) ([]StudentExamListItem, error)
	GetExamForStudent(ctx context.Context, studentID, examID uint) (*StudentExamResponse, error)
	GetStudentResults(ctx context.Context, studentID uint) ([]StudentResultResponse, error)
}

type ScoringService interface {
	Submit(ctx context.Context, studentID uint, req *validator.SubmitExamRequest) (*SubmitResultResponse, error)
}

type MonitoringService interface {
	LogActivity(ctx context.Context, studentID uint, req *validator.MonitorRequest) (*MonitoringLogResponse, error)
	List(ctx context.Context, filters repositories.MonitoringFilters) (*MonitoringListResponse, error)
}

type ReportingService interface {
	GetDashboard(ctx context.Context) (*DashboardResponse, error)
	GetStudentPerformance(ctx context.Context) ([]StudentPerformanceResponse, error)
	ExportResults(ctx context.Context) ([]byte, error)
}

// ServiceManager aggregates all services and owns their lifecycle
type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Exam() ExamService
	Student() StudentService
	Scoring() ScoringService
	Monitoring() MonitoringService
	Reporting() ReportingService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
