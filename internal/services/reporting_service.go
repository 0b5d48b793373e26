package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"github.com/SAP-F-2025/exam-portal-service/internal/repositories"
)

type reportingService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewReportingService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) ReportingService {
	return &reportingService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// GetDashboard composes the admin overview: portal counts, per-subject
// mean percentage, and the overall mean across all submissions.
func (s *reportingService) GetDashboard(ctx context.Context) (*DashboardResponse, error) {
	overview, err := s.repo.Reporting().GetOverview(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get portal overview: %w", err)
	}

	subjects, err := s.repo.Reporting().GetSubjectPerformance(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject performance: %w", err)
	}

	overall, err := s.repo.Reporting().GetOverallAveragePercentage(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get overall average: %w", err)
	}

	resp := &DashboardResponse{
		Overview:       *overview,
		Subjects:       make([]SubjectAverageResponse, 0, len(subjects)),
		OverallAverage: roundFloat(overall, 2),
	}
	for _, sp := range subjects {
		resp.Subjects = append(resp.Subjects, SubjectAverageResponse{
			Subject:           sp.Subject,
			ExamCount:         sp.ExamCount,
			SubmissionCount:   sp.SubmissionCount,
			AveragePercentage: roundFloat(sp.AveragePercentage, 2),
		})
	}

	return resp, nil
}

// GetStudentPerformance builds the per-student report across every
// exam in the portal. Exams a student never submitted appear as
// not_attempted rows and are excluded from the student's average.
func (s *reportingService) GetStudentPerformance(ctx context.Context) ([]StudentPerformanceResponse, error) {
	studentRole := models.RoleStudent
	students, _, err := s.repo.User().List(ctx, nil, repositories.UserFilters{Role: &studentRole})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	exams, _, err := s.repo.Exam().List(ctx, nil, repositories.ExamFilters{SortBy: "created_at", SortOrder: "asc"})
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}

	scores, err := s.repo.Reporting().GetStudentExamScores(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get exam scores: %w", err)
	}

	scoreByStudentExam := make(map[uint]map[uint]*repositories.StudentExamScore, len(students))
	for _, sc := range scores {
		if scoreByStudentExam[sc.StudentID] == nil {
			scoreByStudentExam[sc.StudentID] = make(map[uint]*repositories.StudentExamScore)
		}
		scoreByStudentExam[sc.StudentID][sc.ExamID] = sc
	}

	report := make([]StudentPerformanceResponse, 0, len(students))
	for _, student := range students {
		row := StudentPerformanceResponse{
			StudentID: student.ID,
			Name:      student.Name,
			Email:     student.Email,
			Exams:     make([]StudentExamResultRow, 0, len(exams)),
		}

		var sum float64
		var attempted int
		for _, exam := range exams {
			examRow := StudentExamResultRow{
				ExamID:    exam.ID,
				ExamTitle: exam.Title,
				Subject:   exam.Subject,
				MaxMarks:  exam.MaxMarks,
				Status:    models.ResultNotAttempted,
			}
			if sc, ok := scoreByStudentExam[student.ID][exam.ID]; ok {
				score := sc.Score
				percentage := roundFloat(sc.Percentage, 2)
				examRow.Score = &score
				examRow.Percentage = &percentage
				examRow.Status = sc.Status
				sum += sc.Percentage
				attempted++
			}
			row.Exams = append(row.Exams, examRow)
		}

		if attempted > 0 {
			row.AverageScore = roundFloat(sum/float64(attempted), 2)
		}

		report = append(report, row)
	}

	return report, nil
}

// ExportResults renders every graded submission as an xlsx workbook.
func (s *reportingService) ExportResults(ctx context.Context) ([]byte, error) {
	scores, err := s.repo.Reporting().GetStudentExamScores(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get exam scores: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close export workbook", "error", err)
		}
	}()

	const sheet = "Results"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to prepare export workbook: %w", err)
	}

	headers := []string{"Student", "Email", "Exam", "Subject", "Score", "Max Marks", "Percentage", "Status", "Submitted At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write export header: %w", err)
		}
	}

	for rowIdx, sc := range scores {
		values := []interface{}{
			sc.StudentName,
			sc.Email,
			sc.ExamTitle,
			sc.Subject,
			sc.Score,
			sc.MaxMarks,
			roundFloat(sc.Percentage, 2),
			string(sc.Status),
			sc.SubmittedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write export row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export workbook: %w", err)
	}

	s.logger.Info("results exported", "rows", len(scores))

	return buf.Bytes(), nil
}
