package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/exam-portal-service/internal/repositories"
)

type studentService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewStudentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) StudentService {
	return &studentService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// ListAvailableExams returns scheduled exams with a per-student
// attempted flag.
func (s *studentService) ListAvailableExams(ctx context.Context, studentID uint) ([]StudentExamListItem, error) {
	exams, err := s.repo.Exam().ListScheduled(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled exams: %w", err)
	}

	attempted, err := s.repo.Result().AttemptedExamIDs(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempted exams: %w", err)
	}

	items := make([]StudentExamListItem, 0, len(exams))
	for _, e := range exams {
		items = append(items, StudentExamListItem{
			ID:            e.ID,
			Title:         e.Title,
			Subject:       e.Subject,
			Duration:      e.Duration,
			MaxMarks:      e.MaxMarks,
			ScheduledAt:   e.ScheduledAt,
			QuestionCount: len(e.Questions),
			Attempted:     attempted[e.ID],
		})
	}

	return items, nil
}

// GetExamForStudent returns the sanitized exam for taking. Unscheduled
// exams are indistinguishable from missing ones, and a student with an
// existing result is refused.
func (s *studentService) GetExamForStudent(ctx context.Context, studentID, examID uint) (*StudentExamResponse, error) {
	exam, err := s.repo.Exam().GetByIDWithQuestions(ctx, nil, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	if !exam.Scheduled {
		return nil, ErrNotFound
	}

	alreadyAttempted, err := s.repo.Result().ExistsByStudentAndExam(ctx, nil, studentID, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to check previous attempt: %w", err)
	}
	if alreadyAttempted {
		return nil, ErrExamAlreadyAttempted
	}

	return toStudentExamResponse(exam), nil
}

func (s *studentService) GetStudentResults(ctx context.Context, studentID uint) ([]StudentResultResponse, error) {
	results, err := s.repo.Result().GetByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student results: %w", err)
	}

	resp := make([]StudentResultResponse, 0, len(results))
	for _, r := range results {
		resp = append(resp, StudentResultResponse{
			ID:          r.ID,
			ExamID:      r.ExamID,
			ExamTitle:   r.Exam.Title,
			Subject:     r.Exam.Subject,
			MaxMarks:    r.Exam.MaxMarks,
			Score:       r.Score,
			Percentage:  r.Percentage,
			Status:      r.Status,
			SubmittedAt: r.SubmittedAt,
		})
	}

	return resp, nil
}
