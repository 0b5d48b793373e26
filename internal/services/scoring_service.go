package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/exam-portal-service/internal/events"
	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"github.com/SAP-F-2025/exam-portal-service/internal/repositories"
	"github.com/SAP-F-2025/exam-portal-service/internal/validator"
)

// PassingPercentage is the portal-wide pass mark. Status derivation
// lives in statusForPercentage and nowhere else.
const PassingPercentage = 40.0

type scoringService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewScoringService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ScoringService {
	return &scoringService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// ScoreExam grades a submission against an exam. Answers are matched
// strictly by question ID; a question with no answer, or an answer for
// an unknown question ID, awards nothing. Full marks per question on
// an exact option match, no partial credit.
func ScoreExam(exam *models.Exam, answers map[uint]int) (score int, percentage float64, status models.ResultStatus) {
	for _, q := range exam.Questions {
		if selected, ok := answers[q.ID]; ok && selected == q.CorrectOption {
			score += q.Marks
		}
	}

	if exam.MaxMarks > 0 {
		percentage = float64(score) / float64(exam.MaxMarks) * 100
	}

	return score, percentage, statusForPercentage(percentage)
}

func statusForPercentage(percentage float64) models.ResultStatus {
	if percentage >= PassingPercentage {
		return models.ResultPassed
	}
	return models.ResultFailed
}

// Submit grades the student's answers and persists the result. The
// unique (student, exam) index is the only duplicate guard: a second
// submission fails on insert and maps to a conflict.
func (s *scoringService) Submit(ctx context.Context, studentID uint, req *validator.SubmitExamRequest) (*SubmitResultResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError(errs)
	}

	exam, err := s.repo.Exam().GetByIDWithQuestions(ctx, nil, req.ExamID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	if !exam.Scheduled {
		return nil, ErrExamNotAvailable
	}

	answers, err := parseAnswers(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err.Error())
	}

	score, percentage, status := ScoreExam(exam, answers)

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}

	result := &models.Result{
		StudentID:   studentID,
		ExamID:      exam.ID,
		Answers:     datatypes.JSON(answersJSON),
		Score:       score,
		Percentage:  percentage,
		Status:      status,
		SubmittedAt: time.Now(),
	}

	if err := s.repo.Result().Create(ctx, nil, result); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateSubmission
		}
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	s.logger.Info("exam submitted",
		"student_id", studentID,
		"exam_id", exam.ID,
		"score", score,
		"percentage", percentage,
		"status", status)

	event := events.NewEvent(events.EventResultSubmitted, events.ResultSubmittedEvent{
		ResultID:   result.ID,
		StudentID:  studentID,
		ExamID:     exam.ID,
		Score:      score,
		Percentage: percentage,
		Status:     string(status),
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicResults, event); err != nil {
		s.logger.Warn("failed to publish result event", "error", err)
	}

	return &SubmitResultResponse{
		ResultID:    result.ID,
		ExamID:      exam.ID,
		Score:       score,
		MaxMarks:    exam.MaxMarks,
		Percentage:  percentage,
		Status:      status,
		SubmittedAt: result.SubmittedAt,
	}, nil
}

// parseAnswers converts the wire format (question IDs as JSON object
// keys) into typed IDs.
func parseAnswers(raw map[string]int) (map[uint]int, error) {
	answers := make(map[uint]int, len(raw))
	for key, selected := range raw {
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid question id %q", key)
		}
		answers[uint(id)] = selected
	}
	return answers, nil
}
