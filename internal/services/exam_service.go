package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/exam-portal-service/internal/events"
	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"github.com/SAP-F-2025/exam-portal-service/internal/repositories"
	"github.com/SAP-F-2025/exam-portal-service/internal/validator"
)

type examService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewExamService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ExamService {
	return &examService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// Create validates the authoring payload (including the marks-sum
// rule) and inserts the exam aggregate.
func (s *examService) Create(ctx context.Context, creatorID uint, req *validator.ExamCreateRequest) (*ExamResponse, error) {
	if errs := s.validator.ValidateExamPayload(req); errs.HasErrors() {
		return nil, NewValidationError(errs)
	}

	exam := &models.Exam{
		Title:        req.Title,
		Subject:      req.Subject,
		Duration:     req.Duration,
		MaxMarks:     req.MaxMarks,
		Instructions: req.Instructions,
		CreatedBy:    creatorID,
		Questions:    buildQuestions(req.Questions),
	}

	err := s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		return r.Exam().Create(ctx, nil, exam)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create exam: %w", err)
	}

	s.logger.Info("exam created",
		"exam_id", exam.ID,
		"subject", exam.Subject,
		"questions", len(exam.Questions),
		"created_by", creatorID)

	s.publishExamEvent(ctx, events.EventExamCreated, exam)

	return toExamResponse(exam), nil
}

func (s *examService) GetByID(ctx context.Context, id uint) (*ExamResponse, error) {
	exam, err := s.repo.Exam().GetByIDWithQuestions(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	return toExamResponse(exam), nil
}

// Update replaces the exam wholesale under the same validation rules
// as creation. Questions are swapped atomically with the field update.
func (s *examService) Update(ctx context.Context, id uint, req *validator.ExamUpdateRequest) (*ExamResponse, error) {
	if errs := s.validator.ValidateExamPayload(req); errs.HasErrors() {
		return nil, NewValidationError(errs)
	}

	exam, err := s.repo.Exam().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	exam.Title = req.Title
	exam.Subject = req.Subject
	exam.Duration = req.Duration
	exam.MaxMarks = req.MaxMarks
	exam.Instructions = req.Instructions

	questions := buildQuestions(req.Questions)
	questionPtrs := make([]*models.Question, len(questions))
	for i := range questions {
		questionPtrs[i] = &questions[i]
	}

	err = s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		if err := r.Exam().Update(ctx, nil, exam); err != nil {
			return err
		}
		return r.Exam().ReplaceQuestions(ctx, nil, exam.ID, questionPtrs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update exam: %w", err)
	}

	s.logger.Info("exam updated", "exam_id", exam.ID, "questions", len(questions))

	s.publishExamEvent(ctx, events.EventExamUpdated, exam)

	return s.GetByID(ctx, id)
}

func (s *examService) Delete(ctx context.Context, id uint) error {
	exam, err := s.repo.Exam().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get exam: %w", err)
	}

	if err := s.repo.Exam().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete exam: %w", err)
	}

	s.logger.Info("exam deleted", "exam_id", id)

	s.publishExamEvent(ctx, events.EventExamDeleted, exam)

	return nil
}

func (s *examService) List(ctx context.Context, filters repositories.ExamFilters) (*ExamListResponse, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}

	exams, total, err := s.repo.Exam().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}

	resp := &ExamListResponse{
		Exams: make([]ExamResponse, 0, len(exams)),
		Total: total,
	}
	for _, e := range exams {
		resp.Exams = append(resp.Exams, *toExamResponse(e))
	}

	return resp, nil
}

// SetSchedule toggles student visibility. The toggle is reversible:
// scheduling stamps scheduled_at, unscheduling clears it.
func (s *examService) SetSchedule(ctx context.Context, id uint, scheduled bool) (*ExamResponse, error) {
	exam, err := s.repo.Exam().SetScheduled(ctx, nil, id, scheduled)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update exam schedule: %w", err)
	}

	s.logger.Info("exam schedule toggled", "exam_id", id, "scheduled", scheduled)

	eventType := events.EventExamUnscheduled
	if scheduled {
		eventType = events.EventExamScheduled
	}
	s.publishExamEvent(ctx, eventType, exam)

	return toExamResponse(exam), nil
}

func (s *examService) publishExamEvent(ctx context.Context, eventType string, exam *models.Exam) {
	event := events.NewEvent(eventType, events.ExamScheduleEvent{
		ExamID:    exam.ID,
		Title:     exam.Title,
		Subject:   exam.Subject,
		Scheduled: exam.Scheduled,
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicExams, event); err != nil {
		s.logger.Warn("failed to publish exam event", "event_type", eventType, "error", err)
	}
}

func buildQuestions(reqs []validator.QuestionRequest) []models.Question {
	questions := make([]models.Question, 0, len(reqs))
	for i, q := range reqs {
		correct := 0
		if q.CorrectOption != nil {
			correct = *q.CorrectOption
		}
		questions = append(questions, models.Question{
			Position:      i + 1,
			Text:          q.Question,
			Options:       encodeOptions(q.Options),
			CorrectOption: correct,
			Marks:         q.Marks,
		})
	}
	return questions
}
