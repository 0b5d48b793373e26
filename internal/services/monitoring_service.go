package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/exam-portal-service/internal/events"
	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"github.com/SAP-F-2025/exam-portal-service/internal/repositories"
	"github.com/SAP-F-2025/exam-portal-service/internal/validator"
)

type monitoringService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewMonitoringService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) MonitoringService {
	return &monitoringService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// LogActivity records a proctoring violation. The referenced exam must
// exist and be scheduled; unscheduled exams cannot be in progress.
func (s *monitoringService) LogActivity(ctx context.Context, studentID uint, req *validator.MonitorRequest) (*MonitoringLogResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError(errs)
	}

	exam, err := s.repo.Exam().GetByID(ctx, nil, req.ExamID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	if !exam.Scheduled {
		return nil, ErrExamNotAvailable
	}

	log := &models.MonitoringLog{
		StudentID:    studentID,
		ExamID:       req.ExamID,
		ActivityType: models.ActivityType(req.ActivityType),
		Timestamp:    time.Now(),
	}

	if err := s.repo.Monitoring().Create(ctx, nil, log); err != nil {
		return nil, fmt.Errorf("failed to save monitoring log: %w", err)
	}

	s.logger.Warn("proctoring violation recorded",
		"student_id", studentID,
		"exam_id", req.ExamID,
		"activity_type", log.ActivityType)

	event := events.NewEvent(events.EventProctoringViolation, events.ProctoringViolationEvent{
		LogID:        log.ID,
		StudentID:    studentID,
		ExamID:       req.ExamID,
		ActivityType: string(log.ActivityType),
		Timestamp:    log.Timestamp,
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicProctoring, event); err != nil {
		s.logger.Warn("failed to publish proctoring event", "error", err)
	}

	return &MonitoringLogResponse{
		ID:           log.ID,
		StudentID:    log.StudentID,
		ExamID:       log.ExamID,
		ActivityType: log.ActivityType,
		Timestamp:    log.Timestamp,
	}, nil
}

func (s *monitoringService) List(ctx context.Context, filters repositories.MonitoringFilters) (*MonitoringListResponse, error) {
	if filters.Limit <= 0 || filters.Limit > 200 {
		filters.Limit = 50
	}

	logs, total, err := s.repo.Monitoring().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list monitoring logs: %w", err)
	}

	resp := &MonitoringListResponse{
		Logs:  make([]MonitoringLogResponse, 0, len(logs)),
		Total: total,
	}
	for _, l := range logs {
		resp.Logs = append(resp.Logs, MonitoringLogResponse{
			ID:           l.ID,
			StudentID:    l.StudentID,
			StudentName:  l.Student.Name,
			ExamID:       l.ExamID,
			ExamTitle:    l.Exam.Title,
			ActivityType: l.ActivityType,
			Timestamp:    l.Timestamp,
		})
	}

	return resp, nil
}
