package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/exam-portal-service/internal/config"
	"github.com/SAP-F-2025/exam-portal-service/internal/events"
	"github.com/SAP-F-2025/exam-portal-service/internal/repositories"
	"github.com/SAP-F-2025/exam-portal-service/internal/validator"
)

// DefaultServiceManager wires all services over a shared repository,
// database handle and event publisher.
type DefaultServiceManager struct {
	mu sync.RWMutex

	db             *gorm.DB
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher

	auth       AuthService
	user       UserService
	exam       ExamService
	student    StudentService
	scoring    ScoringService
	monitoring MonitoringService
	reporting  ReportingService

	initialized bool
}

func NewDefaultServiceManager(
	db *gorm.DB,
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	publisher events.EventPublisher,
	jwtConfig config.JWTConfig,
) *DefaultServiceManager {
	m := &DefaultServiceManager{
		db:             db,
		repo:           repo,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}

	m.auth = NewAuthService(repo, db, logger, v, publisher, jwtConfig)
	m.user = NewUserService(repo, db, logger)
	m.exam = NewExamService(repo, db, logger, v, publisher)
	m.student = NewStudentService(repo, db, logger)
	m.scoring = NewScoringService(repo, db, logger, v, publisher)
	m.monitoring = NewMonitoringService(repo, db, logger, v, publisher)
	m.reporting = NewReportingService(repo, db, logger)

	return m
}

func (m *DefaultServiceManager) Auth() AuthService             { return m.auth }
func (m *DefaultServiceManager) User() UserService             { return m.user }
func (m *DefaultServiceManager) Exam() ExamService             { return m.exam }
func (m *DefaultServiceManager) Student() StudentService       { return m.student }
func (m *DefaultServiceManager) Scoring() ScoringService       { return m.scoring }
func (m *DefaultServiceManager) Monitoring() MonitoringService { return m.monitoring }
func (m *DefaultServiceManager) Reporting() ReportingService   { return m.reporting }

func (m *DefaultServiceManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := m.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository not reachable: %w", err)
	}

	m.initialized = true
	m.logger.Info("service manager initialized")
	return nil
}

func (m *DefaultServiceManager) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *DefaultServiceManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil
	}

	if err := m.eventPublisher.Close(); err != nil {
		m.logger.Warn("failed to close event publisher", "error", err)
	}

	if err := m.repo.Close(); err != nil {
		return fmt.Errorf("failed to close repository: %w", err)
	}

	m.initialized = false
	m.logger.Info("service manager shut down")
	return nil
}

var _ ServiceManager = (*DefaultServiceManager)(nil)
