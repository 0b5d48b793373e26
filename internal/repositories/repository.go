package repositories

import "context"

// Repository aggregates all repository interfaces.
type Repository interface {
	// Exam domain (exam rows own their questions)
	Exam() ExamRepository

	// Result domain
	Result() ResultRepository

	// Proctoring domain
	Monitoring() MonitoringRepository

	// User domain
	User() UserRepository

	// Aggregation queries for admin reporting
	Reporting() ReportingRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
