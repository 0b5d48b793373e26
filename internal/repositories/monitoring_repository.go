package repositories

import (
	"context"

	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"gorm.io/gorm"
)

// MonitoringRepository interface for proctoring logs. Append-only:
// there is no update or delete.
type MonitoringRepository interface {
	Create(ctx context.Context, tx *gorm.DB, log *models.MonitoringLog) error

	// Query operations
	List(ctx context.Context, tx *gorm.DB, filters MonitoringFilters) ([]*models.MonitoringLog, int64, error)
	GetByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]*models.MonitoringLog, error)
	CountByStudentAndExam(ctx context.Context, tx *gorm.DB, studentID, examID uint) (int64, error)
}
