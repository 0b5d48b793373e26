package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"github.com/SAP-F-2025/exam-portal-service/internal/repositories"
)

type MonitoringPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewMonitoringPostgreSQL(db *gorm.DB) repositories.MonitoringRepository {
	return &MonitoringPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (m *MonitoringPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return m.db
}

func (m *MonitoringPostgreSQL) Create(ctx context.Context, tx *gorm.DB, log *models.MonitoringLog) error {
	if err := m.getDB(tx).WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to create monitoring log: %w", err)
	}
	return nil
}

// List returns monitoring logs matching the filters, newest first
func (m *MonitoringPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.MonitoringFilters) ([]*models.MonitoringLog, int64, error) {
	query := m.getDB(tx).WithContext(ctx).Model(&models.MonitoringLog{})
	query = m.helpers.ApplyMonitoringFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count monitoring logs: %w", err)
	}

	query = m.helpers.ApplyPaginationAndSort(query, "timestamp", "desc", filters.Limit, filters.Offset)

	var logs []*models.MonitoringLog
	if err := query.Preload("Student").Preload("Exam").Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list monitoring logs: %w", err)
	}

	return logs, total, nil
}

func (m *MonitoringPostgreSQL) GetByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]*models.MonitoringLog, error) {
	var logs []*models.MonitoringLog
	err := m.getDB(tx).WithContext(ctx).
		Where("exam_id = ?", examID).
		Order("timestamp DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get monitoring logs for exam: %w", err)
	}
	return logs, nil
}

func (m *MonitoringPostgreSQL) CountByStudentAndExam(ctx context.Context, tx *gorm.DB, studentID, examID uint) (int64, error) {
	var count int64
	err := m.getDB(tx).WithContext(ctx).
		Model(&models.MonitoringLog{}).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count monitoring logs: %w", err)
	}
	return count, nil
}
