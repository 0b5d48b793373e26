package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/exam-portal-service/internal/cache"
	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"github.com/SAP-F-2025/exam-portal-service/internal/repositories"
)

type ResultPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewResultPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ResultRepository {
	return &ResultPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (r *ResultPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create inserts a result row. The unique index on (student_id,
// exam_id) makes a duplicate submission fail here with
// gorm.ErrDuplicatedKey; callers decide the HTTP mapping.
func (r *ResultPostgreSQL) Create(ctx context.Context, tx *gorm.DB, result *models.Result) error {
	if err := r.getDB(tx).WithContext(ctx).Create(result).Error; err != nil {
		return err
	}

	cache.InvalidateResultCache(ctx, r.cacheManager, result.StudentID, result.ExamID)

	return nil
}

func (r *ResultPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Result, error) {
	var result models.Result
	err := r.getDB(tx).WithContext(ctx).Preload("Exam").First(&result, id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultPostgreSQL) GetByStudentAndExam(ctx context.Context, tx *gorm.DB, studentID, examID uint) (*models.Result, error) {
	var result models.Result
	err := r.getDB(tx).WithContext(ctx).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// List returns results matching the filters with a total count
func (r *ResultPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.ResultFilters) ([]*models.Result, int64, error) {
	query := r.getDB(tx).WithContext(ctx).Model(&models.Result{})
	query = r.helpers.ApplyResultFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count results: %w", err)
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "submitted_at"
	}
	query = r.helpers.ApplyPaginationAndSort(query, sortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var results []*models.Result
	if err := query.Preload("Exam").Find(&results).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list results: %w", err)
	}

	return results, total, nil
}

func (r *ResultPostgreSQL) GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.Result, error) {
	var results []*models.Result
	err := r.getDB(tx).WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Exam").
		Order("submitted_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get student results: %w", err)
	}
	return results, nil
}

func (r *ResultPostgreSQL) GetByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]*models.Result, error) {
	var results []*models.Result
	err := r.getDB(tx).WithContext(ctx).
		Where("exam_id = ?", examID).
		Order("submitted_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get exam results: %w", err)
	}
	return results, nil
}

func (r *ResultPostgreSQL) ExistsByStudentAndExam(ctx context.Context, tx *gorm.DB, studentID, examID uint) (bool, error) {
	var count int64
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.Result{}).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check result existence: %w", err)
	}
	return count > 0, nil
}

// AttemptedExamIDs returns the exam IDs the student has submitted
func (r *ResultPostgreSQL) AttemptedExamIDs(ctx context.Context, tx *gorm.DB, studentID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.Result{}).
		Where("student_id = ?", studentID).
		Pluck("exam_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get attempted exam ids: %w", err)
	}

	attempted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		attempted[id] = true
	}
	return attempted, nil
}
