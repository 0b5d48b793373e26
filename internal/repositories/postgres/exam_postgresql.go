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

type ExamPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewExamPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ExamRepository {
	return &ExamPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// getDB returns the transaction DB if provided, otherwise the default DB
func (e *ExamPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return e.db
}

// Create inserts an exam together with its questions and invalidates
// list caches.
func (e *ExamPostgreSQL) Create(ctx context.Context, tx *gorm.DB, exam *models.Exam) error {
	if err := e.getDB(tx).WithContext(ctx).Create(exam).Error; err != nil {
		return fmt.Errorf("failed to create exam: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, e.cacheManager.Exam, "list:*")
	cache.SafeInvalidatePattern(ctx, e.cacheManager.Exam, "scheduled:*")

	return nil
}

// GetByID retrieves an exam without its questions
func (e *ExamPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Exam, error) {
	var exam models.Exam
	err := e.getDB(tx).WithContext(ctx).First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

// GetByIDWithQuestions retrieves the full exam aggregate with caching
func (e *ExamPostgreSQL) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.Exam, error) {
	// Transactional reads bypass the cache to see uncommitted writes
	if tx != nil {
		return e.loadWithQuestions(ctx, tx, id)
	}

	cacheKey := fmt.Sprintf("id:%d", id)
	var exam models.Exam

	err := e.cacheManager.Exam.CacheOrExecute(ctx, cacheKey, &exam, cache.ExamCacheConfig.TTL, func() (interface{}, error) {
		return e.loadWithQuestions(ctx, e.db, id)
	})
	if err != nil {
		return nil, err
	}

	return &exam, nil
}

func (e *ExamPostgreSQL) loadWithQuestions(ctx context.Context, db *gorm.DB, id uint) (*models.Exam, error) {
	var exam models.Exam
	err := db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position ASC")
		}).
		First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

// Update saves exam fields (not questions) and invalidates cache
func (e *ExamPostgreSQL) Update(ctx context.Context, tx *gorm.DB, exam *models.Exam) error {
	err := e.getDB(tx).WithContext(ctx).
		Model(&models.Exam{}).
		Where("id = ?", exam.ID).
		Updates(map[string]interface{}{
			"title":        exam.Title,
			"subject":      exam.Subject,
			"duration":     exam.Duration,
			"max_marks":    exam.MaxMarks,
			"instructions": exam.Instructions,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update exam: %w", err)
	}

	cache.InvalidateExamCache(ctx, e.cacheManager, exam.ID)

	return nil
}

// ReplaceQuestions swaps the exam's question set atomically with the
// surrounding transaction.
func (e *ExamPostgreSQL) ReplaceQuestions(ctx context.Context, tx *gorm.DB, examID uint, questions []*models.Question) error {
	db := e.getDB(tx)

	if err := db.WithContext(ctx).Where("exam_id = ?", examID).Delete(&models.Question{}).Error; err != nil {
		return fmt.Errorf("failed to delete exam questions: %w", err)
	}

	for i, q := range questions {
		q.ID = 0
		q.ExamID = examID
		q.Position = i + 1
	}

	if len(questions) > 0 {
		if err := db.WithContext(ctx).Create(&questions).Error; err != nil {
			return fmt.Errorf("failed to insert exam questions: %w", err)
		}
	}

	cache.InvalidateExamCache(ctx, e.cacheManager, examID)

	return nil
}

// Delete soft-deletes the exam and invalidates cache
func (e *ExamPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := e.getDB(tx).WithContext(ctx).Delete(&models.Exam{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete exam: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateExamCache(ctx, e.cacheManager, id)

	return nil
}

// List returns exams matching the filters with a total count
func (e *ExamPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.ExamFilters) ([]*models.Exam, int64, error) {
	db := e.getDB(tx)

	query := db.WithContext(ctx).Model(&models.Exam{})
	query = e.helpers.ApplyExamFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count exams: %w", err)
	}

	query = e.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var exams []*models.Exam
	if err := query.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position ASC")
	}).Find(&exams).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list exams: %w", err)
	}

	return exams, total, nil
}

// ListScheduled returns all exams currently visible to students
func (e *ExamPostgreSQL) ListScheduled(ctx context.Context, tx *gorm.DB) ([]*models.Exam, error) {
	var exams []*models.Exam
	err := e.getDB(tx).WithContext(ctx).
		Where("scheduled = ?", true).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position ASC")
		}).
		Order("scheduled_at DESC").
		Find(&exams).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled exams: %w", err)
	}
	return exams, nil
}

// SetScheduled flips exam visibility, stamping or clearing scheduled_at
func (e *ExamPostgreSQL) SetScheduled(ctx context.Context, tx *gorm.DB, id uint, scheduled bool) (*models.Exam, error) {
	db := e.getDB(tx)

	updates := map[string]interface{}{"scheduled": scheduled}
	if scheduled {
		updates["scheduled_at"] = gorm.Expr("NOW()")
	} else {
		updates["scheduled_at"] = nil
	}

	result := db.WithContext(ctx).Model(&models.Exam{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update exam schedule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	cache.InvalidateExamCache(ctx, e.cacheManager, id)

	var exam models.Exam
	if err := db.WithContext(ctx).First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

// ExistsByID checks exam existence with a short-lived cache
func (e *ExamPostgreSQL) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	if tx == nil {
		cacheKey := fmt.Sprintf("exam:%d", id)
		var exists bool
		if err := e.cacheManager.Exists.Get(ctx, cacheKey, &exists); err == nil {
			return exists, nil
		}
	}

	var count int64
	err := e.getDB(tx).WithContext(ctx).
		Model(&models.Exam{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check exam existence: %w", err)
	}

	exists := count > 0
	if tx == nil {
		_ = e.cacheManager.Exists.Set(ctx, fmt.Sprintf("exam:%d", id), exists, cache.ExistsCacheConfig.TTL)
	}

	return exists, nil
}
