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

type ReportingPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewReportingPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ReportingRepository {
	return &ReportingPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (r *ReportingPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// GetOverview returns top-level portal counts
func (r *ReportingPostgreSQL) GetOverview(ctx context.Context, tx *gorm.DB) (*repositories.PortalOverview, error) {
	db := r.getDB(tx).WithContext(ctx)
	overview := &repositories.PortalOverview{}

	if err := db.Model(&models.Exam{}).Count(&overview.TotalExams).Error; err != nil {
		return nil, fmt.Errorf("failed to count exams: %w", err)
	}
	if err := db.Model(&models.Exam{}).Where("scheduled = ?", true).Count(&overview.ScheduledExams).Error; err != nil {
		return nil, fmt.Errorf("failed to count scheduled exams: %w", err)
	}
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&overview.TotalStudents).Error; err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	if err := db.Model(&models.Result{}).Count(&overview.TotalSubmissions).Error; err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	return overview, nil
}

// GetSubjectPerformance computes the mean result percentage per
// subject, with caching since the query spans two tables.
func (r *ReportingPostgreSQL) GetSubjectPerformance(ctx context.Context, tx *gorm.DB) ([]*repositories.SubjectPerformance, error) {
	if tx != nil {
		return r.querySubjectPerformance(ctx, tx)
	}

	var rows []*repositories.SubjectPerformance
	err := r.cacheManager.Stats.CacheOrExecute(ctx, "dashboard:subjects", &rows, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		return r.querySubjectPerformance(ctx, r.db)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportingPostgreSQL) querySubjectPerformance(ctx context.Context, db *gorm.DB) ([]*repositories.SubjectPerformance, error) {
	var rows []*repositories.SubjectPerformance
	err := db.WithContext(ctx).
		Table("exams e").
		Select(`e.subject,
			COUNT(DISTINCT e.id) AS exam_count,
			COUNT(r.id) AS submission_count,
			COALESCE(AVG(r.percentage), 0) AS average_percentage`).
		Joins("LEFT JOIN results r ON r.exam_id = e.id").
		Where("e.deleted_at IS NULL").
		Group("e.subject").
		Order("e.subject ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute subject performance: %w", err)
	}
	return rows, nil
}

// GetOverallAveragePercentage computes the mean percentage over all
// graded submissions; 0 when there are none.
func (r *ReportingPostgreSQL) GetOverallAveragePercentage(ctx context.Context, tx *gorm.DB) (float64, error) {
	var avg float64
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.Result{}).
		Select("COALESCE(AVG(percentage), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute overall average: %w", err)
	}
	return avg, nil
}

// GetStudentExamScores returns every graded row joined with student
// and exam info for the per-student performance report.
func (r *ReportingPostgreSQL) GetStudentExamScores(ctx context.Context, tx *gorm.DB) ([]*repositories.StudentExamScore, error) {
	var rows []*repositories.StudentExamScore
	err := r.getDB(tx).WithContext(ctx).
		Table("results r").
		Select(`r.student_id,
			u.name AS student_name,
			u.email,
			r.exam_id,
			e.title AS exam_title,
			e.subject,
			e.max_marks,
			r.score,
			r.percentage,
			r.status,
			r.submitted_at`).
		Joins("JOIN users u ON u.id = r.student_id").
		Joins("JOIN exams e ON e.id = r.exam_id").
		Where("u.deleted_at IS NULL").
		Order("u.name ASC, r.submitted_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load student exam scores: %w", err)
	}
	return rows, nil
}
