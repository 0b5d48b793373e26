package repositories

import (
	"context"

	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"gorm.io/gorm"
)

// ResultRepository interface for graded submission rows. Results are
// insert-only; Create surfaces the unique (student, exam) violation as
// a duplicate-key error.
type ResultRepository interface {
	Create(ctx context.Context, tx *gorm.DB, result *models.Result) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Result, error)
	GetByStudentAndExam(ctx context.Context, tx *gorm.DB, studentID, examID uint) (*models.Result, error)

	// Query operations
	List(ctx context.Context, tx *gorm.DB, filters ResultFilters) ([]*models.Result, int64, error)
	GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.Result, error)
	GetByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]*models.Result, error)

	// Validation and checks
	ExistsByStudentAndExam(ctx context.Context, tx *gorm.DB, studentID, examID uint) (bool, error)

	// AttemptedExamIDs returns the set of exam IDs the student has a
	// result for, used to flag exam lists.
	AttemptedExamIDs(ctx context.Context, tx *gorm.DB, studentID uint) (map[uint]bool, error)
}
