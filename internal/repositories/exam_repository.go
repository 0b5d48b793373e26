package repositories

import (
	"context"

	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"gorm.io/gorm"
)

// ExamRepository interface for exam operations. Questions are owned
// rows of the exam aggregate and are written through it.
type ExamRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, exam *models.Exam) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Exam, error)
	GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.Exam, error)
	Update(ctx context.Context, tx *gorm.DB, exam *models.Exam) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// Question management within the exam aggregate
	ReplaceQuestions(ctx context.Context, tx *gorm.DB, examID uint, questions []*models.Question) error

	// Query operations
	List(ctx context.Context, tx *gorm.DB, filters ExamFilters) ([]*models.Exam, int64, error)
	ListScheduled(ctx context.Context, tx *gorm.DB) ([]*models.Exam, error)

	// Scheduling toggle
	SetScheduled(ctx context.Context, tx *gorm.DB, id uint, scheduled bool) (*models.Exam, error)

	// Validation and checks
	ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}
