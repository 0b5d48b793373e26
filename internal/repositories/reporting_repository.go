package repositories

import (
	"context"

	"gorm.io/gorm"
)

// ReportingRepository interface for on-demand aggregation queries.
// Nothing here is materialized; every call computes from live rows.
type ReportingRepository interface {
	GetOverview(ctx context.Context, tx *gorm.DB) (*PortalOverview, error)
	GetSubjectPerformance(ctx context.Context, tx *gorm.DB) ([]*SubjectPerformance, error)
	GetOverallAveragePercentage(ctx context.Context, tx *gorm.DB) (float64, error)
	GetStudentExamScores(ctx context.Context, tx *gorm.DB) ([]*StudentExamScore, error)
}
