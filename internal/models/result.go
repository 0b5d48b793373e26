package models

import (
	"time"

	"gorm.io/datatypes"
)

type ResultStatus string

const (
	ResultPassed       ResultStatus = "passed"
	ResultFailed       ResultStatus = "failed"
	ResultNotAttempted ResultStatus = "not_attempted"
)

// Result is one student's graded submission for one exam. The composite
// unique index is the duplicate-attempt guard: a second insert for the
// same (student, exam) fails at the database level.
type Result struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	StudentID uint `json:"student_id" gorm:"not null;uniqueIndex:idx_results_student_exam"`
	ExamID    uint `json:"exam_id" gorm:"not null;uniqueIndex:idx_results_student_exam;index"`

	// Selected option index keyed by question ID
	Answers datatypes.JSON `json:"answers" gorm:"type:jsonb"`

	Score      int          `json:"score" gorm:"not null"`
	Percentage float64      `json:"percentage" gorm:"not null"`
	Status     ResultStatus `json:"status" gorm:"not null;index;size:20"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Student User `json:"-" gorm:"foreignKey:StudentID"`
	Exam    Exam `json:"-" gorm:"foreignKey:ExamID"`
}

func (Result) TableName() string {
	return "results"
}
