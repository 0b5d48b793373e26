package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Exam struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"not null;size:255"`
	Subject  string `json:"subject" gorm:"not null;index;size:100"`
	Duration int    `json:"duration" gorm:"not null"` // minutes
	MaxMarks int    `json:"max_marks" gorm:"not null"`

	Instructions *string `json:"instructions" gorm:"type:text"`

	// Visibility: students only see exams with Scheduled == true
	Scheduled   bool       `json:"scheduled" gorm:"default:false;index"`
	ScheduledAt *time.Time `json:"scheduled_at"`

	CreatedBy uint `json:"created_by" gorm:"not null;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Questions []Question `json:"questions" gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE"`
	Creator   User       `json:"-" gorm:"foreignKey:CreatedBy"`
}

func (Exam) TableName() string {
	return "exams"
}

type Question struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	ExamID   uint `json:"exam_id" gorm:"not null;index"`
	Position int  `json:"position" gorm:"not null"`

	Text string `json:"question" gorm:"not null;type:text"`

	// Answer options as a JSON array of strings
	Options datatypes.JSON `json:"options" gorm:"type:jsonb;not null"`

	// Index into Options; never serialized on student routes
	CorrectOption int `json:"correct_option,omitempty" gorm:"not null"`
	Marks         int `json:"marks" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}
