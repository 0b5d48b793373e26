package models

import "time"

type ActivityType string

const (
	ActivityTabSwitch     ActivityType = "tab-switch"
	ActivityMultipleLogin ActivityType = "multiple-login"
)

// MonitoringLog is an append-only proctoring record. Logs are never
// updated or deleted through the service.
type MonitoringLog struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	StudentID uint `json:"student_id" gorm:"not null;index"`
	ExamID    uint `json:"exam_id" gorm:"not null;index"`

	ActivityType ActivityType `json:"activity_type" gorm:"not null;size:30"`
	Timestamp    time.Time    `json:"timestamp" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Student User `json:"-" gorm:"foreignKey:StudentID"`
	Exam    Exam `json:"-" gorm:"foreignKey:ExamID"`
}

func (MonitoringLog) TableName() string {
	return "monitoring_logs"
}
