package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Topics
const (
	TopicExams      = "exam-portal.exams"
	TopicResults    = "exam-portal.results"
	TopicProctoring = "exam-portal.proctoring"
	TopicUsers      = "exam-portal.users"
)

// Event types
const (
	EventExamCreated     = "exam.created"
	EventExamUpdated     = "exam.updated"
	EventExamDeleted     = "exam.deleted"
	EventExamScheduled   = "exam.scheduled"
	EventExamUnscheduled = "exam.unscheduled"

	EventResultSubmitted = "result.submitted"

	EventProctoringViolation = "proctoring.violation"

	EventUserRegistered = "user.registered"
)

// Event is the envelope every message on the bus shares.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an event envelope for the given type and payload.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    "exam-portal-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events. Publishing is best-effort:
// callers log failures and never fail the request over them.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *Event) error
	Close() error
}

// Payloads

type ResultSubmittedEvent struct {
	ResultID   uint    `json:"result_id"`
	StudentID  uint    `json:"student_id"`
	ExamID     uint    `json:"exam_id"`
	Score      int     `json:"score"`
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
}

type ExamScheduleEvent struct {
	ExamID    uint   `json:"exam_id"`
	Title     string `json:"title"`
	Subject   string `json:"subject"`
	Scheduled bool   `json:"scheduled"`
}

type ProctoringViolationEvent struct {
	LogID        uint      `json:"log_id"`
	StudentID    uint      `json:"student_id"`
	ExamID       uint      `json:"exam_id"`
	ActivityType string    `json:"activity_type"`
	Timestamp    time.Time `json:"timestamp"`
}
