package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/exam-portal-service/internal/events"
	"github.com/SAP-F-2025/exam-portal-service/internal/validator"
)

func intPtr(i int) *int { return &i }

func validExamRequest() *validator.ExamCreateRequest {
	return &validator.ExamCreateRequest{
		Title:    "Algebra Basics",
		Subject:  "Math",
		Duration: 45,
		MaxMarks: 10,
		Questions: []validator.QuestionRequest{
			{Question: "2+2?", Options: []string{"3", "4"}, CorrectOption: intPtr(1), Marks: 4},
			{Question: "3*3?", Options: []string{"9", "6"}, CorrectOption: intPtr(0), Marks: 6},
		},
	}
}

func newExamService(repo *mockRepository) (ExamService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher(testLogger())
	return NewExamService(repo, nil, testLogger(), validator.New(), publisher), publisher
}

func TestCreateExam(t *testing.T) {
	ctx := context.Background()

	t.Run("valid payload", func(t *testing.T) {
		repo := newMockRepository()
		svc, publisher := newExamService(repo)

		exam, err := svc.Create(ctx, 1, validExamRequest())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if exam.ID == 0 {
			t.Error("exam ID not assigned")
		}
		if len(exam.Questions) != 2 {
			t.Fatalf("question count = %d, want 2", len(exam.Questions))
		}
		if exam.Questions[0].ID == 0 {
			t.Error("question IDs not assigned")
		}
		if exam.Scheduled {
			t.Error("new exam must start unscheduled")
		}
		if exam.CreatedBy != 1 {
			t.Errorf("created_by = %d, want 1", exam.CreatedBy)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventExamCreated {
			t.Errorf("published = %v, want one %s", published, events.EventExamCreated)
		}
	})

	t.Run("marks sum mismatch", func(t *testing.T) {
		repo := newMockRepository()
		svc, _ := newExamService(repo)

		req := validExamRequest()
		req.MaxMarks = 11

		_, err := svc.Create(ctx, 1, req)
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("error = %v, want ErrValidationFailed", err)
		}
		if len(repo.exams) != 0 {
			t.Error("invalid exam was persisted")
		}
	})

	t.Run("correct option out of range", func(t *testing.T) {
		repo := newMockRepository()
		svc, _ := newExamService(repo)

		req := validExamRequest()
		req.Questions[0].CorrectOption = intPtr(2) // only two options

		if _, err := svc.Create(ctx, 1, req); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("error = %v, want ErrValidationFailed", err)
		}
	})

	t.Run("no questions", func(t *testing.T) {
		repo := newMockRepository()
		svc, _ := newExamService(repo)

		req := validExamRequest()
		req.Questions = nil

		if _, err := svc.Create(ctx, 1, req); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("error = %v, want ErrValidationFailed", err)
		}
	})

	t.Run("duration out of bounds", func(t *testing.T) {
		repo := newMockRepository()
		svc, _ := newExamService(repo)

		req := validExamRequest()
		req.Duration = 601

		if _, err := svc.Create(ctx, 1, req); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("error = %v, want ErrValidationFailed", err)
		}
	})
}

func TestUpdateExam(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc, _ := newExamService(repo)

	created, err := svc.Create(ctx, 1, validExamRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	req := &validator.ExamUpdateRequest{
		Title:    "Algebra Advanced",
		Subject:  "Math",
		Duration: 60,
		MaxMarks: 5,
		Questions: []validator.QuestionRequest{
			{Question: "x^2=4, x>0?", Options: []string{"1", "2", "4"}, CorrectOption: intPtr(1), Marks: 5},
		},
	}

	updated, err := svc.Update(ctx, created.ID, req)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Algebra Advanced" || updated.MaxMarks != 5 {
		t.Errorf("fields not updated: %+v", updated)
	}
	if len(updated.Questions) != 1 {
		t.Fatalf("question count = %d, want 1", len(updated.Questions))
	}
	if updated.Questions[0].ID == created.Questions[0].ID {
		t.Error("questions were not replaced")
	}

	t.Run("same validation as create", func(t *testing.T) {
		bad := validExamRequest()
		bad.MaxMarks = 1
		if _, err := svc.Update(ctx, created.ID, bad); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("error = %v, want ErrValidationFailed", err)
		}
	})

	t.Run("unknown exam", func(t *testing.T) {
		if _, err := svc.Update(ctx, 999, validExamRequest()); !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestSetSchedule(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc, publisher := newExamService(repo)

	created, err := svc.Create(ctx, 1, validExamRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	publisher.ClearEvents()

	scheduled, err := svc.SetSchedule(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("SetSchedule(true) error = %v", err)
	}
	if !scheduled.Scheduled || scheduled.ScheduledAt == nil {
		t.Errorf("schedule on: scheduled=%v scheduled_at=%v", scheduled.Scheduled, scheduled.ScheduledAt)
	}

	// The toggle is reversible.
	unscheduled, err := svc.SetSchedule(ctx, created.ID, false)
	if err != nil {
		t.Fatalf("SetSchedule(false) error = %v", err)
	}
	if unscheduled.Scheduled || unscheduled.ScheduledAt != nil {
		t.Errorf("schedule off: scheduled=%v scheduled_at=%v", unscheduled.Scheduled, unscheduled.ScheduledAt)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 ||
		published[0].Type != events.EventExamScheduled ||
		published[1].Type != events.EventExamUnscheduled {
		t.Errorf("published %d events, want scheduled then unscheduled", len(published))
	}

	if _, err := svc.SetSchedule(ctx, 999, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteExam(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc, _ := newExamService(repo)

	created, err := svc.Create(ctx, 1, validExamRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
}
