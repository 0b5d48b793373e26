package validator

import (
	"testing"
)

func intPtr(i int) *int { return &i }

func validRequest() *ExamCreateRequest {
	return &ExamCreateRequest{
		Title:    "Geometry",
		Subject:  "Math",
		Duration: 60,
		MaxMarks: 10,
		Questions: []QuestionRequest{
			{Question: "Q1", Options: []string{"a", "b", "c"}, CorrectOption: intPtr(2), Marks: 6},
			{Question: "Q2", Options: []string{"a", "b"}, CorrectOption: intPtr(0), Marks: 4},
		},
	}
}

func hasRule(errs ValidationErrors, rule string) bool {
	for _, e := range errs {
		if e.Rule == rule {
			return true
		}
	}
	return false
}

func TestValidateExamPayload(t *testing.T) {
	v := New()

	t.Run("valid payload passes", func(t *testing.T) {
		if errs := v.ValidateExamPayload(validRequest()); errs.HasErrors() {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("marks must sum to max marks", func(t *testing.T) {
		req := validRequest()
		req.MaxMarks = 9

		errs := v.ValidateExamPayload(req)
		if !errs.HasErrors() || !hasRule(errs, "marks_sum") {
			t.Errorf("errors = %v, want marks_sum violation", errs)
		}
	})

	t.Run("correct option inside option list", func(t *testing.T) {
		req := validRequest()
		req.Questions[1].CorrectOption = intPtr(2) // only two options

		errs := v.ValidateExamPayload(req)
		if !hasRule(errs, "option_index") {
			t.Errorf("errors = %v, want option_index violation", errs)
		}
	})

	t.Run("correct option zero is valid", func(t *testing.T) {
		req := validRequest()
		req.Questions[0].CorrectOption = intPtr(0)
		req.Questions[1].CorrectOption = intPtr(0)

		if errs := v.ValidateExamPayload(req); errs.HasErrors() {
			t.Errorf("index 0 rejected: %v", errs)
		}
	})

	t.Run("missing correct option", func(t *testing.T) {
		req := validRequest()
		req.Questions[0].CorrectOption = nil

		if errs := v.ValidateExamPayload(req); !errs.HasErrors() {
			t.Error("missing correct option accepted")
		}
	})

	t.Run("at least two options per question", func(t *testing.T) {
		req := validRequest()
		req.Questions[0].Options = []string{"only"}
		req.Questions[0].CorrectOption = intPtr(0)

		if errs := v.ValidateExamPayload(req); !errs.HasErrors() {
			t.Error("single-option question accepted")
		}
	})

	t.Run("duration bounds", func(t *testing.T) {
		for _, duration := range []int{0, 601} {
			req := validRequest()
			req.Duration = duration
			if errs := v.ValidateExamPayload(req); !errs.HasErrors() {
				t.Errorf("duration %d accepted", duration)
			}
		}
	})
}

func TestValidateMonitorRequest(t *testing.T) {
	v := New()

	tests := []struct {
		activity string
		wantOK   bool
	}{
		{"tab-switch", true},
		{"multiple-login", true},
		{"looked-away", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.activity, func(t *testing.T) {
			errs := v.Validate(&MonitorRequest{ExamID: 1, ActivityType: tt.activity})
			if tt.wantOK && errs.HasErrors() {
				t.Errorf("%q rejected: %v", tt.activity, errs)
			}
			if !tt.wantOK && !errs.HasErrors() {
				t.Errorf("%q accepted", tt.activity)
			}
		})
	}
}

func TestValidateRegisterRequest(t *testing.T) {
	v := New()

	t.Run("valid", func(t *testing.T) {
		errs := v.Validate(&RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter22"})
		if errs.HasErrors() {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("role restricted", func(t *testing.T) {
		for role, wantOK := range map[string]bool{"student": true, "admin": true, "teacher": false} {
			errs := v.Validate(&RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter22", Role: role})
			if wantOK == errs.HasErrors() {
				t.Errorf("role %q: errors = %v, wantOK = %v", role, errs, wantOK)
			}
		}
	})

	t.Run("email format", func(t *testing.T) {
		errs := v.Validate(&RegisterRequest{Name: "Ada", Email: "not-an-email", Password: "hunter22"})
		if !errs.HasErrors() {
			t.Error("malformed email accepted")
		}
	})
}
