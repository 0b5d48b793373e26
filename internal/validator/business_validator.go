package validator

import (
	"fmt"

	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator handles request and business rule validation
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the portal's business rules registered
func New() *Validator {
	v := &Validator{validate: validator.New()}
	v.registerBusinessRules()
	return v
}

// Validate validates struct tags for any request
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateExamPayload validates an exam authoring payload: struct tags
// plus the cross-field rules that tags cannot express. The marks of
// all questions must add up to the declared maximum, and every correct
// option must point inside its question's option list.
func (v *Validator) ValidateExamPayload(req *ExamCreateRequest) ValidationErrors {
	errors := v.Validate(req)

	marksTotal := 0
	for i, q := range req.Questions {
		marksTotal += q.Marks

		if q.CorrectOption != nil && *q.CorrectOption >= len(q.Options) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("questions[%d].correct_option", i),
				Message: fmt.Sprintf("must be less than the number of options (%d)", len(q.Options)),
				Value:   *q.CorrectOption,
				Rule:    "option_index",
			})
		}
	}

	if len(req.Questions) > 0 && marksTotal != req.MaxMarks {
		errors = append(errors, ValidationError{
			Field:   "max_marks",
			Message: fmt.Sprintf("sum of question marks (%d) must equal max_marks (%d)", marksTotal, req.MaxMarks),
			Value:   req.MaxMarks,
			Rule:    "marks_sum",
		})
	}

	return errors
}

// registerBusinessRules registers custom business rule validators
func (v *Validator) registerBusinessRules() {
	// Exam duration validation (1-600 minutes)
	v.validate.RegisterValidation("exam_duration", func(fl validator.FieldLevel) bool {
		duration := fl.Field().Int()
		return duration >= 1 && duration <= 600
	})

	// Proctoring activity type validation
	v.validate.RegisterValidation("activity_type", func(fl validator.FieldLevel) bool {
		activity := models.ActivityType(fl.Field().String())
		return activity == models.ActivityTabSwitch || activity == models.ActivityMultipleLogin
	})

	// Role validation
	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		role := models.UserRole(fl.Field().String())
		return role == models.RoleAdmin || role == models.RoleStudent
	})
}
