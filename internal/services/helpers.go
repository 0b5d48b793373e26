package services

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/exam-portal-service/internal/models"
)

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

func decodeOptions(raw datatypes.JSON) []string {
	var options []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &options)
	}
	return options
}

func encodeOptions(options []string) datatypes.JSON {
	data, _ := json.Marshal(options)
	return datatypes.JSON(data)
}

func toExamResponse(e *models.Exam) *ExamResponse {
	resp := &ExamResponse{
		ID:           e.ID,
		Title:        e.Title,
		Subject:      e.Subject,
		Duration:     e.Duration,
		MaxMarks:     e.MaxMarks,
		Instructions: e.Instructions,
		Scheduled:    e.Scheduled,
		ScheduledAt:  e.ScheduledAt,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}

	for _, q := range e.Questions {
		resp.Questions = append(resp.Questions, AdminQuestionView{
			ID:            q.ID,
			Question:      q.Text,
			Options:       decodeOptions(q.Options),
			CorrectOption: q.CorrectOption,
			Marks:         q.Marks,
		})
	}

	return resp
}

// toStudentExamResponse builds the sanitized view. The target type has
// no correct-option field, so the answer key never reaches students.
func toStudentExamResponse(e *models.Exam) *StudentExamResponse {
	resp := &StudentExamResponse{
		ID:           e.ID,
		Title:        e.Title,
		Subject:      e.Subject,
		Duration:     e.Duration,
		MaxMarks:     e.MaxMarks,
		Instructions: e.Instructions,
		ScheduledAt:  e.ScheduledAt,
		Questions:    make([]StudentQuestionView, 0, len(e.Questions)),
	}

	for _, q := range e.Questions {
		resp.Questions = append(resp.Questions, StudentQuestionView{
			ID:       q.ID,
			Question: q.Text,
			Options:  decodeOptions(q.Options),
			Marks:    q.Marks,
		})
	}

	return resp
}

func roundFloat(val float64, precision int) float64 {
	ratio := 1.0
	for i := 0; i < precision; i++ {
		ratio *= 10
	}
	return float64(int(val*ratio+0.5)) / ratio
}
