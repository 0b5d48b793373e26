package validator

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,user_role"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest updates the caller's own profile
type UpdateProfileRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=100"`
	ProfileImage *string `json:"profile_image" validate:"omitempty,max=500"`
}

// QuestionRequest is one question inside an exam payload.
// CorrectOption is a pointer so index 0 survives the required check.
type QuestionRequest struct {
	Question      string   `json:"question" validate:"required,min=1,max=2000"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectOption *int     `json:"correct_option" validate:"required,min=0"`
	Marks         int      `json:"marks" validate:"required,min=1"`
}

// ExamCreateRequest is the full exam authoring payload
type ExamCreateRequest struct {
	Title        string            `json:"title" validate:"required,min=1,max=255"`
	Subject      string            `json:"subject" validate:"required,min=1,max=100"`
	Duration     int               `json:"duration" validate:"required,exam_duration"`
	MaxMarks     int               `json:"max_marks" validate:"required,min=1"`
	Instructions *string           `json:"instructions" validate:"omitempty,max=5000"`
	Questions    []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// ExamUpdateRequest replaces an exam wholesale, same shape and rules
// as creation.
type ExamUpdateRequest = ExamCreateRequest

// ScheduleRequest toggles exam visibility
type ScheduleRequest struct {
	Scheduled *bool `json:"scheduled" validate:"required"`
}

// SubmitExamRequest carries a student's answers keyed by question ID
type SubmitExamRequest struct {
	ExamID  uint           `json:"exam_id" validate:"required"`
	Answers map[string]int `json:"answers" validate:"required"`
}

// MonitorRequest records one proctoring activity
type MonitorRequest struct {
	ExamID       uint   `json:"exam_id" validate:"required"`
	ActivityType string `json:"activity_type" validate:"required,activity_type"`
}
