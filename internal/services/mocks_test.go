package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/exam-portal-service/internal/models"
	"github.com/SAP-F-2025/exam-portal-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	exams      map[uint]*models.Exam
	results    map[uint]*models.Result
	users      map[uint]*models.User
	monitoring []*models.MonitoringLog

	nextExamID       uint
	nextQuestionID   uint
	nextResultID     uint
	nextUserID       uint
	nextMonitoringID uint

	// Optional error injection
	examErr   error
	resultErr error
	userErr   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		exams:   make(map[uint]*models.Exam),
		results: make(map[uint]*models.Result),
		users:   make(map[uint]*models.User),
	}
}

func (m *mockRepository) Exam() repositories.ExamRepository             { return &mockExamRepo{m} }
func (m *mockRepository) Result() repositories.ResultRepository         { return &mockResultRepo{m} }
func (m *mockRepository) Monitoring() repositories.MonitoringRepository { return &mockMonitoringRepo{m} }
func (m *mockRepository) User() repositories.UserRepository             { return &mockUserRepo{m} }
func (m *mockRepository) Reporting() repositories.ReportingRepository   { return &mockReportingRepo{m} }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// addExam seeds an exam with question IDs assigned.
func (m *mockRepository) addExam(exam *models.Exam) *models.Exam {
	m.nextExamID++
	exam.ID = m.nextExamID
	for i := range exam.Questions {
		m.nextQuestionID++
		exam.Questions[i].ID = m.nextQuestionID
		exam.Questions[i].ExamID = exam.ID
	}
	m.exams[exam.ID] = exam
	return exam
}

func (m *mockRepository) addUser(user *models.User) *models.User {
	m.nextUserID++
	user.ID = m.nextUserID
	m.users[user.ID] = user
	return user
}

// ===== EXAM =====

type mockExamRepo struct{ m *mockRepository }

func (r *mockExamRepo) Create(ctx context.Context, tx *gorm.DB, exam *models.Exam) error {
	if r.m.examErr != nil {
		return r.m.examErr
	}
	r.m.addExam(exam)
	return nil
}

func (r *mockExamRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Exam, error) {
	if r.m.examErr != nil {
		return nil, r.m.examErr
	}
	exam, ok := r.m.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *exam
	copied.Questions = nil
	return &copied, nil
}

func (r *mockExamRepo) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.Exam, error) {
	if r.m.examErr != nil {
		return nil, r.m.examErr
	}
	exam, ok := r.m.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *exam
	return &copied, nil
}

func (r *mockExamRepo) Update(ctx context.Context, tx *gorm.DB, exam *models.Exam) error {
	stored, ok := r.m.exams[exam.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Title = exam.Title
	stored.Subject = exam.Subject
	stored.Duration = exam.Duration
	stored.MaxMarks = exam.MaxMarks
	stored.Instructions = exam.Instructions
	return nil
}

func (r *mockExamRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if _, ok := r.m.exams[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.exams, id)
	return nil
}

func (r *mockExamRepo) ReplaceQuestions(ctx context.Context, tx *gorm.DB, examID uint, questions []*models.Question) error {
	exam, ok := r.m.exams[examID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	exam.Questions = exam.Questions[:0]
	for i, q := range questions {
		r.m.nextQuestionID++
		q.ID = r.m.nextQuestionID
		q.ExamID = examID
		q.Position = i + 1
		exam.Questions = append(exam.Questions, *q)
	}
	return nil
}

func (r *mockExamRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.ExamFilters) ([]*models.Exam, int64, error) {
	exams := make([]*models.Exam, 0, len(r.m.exams))
	for _, e := range r.m.exams {
		if filters.Subject != nil && e.Subject != *filters.Subject {
			continue
		}
		if filters.Scheduled != nil && e.Scheduled != *filters.Scheduled {
			continue
		}
		exams = append(exams, e)
	}
	sort.Slice(exams, func(i, j int) bool { return exams[i].ID < exams[j].ID })
	return exams, int64(len(exams)), nil
}

func (r *mockExamRepo) ListScheduled(ctx context.Context, tx *gorm.DB) ([]*models.Exam, error) {
	var exams []*models.Exam
	for _, e := range r.m.exams {
		if e.Scheduled {
			exams = append(exams, e)
		}
	}
	sort.Slice(exams, func(i, j int) bool { return exams[i].ID < exams[j].ID })
	return exams, nil
}

func (r *mockExamRepo) SetScheduled(ctx context.Context, tx *gorm.DB, id uint, scheduled bool) (*models.Exam, error) {
	exam, ok := r.m.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	exam.Scheduled = scheduled
	if scheduled {
		now := time.Now()
		exam.ScheduledAt = &now
	} else {
		exam.ScheduledAt = nil
	}
	copied := *exam
	return &copied, nil
}

func (r *mockExamRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	_, ok := r.m.exams[id]
	return ok, nil
}

// ===== RESULT =====

type mockResultRepo struct{ m *mockRepository }

func (r *mockResultRepo) Create(ctx context.Context, tx *gorm.DB, result *models.Result) error {
	if r.m.resultErr != nil {
		return r.m.resultErr
	}
	for _, existing := range r.m.results {
		if existing.StudentID == result.StudentID && existing.ExamID == result.ExamID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.m.nextResultID++
	result.ID = r.m.nextResultID
	r.m.results[result.ID] = result
	return nil
}

func (r *mockResultRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Result, error) {
	result, ok := r.m.results[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return result, nil
}

func (r *mockResultRepo) GetByStudentAndExam(ctx context.Context, tx *gorm.DB, studentID, examID uint) (*models.Result, error) {
	for _, result := range r.m.results {
		if result.StudentID == studentID && result.ExamID == examID {
			return result, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockResultRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.ResultFilters) ([]*models.Result, int64, error) {
	var results []*models.Result
	for _, result := range r.m.results {
		if filters.StudentID != nil && result.StudentID != *filters.StudentID {
			continue
		}
		if filters.ExamID != nil && result.ExamID != *filters.ExamID {
			continue
		}
		results = append(results, result)
	}
	return results, int64(len(results)), nil
}

func (r *mockResultRepo) GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.Result, error) {
	var results []*models.Result
	for _, result := range r.m.results {
		if result.StudentID == studentID {
			copied := *result
			if exam, ok := r.m.exams[result.ExamID]; ok {
				copied.Exam = *exam
			}
			results = append(results, &copied)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (r *mockResultRepo) GetByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]*models.Result, error) {
	var results []*models.Result
	for _, result := range r.m.results {
		if result.ExamID == examID {
			results = append(results, result)
		}
	}
	return results, nil
}

func (r *mockResultRepo) ExistsByStudentAndExam(ctx context.Context, tx *gorm.DB, studentID, examID uint) (bool, error) {
	if r.m.resultErr != nil {
		return false, r.m.resultErr
	}
	for _, result := range r.m.results {
		if result.StudentID == studentID && result.ExamID == examID {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockResultRepo) AttemptedExamIDs(ctx context.Context, tx *gorm.DB, studentID uint) (map[uint]bool, error) {
	attempted := make(map[uint]bool)
	for _, result := range r.m.results {
		if result.StudentID == studentID {
			attempted[result.ExamID] = true
		}
	}
	return attempted, nil
}

// ===== MONITORING =====

type mockMonitoringRepo struct{ m *mockRepository }

func (r *mockMonitoringRepo) Create(ctx context.Context, tx *gorm.DB, log *models.MonitoringLog) error {
	r.m.nextMonitoringID++
	log.ID = r.m.nextMonitoringID
	r.m.monitoring = append(r.m.monitoring, log)
	return nil
}

func (r *mockMonitoringRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.MonitoringFilters) ([]*models.MonitoringLog, int64, error) {
	var logs []*models.MonitoringLog
	for _, log := range r.m.monitoring {
		if filters.StudentID != nil && log.StudentID != *filters.StudentID {
			continue
		}
		if filters.ExamID != nil && log.ExamID != *filters.ExamID {
			continue
		}
		if filters.ActivityType != nil && log.ActivityType != *filters.ActivityType {
			continue
		}
		logs = append(logs, log)
	}
	return logs, int64(len(logs)), nil
}

func (r *mockMonitoringRepo) GetByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]*models.MonitoringLog, error) {
	var logs []*models.MonitoringLog
	for _, log := range r.m.monitoring {
		if log.ExamID == examID {
			logs = append(logs, log)
		}
	}
	return logs, nil
}

func (r *mockMonitoringRepo) CountByStudentAndExam(ctx context.Context, tx *gorm.DB, studentID, examID uint) (int64, error) {
	var count int64
	for _, log := range r.m.monitoring {
		if log.StudentID == studentID && log.ExamID == examID {
			count++
		}
	}
	return count, nil
}

// ===== USER =====

type mockUserRepo struct{ m *mockRepository }

func (r *mockUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if r.m.userErr != nil {
		return r.m.userErr
	}
	for _, existing := range r.m.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.m.addUser(user)
	return nil
}

func (r *mockUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	user, ok := r.m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *mockUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	for _, user := range r.m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if _, ok := r.m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.m.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if _, ok := r.m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.users, id)
	return nil
}

func (r *mockUserRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	for _, user := range r.m.users {
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, int64(len(users)), nil
}

func (r *mockUserRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	for _, user := range r.m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// ===== REPORTING =====

type mockReportingRepo struct{ m *mockRepository }

func (r *mockReportingRepo) GetOverview(ctx context.Context, tx *gorm.DB) (*repositories.PortalOverview, error) {
	overview := &repositories.PortalOverview{
		TotalExams:       int64(len(r.m.exams)),
		TotalSubmissions: int64(len(r.m.results)),
	}
	for _, e := range r.m.exams {
		if e.Scheduled {
			overview.ScheduledExams++
		}
	}
	for _, u := range r.m.users {
		if u.Role == models.RoleStudent {
			overview.TotalStudents++
		}
	}
	return overview, nil
}

func (r *mockReportingRepo) GetSubjectPerformance(ctx context.Context, tx *gorm.DB) ([]*repositories.SubjectPerformance, error) {
	bySubject := make(map[string]*repositories.SubjectPerformance)
	var order []string
	for _, e := range r.m.exams {
		sp, ok := bySubject[e.Subject]
		if !ok {
			sp = &repositories.SubjectPerformance{Subject: e.Subject}
			bySubject[e.Subject] = sp
			order = append(order, e.Subject)
		}
		sp.ExamCount++
		for _, result := range r.m.results {
			if result.ExamID == e.ID {
				sp.SubmissionCount++
				sp.AveragePercentage += result.Percentage
			}
		}
	}
	sort.Strings(order)
	out := make([]*repositories.SubjectPerformance, 0, len(order))
	for _, subject := range order {
		sp := bySubject[subject]
		if sp.SubmissionCount > 0 {
			sp.AveragePercentage /= float64(sp.SubmissionCount)
		}
		out = append(out, sp)
	}
	return out, nil
}

func (r *mockReportingRepo) GetOverallAveragePercentage(ctx context.Context, tx *gorm.DB) (float64, error) {
	if len(r.m.results) == 0 {
		return 0, nil
	}
	var sum float64
	for _, result := range r.m.results {
		sum += result.Percentage
	}
	return sum / float64(len(r.m.results)), nil
}

func (r *mockReportingRepo) GetStudentExamScores(ctx context.Context, tx *gorm.DB) ([]*repositories.StudentExamScore, error) {
	var scores []*repositories.StudentExamScore
	for _, result := range r.m.results {
		student, ok := r.m.users[result.StudentID]
		if !ok {
			return nil, fmt.Errorf("unknown student %d", result.StudentID)
		}
		exam, ok := r.m.exams[result.ExamID]
		if !ok {
			return nil, fmt.Errorf("unknown exam %d", result.ExamID)
		}
		scores = append(scores, &repositories.StudentExamScore{
			StudentID:   student.ID,
			StudentName: student.Name,
			Email:       student.Email,
			ExamID:      exam.ID,
			ExamTitle:   exam.Title,
			Subject:     exam.Subject,
			MaxMarks:    exam.MaxMarks,
			Score:       result.Score,
			Percentage:  result.Percentage,
			Status:      result.Status,
			SubmittedAt: result.SubmittedAt,
		})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].StudentID != scores[j].StudentID {
			return scores[i].StudentID < scores[j].StudentID
		}
		return scores[i].ExamID < scores[j].ExamID
	})
	return scores, nil
}
