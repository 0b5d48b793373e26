package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/exam-portal-service/internal/models"
)

// seedReportingData creates two students, two exams and three results:
//
//	alice: math 80%, chemistry 40%  -> average 60
//	bob:   math 20%, chemistry not attempted
func seedReportingData(repo *mockRepository) (alice, bob *models.User, math, chem *models.Exam) {
	alice = repo.addUser(&models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleStudent})
	bob = repo.addUser(&models.User{Name: "Bob", Email: "bob@example.com", Role: models.RoleStudent})
	repo.addUser(&models.User{Name: "Root", Email: "root@example.com", Role: models.RoleAdmin})

	math = repo.addExam(&models.Exam{Title: "Math Final", Subject: "Math", MaxMarks: 10, Scheduled: true,
		Questions: []models.Question{{Text: "Q", Options: encodeOptions([]string{"a", "b"}), Marks: 10}}})
	chem = repo.addExam(&models.Exam{Title: "Chem Quiz", Subject: "Chemistry", MaxMarks: 5, Scheduled: true,
		Questions: []models.Question{{Text: "Q", Options: encodeOptions([]string{"a", "b"}), Marks: 5}}})

	submitted := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	repo.results[1] = &models.Result{ID: 1, StudentID: alice.ID, ExamID: math.ID, Score: 8, Percentage: 80, Status: models.ResultPassed, SubmittedAt: submitted}
	repo.results[2] = &models.Result{ID: 2, StudentID: alice.ID, ExamID: chem.ID, Score: 2, Percentage: 40, Status: models.ResultPassed, SubmittedAt: submitted}
	repo.results[3] = &models.Result{ID: 3, StudentID: bob.ID, ExamID: math.ID, Score: 2, Percentage: 20, Status: models.ResultFailed, SubmittedAt: submitted}
	return alice, bob, math, chem
}

func TestGetDashboard(t *testing.T) {
	repo := newMockRepository()
	seedReportingData(repo)
	svc := NewReportingService(repo, nil, testLogger())

	dashboard, err := svc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetDashboard() error = %v", err)
	}

	o := dashboard.Overview
	if o.TotalExams != 2 || o.ScheduledExams != 2 || o.TotalStudents != 2 || o.TotalSubmissions != 3 {
		t.Errorf("overview = %+v, want 2 exams, 2 scheduled, 2 students, 3 submissions", o)
	}

	// (80 + 40 + 20) / 3
	if dashboard.OverallAverage != 46.67 {
		t.Errorf("overall average = %v, want 46.67", dashboard.OverallAverage)
	}

	if len(dashboard.Subjects) != 2 {
		t.Fatalf("subject rows = %d, want 2", len(dashboard.Subjects))
	}
	bySubject := make(map[string]SubjectAverageResponse)
	for _, s := range dashboard.Subjects {
		bySubject[s.Subject] = s
	}
	// Math: (80 + 20) / 2
	if got := bySubject["Math"]; got.AveragePercentage != 50 || got.SubmissionCount != 2 {
		t.Errorf("Math = %+v, want average 50 over 2 submissions", got)
	}
	if got := bySubject["Chemistry"]; got.AveragePercentage != 40 || got.SubmissionCount != 1 {
		t.Errorf("Chemistry = %+v, want average 40 over 1 submission", got)
	}
}

func TestGetStudentPerformance(t *testing.T) {
	repo := newMockRepository()
	alice, bob, math, chem := seedReportingData(repo)
	svc := NewReportingService(repo, nil, testLogger())

	report, err := svc.GetStudentPerformance(context.Background())
	if err != nil {
		t.Fatalf("GetStudentPerformance() error = %v", err)
	}
	// Only students appear, not the admin.
	if len(report) != 2 {
		t.Fatalf("rows = %d, want 2 students", len(report))
	}

	byID := make(map[uint]StudentPerformanceResponse)
	for _, row := range report {
		byID[row.StudentID] = row
	}

	aliceRow := byID[alice.ID]
	if aliceRow.AverageScore != 60 {
		t.Errorf("alice average = %v, want 60", aliceRow.AverageScore)
	}
	if len(aliceRow.Exams) != 2 {
		t.Fatalf("alice exam rows = %d, want 2", len(aliceRow.Exams))
	}

	bobRow := byID[bob.ID]
	// Bob's average covers attempted exams only.
	if bobRow.AverageScore != 20 {
		t.Errorf("bob average = %v, want 20", bobRow.AverageScore)
	}
	examRows := make(map[uint]StudentExamResultRow)
	for _, er := range bobRow.Exams {
		examRows[er.ExamID] = er
	}
	if row := examRows[math.ID]; row.Status != models.ResultFailed || row.Score == nil || *row.Score != 2 {
		t.Errorf("bob math row = %+v, want failed with score 2", row)
	}
	if row := examRows[chem.ID]; row.Status != models.ResultNotAttempted || row.Score != nil || row.Percentage != nil {
		t.Errorf("bob chem row = %+v, want not_attempted with no score", row)
	}
}

func TestGetStudentPerformanceNoSubmissions(t *testing.T) {
	repo := newMockRepository()
	repo.addUser(&models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleStudent})
	repo.addExam(&models.Exam{Title: "Math Final", Subject: "Math", MaxMarks: 10,
		Questions: []models.Question{{Text: "Q", Options: encodeOptions([]string{"a", "b"}), Marks: 10}}})
	svc := NewReportingService(repo, nil, testLogger())

	report, err := svc.GetStudentPerformance(context.Background())
	if err != nil {
		t.Fatalf("GetStudentPerformance() error = %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("rows = %d, want 1", len(report))
	}
	if report[0].AverageScore != 0 {
		t.Errorf("average = %v, want 0 with no attempts", report[0].AverageScore)
	}
	if len(report[0].Exams) != 1 || report[0].Exams[0].Status != models.ResultNotAttempted {
		t.Errorf("exam rows = %+v, want one not_attempted", report[0].Exams)
	}
}

func TestExportResults(t *testing.T) {
	repo := newMockRepository()
	seedReportingData(repo)
	svc := NewReportingService(repo, nil, testLogger())

	data, err := svc.ExportResults(context.Background())
	if err != nil {
		t.Fatalf("ExportResults() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty export")
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("export is not a zip archive: % x", data[:4])
	}
}
