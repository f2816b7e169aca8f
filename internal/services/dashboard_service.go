package services

import (
	"context"
	"time"

	"github.com/mentorportal/mentor-portal-api/internal/models"
	"github.com/mentorportal/mentor-portal-api/internal/repository"
	"github.com/mentorportal/mentor-portal-api/pkg/format"
	"github.com/mentorportal/mentor-portal-api/pkg/logger"
	"go.uber.org/zap"
)

// lookupWarning is shown when an upstream lookup degrades; the response still
// carries its usual shape with empty data.
const lookupWarning = "Live data is temporarily unavailable. Showing what we have; please refresh in a minute."

// DashboardService serves the mentor dashboard read model: the student
// roster, per-student deadlines, and submitted files. Lookup failures never
// surface as errors, only as a warning on an otherwise empty response.
type DashboardService struct {
	directoryRepo repository.DirectoryRepository
	deadlineRepo  repository.DeadlineRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(directoryRepo repository.DirectoryRepository, deadlineRepo repository.DeadlineRepository) *DashboardService {
	return &DashboardService{
		directoryRepo: directoryRepo,
		deadlineRepo:  deadlineRepo,
	}
}

// GetStudents returns the mentor's students with confirmation summary
// metrics. The summary always covers the full roster; confirmedOnly filters
// the returned list only.
func (s *DashboardService) GetStudents(ctx context.Context, mentorName string, confirmedOnly bool) (*models.StudentsResponse, error) {
	students, err := s.directoryRepo.FindStudentsForMentor(ctx, mentorName)
	if err != nil {
		return &models.StudentsResponse{
			Students: []*models.Student{},
			Warning:  lookupWarning,
		}, nil
	}

	summary := models.StudentSummary{Total: len(students)}
	for _, student := range students {
		if student.IsConfirmed() {
			summary.Confirmed++
		} else {
			summary.Pending++
		}
	}

	// The repository's slice is shared with the lookup cache; clone each
	// entry before formatting so cached records stay as fetched.
	views := make([]*models.Student, 0, len(students))
	for _, student := range students {
		if confirmedOnly && !student.IsConfirmed() {
			continue
		}
		view := *student
		// Notes summaries render as markdown on the dashboard
		view.NotesSummary = format.NotesSummary(view.NotesSummary)
		views = append(views, &view)
	}

	return &models.StudentsResponse{
		Students: views,
		Summary:  summary,
	}, nil
}

// GetStudentDeadlines returns the student's deadlines decorated with display
// dates and the overdue flag, ordered by due date.
func (s *DashboardService) GetStudentDeadlines(ctx context.Context, studentName string) (*models.DeadlinesResponse, error) {
	deadlines, err := s.deadlineRepo.FindDeadlinesForStudent(ctx, studentName)
	if err != nil {
		return &models.DeadlinesResponse{
			Deadlines: []*models.DeadlineView{},
			Warning:   lookupWarning,
		}, nil
	}

	now := time.Now()
	views := make([]*models.DeadlineView, 0, len(deadlines))
	for _, deadline := range deadlines {
		view := &models.DeadlineView{
			Deadline:       deadline,
			DueDateDisplay: format.Date(deadline.DueDate),
			Overdue:        format.IsOverdue(deadline.DueDate, deadline.Status, now),
		}
		if deadline.DateSubmitted != "" {
			view.SubmittedDisplay = format.DateTimeIST(deadline.DateSubmitted)
		}
		views = append(views, view)
	}

	return &models.DeadlinesResponse{Deadlines: views}, nil
}

// GetStudentSubmissions returns the student's submitted artifacts grouped by
// deadline type, in due-date order, skipping deadlines with nothing attached.
func (s *DashboardService) GetStudentSubmissions(ctx context.Context, studentName string) (*models.SubmissionsResponse, error) {
	deadlines, err := s.deadlineRepo.FindDeadlinesForStudent(ctx, studentName)
	if err != nil {
		return &models.SubmissionsResponse{
			Groups:  []models.SubmissionGroup{},
			Warning: lookupWarning,
		}, nil
	}

	groups := make([]models.SubmissionGroup, 0, len(deadlines))
	for _, deadline := range deadlines {
		if len(deadline.Submissions) == 0 {
			continue
		}
		groupType := deadline.Type
		if groupType == "" {
			groupType = deadline.Name
		}
		groups = append(groups, models.SubmissionGroup{
			DeadlineType: groupType,
			Submissions:  deadline.Submissions,
		})
	}

	return &models.SubmissionsResponse{Groups: groups}, nil
}

// Refresh flushes every cached lookup so the next request hits Airtable
func (s *DashboardService) Refresh() *models.RefreshResponse {
	s.directoryRepo.InvalidateCache()
	logger.Info("Lookup cache flushed", zap.String("trigger", "manual_refresh"))
	return &models.RefreshResponse{Success: true}
}
