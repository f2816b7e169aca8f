package services

import (
	"context"

	"github.com/mentorportal/mentor-portal-api/internal/models"
)

// AuthServiceInterface defines the authentication service contract
type AuthServiceInterface interface {
	RequestLogin(ctx context.Context, email string) (*models.RequestLoginResponse, error)
	VerifyMagicLink(ctx context.Context, token string) (*models.MentorSession, string, error)
	PreviewLogin(ctx context.Context, previewEmail, adminKey string) (*models.MentorSession, string, error)
	GetSessionTTL() int
	GetCookieDomain() string
	GetCookieSecure() bool
}

// DashboardServiceInterface defines the mentor dashboard read operations
type DashboardServiceInterface interface {
	GetStudents(ctx context.Context, mentorName string, confirmedOnly bool) (*models.StudentsResponse, error)
	GetStudentDeadlines(ctx context.Context, studentName string) (*models.DeadlinesResponse, error)
	GetStudentSubmissions(ctx context.Context, studentName string) (*models.SubmissionsResponse, error)
	Refresh() *models.RefreshResponse
}
