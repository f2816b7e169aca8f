package handlers_test

import (
	"context"

	"github.com/mentorportal/mentor-portal-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of services.AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RequestLogin(ctx context.Context, email string) (*models.RequestLoginResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RequestLoginResponse), args.Error(1)
}

func (m *MockAuthService) VerifyMagicLink(ctx context.Context, token string) (*models.MentorSession, string, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.MentorSession), args.String(1), args.Error(2)
}

func (m *MockAuthService) PreviewLogin(ctx context.Context, previewEmail, adminKey string) (*models.MentorSession, string, error) {
	args := m.Called(ctx, previewEmail, adminKey)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.MentorSession), args.String(1), args.Error(2)
}

func (m *MockAuthService) GetSessionTTL() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockAuthService) GetCookieDomain() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAuthService) GetCookieSecure() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockDashboardService is a mock implementation of services.DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetStudents(ctx context.Context, mentorName string, confirmedOnly bool) (*models.StudentsResponse, error) {
	args := m.Called(ctx, mentorName, confirmedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentsResponse), args.Error(1)
}

func (m *MockDashboardService) GetStudentDeadlines(ctx context.Context, studentName string) (*models.DeadlinesResponse, error) {
	args := m.Called(ctx, studentName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeadlinesResponse), args.Error(1)
}

func (m *MockDashboardService) GetStudentSubmissions(ctx context.Context, studentName string) (*models.SubmissionsResponse, error) {
	args := m.Called(ctx, studentName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmissionsResponse), args.Error(1)
}

func (m *MockDashboardService) Refresh() *models.RefreshResponse {
	args := m.Called()
	return args.Get(0).(*models.RefreshResponse)
}
