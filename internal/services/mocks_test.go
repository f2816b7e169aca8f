package services_test

import (
	"context"

	"github.com/mentorportal/mentor-portal-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockDirectoryRepository is a mock implementation of repository.DirectoryRepository
type MockDirectoryRepository struct {
	mock.Mock
}

func (m *MockDirectoryRepository) FindMentorByEmail(ctx context.Context, email string) (*models.Mentor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockDirectoryRepository) FindStudentsForMentor(ctx context.Context, mentorName string) ([]*models.Student, error) {
	args := m.Called(ctx, mentorName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Student), args.Error(1)
}

func (m *MockDirectoryRepository) InvalidateCache() {
	m.Called()
}

// MockDeadlineRepository is a mock implementation of repository.DeadlineRepository
type MockDeadlineRepository struct {
	mock.Mock
}

func (m *MockDeadlineRepository) FindDeadlinesForStudent(ctx context.Context, studentName string) ([]*models.Deadline, error) {
	args := m.Called(ctx, studentName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deadline), args.Error(1)
}

// MockMailer is a mock implementation of mailer.Sender
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendMagicLink(ctx context.Context, toEmail, mentorName, loginURL string) error {
	args := m.Called(ctx, toEmail, mentorName, loginURL)
	return args.Error(0)
}
