package repository

import (
	"context"

	"github.com/mentorportal/mentor-portal-api/internal/models"
)

// DirectoryDataSource abstracts the Airtable tables backing mentor and
// student lookups so repositories can be tested against fakes.
type DirectoryDataSource interface {
	GetMentorByEmail(ctx context.Context, email string) (*models.Mentor, error)
	GetStudentsForMentor(ctx context.Context, mentorName string) ([]*models.Student, error)
}

// DeadlineDataSource abstracts the deadlines table.
type DeadlineDataSource interface {
	GetDeadlinesForStudent(ctx context.Context, studentName string) ([]*models.Deadline, error)
}

// DirectoryRepository resolves mentors and their assigned students.
type DirectoryRepository interface {
	FindMentorByEmail(ctx context.Context, email string) (*models.Mentor, error)
	FindStudentsForMentor(ctx context.Context, mentorName string) ([]*models.Student, error)
	InvalidateCache()
}

// DeadlineRepository resolves deadlines and submissions for a student.
type DeadlineRepository interface {
	FindDeadlinesForStudent(ctx context.Context, studentName string) ([]*models.Deadline, error)
}
