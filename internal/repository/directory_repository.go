package repository

import (
	"context"
	"strings"

	"github.com/mentorportal/mentor-portal-api/internal/cache"
	"github.com/mentorportal/mentor-portal-api/internal/models"
	"github.com/mentorportal/mentor-portal-api/pkg/logger"
	"go.uber.org/zap"
)

const (
	opMentorByEmail     = "mentor_by_email"
	opStudentsForMentor = "students_for_mentor"
)

type directoryRepository struct {
	source DirectoryDataSource
	cache  *cache.LookupCache
}

// NewDirectoryRepository wraps a directory data source with a shared TTL cache.
func NewDirectoryRepository(source DirectoryDataSource, lookupCache *cache.LookupCache) DirectoryRepository {
	return &directoryRepository{
		source: source,
		cache:  lookupCache,
	}
}

func (r *directoryRepository) FindMentorByEmail(ctx context.Context, email string) (*models.Mentor, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	if cached, found := r.cache.Get(opMentorByEmail, key); found {
		if mentor, ok := cached.(*models.Mentor); ok {
			return mentor, nil
		}
	}

	mentor, err := r.source.GetMentorByEmail(ctx, key)
	if err != nil {
		return nil, err
	}

	r.cache.Set(opMentorByEmail, key, mentor)
	return mentor, nil
}

func (r *directoryRepository) FindStudentsForMentor(ctx context.Context, mentorName string) ([]*models.Student, error) {
	if cached, found := r.cache.Get(opStudentsForMentor, mentorName); found {
		if students, ok := cached.([]*models.Student); ok {
			return students, nil
		}
	}

	students, err := r.source.GetStudentsForMentor(ctx, mentorName)
	if err != nil {
		logger.Warn("students lookup degraded, serving empty roster",
			zap.String("mentor", mentorName),
			zap.Error(err))
		return []*models.Student{}, err
	}

	r.cache.Set(opStudentsForMentor, mentorName, students)
	return students, nil
}

func (r *directoryRepository) InvalidateCache() {
	r.cache.Flush()
}
