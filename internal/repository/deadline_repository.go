package repository

import (
	"context"

	"github.com/mentorportal/mentor-portal-api/internal/cache"
	"github.com/mentorportal/mentor-portal-api/internal/models"
	"github.com/mentorportal/mentor-portal-api/pkg/logger"
	"go.uber.org/zap"
)

const opDeadlinesForStudent = "deadlines_for_student"

type deadlineRepository struct {
	source DeadlineDataSource
	cache  *cache.LookupCache
}

// NewDeadlineRepository wraps a deadline data source with the shared TTL cache.
func NewDeadlineRepository(source DeadlineDataSource, lookupCache *cache.LookupCache) DeadlineRepository {
	return &deadlineRepository{
		source: source,
		cache:  lookupCache,
	}
}

func (r *deadlineRepository) FindDeadlinesForStudent(ctx context.Context, studentName string) ([]*models.Deadline, error) {
	if cached, found := r.cache.Get(opDeadlinesForStudent, studentName); found {
		if deadlines, ok := cached.([]*models.Deadline); ok {
			return deadlines, nil
		}
	}

	deadlines, err := r.source.GetDeadlinesForStudent(ctx, studentName)
	if err != nil {
		logger.Warn("deadline lookup degraded, serving empty list",
			zap.String("student", studentName),
			zap.Error(err))
		return []*models.Deadline{}, err
	}

	r.cache.Set(opDeadlinesForStudent, studentName, deadlines)
	return deadlines, nil
}
