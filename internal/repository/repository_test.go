package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mentorportal/mentor-portal-api/internal/cache"
	"github.com/mentorportal/mentor-portal-api/internal/models"
	"github.com/mentorportal/mentor-portal-api/internal/repository"
	"github.com/mentorportal/mentor-portal-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

// fakeDirectorySource mimics the Airtable formula semantics: email match is
// case-insensitive, student match is a substring scan over the joined Mentor
// Name column.
type fakeDirectorySource struct {
	mentors map[string]*models.Mentor // keyed by lowercased email
	// rosters maps the raw joined Mentor Name column value to its students
	rosters map[string][]*models.Student

	mentorCalls  int
	studentCalls int
	failStudents error
}

func (f *fakeDirectorySource) GetMentorByEmail(ctx context.Context, email string) (*models.Mentor, error) {
	f.mentorCalls++
	if mentor, ok := f.mentors[strings.ToLower(email)]; ok {
		return mentor, nil
	}
	return nil, errors.New("mentor not found")
}

func (f *fakeDirectorySource) GetStudentsForMentor(ctx context.Context, mentorName string) ([]*models.Student, error) {
	f.studentCalls++
	if f.failStudents != nil {
		return nil, f.failStudents
	}
	var matched []*models.Student
	for joined, students := range f.rosters {
		if strings.Contains(joined, mentorName) {
			matched = append(matched, students...)
		}
	}
	return matched, nil
}

// fakeDeadlineSource matches students to deadlines by a substring scan over
// the deadline name, like FIND in the base formula.
type fakeDeadlineSource struct {
	deadlines []*models.Deadline
	calls     int
	fail      error
}

func (f *fakeDeadlineSource) GetDeadlinesForStudent(ctx context.Context, studentName string) ([]*models.Deadline, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	var matched []*models.Deadline
	for _, d := range f.deadlines {
		if strings.Contains(d.Name, studentName) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

func TestFindMentorByEmail_CaseInsensitive(t *testing.T) {
	source := &fakeDirectorySource{
		mentors: map[string]*models.Mentor{
			"jane@example.org": {AirtableID: "rec1", Name: "Jane Smith", Email: "jane@example.org"},
		},
	}
	repo := repository.NewDirectoryRepository(source, cache.NewLookupCache(300))

	mentor, err := repo.FindMentorByEmail(context.Background(), "  Jane@Example.ORG ")
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", mentor.Name)
}

func TestFindMentorByEmail_CachesResult(t *testing.T) {
	source := &fakeDirectorySource{
		mentors: map[string]*models.Mentor{
			"jane@example.org": {AirtableID: "rec1", Name: "Jane Smith"},
		},
	}
	repo := repository.NewDirectoryRepository(source, cache.NewLookupCache(300))

	for i := 0; i < 3; i++ {
		_, err := repo.FindMentorByEmail(context.Background(), "jane@example.org")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, source.mentorCalls)

	// Case variants share the cache entry
	_, err := repo.FindMentorByEmail(context.Background(), "JANE@EXAMPLE.ORG")
	require.NoError(t, err)
	assert.Equal(t, 1, source.mentorCalls)
}

func TestFindStudentsForMentor_SubstringCollision(t *testing.T) {
	// The joined Mentor Name column is matched by substring, so "Ann" also
	// hits rosters whose joined name contains "Anna". Present behavior of the
	// base formula, not a repository bug.
	source := &fakeDirectorySource{
		rosters: map[string][]*models.Student{
			"Ann Lee":     {{AirtableID: "s1", Name: "Student One"}},
			"Anna Barnes": {{AirtableID: "s2", Name: "Student Two"}},
		},
	}
	repo := repository.NewDirectoryRepository(source, cache.NewLookupCache(300))

	students, err := repo.FindStudentsForMentor(context.Background(), "Ann")
	require.NoError(t, err)
	assert.Len(t, students, 2)

	students, err = repo.FindStudentsForMentor(context.Background(), "Anna Barnes")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Student Two", students[0].Name)
}

func TestFindStudentsForMentor_SourceErrorReturnsEmpty(t *testing.T) {
	source := &fakeDirectorySource{failStudents: errors.New("upstream down")}
	repo := repository.NewDirectoryRepository(source, cache.NewLookupCache(300))

	students, err := repo.FindStudentsForMentor(context.Background(), "Jane Smith")
	assert.Error(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestFindStudentsForMentor_ErrorNotCached(t *testing.T) {
	source := &fakeDirectorySource{failStudents: errors.New("upstream down")}
	lookupCache := cache.NewLookupCache(300)
	repo := repository.NewDirectoryRepository(source, lookupCache)

	_, err := repo.FindStudentsForMentor(context.Background(), "Jane Smith")
	require.Error(t, err)

	// Source recovers; the failure must not have been memoized
	source.failStudents = nil
	source.rosters = map[string][]*models.Student{
		"Jane Smith": {{AirtableID: "s1", Name: "Student One"}},
	}
	students, err := repo.FindStudentsForMentor(context.Background(), "Jane Smith")
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestInvalidateCache_ForcesRequery(t *testing.T) {
	source := &fakeDirectorySource{
		rosters: map[string][]*models.Student{
			"Jane Smith": {{AirtableID: "s1", Name: "Student One"}},
		},
	}
	repo := repository.NewDirectoryRepository(source, cache.NewLookupCache(300))

	_, err := repo.FindStudentsForMentor(context.Background(), "Jane Smith")
	require.NoError(t, err)
	_, err = repo.FindStudentsForMentor(context.Background(), "Jane Smith")
	require.NoError(t, err)
	assert.Equal(t, 1, source.studentCalls)

	repo.InvalidateCache()

	_, err = repo.FindStudentsForMentor(context.Background(), "Jane Smith")
	require.NoError(t, err)
	assert.Equal(t, 2, source.studentCalls, "flush must force a fresh query well before TTL expiry")
}

func TestFindDeadlinesForStudent_TruncatedNameCollision(t *testing.T) {
	// Deadline names embed the student name and are matched by substring, so
	// a truncated key like "Rohan" also hits "Rohan Patel" deadlines.
	source := &fakeDeadlineSource{
		deadlines: []*models.Deadline{
			{AirtableID: "d1", Name: "Rohan | Research Proposal"},
			{AirtableID: "d2", Name: "Rohan Patel | Final Paper"},
		},
	}
	repo := repository.NewDeadlineRepository(source, cache.NewLookupCache(300))

	deadlines, err := repo.FindDeadlinesForStudent(context.Background(), "Rohan")
	require.NoError(t, err)
	assert.Len(t, deadlines, 2)
}

func TestFindDeadlinesForStudent_CachesAndDegrades(t *testing.T) {
	source := &fakeDeadlineSource{
		deadlines: []*models.Deadline{
			{AirtableID: "d1", Name: "Rohan Patel | Final Paper"},
		},
	}
	repo := repository.NewDeadlineRepository(source, cache.NewLookupCache(300))

	_, err := repo.FindDeadlinesForStudent(context.Background(), "Rohan Patel")
	require.NoError(t, err)
	_, err = repo.FindDeadlinesForStudent(context.Background(), "Rohan Patel")
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)

	source.fail = errors.New("upstream down")
	deadlines, err := repo.FindDeadlinesForStudent(context.Background(), "Someone Else")
	assert.Error(t, err)
	assert.Empty(t, deadlines)
}

func TestSharedCacheFlushSpansRepositories(t *testing.T) {
	shared := cache.NewLookupCache(300)

	dirSource := &fakeDirectorySource{
		rosters: map[string][]*models.Student{
			"Jane Smith": {{AirtableID: "s1", Name: "Student One"}},
		},
	}
	dlSource := &fakeDeadlineSource{
		deadlines: []*models.Deadline{
			{AirtableID: "d1", Name: "Student One | Final Paper"},
		},
	}
	dirRepo := repository.NewDirectoryRepository(dirSource, shared)
	dlRepo := repository.NewDeadlineRepository(dlSource, shared)

	_, err := dirRepo.FindStudentsForMentor(context.Background(), "Jane Smith")
	require.NoError(t, err)
	_, err = dlRepo.FindDeadlinesForStudent(context.Background(), "Student One")
	require.NoError(t, err)

	dirRepo.InvalidateCache()

	_, err = dirRepo.FindStudentsForMentor(context.Background(), "Jane Smith")
	require.NoError(t, err)
	_, err = dlRepo.FindDeadlinesForStudent(context.Background(), "Student One")
	require.NoError(t, err)
	assert.Equal(t, 2, dirSource.studentCalls)
	assert.Equal(t, 2, dlSource.calls, "one flush clears both repositories at once")
}
