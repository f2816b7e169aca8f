package airtable

import (
	"context"
	"fmt"
	"time"

	"github.com/mehanizm/airtable"
	"github.com/mentorportal/mentor-portal-api/internal/models"
	"github.com/mentorportal/mentor-portal-api/pkg/circuitbreaker"
	apperrors "github.com/mentorportal/mentor-portal-api/pkg/errors"
	"github.com/mentorportal/mentor-portal-api/pkg/logger"
	"github.com/mentorportal/mentor-portal-api/pkg/metrics"
	"github.com/mentorportal/mentor-portal-api/pkg/retry"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// TableNames holds the configurable names of the three portal tables
type TableNames struct {
	Mentors   string
	Students  string
	Deadlines string
}

// Client is the Airtable client for the portal's read model, with retry and
// circuit breaker protection on every operation
type Client struct {
	client         *airtable.Client
	baseID         string
	tables         TableNames
	circuitBreaker *gobreaker.CircuitBreaker
}

// NewClient creates a new Airtable client using the mehanizm/airtable library
func NewClient(apiKey, baseID string, tables TableNames) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("empty API key provided")
	}
	if baseID == "" {
		return nil, fmt.Errorf("empty base ID provided")
	}

	cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("airtable"))

	logger.Info("Airtable client initialized",
		zap.String("base_id", baseID),
		zap.String("mentors_table", tables.Mentors),
		zap.String("students_table", tables.Students),
		zap.String("deadlines_table", tables.Deadlines))

	return &Client{
		client:         airtable.NewClient(apiKey),
		baseID:         baseID,
		tables:         tables,
		circuitBreaker: cb,
	}, nil
}

// GetMentorByEmail fetches a mentor by email address, case-insensitively.
// The backing table does not enforce email uniqueness; the first record the
// service returns wins, in unspecified order. Transport failures go through
// the shared circuit breaker; a not-found mentor is decided outside it so
// unknown login emails never count against the breaker.
func (c *Client) GetMentorByEmail(ctx context.Context, email string) (*models.Mentor, error) {
	records, err := circuitbreaker.Execute(c.circuitBreaker, func() (*airtable.Records, error) {
		return c.fetchMentorByEmail(ctx, email)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			logger.Warn("Circuit breaker open for Airtable, mentor lookup unavailable")
			return nil, apperrors.UnavailableError("airtable", err)
		}
		return nil, err
	}

	if len(records.Records) == 0 {
		return nil, apperrors.NotFoundError("mentor")
	}

	return models.AirtableRecordToMentor(records.Records[0]), nil
}

func (c *Client) fetchMentorByEmail(ctx context.Context, email string) (*airtable.Records, error) {
	start := time.Now()
	operation := "getMentorByEmail"

	retryCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	records, err := retry.DoWithResult(retryCtx, retry.AirtableConfig(), operation, func() (*airtable.Records, error) {
		table := c.client.GetTable(c.baseID, c.tables.Mentors)

		query := table.GetRecords().
			WithFilterFormula(MentorByEmailFormula(email)).
			PageSize(1).
			ReturnFields("Name", "Mentor Name", "Email")

		return query.Do()
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.AirtableRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.AirtableRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("airtable", operation, "error", duration, zap.Error(err))
		return nil, apperrors.UnavailableError("airtable", err)
	}

	metrics.AirtableRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.AirtableRequestTotal.WithLabelValues(operation, "success").Inc()

	return records, nil
}

// GetStudentsForMentor fetches all students whose mentor-link attribute
// contains the mentor's display name. When the circuit breaker is open the
// call degrades to an empty list plus an availability error for the caller
// to surface as a warning.
func (c *Client) GetStudentsForMentor(ctx context.Context, mentorName string) ([]*models.Student, error) {
	return circuitbreaker.ExecuteWithFallback(
		c.circuitBreaker,
		func() ([]*models.Student, error) {
			return c.fetchStudentsForMentor(ctx, mentorName)
		},
		func() ([]*models.Student, error) {
			logger.Warn("Circuit breaker open for Airtable, returning empty student list")
			return []*models.Student{}, apperrors.UnavailableError("airtable", gobreaker.ErrOpenState)
		},
	)
}

func (c *Client) fetchStudentsForMentor(ctx context.Context, mentorName string) ([]*models.Student, error) {
	start := time.Now()
	operation := "getStudentsForMentor"

	retryCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	records, err := retry.DoWithResult(retryCtx, retry.AirtableConfig(), operation, func() ([]*airtable.Record, error) {
		return c.fetchAllPages(c.tables.Students, StudentsForMentorFormula(mentorName), []string{
			models.StudentFieldName,
			models.StudentFieldMentor,
			models.StudentFieldResearchArea,
			models.StudentFieldCity,
			models.StudentFieldGraduationYear,
			models.StudentFieldConfirmation,
			models.StudentFieldBackgroundShared,
			models.StudentFieldExpectedMeetings,
			models.StudentFieldCompletedMeetings,
			models.StudentFieldNotesSummary,
			models.StudentFieldHoursRecorded,
		})
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.AirtableRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.AirtableRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("airtable", operation, "error", duration, zap.Error(err))
		return nil, apperrors.UnavailableError("airtable", err)
	}

	metrics.AirtableRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.AirtableRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("airtable", operation, "success", duration, zap.Int("count", len(records)))

	students := make([]*models.Student, 0, len(records))
	for _, record := range records {
		students = append(students, models.AirtableRecordToStudent(record))
	}

	return students, nil
}

// GetDeadlinesForStudent fetches all deadlines whose name contains the
// student's truncated match key, sorted ascending by due date with undated
// records last. Same degradation policy as GetStudentsForMentor.
func (c *Client) GetDeadlinesForStudent(ctx context.Context, studentName string) ([]*models.Deadline, error) {
	return circuitbreaker.ExecuteWithFallback(
		c.circuitBreaker,
		func() ([]*models.Deadline, error) {
			return c.fetchDeadlinesForStudent(ctx, studentName)
		},
		func() ([]*models.Deadline, error) {
			logger.Warn("Circuit breaker open for Airtable, returning empty deadline list")
			return []*models.Deadline{}, apperrors.UnavailableError("airtable", gobreaker.ErrOpenState)
		},
	)
}

func (c *Client) fetchDeadlinesForStudent(ctx context.Context, studentName string) ([]*models.Deadline, error) {
	start := time.Now()
	operation := "getDeadlinesForStudent"

	retryCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	fields := []string{
		models.DeadlineFieldName,
		models.DeadlineFieldType,
		models.DeadlineFieldDueDate,
		models.DeadlineFieldStatus,
		models.DeadlineFieldDateSubmitted,
	}
	fields = append(fields, models.SubmissionFields...)

	records, err := retry.DoWithResult(retryCtx, retry.AirtableConfig(), operation, func() ([]*airtable.Record, error) {
		return c.fetchAllPages(c.tables.Deadlines, DeadlinesForStudentFormula(studentName), fields)
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.AirtableRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.AirtableRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("airtable", operation, "error", duration, zap.Error(err))
		return nil, apperrors.UnavailableError("airtable", err)
	}

	metrics.AirtableRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.AirtableRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("airtable", operation, "success", duration, zap.Int("count", len(records)))

	deadlines := make([]*models.Deadline, 0, len(records))
	for _, record := range records {
		deadlines = append(deadlines, models.AirtableRecordToDeadline(record))
	}

	models.SortDeadlinesByDueDate(deadlines)

	return deadlines, nil
}

// fetchAllPages fetches every record matching a formula using manual
// pagination (maximum page size to minimize API requests)
func (c *Client) fetchAllPages(tableName, formula string, fields []string) ([]*airtable.Record, error) {
	table := c.client.GetTable(c.baseID, tableName)

	var allRecords []*airtable.Record
	offset := ""

	for {
		query := table.GetRecords().
			WithFilterFormula(formula).
			PageSize(100).
			ReturnFields(fields...)

		if offset != "" {
			query = query.WithOffset(offset)
		}

		records, err := query.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch records from %s: %w", tableName, err)
		}

		allRecords = append(allRecords, records.Records...)

		if records.Offset == "" {
			break
		}
		offset = records.Offset
	}

	return allRecords, nil
}

// BreakerState reports the Airtable circuit breaker state for health checks
func (c *Client) BreakerState() string {
	return circuitbreaker.GetState(c.circuitBreaker)
}
