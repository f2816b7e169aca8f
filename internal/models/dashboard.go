package models

// StudentSummary aggregates onboarding progress over a mentor's students
type StudentSummary struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
}

// StudentsResponse is the student-list payload. Warning carries a non-fatal
// lookup failure message; the list is empty in that case, never absent.
type StudentsResponse struct {
	Students []*Student     `json:"students"`
	Summary  StudentSummary `json:"summary"`
	Warning  string         `json:"warning,omitempty"`
}

// DeadlineView is a deadline decorated with display fields
type DeadlineView struct {
	*Deadline
	DueDateDisplay   string `json:"dueDateDisplay"`
	SubmittedDisplay string `json:"submittedDisplay,omitempty"`
	Overdue          bool   `json:"overdue"`
}

// DeadlinesResponse is the per-student deadline payload
type DeadlinesResponse struct {
	Deadlines []*DeadlineView `json:"deadlines"`
	Warning   string          `json:"warning,omitempty"`
}

// SubmissionGroup flattens one deadline's submission artifacts for the files tab
type SubmissionGroup struct {
	DeadlineType string       `json:"deadlineType"`
	Submissions  []Submission `json:"submissions"`
}

// SubmissionsResponse is the per-student submission-files payload
type SubmissionsResponse struct {
	Groups  []SubmissionGroup `json:"groups"`
	Warning string            `json:"warning,omitempty"`
}

// RefreshResponse acknowledges a cache flush
type RefreshResponse struct {
	Success bool `json:"success"`
}
