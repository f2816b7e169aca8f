package models

import (
	"sort"

	"github.com/mehanizm/airtable"
	"github.com/mentorportal/mentor-portal-api/pkg/format"
)

// Deadline table field names
const (
	DeadlineFieldName          = "Deadline Name"
	DeadlineFieldType          = "Deadline Type"
	DeadlineFieldDueDate       = "Due Date (in use, updated to reflect student's timeline)"
	DeadlineFieldStatus        = "Deadline Status"
	DeadlineFieldDateSubmitted = "Date Submitted"
	DeadlineFieldStudentLink   = "Student Application & Cohort Tracker"
)

// StatusSubmitted is the only status treated as a completed deadline
const StatusSubmitted = "Submitted"

// farFutureDate sorts deadlines without a due date after every real date
const farFutureDate = "9999-99-99"

// SubmissionFields is the fixed, ordered set of attributes holding submission
// artifacts on a deadline record. Artifacts are collected in this order.
var SubmissionFields = []string{
	"Syllabus Submission (From Mentor)",
	"Research Question",
	"Research Proposal",
	"Research Outline",
	"Milestone",
	"Final Paper",
	"Revised Final Paper",
	"Target Publication Submission",
}

// Attachment is a single uploaded file on a submission field
type Attachment struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Submission is one non-empty submission attribute on a deadline. Exactly one
// of Attachments, URL, or Text is populated, reflecting the three value
// shapes the table delivers.
type Submission struct {
	Field       string       `json:"field"`
	Attachments []Attachment `json:"attachments,omitempty"`
	URL         string       `json:"url,omitempty"`
	Text        string       `json:"text,omitempty"`
}

// Deadline represents a program deadline linked to a student by
// name-substring match against the Deadline Name attribute.
type Deadline struct {
	AirtableID    string       `json:"airtableId"`
	Name          string       `json:"name"`
	Type          string       `json:"type"`
	DueDate       string       `json:"dueDate"` // YYYY-MM-DD, empty when unset
	Status        string       `json:"status"`
	DateSubmitted string       `json:"dateSubmitted"` // ISO-8601 UTC
	Submissions   []Submission `json:"submissions,omitempty"`
}

// IsSubmitted reports whether the deadline was submitted
func (d *Deadline) IsSubmitted() bool {
	return d.Status == StatusSubmitted
}

// AirtableRecordToDeadline converts a mehanizm/airtable Record to a Deadline
func AirtableRecordToDeadline(record *airtable.Record) *Deadline {
	var submissions []Submission
	for _, field := range SubmissionFields {
		if sub, ok := parseSubmission(field, record.Fields[field]); ok {
			submissions = append(submissions, sub)
		}
	}

	return &Deadline{
		AirtableID:    record.ID,
		Name:          format.FirstString(record.Fields[DeadlineFieldName]),
		Type:          format.FirstString(record.Fields[DeadlineFieldType]),
		DueDate:       format.FirstString(record.Fields[DeadlineFieldDueDate]),
		Status:        format.FirstString(record.Fields[DeadlineFieldStatus]),
		DateSubmitted: format.FirstString(record.Fields[DeadlineFieldDateSubmitted]),
		Submissions:   submissions,
	}
}

// parseSubmission normalizes one submission attribute value. A value is an
// attachment array, a URL string, or opaque text; empty values are skipped.
func parseSubmission(field string, value interface{}) (Submission, bool) {
	switch v := value.(type) {
	case nil:
		return Submission{}, false
	case []interface{}:
		if len(v) == 0 {
			return Submission{}, false
		}
		var attachments []Attachment
		for _, item := range v {
			attachments = append(attachments, parseAttachment(item))
		}
		return Submission{Field: field, Attachments: attachments}, true
	case string:
		if v == "" {
			return Submission{}, false
		}
		if len(v) >= 4 && v[:4] == "http" {
			return Submission{Field: field, URL: v}, true
		}
		return Submission{Field: field, Text: v}, true
	default:
		return Submission{}, false
	}
}

// parseAttachment extracts url/filename from an attachment object; anything
// else is kept as its string form in the filename
func parseAttachment(item interface{}) Attachment {
	if obj, ok := item.(map[string]interface{}); ok {
		att := Attachment{}
		if url, ok := obj["url"].(string); ok {
			att.URL = url
		}
		if filename, ok := obj["filename"].(string); ok {
			att.Filename = filename
		}
		if att.Filename == "" {
			att.Filename = "Download"
		}
		return att
	}
	return Attachment{Filename: format.FirstString(item)}
}

// SortDeadlinesByDueDate orders deadlines ascending by due date, with records
// lacking a due date last. ISO dates sort correctly as strings.
func SortDeadlinesByDueDate(deadlines []*Deadline) {
	sort.SliceStable(deadlines, func(i, j int) bool {
		return dueDateKey(deadlines[i]) < dueDateKey(deadlines[j])
	})
}

func dueDateKey(d *Deadline) string {
	if d.DueDate == "" {
		return farFutureDate
	}
	return d.DueDate
}
