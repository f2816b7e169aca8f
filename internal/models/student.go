package models

import (
	"github.com/mehanizm/airtable"
	"github.com/mentorportal/mentor-portal-api/pkg/format"
)

// Student table field names. The tracker base uses long descriptive labels;
// keep them centralized so a base rename is a one-line change.
const (
	StudentFieldName              = "Student Cohort Application Tracker"
	StudentFieldMentor            = "Mentor Name"
	StudentFieldResearchArea      = "Research Area - First Preference"
	StudentFieldCity              = "City of Residence"
	StudentFieldGraduationYear    = "Graduation Year"
	StudentFieldConfirmation      = "Mentor Confirmation"
	StudentFieldBackgroundShared  = "OB: Mentor Background Shared"
	StudentFieldExpectedMeetings  = "Number of Expected Meetings - Student/Mentor"
	StudentFieldCompletedMeetings = "[Current + Archived] No. of Meetings Completed"
	StudentFieldNotesSummary      = "Mentor-Student Notes Summary"
	StudentFieldHoursRecorded     = "[Current + Archived] No. of Hours Recorded"
)

// confirmedValue is the only value treated as a positive confirmation;
// anything else counts as pending
const confirmedValue = "Yes"

// Student represents a student assigned to a mentor. The link to the mentor
// is the Mentor Name field, which may hold several joined mentor names and is
// matched by substring, not by key.
type Student struct {
	AirtableID        string `json:"airtableId"`
	Name              string `json:"name"`
	ResearchArea      string `json:"researchArea"`
	City              string `json:"city"`
	GraduationYear    string `json:"graduationYear"`
	Confirmation      string `json:"confirmation"`
	BackgroundShared  string `json:"backgroundShared"`
	ExpectedMeetings  int    `json:"expectedMeetings"`
	CompletedMeetings int    `json:"completedMeetings"`
	NotesSummary      string `json:"notesSummary"`
	HoursRecorded     string `json:"hoursRecorded"` // Preformatted h:mm
}

// IsConfirmed reports whether the student confirmed the mentor match
func (s *Student) IsConfirmed() bool {
	return s.Confirmation == confirmedValue
}

// HasSharedBackground reports whether the mentor background was shared
func (s *Student) HasSharedBackground() bool {
	return s.BackgroundShared == confirmedValue
}

// AirtableRecordToStudent converts a mehanizm/airtable Record to a Student
func AirtableRecordToStudent(record *airtable.Record) *Student {
	name := format.FirstString(record.Fields[StudentFieldName])
	if name == "" {
		name = "Unknown"
	}

	return &Student{
		AirtableID:        record.ID,
		Name:              name,
		ResearchArea:      format.FirstString(record.Fields[StudentFieldResearchArea]),
		City:              format.FirstString(record.Fields[StudentFieldCity]),
		GraduationYear:    format.FirstString(record.Fields[StudentFieldGraduationYear]),
		Confirmation:      format.FirstString(record.Fields[StudentFieldConfirmation]),
		BackgroundShared:  format.FirstString(record.Fields[StudentFieldBackgroundShared]),
		ExpectedMeetings:  fieldInt(record, StudentFieldExpectedMeetings),
		CompletedMeetings: fieldInt(record, StudentFieldCompletedMeetings),
		NotesSummary:      format.FirstString(record.Fields[StudentFieldNotesSummary]),
		HoursRecorded:     format.Duration(record.Fields[StudentFieldHoursRecorded]),
	}
}
