package models

import (
	"github.com/mehanizm/airtable"
)

// Mentor represents a mentor sourced read-only from the Mentors table.
// Email is the effective identity key, matched case-insensitively.
type Mentor struct {
	AirtableID string `json:"airtableId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// AirtableRecordToMentor converts a mehanizm/airtable Record to a Mentor.
// The mentor display name lives in either "Name" or "Mentor Name" depending
// on the table revision.
func AirtableRecordToMentor(record *airtable.Record) *Mentor {
	name := fieldString(record, "Name")
	if name == "" {
		name = fieldString(record, "Mentor Name")
	}

	return &Mentor{
		AirtableID: record.ID,
		Name:       name,
		Email:      fieldString(record, "Email"),
	}
}

// fieldString safely extracts a string field from a record
func fieldString(record *airtable.Record, field string) string {
	if v, ok := record.Fields[field].(string); ok {
		return v
	}
	return ""
}

// fieldInt safely extracts an integer field from a record.
// Airtable delivers numbers as float64 over JSON.
func fieldInt(record *airtable.Record, field string) int {
	if v, ok := record.Fields[field].(float64); ok {
		return int(v)
	}
	if v, ok := record.Fields[field].(int); ok {
		return v
	}
	return 0
}
