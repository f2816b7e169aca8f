package airtable

import (
	"fmt"
	"strings"
)

// The portal never joins records by key: mentors find their students through
// substring containment on the Mentor Name attribute, and students find their
// deadlines through a truncated-name search on the Deadline Name attribute.
// The formulas below are that contract; escaping is what keeps user-supplied
// emails and names from breaking out of the string literal.

// escapeFormulaValue escapes a value for use inside a single-quoted Airtable
// formula string literal
func escapeFormulaValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}

// MentorByEmailFormula matches a mentor by email, case-insensitively
func MentorByEmailFormula(email string) string {
	return fmt.Sprintf("LOWER({Email}) = LOWER('%s')", escapeFormulaValue(email))
}

// StudentsForMentorFormula matches students whose mentor-link attribute
// contains the mentor's display name. The attribute may hold several joined
// mentor names, so this is substring containment: a mentor named "Ann" also
// matches students linked to "Anna".
func StudentsForMentorFormula(mentorName string) string {
	return fmt.Sprintf("FIND('%s', ARRAYJOIN({Mentor Name}))", escapeFormulaValue(mentorName))
}

// DeadlinesForStudentFormula matches deadlines whose name contains the
// student's match key (see StudentMatchKey).
func DeadlinesForStudentFormula(studentName string) string {
	return fmt.Sprintf("FIND('%s', {Deadline Name})", escapeFormulaValue(StudentMatchKey(studentName)))
}

// StudentMatchKey derives the deadline search key from a student display
// name: the portion before the first '|', trimmed. Two students with the same
// truncated name share deadlines.
func StudentMatchKey(studentName string) string {
	key, _, _ := strings.Cut(studentName, "|")
	return strings.TrimSpace(key)
}
