// Package format holds display formatting helpers for values coming back from
// Airtable, which delivers durations as raw seconds, dates as ISO strings, and
// lookup fields as single-element lists.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// istZone is UTC+05:30, the program team's display timezone for timestamps
var istZone = time.FixedZone("IST", 5*3600+30*60)

var numberedItem = regexp.MustCompile(`^\d+[.)]\s`)

// Duration renders a recorded-hours value as h:mm. Airtable duration fields
// arrive as seconds (float64 over JSON); preformatted strings pass through.
func Duration(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "N/A"
	case string:
		if v == "" {
			return "N/A"
		}
		return v
	case float64:
		return secondsToClock(int64(v))
	case int:
		return secondsToClock(int64(v))
	case int64:
		return secondsToClock(v)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func secondsToClock(totalSeconds int64) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	return fmt.Sprintf("%d:%02d", hours, minutes)
}

// Date renders a YYYY-MM-DD date for display, e.g. "Mar 1, 2025".
// Unparseable input is returned as-is; empty input becomes "Not set".
func Date(dateStr string) string {
	dateStr = FirstString(dateStr)
	if dateStr == "" {
		return "Not set"
	}

	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}

	return parsed.Format("Jan 2, 2006")
}

// DateTimeIST renders an ISO-8601 UTC timestamp in IST for display,
// e.g. "Jan 31, 2026 6:49 PM IST". Falls back to Date for plain dates.
func DateTimeIST(value interface{}) string {
	dateStr := FirstString(value)
	if dateStr == "" {
		return "Not set"
	}

	dateStr = strings.Trim(dateStr, `'"`)

	parsed, err := time.Parse("2006-01-02T15:04:05.000Z", dateStr)
	if err != nil {
		if parsed, err = time.Parse(time.RFC3339, dateStr); err != nil {
			return Date(dateStr)
		}
	}

	return parsed.In(istZone).Format("Jan 2, 2006 3:04 PM MST")
}

// FirstString normalizes a scalar-or-list Airtable value to a string.
// Lookup fields wrap their value in a single-element array.
func FirstString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []interface{}:
		if len(v) == 0 {
			return ""
		}
		return FirstString(v[0])
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}

// NotesSummary reshapes free-text mentor notes into markdown: ALL-CAPS lines
// and short colon-terminated lines become bold headers, list items survive
// untouched, blank lines are dropped.
func NotesSummary(text string) string {
	if text == "" {
		return ""
	}

	var formatted []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case isAllUpper(line) && len(line) > 2:
			formatted = append(formatted, "**"+toTitle(line)+"**")
		case strings.HasSuffix(line, ":") && len(line) < 50:
			formatted = append(formatted, "**"+line+"**")
		case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "•"),
			strings.HasPrefix(line, "*"), strings.HasPrefix(line, "–"):
			formatted = append(formatted, line)
		case numberedItem.MatchString(line):
			formatted = append(formatted, line)
		default:
			formatted = append(formatted, line)
		}
	}

	return strings.Join(formatted, "\n\n")
}

// IsOverdue reports whether a deadline is past due. Submitted deadlines and
// deadlines without a due date are never overdue.
func IsOverdue(dueDate, status string, now time.Time) bool {
	if status == "Submitted" || dueDate == "" {
		return false
	}

	due, err := time.Parse("2006-01-02", dueDate)
	if err != nil {
		return false
	}

	return due.Before(now)
}

// isAllUpper reports whether a line contains letters and no lowercase ones
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if (r >= 'A' && r <= 'Z') || r > 127 {
			hasLetter = true
		}
	}
	return hasLetter
}

// toTitle converts an ALL-CAPS header to Title Case
func toTitle(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
