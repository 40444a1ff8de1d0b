package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Month is the fixed-width YYYY-MM form used across payroll. Fixed width
// keeps lexical comparison equivalent to chronological comparison.
var monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func IsValidMonth(month string) bool {
	return monthRegex.MatchString(month)
}

// IsValidDate checks the YYYY-MM-DD lexical form used by attendance dates.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// MonthOf extracts the YYYY-MM prefix of a YYYY-MM-DD date string.
func MonthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// DaysInMonth returns the number of calendar days in a YYYY-MM month, or 0
// when the month is malformed.
func DaysInMonth(month string) int {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 0
	}
	return t.AddDate(0, 1, -1).Day()
}

// PreviousMonth returns the YYYY-MM month before t's month.
func PreviousMonth(t time.Time) string {
	return t.AddDate(0, 0, -t.Day()).Format("2006-01")
}
