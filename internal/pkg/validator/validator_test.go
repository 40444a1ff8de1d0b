package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	valid := []string{"2026-01", "2026-12", "1999-06"}
	invalid := []string{"2026-13", "2026-00", "2026-1", "2026/01", "202601", "2026-01-15", ""}
	for _, m := range valid {
		if !IsValidMonth(m) {
			t.Errorf("IsValidMonth(%q) = false, want true", m)
		}
	}
	for _, m := range invalid {
		if IsValidMonth(m) {
			t.Errorf("IsValidMonth(%q) = true, want false", m)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		month string
		want  int
	}{
		{"2026-01", 31},
		{"2026-02", 28},
		{"2024-02", 29},
		{"2026-04", 30},
		{"bogus", 0},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.month); got != c.want {
			t.Errorf("DaysInMonth(%q) = %d, want %d", c.month, got, c.want)
		}
	}
}

func TestMonthOf(t *testing.T) {
	if got := MonthOf("2026-03-15"); got != "2026-03" {
		t.Errorf("MonthOf(2026-03-15) = %q, want 2026-03", got)
	}
}

func TestPreviousMonth(t *testing.T) {
	cases := []struct {
		now  string
		want string
	}{
		{"2026-03-01", "2026-02"},
		{"2026-01-15", "2025-12"},
		{"2024-03-31", "2024-02"},
	}
	for _, c := range cases {
		now, _ := time.Parse("2006-01-02", c.now)
		if got := PreviousMonth(now); got != c.want {
			t.Errorf("PreviousMonth(%s) = %q, want %q", c.now, got, c.want)
		}
	}
}
