package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/learnboard/internal/apperr"
)

func TestNextDateForWeekday(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"Thursday", "2026-01-29"},
		{"Friday", "2026-01-30"},
		{"Saturday", "2026-01-31"},
		{"Sunday", "2026-02-01"},
		{"Monday", "2026-02-02"},
		{"Tuesday", "2026-02-03"},
		{"Wednesday", "2026-02-04"},
		{"  tuesday ", "2026-02-03"},
		{"MONDAY", "2026-02-02"},
	}
	for _, tt := range tests {
		got, err := NextDateForWeekday(tt.day, wednesday)
		if err != nil {
			t.Fatalf("NextDateForWeekday(%q): %v", tt.day, err)
		}
		if got != tt.want {
			t.Errorf("NextDateForWeekday(%q) = %s, want %s", tt.day, got, tt.want)
		}
	}
}

func TestNextDateForWeekday_NeverToday(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		today := start.AddDate(0, 0, i)
		for d := time.Sunday; d <= time.Saturday; d++ {
			got, err := NextDateForWeekday(d.String(), today)
			if err != nil {
				t.Fatal(err)
			}
			date, _ := time.Parse(DateLayout, got)
			days := int(date.Sub(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)).Hours() / 24)
			if days < 1 || days > 7 {
				t.Errorf("%s from %s: %d days out, want 1..7", d, today.Format(DateLayout), days)
			}
			if date.Weekday() != d {
				t.Errorf("%s from %s: landed on %s", d, today.Format(DateLayout), date.Weekday())
			}
		}
	}
}

func TestNextDateForWeekday_AcrossYearEnd(t *testing.T) {
	// 2026-12-31 is a Thursday.
	got, err := NextDateForWeekday("Monday", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if got != "2027-01-04" {
		t.Errorf("got %s, want 2027-01-04", got)
	}
}

func TestNextDateForWeekday_Invalid(t *testing.T) {
	for _, name := range []string{"", "Funday", "Mon", "Tues day"} {
		_, err := NextDateForWeekday(name, wednesday)
		if !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("%q: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	if got := DaysUntil(time.Monday, time.Monday); got != 7 {
		t.Errorf("same day = %d, want 7", got)
	}
	if got := DaysUntil(time.Tuesday, time.Monday); got != 1 {
		t.Errorf("next day = %d, want 1", got)
	}
	if got := DaysUntil(time.Sunday, time.Saturday); got != 1 {
		t.Errorf("wraparound = %d, want 1", got)
	}
}
