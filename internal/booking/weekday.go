package booking

import (
	"strings"
	"time"

	"github.com/abhisek/learnboard/internal/apperr"
)

// DateLayout is the ISO calendar date format bookings carry.
const DateLayout = "2006-01-02"

// ParseWeekday maps an English weekday name ("Monday", "monday ") to a
// time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.TrimSpace(name)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(n, d.String()) {
			return d, nil
		}
	}
	return 0, apperr.InvalidInput("parse weekday", "unrecognized weekday %q", name)
}

// DaysUntil returns how many days after today the next target falls.
// The result is always in [1, 7]; today never qualifies.
func DaysUntil(target, today time.Weekday) int {
	n := int(target) - int(today)
	if n <= 0 {
		n += 7
	}
	return n
}

// NextDate returns the next occurrence of day strictly after today, keeping
// today's clock time and location.
func NextDate(day time.Weekday, today time.Time) time.Time {
	return today.AddDate(0, 0, DaysUntil(day, today.Weekday()))
}

// NextDateForWeekday resolves a weekday name to the ISO date of its next
// occurrence after today. Asking for today's weekday yields a date seven
// days out.
func NextDateForWeekday(name string, today time.Time) (string, error) {
	day, err := ParseWeekday(name)
	if err != nil {
		return "", err
	}
	return NextDate(day, today).Format(DateLayout), nil
}
