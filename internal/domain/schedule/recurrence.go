package schedule

import (
	"time"

	"github.com/sharpcut/booking-api/internal/timeutil"
)

type RecurrenceType string

const (
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceBiweekly RecurrenceType = "biweekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
)

// Recurrence is a subscription's occurrence rule. DayOfWeek is ISO style
// (1 = Monday .. 7 = Sunday); WeekOfMonth (1-5) only applies to monthly.
type Recurrence struct {
	Type        RecurrenceType
	DayOfWeek   int
	WeekOfMonth int
	StartDate   time.Time
	EndDate     *time.Time
}

func ValidateRecurrence(r Recurrence) error {
	switch r.Type {
	case RecurrenceWeekly, RecurrenceBiweekly:
	case RecurrenceMonthly:
		if r.WeekOfMonth < 1 || r.WeekOfMonth > 5 {
			return Validation("invalid_week_of_month", "week of month must be 1-5")
		}
	default:
		return Validation("invalid_recurrence_type", "recurrence type must be weekly, biweekly or monthly")
	}

	if r.DayOfWeek < 1 || r.DayOfWeek > 7 {
		return Validation("invalid_day_of_week", "day of week must be 1 (Monday) to 7 (Sunday)")
	}

	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return Validation("invalid_end_date", "end date precedes start date")
	}

	return nil
}

// NextOccurrences generates up to maxCount occurrence dates on or after
// from. Pure and deterministic: identical inputs always yield identical
// output.
func NextOccurrences(r Recurrence, from time.Time, maxCount int) []string {
	if maxCount <= 0 {
		return nil
	}

	cursor := dateOnly(from)
	if start := dateOnly(r.StartDate); cursor.Before(start) {
		cursor = start
	}

	var end *time.Time
	if r.EndDate != nil {
		e := dateOnly(*r.EndDate)
		end = &e
	}

	switch r.Type {
	case RecurrenceWeekly:
		return stepOccurrences(nextWeekday(cursor, r.DayOfWeek), 7, end, maxCount)
	case RecurrenceBiweekly:
		// After the first match, each occurrence is exactly 14 days later;
		// never the naive 7-day-away calendar match.
		return stepOccurrences(nextWeekday(cursor, r.DayOfWeek), 14, end, maxCount)
	case RecurrenceMonthly:
		return monthlyOccurrences(r, cursor, end, maxCount)
	}

	return nil
}

func stepOccurrences(first time.Time, stepDays int, end *time.Time, maxCount int) []string {
	var dates []string
	for d := first; len(dates) < maxCount; d = d.AddDate(0, 0, stepDays) {
		if end != nil && d.After(*end) {
			break
		}
		dates = append(dates, d.Format(timeutil.DateLayout))
	}
	return dates
}

func monthlyOccurrences(r Recurrence, cursor time.Time, end *time.Time, maxCount int) []string {
	var dates []string

	year, month := cursor.Year(), cursor.Month()
	loc := cursor.Location()

	// A month can lack a 5th instance of the weekday; such months are
	// skipped, never an error.
	for len(dates) < maxCount {
		d, ok := nthWeekdayOfMonth(year, month, r.DayOfWeek, r.WeekOfMonth, loc)
		if ok && !d.Before(cursor) {
			if end != nil && d.After(*end) {
				break
			}
			dates = append(dates, d.Format(timeutil.DateLayout))
			cursor = d.AddDate(0, 0, 1)
		}

		month++
		if month > time.December {
			month = time.January
			year++
		}
	}

	return dates
}

// nthWeekdayOfMonth returns the nth instance (1-5) of the ISO weekday in the
// given month, or ok=false when the month has no such instance.
func nthWeekdayOfMonth(year int, month time.Month, isoDow, n int, loc *time.Location) (time.Time, bool) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)

	offset := (isoDow - isoWeekday(first) + 7) % 7
	day := 1 + offset + (n-1)*7

	if day > daysInMonth(year, month, loc) {
		return time.Time{}, false
	}

	return time.Date(year, month, day, 0, 0, 0, 0, loc), true
}

func daysInMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// nextWeekday returns the first date on or after d with the ISO weekday.
func nextWeekday(d time.Time, isoDow int) time.Time {
	offset := (isoDow - isoWeekday(d) + 7) % 7
	return d.AddDate(0, 0, offset)
}

// isoWeekday maps time.Weekday (Sunday=0) to ISO (Monday=1 .. Sunday=7).
func isoWeekday(t time.Time) int {
	if wd := int(t.Weekday()); wd != 0 {
		return wd
	}
	return 7
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
