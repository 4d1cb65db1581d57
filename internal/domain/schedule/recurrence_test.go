package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestValidateRecurrence(t *testing.T) {
	end := d("2026-01-01")

	tests := []struct {
		name     string
		rec      Recurrence
		wantCode string
	}{
		{
			name: "weekly ok",
			rec:  Recurrence{Type: RecurrenceWeekly, DayOfWeek: 1, StartDate: d("2026-03-02")},
		},
		{
			name: "monthly ok",
			rec:  Recurrence{Type: RecurrenceMonthly, DayOfWeek: 5, WeekOfMonth: 2, StartDate: d("2026-03-02")},
		},
		{
			name:     "unknown type",
			rec:      Recurrence{Type: "daily", DayOfWeek: 1, StartDate: d("2026-03-02")},
			wantCode: "invalid_recurrence_type",
		},
		{
			name:     "day of week out of range",
			rec:      Recurrence{Type: RecurrenceWeekly, DayOfWeek: 8, StartDate: d("2026-03-02")},
			wantCode: "invalid_day_of_week",
		},
		{
			name:     "monthly without week of month",
			rec:      Recurrence{Type: RecurrenceMonthly, DayOfWeek: 3, StartDate: d("2026-03-02")},
			wantCode: "invalid_week_of_month",
		},
		{
			name:     "end before start",
			rec:      Recurrence{Type: RecurrenceWeekly, DayOfWeek: 1, StartDate: d("2026-03-02"), EndDate: &end},
			wantCode: "invalid_end_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecurrence(tt.rec)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, CodeOf(err))
		})
	}
}

func TestWeeklyOccurrences(t *testing.T) {
	// 2026-03-02 is a Monday.
	rec := Recurrence{Type: RecurrenceWeekly, DayOfWeek: 1, StartDate: d("2026-03-02")}

	dates := NextOccurrences(rec, d("2026-03-01"), 5)

	assert.Equal(t, []string{
		"2026-03-02", "2026-03-09", "2026-03-16", "2026-03-23", "2026-03-30",
	}, dates)
}

func TestWeeklyFromMidweek(t *testing.T) {
	// Asking from a Wednesday lands on the following Monday first.
	rec := Recurrence{Type: RecurrenceWeekly, DayOfWeek: 1, StartDate: d("2026-03-02")}

	dates := NextOccurrences(rec, d("2026-03-04"), 2)

	assert.Equal(t, []string{"2026-03-09", "2026-03-16"}, dates)
}

func TestBiweeklyOccurrences(t *testing.T) {
	rec := Recurrence{Type: RecurrenceBiweekly, DayOfWeek: 1, StartDate: d("2026-03-02")}

	dates := NextOccurrences(rec, d("2026-03-01"), 3)

	// Exactly 14 days apart after the first match.
	assert.Equal(t, []string{"2026-03-02", "2026-03-16", "2026-03-30"}, dates)
}

func TestMonthlySecondFriday(t *testing.T) {
	rec := Recurrence{Type: RecurrenceMonthly, DayOfWeek: 5, WeekOfMonth: 2, StartDate: d("2026-03-01")}

	dates := NextOccurrences(rec, d("2026-03-01"), 3)

	assert.Equal(t, []string{"2026-03-13", "2026-04-10", "2026-05-08"}, dates)
}

func TestMonthlyAcrossMonthLengths(t *testing.T) {
	// Nth Monday, anchored at the first of a month of each possible length.
	// When the month lacks the nth instance the generator walks forward to
	// the first month that has one.
	tests := []struct {
		name string
		from string
		week int
		want string
	}{
		// March 2026, 31 days, starts on a Sunday: Mondays 2, 9, 16, 23, 30.
		{"31d week 1", "2026-03-01", 1, "2026-03-02"},
		{"31d week 2", "2026-03-01", 2, "2026-03-09"},
		{"31d week 3", "2026-03-01", 3, "2026-03-16"},
		{"31d week 4", "2026-03-01", 4, "2026-03-23"},
		{"31d week 5", "2026-03-01", 5, "2026-03-30"},

		// April 2026, 30 days: Mondays 6, 13, 20, 27. No fifth Monday until
		// June (May has only four as well).
		{"30d week 1", "2026-04-01", 1, "2026-04-06"},
		{"30d week 2", "2026-04-01", 2, "2026-04-13"},
		{"30d week 3", "2026-04-01", 3, "2026-04-20"},
		{"30d week 4", "2026-04-01", 4, "2026-04-27"},
		{"30d week 5 skips to june", "2026-04-01", 5, "2026-06-29"},

		// February 2027, 28 days, starts on a Monday: 1, 8, 15, 22. The
		// fifth Monday lands in March.
		{"28d week 1", "2027-02-01", 1, "2027-02-01"},
		{"28d week 2", "2027-02-01", 2, "2027-02-08"},
		{"28d week 3", "2027-02-01", 3, "2027-02-15"},
		{"28d week 4", "2027-02-01", 4, "2027-02-22"},
		{"28d week 5 skips to march", "2027-02-01", 5, "2027-03-29"},

		// Leap February 2028, 29 days: Mondays 7, 14, 21, 28. March and
		// April 2028 have four Mondays each, so week 5 jumps to May.
		{"29d week 1", "2028-02-01", 1, "2028-02-07"},
		{"29d week 2", "2028-02-01", 2, "2028-02-14"},
		{"29d week 3", "2028-02-01", 3, "2028-02-21"},
		{"29d week 4", "2028-02-01", 4, "2028-02-28"},
		{"29d week 5 skips to may", "2028-02-01", 5, "2028-05-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recurrence{
				Type:        RecurrenceMonthly,
				DayOfWeek:   1,
				WeekOfMonth: tt.week,
				StartDate:   d(tt.from),
			}

			dates := NextOccurrences(rec, d(tt.from), 1)

			assert.Equal(t, []string{tt.want}, dates)
		})
	}
}

func TestMonthlyFifthWeekSkipsShortMonths(t *testing.T) {
	// Fifth Monday: March 2026 has one (2026-03-30), April does not, June
	// does (2026-06-29).
	rec := Recurrence{Type: RecurrenceMonthly, DayOfWeek: 1, WeekOfMonth: 5, StartDate: d("2026-03-01")}

	dates := NextOccurrences(rec, d("2026-03-01"), 2)

	assert.Equal(t, []string{"2026-03-30", "2026-06-29"}, dates)
}

func TestOccurrencesRespectEndDate(t *testing.T) {
	end := d("2026-03-20")
	rec := Recurrence{Type: RecurrenceWeekly, DayOfWeek: 1, StartDate: d("2026-03-02"), EndDate: &end}

	dates := NextOccurrences(rec, d("2026-03-01"), 10)

	assert.Equal(t, []string{"2026-03-02", "2026-03-09", "2026-03-16"}, dates)
}

func TestOccurrencesStartDateAfterFrom(t *testing.T) {
	rec := Recurrence{Type: RecurrenceWeekly, DayOfWeek: 1, StartDate: d("2026-06-01")}

	dates := NextOccurrences(rec, d("2026-03-01"), 1)

	assert.Equal(t, []string{"2026-06-01"}, dates)
}

func TestOccurrencesDeterministic(t *testing.T) {
	rec := Recurrence{Type: RecurrenceBiweekly, DayOfWeek: 4, StartDate: d("2026-03-01")}

	first := NextOccurrences(rec, d("2026-03-10"), 20)
	second := NextOccurrences(rec, d("2026-03-10"), 20)

	assert.Equal(t, first, second)
	assert.Len(t, first, 20)
}

func TestOccurrencesZeroCount(t *testing.T) {
	rec := Recurrence{Type: RecurrenceWeekly, DayOfWeek: 1, StartDate: d("2026-03-02")}
	assert.Nil(t, NextOccurrences(rec, d("2026-03-01"), 0))
}
