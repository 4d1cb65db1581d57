package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// All scheduling arithmetic runs on integer minutes since midnight. Clock
// strings are always "HH:MM" in the shop's timezone.

const (
	MinutesPerDay = 24 * 60
	DateLayout    = "2006-01-02"
	ClockLayout   = "15:04"
)

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return hour*60 + minute, nil
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any minute.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
