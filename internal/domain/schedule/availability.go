package schedule

import (
	"sort"

	"github.com/sharpcut/booking-api/internal/timeutil"
)

// DayHours is a barber's resolved open window for one date, in minutes.
type DayHours struct {
	Open  bool
	Start int
	End   int
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeButton is one bookable candidate for the dual-duration view. Disabled
// candidates are still returned so the UI can render them greyed out.
type TimeButton struct {
	Time     string `json:"time"`
	Disabled bool   `json:"disabled"`
}

// SameDayLeadMinutes is the notice required for same-day bookings in the
// time-button view.
const SameDayLeadMinutes = 180

// GridSlots enumerates free slots of the given duration across the working
// window. No partial trailing slot is produced, occupied windows are skipped
// entirely, and for today slots starting before now are dropped.
func GridSlots(hours DayHours, duration int, occupied []Range, isToday bool, nowMinutes int) []TimeSlot {
	if !hours.Open || duration <= 0 {
		return nil
	}

	var slots []TimeSlot
	for cur := hours.Start; cur+duration <= hours.End; cur += duration {
		if isToday && cur < nowMinutes {
			continue
		}
		if HasOverlap(occupied, cur, cur+duration) {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: timeutil.FormatClock(cur),
			End:   timeutil.FormatClock(cur + duration),
		})
	}

	return slots
}

// TimeButtons computes the dual-duration candidate view: grid boundaries for
// the requested duration, plus gap-filling candidates after short existing
// bookings, with the same-day lead time applied before the occupancy check.
func TimeButtons(hours DayHours, occupied []Range, duration int, isToday bool, nowMinutes int) ([]TimeButton, error) {
	if duration != 30 && duration != 60 {
		return nil, Validation("invalid_duration", "duration must be 30 or 60 minutes")
	}

	if !hours.Open {
		return nil, nil
	}

	candidates := make(map[int]bool)

	// Base grid: :00/:30 boundaries for 30 minutes, :00 for 60.
	first := hours.Start
	if rem := first % duration; rem != 0 {
		first += duration - rem
	}
	for cur := first; cur+duration <= hours.End; cur += duration {
		candidates[cur] = true
	}

	// Gap-filling: the 30 minutes after a 30/60-minute booking are bookable
	// even off the regular grid, as long as nothing else occupies them.
	for _, r := range occupied {
		if r.Kind != RangeSlot {
			continue
		}
		length := r.End - r.Start
		if length != 30 && length != 60 {
			continue
		}

		gapStart := r.End
		gapEnd := gapStart + 30
		if gapEnd > hours.End {
			continue
		}
		if HasOverlap(occupied, gapStart, gapEnd) {
			continue
		}

		candidates[gapStart] = true
	}

	times := make([]int, 0, len(candidates))
	for t := range candidates {
		if isToday && t < nowMinutes+SameDayLeadMinutes {
			continue
		}
		times = append(times, t)
	}
	sort.Ints(times)

	buttons := make([]TimeButton, 0, len(times))
	for _, t := range times {
		disabled := t+duration > hours.End || HasOverlap(occupied, t, t+duration)
		buttons = append(buttons, TimeButton{
			Time:     timeutil.FormatClock(t),
			Disabled: disabled,
		})
	}

	return buttons, nil
}
