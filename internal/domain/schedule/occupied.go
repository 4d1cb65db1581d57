package schedule

import (
	"sort"

	"github.com/sharpcut/booking-api/internal/models"
	"github.com/sharpcut/booking-api/internal/timeutil"
)

type RangeKind int

const (
	RangeSlot RangeKind = iota + 1
	RangePending
	RangeOverride
)

// Range is an occupied interval in minutes since midnight, half-open.
type Range struct {
	Start int
	End   int
	Kind  RangeKind

	// RequestID links slot/pending ranges back to their request.
	RequestID uint
}

// PendingHoldMinutes is the synthetic hold a slotless pending request
// contributes to the occupied view.
const PendingHoldMinutes = 30

// BuildOccupied derives the single occupied-ranges view used by both
// availability calculators and the approval overlap check: every reserved
// slot, a synthetic hold for each pending request that has no slot yet, and
// every override window.
func BuildOccupied(
	slots []models.AppointmentSlot,
	pending []models.AppointmentRequest,
	overrides []models.WorkingHourOverride,
) ([]Range, error) {

	var ranges []Range

	held := make(map[uint]bool, len(slots))

	for _, s := range slots {
		start, err := timeutil.ParseClock(s.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timeutil.ParseClock(s.EndTime)
		if err != nil {
			return nil, err
		}

		held[s.RequestID] = true
		ranges = append(ranges, Range{
			Start:     start,
			End:       end,
			Kind:      RangeSlot,
			RequestID: s.RequestID,
		})
	}

	for _, r := range pending {
		if held[r.ID] {
			continue
		}

		start, err := timeutil.ParseClock(r.StartTime)
		if err != nil {
			return nil, err
		}

		ranges = append(ranges, Range{
			Start:     start,
			End:       start + PendingHoldMinutes,
			Kind:      RangePending,
			RequestID: r.ID,
		})
	}

	for _, o := range overrides {
		start, err := timeutil.ParseClock(o.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timeutil.ParseClock(o.EndTime)
		if err != nil {
			return nil, err
		}

		ranges = append(ranges, Range{Start: start, End: end, Kind: RangeOverride})
	}

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})

	return ranges, nil
}

// FindOverlap returns the first occupied range overlapping [start, end),
// or nil.
func FindOverlap(ranges []Range, start, end int) *Range {
	for i := range ranges {
		if timeutil.Overlaps(start, end, ranges[i].Start, ranges[i].End) {
			return &ranges[i]
		}
	}
	return nil
}

func HasOverlap(ranges []Range, start, end int) bool {
	return FindOverlap(ranges, start, end) != nil
}
