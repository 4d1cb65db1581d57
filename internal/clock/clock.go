package clock

import "time"

const DefaultTimezone = "America/Sao_Paulo"

// Clock yields "now" in the shop's fixed timezone. Every past/future rule in
// the scheduling engine goes through this interface so lead-time behavior is
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

type shopClock struct {
	loc *time.Location
}

func New(tz string) Clock {
	return shopClock{loc: Location(tz)}
}

func (c shopClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// Fixed is a frozen clock for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
