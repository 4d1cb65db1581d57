package schedule

import (
	"context"

	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/models"
	"github.com/sharpcut/booking-api/internal/notify"
	"github.com/sharpcut/booking-api/internal/timeutil"
	"github.com/sharpcut/booking-api/internal/validators"
)

const (
	WaitlistMorning = "morning"
	WaitlistEvening = "evening"

	waitlistActive   = "active"
	waitlistNotified = "notified"
)

// JoinWaitlist registers interest in a half-day range for a barber/date.
// The (phone, barber, date) triple is unique; a second attempt surfaces a
// conflict.
func (s *Service) JoinWaitlist(ctx context.Context, shopID uint, phone string, barberID uint, date, timeRange string) (*models.AppointmentWaitlist, error) {
	normalized, ok := validators.NormalizePhone(phone)
	if !ok {
		return nil, domain.Validation("invalid_phone", "customer phone is not a valid number")
	}

	if timeRange != WaitlistMorning && timeRange != WaitlistEvening {
		return nil, domain.Validation("invalid_time_range", "time range must be morning or evening")
	}

	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	if date < s.today() {
		return nil, domain.Policy("date_in_past", "cannot join a waitlist for a past date")
	}

	if _, err := s.repo.GetBarber(ctx, shopID, barberID); err != nil {
		return nil, domain.NotFound("barber_not_found", "barber does not exist")
	}

	entry := &models.AppointmentWaitlist{
		BarbershopID:  shopID,
		CustomerPhone: normalized,
		BarberID:      barberID,
		PreferredDate: date,
		TimeRange:     timeRange,
		Status:        waitlistActive,
	}

	if err := s.repo.CreateWaitlistEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// matchFreed runs after a cancellation frees capacity: every active entry
// whose half-day contains the freed start time is notified and flipped to
// notified. This is range membership, not a priority queue; the first
// customer to rebook wins through the usual atomic reservation.
func (s *Service) matchFreed(ctx context.Context, shopID, barberID uint, date string, freedStart int) {
	hours, _, err := s.resolveDayHours(ctx, s.repo, shopID, barberID, date)
	if err != nil {
		s.log.Error().Err(err).Str("date", date).Msg("waitlist match skipped")
		return
	}
	if !hours.Open {
		return
	}

	midpoint := (hours.Start + hours.End) / 2

	entries, err := s.repo.ListActiveWaitlist(ctx, shopID, barberID, date)
	if err != nil {
		s.log.Error().Err(err).Msg("waitlist lookup failed")
		return
	}

	for i := range entries {
		entry := &entries[i]

		inMorning := freedStart < midpoint
		if (entry.TimeRange == WaitlistMorning) != inMorning {
			continue
		}

		s.send(ctx, notify.EventSlotAvailable, entry.CustomerPhone, map[string]string{
			"Date": date,
			"Time": timeutil.FormatClock(freedStart),
		})

		entry.Status = waitlistNotified
		if err := s.repo.UpdateWaitlistEntry(ctx, entry); err != nil {
			s.log.Error().Err(err).Uint("entry_id", entry.ID).Msg("waitlist update failed")
		}
	}
}
