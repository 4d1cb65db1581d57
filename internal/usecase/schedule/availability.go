package schedule

import (
	"context"

	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
)

// AvailableSlots enumerates free fixed-grid slots at the barber's configured
// duration. Used by the simple single-duration booking flow.
func (s *Service) AvailableSlots(ctx context.Context, shopID, barberID uint, date string) ([]domain.TimeSlot, error) {
	barber, err := s.repo.GetBarber(ctx, shopID, barberID)
	if err != nil {
		return nil, domain.NotFound("barber_not_found", "barber does not exist")
	}

	hours, overrides, err := s.resolveDayHours(ctx, s.repo, shopID, barberID, date)
	if err != nil {
		return nil, err
	}
	if !hours.Open {
		return []domain.TimeSlot{}, nil
	}

	// Pending requests do not consume capacity in the fixed-grid view;
	// only reservations and closures do.
	occupied, err := s.occupiedForDate(ctx, s.repo, shopID, barberID, date, overrides, false, false)
	if err != nil {
		return nil, err
	}

	duration := barber.SlotDurationMin
	if duration != 30 && duration != 60 {
		duration = 30
	}

	isToday := date == s.today()
	slots := domain.GridSlots(hours, duration, occupied, isToday, s.nowMinutes())
	if slots == nil {
		slots = []domain.TimeSlot{}
	}

	return slots, nil
}

// TimeButtons computes the dual-duration candidate view used by both the
// customer and the admin booking UIs. When service selection is disabled the
// barber's own slot duration wins over the requested one.
func (s *Service) TimeButtons(
	ctx context.Context,
	shopID, barberID uint,
	date string,
	durationMinutes int,
	serviceSelection bool,
) ([]domain.TimeButton, error) {

	barber, err := s.repo.GetBarber(ctx, shopID, barberID)
	if err != nil {
		return nil, domain.NotFound("barber_not_found", "barber does not exist")
	}

	if !serviceSelection {
		durationMinutes = barber.SlotDurationMin
	}
	if durationMinutes != 30 && durationMinutes != 60 {
		return nil, domain.Validation("invalid_duration", "duration must be 30 or 60 minutes")
	}

	hours, overrides, err := s.resolveDayHours(ctx, s.repo, shopID, barberID, date)
	if err != nil {
		return nil, err
	}
	if !hours.Open {
		return []domain.TimeButton{}, nil
	}

	occupied, err := s.occupiedForDate(ctx, s.repo, shopID, barberID, date, overrides, true, false)
	if err != nil {
		return nil, err
	}

	isToday := date == s.today()
	buttons, err := domain.TimeButtons(hours, occupied, durationMinutes, isToday, s.nowMinutes())
	if err != nil {
		return nil, err
	}
	if buttons == nil {
		buttons = []domain.TimeButton{}
	}

	return buttons, nil
}
