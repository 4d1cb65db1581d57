package schedule

import (
	"context"

	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/models"
	"github.com/sharpcut/booking-api/internal/notify"
	"github.com/sharpcut/booking-api/internal/timeutil"
)

type WorkingDayInput struct {
	Weekday   int
	IsWorking bool
	StartTime string
	EndTime   string
}

// UpsertWorkingHours replaces the weekly base hours for a barber: one row
// per weekday, upsert semantics.
func (s *Service) UpsertWorkingHours(ctx context.Context, shopID, barberID uint, days []WorkingDayInput, adminID *uint) error {
	if _, err := s.repo.GetBarber(ctx, shopID, barberID); err != nil {
		return domain.NotFound("barber_not_found", "barber does not exist")
	}

	for _, d := range days {
		if d.Weekday < 0 || d.Weekday > 6 {
			return domain.Validation("invalid_weekday", "weekday must be 0 (Sunday) to 6 (Saturday)")
		}
		if d.IsWorking {
			start, err := timeutil.ParseClock(d.StartTime)
			if err != nil {
				return domain.Validation("invalid_time", "start time must be HH:MM")
			}
			end, err := timeutil.ParseClock(d.EndTime)
			if err != nil {
				return domain.Validation("invalid_time", "end time must be HH:MM")
			}
			if start >= end {
				return domain.Validation("invalid_window", "start time must precede end time")
			}
		}
	}

	err := s.repo.InTx(ctx, func(tx domain.Repository) error {
		for _, d := range days {
			if err := tx.UpsertWorkingHour(ctx, &models.WorkingHour{
				BarbershopID: shopID,
				BarberID:     barberID,
				Weekday:      d.Weekday,
				IsWorking:    d.IsWorking,
				StartTime:    d.StartTime,
				EndTime:      d.EndTime,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.record(shopID, adminID, "working_hours_updated", "barber", &barberID, nil)
	return nil
}

type CreateOverrideInput struct {
	BarbershopID uint
	BarberID     uint
	Date         string
	StartTime    string
	EndTime      string
	Reason       string
}

// CreateOverride blocks a window on one date and cascade-cancels every
// approved appointment caught inside it. The override row, the
// cancellations and the slot releases commit together or not at all.
func (s *Service) CreateOverride(ctx context.Context, in CreateOverrideInput, adminID *uint) (*models.WorkingHourOverride, error) {
	if _, err := parseDate(in.Date); err != nil {
		return nil, err
	}
	start, err := timeutil.ParseClock(in.StartTime)
	if err != nil {
		return nil, domain.Validation("invalid_time", "start time must be HH:MM")
	}
	end, err := timeutil.ParseClock(in.EndTime)
	if err != nil {
		return nil, domain.Validation("invalid_time", "end time must be HH:MM")
	}
	if start >= end {
		return nil, domain.Validation("invalid_window", "start time must precede end time")
	}

	if _, err := s.repo.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		return nil, domain.NotFound("barber_not_found", "barber does not exist")
	}

	release, err := s.locker.Acquire(ctx, lockKey(in.BarbershopID, in.BarberID, in.Date), lockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	override := &models.WorkingHourOverride{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		Date:         in.Date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Reason:       in.Reason,
	}

	var displaced []models.AppointmentRequest

	err = s.repo.InTx(ctx, func(tx domain.Repository) error {
		if err := tx.CreateOverride(ctx, override); err != nil {
			return err
		}

		slots, err := tx.ListSlotsLocked(ctx, in.BarbershopID, in.BarberID, in.Date)
		if err != nil {
			return err
		}

		for _, slot := range slots {
			slotStart, err := timeutil.ParseClock(slot.StartTime)
			if err != nil {
				return err
			}
			slotEnd, err := timeutil.ParseClock(slot.EndTime)
			if err != nil {
				return err
			}
			if !timeutil.Overlaps(start, end, slotStart, slotEnd) {
				continue
			}

			req, err := tx.GetRequest(ctx, in.BarbershopID, slot.RequestID)
			if err != nil {
				return err
			}

			if err := tx.DeleteSlotByRequest(ctx, in.BarbershopID, req.ID); err != nil {
				return err
			}

			by := string(domain.ActorSystem)
			req.Status = string(domain.StatusCancelled)
			req.CancelledBy = &by
			if err := tx.UpdateRequest(ctx, req); err != nil {
				return err
			}

			displaced = append(displaced, *req)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range displaced {
		s.send(ctx, notify.EventCancelledBySystem, displaced[i].CustomerPhone, requestData(&displaced[i]))
	}

	s.record(in.BarbershopID, adminID, "override_created", "working_hour_override", &override.ID, map[string]any{
		"date":      in.Date,
		"window":    in.StartTime + "-" + in.EndTime,
		"displaced": len(displaced),
	})

	return override, nil
}

func (s *Service) DeleteOverride(ctx context.Context, shopID, overrideID uint, adminID *uint) error {
	if _, err := s.repo.GetOverride(ctx, shopID, overrideID); err != nil {
		return domain.NotFound("override_not_found", "override does not exist")
	}

	if err := s.repo.DeleteOverride(ctx, shopID, overrideID); err != nil {
		return err
	}

	s.record(shopID, adminID, "override_deleted", "working_hour_override", &overrideID, nil)
	return nil
}

// ResolveHours exposes the resolved open window for one barber/date,
// including the date's closure windows.
func (s *Service) ResolveHours(ctx context.Context, shopID, barberID uint, date string) (domain.DayHours, []models.WorkingHourOverride, error) {
	if _, err := s.repo.GetBarber(ctx, shopID, barberID); err != nil {
		return domain.DayHours{}, nil, domain.NotFound("barber_not_found", "barber does not exist")
	}
	return s.resolveDayHours(ctx, s.repo, shopID, barberID, date)
}
