package schedule

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/models"
	"github.com/sharpcut/booking-api/internal/notify"
	"github.com/sharpcut/booking-api/internal/timeutil"
	"github.com/sharpcut/booking-api/internal/validators"
)

type AdminBookInput struct {
	BarbershopID uint
	BarberID     uint

	CustomerName  string
	CustomerPhone string

	Date            string
	StartTime       string
	DurationMinutes int
	ServiceType     string

	SubscriptionID *uint
}

// AdminBook creates and approves a booking in one atomic step, bypassing the
// pending stage entirely.
func (s *Service) AdminBook(ctx context.Context, in AdminBookInput, adminID *uint) (*models.AppointmentRequest, error) {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, domain.Validation("missing_name", "customer name is required")
	}
	phone, ok := validators.NormalizePhone(in.CustomerPhone)
	if !ok {
		return nil, domain.Validation("invalid_phone", "customer phone is not a valid number")
	}
	in.CustomerName = name
	in.CustomerPhone = phone

	banned, err := s.repo.IsBanned(ctx, in.BarbershopID, phone, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, domain.Policy("customer_banned", "this phone number is blocked from booking")
	}

	req, err := s.reserveApproved(ctx, in)
	if err != nil {
		return nil, err
	}

	s.send(ctx, notify.EventAdminBooked, req.CustomerPhone, requestData(req))
	s.record(in.BarbershopID, adminID, "admin_booking_created", "appointment_request", &req.ID, nil)

	return req, nil
}

// reserveApproved is the shared atomic overlap-check-and-reserve: it backs
// both manual admin booking and subscription materialization. The caller is
// responsible for ban checks and notifications.
func (s *Service) reserveApproved(ctx context.Context, in AdminBookInput) (*models.AppointmentRequest, error) {
	if in.DurationMinutes != 30 && in.DurationMinutes != 60 {
		return nil, domain.Validation("invalid_duration", "duration must be 30 or 60 minutes")
	}
	if _, err := parseDate(in.Date); err != nil {
		return nil, err
	}
	start, err := timeutil.ParseClock(in.StartTime)
	if err != nil {
		return nil, domain.Validation("invalid_time", "start time must be HH:MM")
	}
	end := start + in.DurationMinutes

	barber, err := s.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, domain.NotFound("barber_not_found", "barber does not exist")
	}
	if !barber.Active {
		return nil, domain.Policy("barber_inactive", "barber is not taking bookings")
	}

	release, err := s.locker.Acquire(ctx, lockKey(in.BarbershopID, in.BarberID, in.Date), lockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	var created *models.AppointmentRequest

	err = s.repo.InTx(ctx, func(tx domain.Repository) error {
		slots, err := tx.ListSlotsLocked(ctx, in.BarbershopID, in.BarberID, in.Date)
		if err != nil {
			return err
		}
		overrides, err := tx.ListOverrides(ctx, in.BarbershopID, in.BarberID, in.Date)
		if err != nil {
			return err
		}

		occupied, err := domain.BuildOccupied(slots, nil, overrides)
		if err != nil {
			return err
		}

		if hit := domain.FindOverlap(occupied, start, end); hit != nil {
			return domain.Conflict("time_conflict", fmt.Sprintf(
				"window %s-%s is already taken (%s-%s)",
				timeutil.FormatClock(start), timeutil.FormatClock(end),
				timeutil.FormatClock(hit.Start), timeutil.FormatClock(hit.End),
			))
		}

		req := &models.AppointmentRequest{
			BarbershopID:   in.BarbershopID,
			BarberID:       in.BarberID,
			CustomerName:   in.CustomerName,
			CustomerPhone:  in.CustomerPhone,
			Date:           in.Date,
			StartTime:      in.StartTime,
			EndTime:        timeutil.FormatClock(end),
			ServiceType:    in.ServiceType,
			Status:         string(domain.StatusApproved),
			SubscriptionID: in.SubscriptionID,
		}
		if err := tx.CreateRequest(ctx, req); err != nil {
			return err
		}

		if err := tx.CreateSlot(ctx, &models.AppointmentSlot{
			BarbershopID: in.BarbershopID,
			BarberID:     in.BarberID,
			RequestID:    req.ID,
			Date:         in.Date,
			StartTime:    in.StartTime,
			EndTime:      timeutil.FormatClock(end),
		}); err != nil {
			return err
		}

		created = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
