package schedule

import (
	"context"
	"strings"

	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/models"
	"github.com/sharpcut/booking-api/internal/notify"
	"github.com/sharpcut/booking-api/internal/timeutil"
	"github.com/sharpcut/booking-api/internal/validators"
)

type CreateRequestInput struct {
	BarbershopID uint
	BarberID     uint

	CustomerName  string
	CustomerPhone string

	Date        string
	StartTime   string
	ServiceType string
}

// CreateRequest registers a pending booking request. No slot is reserved at
// this point: capacity is only consumed at approval, which is why any number
// of customers may request the same window.
func (s *Service) CreateRequest(ctx context.Context, in CreateRequestInput) (*models.AppointmentRequest, error) {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, domain.Validation("missing_name", "customer name is required")
	}

	phone, ok := validators.NormalizePhone(in.CustomerPhone)
	if !ok {
		return nil, domain.Validation("invalid_phone", "customer phone is not a valid number")
	}

	if _, err := parseDate(in.Date); err != nil {
		return nil, err
	}
	start, err := timeutil.ParseClock(in.StartTime)
	if err != nil {
		return nil, domain.Validation("invalid_time", "start time must be HH:MM")
	}

	if s.startInPast(in.Date, start) {
		return nil, domain.Policy("appointment_in_past", "requested time is already in the past")
	}

	barber, err := s.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, domain.NotFound("barber_not_found", "barber does not exist")
	}
	if !barber.Active {
		return nil, domain.Policy("barber_inactive", "barber is not taking bookings")
	}

	banned, err := s.repo.IsBanned(ctx, in.BarbershopID, phone, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, domain.Policy("customer_banned", "this phone number is blocked from booking")
	}

	// One active booking per phone number, across all barbers.
	active, err := s.repo.HasActiveRequestForPhone(ctx, in.BarbershopID, phone, s.today())
	if err != nil {
		return nil, err
	}
	if active {
		return nil, domain.Conflict("active_booking_exists", "customer already holds a future booking")
	}

	req := &models.AppointmentRequest{
		BarbershopID:  in.BarbershopID,
		BarberID:      in.BarberID,
		CustomerName:  name,
		CustomerPhone: phone,
		Date:          in.Date,
		StartTime:     in.StartTime,
		ServiceType:   in.ServiceType,
		Status:        string(domain.StatusPending),
	}

	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	s.send(ctx, notify.EventRequestCreated, req.CustomerPhone, requestData(req))

	if shop, err := s.repo.GetBarbershopByID(ctx, in.BarbershopID); err == nil && shop.AdminPhone != "" {
		s.send(ctx, notify.EventAdminNewRequest, shop.AdminPhone, requestData(req))
	}

	s.record(in.BarbershopID, nil, "request_created", "appointment_request", &req.ID, nil)

	return req, nil
}
