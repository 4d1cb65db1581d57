package schedule

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/models"
	"github.com/sharpcut/booking-api/internal/timeutil"
	"github.com/sharpcut/booking-api/internal/validators"
)

const (
	// How many occurrences are materialized when a subscription is created,
	// and how many a top-up run may add.
	initialOccurrences = 100
	topUpOccurrences   = 50
)

type CreateSubscriptionInput struct {
	BarbershopID uint
	BarberID     uint

	CustomerName  string
	CustomerPhone string

	RecurrenceType string
	DayOfWeek      int
	WeekOfMonth    int

	StartTime       string
	DurationMinutes int
	StartDate       string
	EndDate         *string
	ServiceType     string
}

// CreateSubscription stores the recurrence definition and immediately
// materializes its upcoming occurrences. Occurrences that collide with an
// already contended calendar are skipped, never errors: subscriptions are
// best-effort against existing bookings.
func (s *Service) CreateSubscription(ctx context.Context, in CreateSubscriptionInput, adminID *uint) (*models.Subscription, int, error) {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, 0, domain.Validation("missing_name", "customer name is required")
	}
	phone, ok := validators.NormalizePhone(in.CustomerPhone)
	if !ok {
		return nil, 0, domain.Validation("invalid_phone", "customer phone is not a valid number")
	}

	if in.DurationMinutes != 30 && in.DurationMinutes != 60 {
		return nil, 0, domain.Validation("invalid_duration", "duration must be 30 or 60 minutes")
	}
	if _, err := timeutil.ParseClock(in.StartTime); err != nil {
		return nil, 0, domain.Validation("invalid_time", "start time must be HH:MM")
	}

	rec, err := s.recurrenceOf(in.RecurrenceType, in.DayOfWeek, in.WeekOfMonth, in.StartDate, in.EndDate)
	if err != nil {
		return nil, 0, err
	}

	barber, err := s.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, 0, domain.NotFound("barber_not_found", "barber does not exist")
	}
	if !barber.Active {
		return nil, 0, domain.Policy("barber_inactive", "barber is not taking bookings")
	}

	banned, err := s.repo.IsBanned(ctx, in.BarbershopID, phone, s.clock.Now())
	if err != nil {
		return nil, 0, err
	}
	if banned {
		return nil, 0, domain.Policy("customer_banned", "this phone number is blocked from booking")
	}

	sub := &models.Subscription{
		BarbershopID:    in.BarbershopID,
		BarberID:        in.BarberID,
		CustomerName:    name,
		CustomerPhone:   phone,
		RecurrenceType:  in.RecurrenceType,
		DayOfWeek:       in.DayOfWeek,
		WeekOfMonth:     in.WeekOfMonth,
		StartTime:       in.StartTime,
		DurationMinutes: in.DurationMinutes,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		ServiceType:     in.ServiceType,
		IsActive:        true,
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, 0, err
	}

	created := s.materialize(ctx, sub, rec, initialOccurrences, nil)

	s.record(in.BarbershopID, adminID, "subscription_created", "subscription", &sub.ID, map[string]any{
		"materialized": created,
	})

	return sub, created, nil
}

// TopUpSubscription extends an active subscription's future occurrences,
// skipping dates that are already materialized.
func (s *Service) TopUpSubscription(ctx context.Context, shopID, subscriptionID uint, adminID *uint) (int, error) {
	sub, err := s.repo.GetSubscription(ctx, shopID, subscriptionID)
	if err != nil {
		return 0, domain.NotFound("subscription_not_found", "subscription does not exist")
	}
	if !sub.IsActive {
		return 0, domain.Policy("subscription_inactive", "subscription is no longer active")
	}

	rec, err := s.recurrenceOf(sub.RecurrenceType, sub.DayOfWeek, sub.WeekOfMonth, sub.StartDate, sub.EndDate)
	if err != nil {
		return 0, err
	}

	existing, err := s.repo.ListFutureRequestsForSubscription(
		ctx, shopID, sub.ID, s.today(),
		[]domain.Status{domain.StatusPending, domain.StatusApproved},
	)
	if err != nil {
		return 0, err
	}

	taken := make(map[string]bool, len(existing))
	for _, r := range existing {
		taken[r.Date] = true
	}

	created := s.materialize(ctx, sub, rec, topUpOccurrences, taken)

	if created > 0 {
		s.record(shopID, adminID, "subscription_topped_up", "subscription", &sub.ID, map[string]any{
			"materialized": created,
		})
	}

	return created, nil
}

// DeactivateSubscription stops the recurrence and cancels every future
// occurrence that has not happened yet, releasing their slots atomically.
func (s *Service) DeactivateSubscription(ctx context.Context, shopID, subscriptionID uint, adminID *uint) error {
	sub, err := s.repo.GetSubscription(ctx, shopID, subscriptionID)
	if err != nil {
		return domain.NotFound("subscription_not_found", "subscription does not exist")
	}

	err = s.repo.InTx(ctx, func(tx domain.Repository) error {
		sub.IsActive = false
		if err := tx.UpdateSubscription(ctx, sub); err != nil {
			return err
		}

		future, err := tx.ListFutureRequestsForSubscription(
			ctx, shopID, sub.ID, s.today(),
			[]domain.Status{domain.StatusPending, domain.StatusApproved},
		)
		if err != nil {
			return err
		}

		by := string(domain.ActorSystem)
		for i := range future {
			req := future[i]
			if err := tx.DeleteSlotByRequest(ctx, shopID, req.ID); err != nil {
				return err
			}
			req.Status = string(domain.StatusCancelled)
			req.CancelledBy = &by
			if err := tx.UpdateRequest(ctx, &req); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.record(shopID, adminID, "subscription_deactivated", "subscription", &sub.ID, nil)
	return nil
}

// materialize books each generated occurrence through the same atomic
// reserve used by manual admin booking. Conflicts are silently skipped.
func (s *Service) materialize(
	ctx context.Context,
	sub *models.Subscription,
	rec domain.Recurrence,
	maxCount int,
	skip map[string]bool,
) int {

	from := s.clock.Now()
	dates := domain.NextOccurrences(rec, from, maxCount)

	created := 0
	for _, date := range dates {
		if skip[date] {
			continue
		}

		_, err := s.reserveApproved(ctx, AdminBookInput{
			BarbershopID:    sub.BarbershopID,
			BarberID:        sub.BarberID,
			CustomerName:    sub.CustomerName,
			CustomerPhone:   sub.CustomerPhone,
			Date:            date,
			StartTime:       sub.StartTime,
			DurationMinutes: sub.DurationMinutes,
			ServiceType:     sub.ServiceType,
			SubscriptionID:  &sub.ID,
		})
		if err != nil {
			if domain.IsKind(err, domain.KindConflict) {
				continue
			}
			s.log.Error().Err(err).
				Uint("subscription_id", sub.ID).
				Str("date", date).
				Msg("occurrence materialization failed")
			continue
		}

		created++
	}

	return created
}

func (s *Service) recurrenceOf(recType string, dayOfWeek, weekOfMonth int, startDate string, endDate *string) (domain.Recurrence, error) {
	start, err := time.Parse(timeutil.DateLayout, startDate)
	if err != nil {
		return domain.Recurrence{}, domain.Validation("invalid_date", "start date must be YYYY-MM-DD")
	}

	var end *time.Time
	if endDate != nil && *endDate != "" {
		e, err := time.Parse(timeutil.DateLayout, *endDate)
		if err != nil {
			return domain.Recurrence{}, domain.Validation("invalid_date", "end date must be YYYY-MM-DD")
		}
		end = &e
	}

	rec := domain.Recurrence{
		Type:        domain.RecurrenceType(recType),
		DayOfWeek:   dayOfWeek,
		WeekOfMonth: weekOfMonth,
		StartDate:   start,
		EndDate:     end,
	}

	if err := domain.ValidateRecurrence(rec); err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return domain.Recurrence{}, de
		}
		return domain.Recurrence{}, err
	}

	return rec, nil
}
