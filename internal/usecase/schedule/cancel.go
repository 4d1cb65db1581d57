package schedule

import (
	"context"
	"fmt"

	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/models"
	"github.com/sharpcut/booking-api/internal/notify"
	"github.com/sharpcut/booking-api/internal/timeutil"
)

// Cancel moves a pending or approved request to cancelled, releasing its
// slot when one exists, and lets the waitlist know about the freed window.
//
// Cancelling a subscription occurrence is only allowed on the chronologically
// nearest future occurrence: a customer may not skip ahead while an earlier
// occurrence still stands.
//
// Customers must give at least CancelLeadMinutes of notice on approved
// requests; admin and system cancellations have no lead requirement.
func (s *Service) Cancel(ctx context.Context, shopID, requestID uint, actor domain.Actor, actorUserID *uint) (*models.AppointmentRequest, error) {
	if !domain.ValidActor(actor) {
		return nil, domain.Validation("invalid_actor", "cancelledBy must be customer, admin or system")
	}

	req, err := s.repo.GetRequest(ctx, shopID, requestID)
	if err != nil {
		return nil, domain.NotFound("request_not_found", "appointment request does not exist")
	}

	start, err := timeutil.ParseClock(req.StartTime)
	if err != nil {
		return nil, domain.Validation("invalid_time", "request start time is malformed")
	}

	if s.startInPast(req.Date, start) {
		return nil, domain.Policy("appointment_in_past", "past appointments cannot be cancelled")
	}

	if actor == domain.ActorCustomer &&
		domain.Status(req.Status) == domain.StatusApproved &&
		req.Date == s.today() &&
		start-s.nowMinutes() < domain.CancelLeadMinutes {

		return nil, domain.Policy(
			"cancellation_too_close",
			fmt.Sprintf("approved appointments must be cancelled at least %d minutes before the start time", domain.CancelLeadMinutes),
		)
	}

	if req.SubscriptionID != nil {
		future, err := s.repo.ListFutureRequestsForSubscription(
			ctx, shopID, *req.SubscriptionID, s.today(),
			[]domain.Status{domain.StatusPending, domain.StatusApproved},
		)
		if err != nil {
			return nil, err
		}
		if len(future) > 0 && future[0].ID != req.ID {
			return nil, domain.Policy(
				"not_nearest_occurrence",
				"only the nearest upcoming occurrence of a subscription can be cancelled",
			)
		}
	}

	priorStatus := domain.Status(req.Status)
	var cancelled *models.AppointmentRequest

	err = s.repo.InTx(ctx, func(tx domain.Repository) error {
		cur, err := tx.GetRequest(ctx, shopID, requestID)
		if err != nil {
			return domain.NotFound("request_not_found", "appointment request does not exist")
		}

		if err := domain.CanCancel(domain.Status(cur.Status)); err != nil {
			return err
		}

		if err := tx.DeleteSlotByRequest(ctx, shopID, cur.ID); err != nil {
			return err
		}

		by := string(actor)
		cur.Status = string(domain.StatusCancelled)
		cur.CancelledBy = &by
		if err := tx.UpdateRequest(ctx, cur); err != nil {
			return err
		}

		cancelled = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.send(ctx, cancelEvent(actor), cancelled.CustomerPhone, requestData(cancelled))
	s.record(shopID, actorUserID, "request_cancelled", "appointment_request", &cancelled.ID, map[string]any{
		"cancelled_by": string(actor),
		"prior_status": string(priorStatus),
	})

	// Only an approved cancellation frees real capacity worth announcing.
	if priorStatus == domain.StatusApproved {
		s.matchFreed(ctx, shopID, cancelled.BarberID, cancelled.Date, start)
	}

	return cancelled, nil
}

func cancelEvent(actor domain.Actor) notify.Event {
	switch actor {
	case domain.ActorAdmin:
		return notify.EventCancelledByAdmin
	case domain.ActorSystem:
		return notify.EventCancelledBySystem
	}
	return notify.EventCancelledByCustomer
}
