package schedule

import (
	"context"
	"fmt"

	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/models"
	"github.com/sharpcut/booking-api/internal/notify"
	"github.com/sharpcut/booking-api/internal/timeutil"
)

// Approve reserves the barber's time for a request. This is the only path
// that consumes capacity: the overlap check and the slot write run inside
// one transaction, so when two customers raced to the same window the first
// approval wins and the second surfaces a conflict.
//
// Re-approving an already approved request with a new duration releases the
// prior slot first, inside the same transaction.
func (s *Service) Approve(ctx context.Context, shopID, requestID uint, durationMinutes int, adminID *uint) (*models.AppointmentRequest, error) {
	if durationMinutes != 30 && durationMinutes != 60 {
		return nil, domain.Validation("invalid_duration", "approved duration must be 30 or 60 minutes")
	}

	req, err := s.repo.GetRequest(ctx, shopID, requestID)
	if err != nil {
		return nil, domain.NotFound("request_not_found", "appointment request does not exist")
	}

	release, err := s.locker.Acquire(ctx, lockKey(shopID, req.BarberID, req.Date), lockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	var approved *models.AppointmentRequest

	err = s.repo.InTx(ctx, func(tx domain.Repository) error {
		cur, err := tx.GetRequest(ctx, shopID, requestID)
		if err != nil {
			return domain.NotFound("request_not_found", "appointment request does not exist")
		}

		if err := domain.CanApprove(domain.Status(cur.Status)); err != nil {
			return err
		}

		// Release the request's own prior reservation before the overlap
		// check; otherwise a shorter re-approval would conflict with itself.
		if domain.Status(cur.Status) == domain.StatusApproved {
			if err := tx.DeleteSlotByRequest(ctx, shopID, cur.ID); err != nil {
				return err
			}
		}

		start, err := timeutil.ParseClock(cur.StartTime)
		if err != nil {
			return domain.Validation("invalid_time", "request start time is malformed")
		}
		end := start + durationMinutes

		slots, err := tx.ListSlotsLocked(ctx, shopID, cur.BarberID, cur.Date)
		if err != nil {
			return err
		}
		others := slots[:0:0]
		for _, slot := range slots {
			if slot.RequestID != cur.ID {
				others = append(others, slot)
			}
		}

		overrides, err := tx.ListOverrides(ctx, shopID, cur.BarberID, cur.Date)
		if err != nil {
			return err
		}

		occupied, err := domain.BuildOccupied(others, nil, overrides)
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

		if err := tx.CreateSlot(ctx, &models.AppointmentSlot{
			BarbershopID: shopID,
			BarberID:     cur.BarberID,
			RequestID:    cur.ID,
			Date:         cur.Date,
			StartTime:    cur.StartTime,
			EndTime:      timeutil.FormatClock(end),
		}); err != nil {
			return err
		}

		cur.Status = string(domain.StatusApproved)
		cur.EndTime = timeutil.FormatClock(end)
		if err := tx.UpdateRequest(ctx, cur); err != nil {
			return err
		}

		approved = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.send(ctx, notify.EventRequestApproved, approved.CustomerPhone, requestData(approved))
	s.record(shopID, adminID, "request_approved", "appointment_request", &approved.ID, nil)

	return approved, nil
}

// Reject declines a pending request without ever having reserved capacity.
func (s *Service) Reject(ctx context.Context, shopID, requestID uint, adminID *uint) (*models.AppointmentRequest, error) {
	var rejected *models.AppointmentRequest

	err := s.repo.InTx(ctx, func(tx domain.Repository) error {
		req, err := tx.GetRequest(ctx, shopID, requestID)
		if err != nil {
			return domain.NotFound("request_not_found", "appointment request does not exist")
		}

		if err := domain.CanReject(domain.Status(req.Status)); err != nil {
			return err
		}

		req.Status = string(domain.StatusRejected)
		if err := tx.UpdateRequest(ctx, req); err != nil {
			return err
		}

		rejected = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.send(ctx, notify.EventRequestRejected, rejected.CustomerPhone, requestData(rejected))
	s.record(shopID, adminID, "request_rejected", "appointment_request", &rejected.ID, nil)

	return rejected, nil
}

// Complete marks an approved appointment as done and releases its slot.
func (s *Service) Complete(ctx context.Context, shopID, requestID uint, adminID *uint) (*models.AppointmentRequest, error) {
	var done *models.AppointmentRequest

	err := s.repo.InTx(ctx, func(tx domain.Repository) error {
		req, err := tx.GetRequest(ctx, shopID, requestID)
		if err != nil {
			return domain.NotFound("request_not_found", "appointment request does not exist")
		}

		if err := domain.CanComplete(domain.Status(req.Status)); err != nil {
			return err
		}

		if err := tx.DeleteSlotByRequest(ctx, shopID, req.ID); err != nil {
			return err
		}

		req.Status = string(domain.StatusDone)
		if err := tx.UpdateRequest(ctx, req); err != nil {
			return err
		}

		done = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(shopID, adminID, "request_completed", "appointment_request", &done.ID, nil)

	return done, nil
}
