package schedule

import (
	"context"

	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/models"
	"github.com/sharpcut/booking-api/internal/notify"
)

// DeactivateBarber takes a barber off the roster and cancels every future
// pending/approved appointment in one atomic unit.
func (s *Service) DeactivateBarber(ctx context.Context, shopID, barberID uint, adminID *uint) error {
	barber, err := s.repo.GetBarber(ctx, shopID, barberID)
	if err != nil {
		return domain.NotFound("barber_not_found", "barber does not exist")
	}
	if !barber.Active {
		return nil
	}

	var displaced []models.AppointmentRequest

	err = s.repo.InTx(ctx, func(tx domain.Repository) error {
		barber.Active = false
		if err := tx.UpdateBarber(ctx, barber); err != nil {
			return err
		}

		future, err := tx.ListFutureRequestsForBarber(
			ctx, shopID, barberID, s.today(),
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
			displaced = append(displaced, req)
		}

		return nil
	})
	if err != nil {
		return err
	}

	for i := range displaced {
		s.send(ctx, notify.EventCancelledBySystem, displaced[i].CustomerPhone, requestData(&displaced[i]))
	}

	s.record(shopID, adminID, "barber_deactivated", "barber", &barberID, map[string]any{
		"cancelled": len(displaced),
	})

	return nil
}
