package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharpcut/booking-api/internal/audit"
	"github.com/sharpcut/booking-api/internal/clock"
	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/models"
	"github.com/sharpcut/booking-api/internal/notify"
	"github.com/sharpcut/booking-api/internal/timeutil"
)

// Locker serializes booking mutations per (barber, date) before the
// transaction runs. A contended lock surfaces as a conflict error.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

const lockTTL = 10 * time.Second

// Service is the appointment scheduling engine: availability, the request
// lifecycle, overrides, subscriptions and the waitlist all live behind it.
type Service struct {
	repo     domain.Repository
	locker   Locker
	notifier notify.Notifier
	audit    *audit.Dispatcher
	clock    clock.Clock
	log      zerolog.Logger
}

func NewService(
	repo domain.Repository,
	locker Locker,
	notifier notify.Notifier,
	auditor *audit.Dispatcher,
	clk clock.Clock,
	log zerolog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		audit:    auditor,
		clock:    clk,
		log:      log,
	}
}

// ----------------------------------------------------------------------
// shared helpers
// ----------------------------------------------------------------------

func lockKey(shopID, barberID uint, date string) string {
	return fmt.Sprintf("%d:%d:%s", shopID, barberID, date)
}

func (s *Service) today() string {
	return s.clock.Now().Format(timeutil.DateLayout)
}

func (s *Service) nowMinutes() int {
	now := s.clock.Now()
	return now.Hour()*60 + now.Minute()
}

func parseDate(date string) (time.Time, error) {
	t, err := time.Parse(timeutil.DateLayout, date)
	if err != nil {
		return time.Time{}, domain.Validation("invalid_date", "date must be YYYY-MM-DD")
	}
	return t, nil
}

// startInPast reports whether date+start is not after "now" on the shop
// clock.
func (s *Service) startInPast(date string, startMinutes int) bool {
	now := s.clock.Now()
	today := now.Format(timeutil.DateLayout)

	if date != today {
		return date < today
	}
	return startMinutes <= now.Hour()*60+now.Minute()
}

// resolveDayHours turns the weekly WorkingHour row into the open window for
// one date. Overrides are returned separately; they block ranges on top of
// the base hours rather than replacing them.
func (s *Service) resolveDayHours(
	ctx context.Context,
	repo domain.Repository,
	shopID, barberID uint,
	date string,
) (domain.DayHours, []models.WorkingHourOverride, error) {

	day, err := parseDate(date)
	if err != nil {
		return domain.DayHours{}, nil, err
	}

	wh, err := repo.GetWorkingHour(ctx, shopID, barberID, int(day.Weekday()))
	if err != nil {
		return domain.DayHours{}, nil, err
	}
	if wh == nil || !wh.IsWorking {
		return domain.DayHours{}, nil, nil
	}

	start, err := timeutil.ParseClock(wh.StartTime)
	if err != nil {
		return domain.DayHours{}, nil, err
	}
	end, err := timeutil.ParseClock(wh.EndTime)
	if err != nil {
		return domain.DayHours{}, nil, err
	}
	if start >= end {
		return domain.DayHours{}, nil, nil
	}

	overrides, err := repo.ListOverrides(ctx, shopID, barberID, date)
	if err != nil {
		return domain.DayHours{}, nil, err
	}

	return domain.DayHours{Open: true, Start: start, End: end}, overrides, nil
}

// occupiedForDate builds the occupied view for one barber/date. When
// includePending is set, slotless pending requests contribute their
// synthetic hold; the approval path excludes them because pending never
// reserves capacity.
func (s *Service) occupiedForDate(
	ctx context.Context,
	repo domain.Repository,
	shopID, barberID uint,
	date string,
	overrides []models.WorkingHourOverride,
	includePending bool,
	locked bool,
) ([]domain.Range, error) {

	var (
		slots []models.AppointmentSlot
		err   error
	)
	if locked {
		slots, err = repo.ListSlotsLocked(ctx, shopID, barberID, date)
	} else {
		slots, err = repo.ListSlots(ctx, shopID, barberID, date)
	}
	if err != nil {
		return nil, err
	}

	var pending []models.AppointmentRequest
	if includePending {
		pending, err = repo.ListRequestsByStatus(
			ctx, shopID, barberID, date,
			[]domain.Status{domain.StatusPending},
		)
		if err != nil {
			return nil, err
		}
	}

	return domain.BuildOccupied(slots, pending, overrides)
}

// send is the fire-and-forget notification path: failures are logged and
// swallowed so they never affect the transition that produced them.
func (s *Service) send(ctx context.Context, event notify.Event, to string, data map[string]string) {
	if s.notifier == nil || to == "" {
		return
	}
	if err := s.notifier.Send(ctx, notify.Message{Event: event, To: to, Data: data}); err != nil {
		s.log.Error().Err(err).Str("event", string(event)).Msg("notification failed")
	}
}

func (s *Service) record(shopID uint, userID *uint, action, entity string, entityID *uint, meta any) {
	if s.audit == nil {
		return
	}
	s.audit.Dispatch(audit.Event{
		BarbershopID: shopID,
		UserID:       userID,
		Action:       action,
		Entity:       entity,
		EntityID:     entityID,
		Metadata:     meta,
	})
}

func requestData(r *models.AppointmentRequest) map[string]string {
	return map[string]string{
		"Name":  r.CustomerName,
		"Phone": r.CustomerPhone,
		"Date":  r.Date,
		"Time":  r.StartTime,
	}
}
