package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/sharpcut/booking-api/internal/clock"
	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/notify"
	"github.com/sharpcut/booking-api/internal/timeutil"
	schedule "github.com/sharpcut/booking-api/internal/usecase/schedule"
)

// Scheduler runs the recurring maintenance work: topping up subscription
// occurrences and sending day-before reminders. Jobs are best-effort; a
// failure for one shop never blocks the others.
type Scheduler struct {
	cron     *cron.Cron
	repo     domain.Repository
	svc      *schedule.Service
	notifier notify.Notifier
	clock    clock.Clock
	log      zerolog.Logger
}

func New(repo domain.Repository, svc *schedule.Service, notifier notify.Notifier, clk clock.Clock, loc *time.Location, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		repo:     repo,
		svc:      svc,
		notifier: notifier,
		clock:    clk,
		log:      log.With().Str("component", "jobs").Logger(),
	}
}

// Start registers the schedules and launches the cron loop. Subscription
// top-up runs nightly at 03:00, reminders go out at 18:00 for the next day.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 3 * * *", s.TopUpSubscriptions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 18 * * *", s.SendReminders); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Msg("job scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// TopUpSubscriptions walks every shop's active subscriptions and extends
// their materialized occurrences.
func (s *Scheduler) TopUpSubscriptions() {
	ctx := context.Background()

	shops, err := s.repo.ListBarbershops(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("subscription top-up: shop listing failed")
		return
	}

	for _, shop := range shops {
		subs, err := s.repo.ListActiveSubscriptions(ctx, shop.ID)
		if err != nil {
			s.log.Error().Err(err).Uint("shop_id", shop.ID).Msg("subscription listing failed")
			continue
		}

		for _, sub := range subs {
			created, err := s.svc.TopUpSubscription(ctx, shop.ID, sub.ID, nil)
			if err != nil {
				s.log.Error().Err(err).
					Uint("subscription_id", sub.ID).
					Msg("subscription top-up failed")
				continue
			}
			if created > 0 {
				s.log.Info().
					Uint("subscription_id", sub.ID).
					Int("created", created).
					Msg("subscription topped up")
			}
		}
	}
}

// SendReminders notifies every customer with an approved appointment
// tomorrow.
func (s *Scheduler) SendReminders() {
	ctx := context.Background()

	tomorrow := s.clock.Now().AddDate(0, 0, 1).Format(timeutil.DateLayout)

	shops, err := s.repo.ListBarbershops(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("reminders: shop listing failed")
		return
	}

	sent := 0
	for _, shop := range shops {
		reqs, err := s.repo.ListApprovedForDate(ctx, shop.ID, tomorrow)
		if err != nil {
			s.log.Error().Err(err).Uint("shop_id", shop.ID).Msg("reminder lookup failed")
			continue
		}

		for i := range reqs {
			req := &reqs[i]
			err := s.notifier.Send(ctx, notify.Message{
				Event: notify.EventReminder,
				To:    req.CustomerPhone,
				Data: map[string]string{
					"Name": req.CustomerName,
					"Date": req.Date,
					"Time": req.StartTime,
				},
			})
			if err != nil {
				s.log.Error().Err(err).Uint("request_id", req.ID).Msg("reminder send failed")
				continue
			}
			sent++
		}
	}

	if sent > 0 {
		s.log.Info().Str("date", tomorrow).Int("sent", sent).Msg("reminders sent")
	}
}
