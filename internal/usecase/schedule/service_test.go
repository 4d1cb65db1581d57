package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharpcut/booking-api/internal/clock"
	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/models"
	"github.com/sharpcut/booking-api/internal/notify"
)

// Frozen test time: Tuesday 2026-03-10 09:00.
var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type fakeLocker struct {
	acquired int
}

func (l *fakeLocker) Acquire(_ context.Context, _ string, _ time.Duration) (func(), error) {
	l.acquired++
	return func() {}, nil
}

type recordingNotifier struct {
	messages []notify.Message
}

func (n *recordingNotifier) Send(_ context.Context, msg notify.Message) error {
	n.messages = append(n.messages, msg)
	return nil
}

func (n *recordingNotifier) count(event notify.Event) int {
	c := 0
	for _, m := range n.messages {
		if m.Event == event {
			c++
		}
	}
	return c
}

func newTestEnv() (*Service, *fakeRepo, *recordingNotifier) {
	repo := newFakeRepo()

	repo.shops[1] = &models.Barbershop{ID: 1, Name: "Sharp Cut", Slug: "sharp-cut", AdminPhone: "+5511999990000"}
	repo.barbers[1] = &models.Barber{ID: 1, BarbershopID: 1, Name: "Rafa", SlotDurationMin: 30, Active: true}

	for wd := 0; wd < 7; wd++ {
		repo.hours[hoursKey(1, wd)] = &models.WorkingHour{
			ID:           uint(100 + wd),
			BarbershopID: 1,
			BarberID:     1,
			Weekday:      wd,
			IsWorking:    true,
			StartTime:    "09:00",
			EndTime:      "18:00",
		}
	}
	repo.nextID = 1000

	notifier := &recordingNotifier{}
	svc := NewService(repo, &fakeLocker{}, notifier, nil, clock.Fixed{T: testNow}, zerolog.Nop())
	return svc, repo, notifier
}

func pendingRequest(t *testing.T, svc *Service, phone, date, start string) *models.AppointmentRequest {
	t.Helper()
	req, err := svc.CreateRequest(context.Background(), CreateRequestInput{
		BarbershopID:  1,
		BarberID:      1,
		CustomerName:  "João",
		CustomerPhone: phone,
		Date:          date,
		StartTime:     start,
	})
	require.NoError(t, err)
	return req
}

// --------- Requests ---------

func TestCreateRequestHoldsNoSlot(t *testing.T) {
	svc, repo, notifier := newTestEnv()
	ctx := context.Background()

	req := pendingRequest(t, svc, "+5511988880001", "2026-03-12", "10:00")
	assert.Equal(t, string(domain.StatusPending), req.Status)

	slots, err := repo.ListSlots(ctx, 1, 1, "2026-03-12")
	require.NoError(t, err)
	assert.Empty(t, slots, "pending requests never reserve capacity")

	// A second customer can request the exact same window.
	other := pendingRequest(t, svc, "+5511988880002", "2026-03-12", "10:00")
	assert.Equal(t, string(domain.StatusPending), other.Status)

	assert.Equal(t, 2, notifier.count(notify.EventRequestCreated))
	assert.Equal(t, 2, notifier.count(notify.EventAdminNewRequest))
}

func TestCreateRequestOneActivePerPhone(t *testing.T) {
	svc, _, _ := newTestEnv()

	pendingRequest(t, svc, "+5511988880001", "2026-03-12", "10:00")

	_, err := svc.CreateRequest(context.Background(), CreateRequestInput{
		BarbershopID:  1,
		BarberID:      1,
		CustomerName:  "João",
		CustomerPhone: "+5511988880001",
		Date:          "2026-03-13",
		StartTime:     "15:00",
	})
	require.Error(t, err)
	assert.Equal(t, "active_booking_exists", domain.CodeOf(err))
}

func TestCreateRequestRejections(t *testing.T) {
	svc, repo, _ := newTestEnv()
	ctx := context.Background()

	repo.bans = append(repo.bans, models.BannedCustomer{
		BarbershopID: 1, Phone: "+5511977770000", BanType: "permanent",
	})
	repo.barbers[2] = &models.Barber{ID: 2, BarbershopID: 1, Name: "Inativo", SlotDurationMin: 30, Active: false}

	tests := []struct {
		name     string
		in       CreateRequestInput
		wantCode string
	}{
		{
			name: "date in the past",
			in: CreateRequestInput{
				BarbershopID: 1, BarberID: 1,
				CustomerName: "A", CustomerPhone: "+5511988880010",
				Date: "2026-03-09", StartTime: "10:00",
			},
			wantCode: "appointment_in_past",
		},
		{
			name: "same-day time already gone",
			in: CreateRequestInput{
				BarbershopID: 1, BarberID: 1,
				CustomerName: "A", CustomerPhone: "+5511988880010",
				Date: "2026-03-10", StartTime: "09:00",
			},
			wantCode: "appointment_in_past",
		},
		{
			name: "banned phone",
			in: CreateRequestInput{
				BarbershopID: 1, BarberID: 1,
				CustomerName: "A", CustomerPhone: "+5511977770000",
				Date: "2026-03-12", StartTime: "10:00",
			},
			wantCode: "customer_banned",
		},
		{
			name: "inactive barber",
			in: CreateRequestInput{
				BarbershopID: 1, BarberID: 2,
				CustomerName: "A", CustomerPhone: "+5511988880010",
				Date: "2026-03-12", StartTime: "10:00",
			},
			wantCode: "barber_inactive",
		},
		{
			name: "bad phone",
			in: CreateRequestInput{
				BarbershopID: 1, BarberID: 1,
				CustomerName: "A", CustomerPhone: "abc",
				Date: "2026-03-12", StartTime: "10:00",
			},
			wantCode: "invalid_phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRequest(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domain.CodeOf(err))
		})
	}
}

// --------- Approval ---------

func TestApproveFirstWins(t *testing.T) {
	svc, repo, notifier := newTestEnv()
	ctx := context.Background()

	first := pendingRequest(t, svc, "+5511988880001", "2026-03-12", "10:00")
	second := pendingRequest(t, svc, "+5511988880002", "2026-03-12", "10:00")

	approved, err := svc.Approve(ctx, 1, first.ID, 30, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusApproved), approved.Status)
	assert.Equal(t, "10:30", approved.EndTime)

	slots, err := repo.ListSlots(ctx, 1, 1, "2026-03-12")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, first.ID, slots[0].RequestID)

	// The loser of the race surfaces a conflict and stays pending.
	_, err = svc.Approve(ctx, 1, second.ID, 30, nil)
	require.Error(t, err)
	assert.Equal(t, "time_conflict", domain.CodeOf(err))

	cur, err := repo.GetRequest(ctx, 1, second.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), cur.Status)

	assert.Equal(t, 1, notifier.count(notify.EventRequestApproved))
}

func TestReApproveReplacesSlot(t *testing.T) {
	svc, repo, _ := newTestEnv()
	ctx := context.Background()

	req := pendingRequest(t, svc, "+5511988880001", "2026-03-12", "10:00")

	_, err := svc.Approve(ctx, 1, req.ID, 30, nil)
	require.NoError(t, err)

	// Re-approving with a longer duration must not conflict with the
	// request's own slot.
	approved, err := svc.Approve(ctx, 1, req.ID, 60, nil)
	require.NoError(t, err)
	assert.Equal(t, "11:00", approved.EndTime)

	slots, err := repo.ListSlots(ctx, 1, 1, "2026-03-12")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "11:00", slots[0].EndTime)
}

func TestApproveBlockedByOverride(t *testing.T) {
	svc, repo, _ := newTestEnv()
	ctx := context.Background()

	repo.overrides[900] = &models.WorkingHourOverride{
		ID: 900, BarbershopID: 1, BarberID: 1,
		Date: "2026-03-12", StartTime: "10:00", EndTime: "11:00",
	}

	req := pendingRequest(t, svc, "+5511988880001", "2026-03-12", "10:00")

	_, err := svc.Approve(ctx, 1, req.ID, 30, nil)
	require.Error(t, err)
	assert.Equal(t, "time_conflict", domain.CodeOf(err))
}

func TestRejectAndCompleteGuards(t *testing.T) {
	svc, repo, _ := newTestEnv()
	ctx := context.Background()

	req := pendingRequest(t, svc, "+5511988880001", "2026-03-12", "10:00")

	// Completing a pending request is a policy violation.
	_, err := svc.Complete(ctx, 1, req.ID, nil)
	require.Error(t, err)
	assert.Equal(t, "invalid_state", domain.CodeOf(err))

	_, err = svc.Approve(ctx, 1, req.ID, 30, nil)
	require.NoError(t, err)

	// Approved requests cannot be rejected.
	_, err = svc.Reject(ctx, 1, req.ID, nil)
	require.Error(t, err)
	assert.Equal(t, "invalid_state", domain.CodeOf(err))

	done, err := svc.Complete(ctx, 1, req.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusDone), done.Status)

	slots, err := repo.ListSlots(ctx, 1, 1, "2026-03-12")
	require.NoError(t, err)
	assert.Empty(t, slots, "completion releases the slot")
}

// --------- Cancellation and waitlist ---------

func TestCancelApprovedNotifiesMorningWaitlist(t *testing.T) {
	svc, repo, notifier := newTestEnv()
	ctx := context.Background()

	_, err := svc.JoinWaitlist(ctx, 1, "+5511966660001", 1, "2026-03-12", WaitlistMorning)
	require.NoError(t, err)
	_, err = svc.JoinWaitlist(ctx, 1, "+5511966660002", 1, "2026-03-12", WaitlistEvening)
	require.NoError(t, err)

	req := pendingRequest(t, svc, "+5511988880001", "2026-03-12", "10:00")
	_, err = svc.Approve(ctx, 1, req.ID, 30, nil)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, 1, req.ID, domain.ActorCustomer, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	require.NotNil(t, cancelled.CancelledBy)
	assert.Equal(t, "customer", *cancelled.CancelledBy)

	slots, err := repo.ListSlots(ctx, 1, 1, "2026-03-12")
	require.NoError(t, err)
	assert.Empty(t, slots)

	// 10:00 is before the 13:30 midpoint of 09:00-18:00: only the morning
	// entry is notified.
	require.Equal(t, 1, notifier.count(notify.EventSlotAvailable))
	for _, m := range notifier.messages {
		if m.Event == notify.EventSlotAvailable {
			assert.Equal(t, "+5511966660001", m.To)
		}
	}

	entries, err := repo.ListActiveWaitlist(ctx, 1, 1, "2026-03-12")
	require.NoError(t, err)
	require.Len(t, entries, 1, "notified entry left the active pool")
	assert.Equal(t, "+5511966660002", entries[0].CustomerPhone)
}

func TestCancelPendingSkipsWaitlist(t *testing.T) {
	svc, _, notifier := newTestEnv()
	ctx := context.Background()

	_, err := svc.JoinWaitlist(ctx, 1, "+5511966660001", 1, "2026-03-12", WaitlistMorning)
	require.NoError(t, err)

	req := pendingRequest(t, svc, "+5511988880001", "2026-03-12", "10:00")

	_, err = svc.Cancel(ctx, 1, req.ID, domain.ActorCustomer, nil)
	require.NoError(t, err)

	// A pending request held no capacity, so nothing was freed.
	assert.Equal(t, 0, notifier.count(notify.EventSlotAvailable))
}

func TestJoinWaitlistDuplicate(t *testing.T) {
	svc, _, _ := newTestEnv()
	ctx := context.Background()

	_, err := svc.JoinWaitlist(ctx, 1, "+5511966660001", 1, "2026-03-12", WaitlistMorning)
	require.NoError(t, err)

	_, err = svc.JoinWaitlist(ctx, 1, "+5511966660001", 1, "2026-03-12", WaitlistEvening)
	require.Error(t, err)
	assert.Equal(t, "duplicate_waitlist_entry", domain.CodeOf(err))
}

// --------- Admin booking ---------

func TestAdminBookConflict(t *testing.T) {
	svc, repo, _ := newTestEnv()
	ctx := context.Background()

	in := AdminBookInput{
		BarbershopID: 1, BarberID: 1,
		CustomerName: "Pedro", CustomerPhone: "+5511988880001",
		Date: "2026-03-12", StartTime: "10:00", DurationMinutes: 60,
	}

	booked, err := svc.AdminBook(ctx, in, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusApproved), booked.Status)

	slots, err := repo.ListSlots(ctx, 1, 1, "2026-03-12")
	require.NoError(t, err)
	require.Len(t, slots, 1)

	// Partial overlap with the existing hour is refused.
	in.CustomerPhone = "+5511988880002"
	in.StartTime = "10:30"
	in.DurationMinutes = 30
	_, err = svc.AdminBook(ctx, in, nil)
	require.Error(t, err)
	assert.Equal(t, "time_conflict", domain.CodeOf(err))
}

// --------- Overrides ---------

func TestOverrideCascadeCancels(t *testing.T) {
	svc, repo, notifier := newTestEnv()
	ctx := context.Background()

	morning, err := svc.AdminBook(ctx, AdminBookInput{
		BarbershopID: 1, BarberID: 1,
		CustomerName: "Pedro", CustomerPhone: "+5511988880001",
		Date: "2026-03-12", StartTime: "10:00", DurationMinutes: 30,
	}, nil)
	require.NoError(t, err)

	afternoon, err := svc.AdminBook(ctx, AdminBookInput{
		BarbershopID: 1, BarberID: 1,
		CustomerName: "Ana", CustomerPhone: "+5511988880002",
		Date: "2026-03-12", StartTime: "14:00", DurationMinutes: 30,
	}, nil)
	require.NoError(t, err)

	override, err := svc.CreateOverride(ctx, CreateOverrideInput{
		BarbershopID: 1, BarberID: 1,
		Date: "2026-03-12", StartTime: "09:00", EndTime: "12:00",
		Reason: "médico",
	}, nil)
	require.NoError(t, err)
	assert.NotZero(t, override.ID)

	// The 10:00 appointment fell inside the closure and was cancelled by the
	// system; the 14:00 one is untouched.
	displaced, err := repo.GetRequest(ctx, 1, morning.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), displaced.Status)
	require.NotNil(t, displaced.CancelledBy)
	assert.Equal(t, "system", *displaced.CancelledBy)

	kept, err := repo.GetRequest(ctx, 1, afternoon.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusApproved), kept.Status)

	slots, err := repo.ListSlots(ctx, 1, 1, "2026-03-12")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, afternoon.ID, slots[0].RequestID)

	assert.Equal(t, 1, notifier.count(notify.EventCancelledBySystem))
}

// --------- Subscriptions ---------

func weeklySubscription(phone string) CreateSubscriptionInput {
	return CreateSubscriptionInput{
		BarbershopID: 1, BarberID: 1,
		CustomerName: "Carlos", CustomerPhone: phone,
		RecurrenceType: "weekly", DayOfWeek: 1, // Mondays
		StartTime: "10:00", DurationMinutes: 30,
		StartDate: "2026-03-16",
	}
}

func TestCreateSubscriptionMaterializes(t *testing.T) {
	svc, repo, _ := newTestEnv()
	ctx := context.Background()

	sub, created, err := svc.CreateSubscription(ctx, weeklySubscription("+5511955550001"), nil)
	require.NoError(t, err)
	assert.Equal(t, 100, created)

	future, err := repo.ListFutureRequestsForSubscription(
		ctx, 1, sub.ID, "2026-03-10",
		[]domain.Status{domain.StatusApproved},
	)
	require.NoError(t, err)
	require.Len(t, future, 100)
	assert.Equal(t, "2026-03-16", future[0].Date)
	assert.Equal(t, "2026-03-23", future[1].Date)
}

func TestSubscriptionMaterializationSkipsConflicts(t *testing.T) {
	svc, repo, _ := newTestEnv()
	ctx := context.Background()

	// The first occurrence date is already taken by a manual booking.
	_, err := svc.AdminBook(ctx, AdminBookInput{
		BarbershopID: 1, BarberID: 1,
		CustomerName: "Pedro", CustomerPhone: "+5511988880001",
		Date: "2026-03-16", StartTime: "10:00", DurationMinutes: 30,
	}, nil)
	require.NoError(t, err)

	sub, created, err := svc.CreateSubscription(ctx, weeklySubscription("+5511955550001"), nil)
	require.NoError(t, err)
	assert.Equal(t, 99, created, "contended occurrence skipped, not an error")

	future, err := repo.ListFutureRequestsForSubscription(
		ctx, 1, sub.ID, "2026-03-10",
		[]domain.Status{domain.StatusApproved},
	)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-23", future[0].Date, "first occurrence went to the next free date")
}

func TestTopUpSkipsExistingOccurrences(t *testing.T) {
	svc, _, _ := newTestEnv()
	ctx := context.Background()

	sub, _, err := svc.CreateSubscription(ctx, weeklySubscription("+5511955550001"), nil)
	require.NoError(t, err)

	created, err := svc.TopUpSubscription(ctx, 1, sub.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, created, "everything in the top-up window is already materialized")
}

func TestCancelSubscriptionNearestOccurrenceOnly(t *testing.T) {
	svc, repo, _ := newTestEnv()
	ctx := context.Background()

	sub, _, err := svc.CreateSubscription(ctx, weeklySubscription("+5511955550001"), nil)
	require.NoError(t, err)

	future, err := repo.ListFutureRequestsForSubscription(
		ctx, 1, sub.ID, "2026-03-10",
		[]domain.Status{domain.StatusPending, domain.StatusApproved},
	)
	require.NoError(t, err)
	require.True(t, len(future) >= 2)

	// Skipping ahead to the second occurrence is refused.
	_, err = svc.Cancel(ctx, 1, future[1].ID, domain.ActorCustomer, nil)
	require.Error(t, err)
	assert.Equal(t, "not_nearest_occurrence", domain.CodeOf(err))

	// The nearest one cancels normally.
	cancelled, err := svc.Cancel(ctx, 1, future[0].ID, domain.ActorCustomer, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)

	// With the first gone, the former second is now the nearest.
	_, err = svc.Cancel(ctx, 1, future[1].ID, domain.ActorCustomer, nil)
	require.NoError(t, err)
}

func TestDeactivateSubscriptionCancelsFuture(t *testing.T) {
	svc, repo, _ := newTestEnv()
	ctx := context.Background()

	sub, _, err := svc.CreateSubscription(ctx, weeklySubscription("+5511955550001"), nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateSubscription(ctx, 1, sub.ID, nil))

	stored, err := repo.GetSubscription(ctx, 1, sub.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	remaining, err := repo.ListFutureRequestsForSubscription(
		ctx, 1, sub.ID, "2026-03-10",
		[]domain.Status{domain.StatusPending, domain.StatusApproved},
	)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	slots, err := repo.ListSlots(ctx, 1, 1, "2026-03-16")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

// --------- Barber deactivation ---------

func TestDeactivateBarberCancelsFuture(t *testing.T) {
	svc, repo, notifier := newTestEnv()
	ctx := context.Background()

	booked, err := svc.AdminBook(ctx, AdminBookInput{
		BarbershopID: 1, BarberID: 1,
		CustomerName: "Pedro", CustomerPhone: "+5511988880001",
		Date: "2026-03-12", StartTime: "10:00", DurationMinutes: 30,
	}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateBarber(ctx, 1, 1, nil))

	barber, err := repo.GetBarber(ctx, 1, 1)
	require.NoError(t, err)
	assert.False(t, barber.Active)

	req, err := repo.GetRequest(ctx, 1, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), req.Status)

	slots, err := repo.ListSlots(ctx, 1, 1, "2026-03-12")
	require.NoError(t, err)
	assert.Empty(t, slots)

	assert.Equal(t, 1, notifier.count(notify.EventCancelledBySystem))
}

// --------- Availability views ---------

func TestPendingVisibleOnlyInTimeButtons(t *testing.T) {
	svc, _, _ := newTestEnv()
	ctx := context.Background()

	pendingRequest(t, svc, "+5511988880001", "2026-03-12", "10:00")

	// Fixed-grid view: pending holds nothing.
	slots, err := svc.AvailableSlots(ctx, 1, 1, "2026-03-12")
	require.NoError(t, err)

	found := false
	for _, s := range slots {
		if s.Start == "10:00" {
			found = true
		}
	}
	assert.True(t, found, "pending request must not block the grid view")

	// Time-button view: the synthetic 30-minute hold disables 10:00.
	buttons, err := svc.TimeButtons(ctx, 1, 1, "2026-03-12", 30, true)
	require.NoError(t, err)

	for _, b := range buttons {
		if b.Time == "10:00" {
			assert.True(t, b.Disabled)
		}
	}
}

func TestAvailabilityClosedDay(t *testing.T) {
	svc, repo, _ := newTestEnv()
	ctx := context.Background()

	// Thursday 2026-03-12 switched off.
	repo.hours[hoursKey(1, 4)].IsWorking = false

	slots, err := svc.AvailableSlots(ctx, 1, 1, "2026-03-12")
	require.NoError(t, err)
	assert.Empty(t, slots)

	buttons, err := svc.TimeButtons(ctx, 1, 1, "2026-03-12", 30, true)
	require.NoError(t, err)
	assert.Empty(t, buttons)
}

func TestAvailabilityMissingHoursRowIsClosed(t *testing.T) {
	svc, repo, _ := newTestEnv()
	ctx := context.Background()

	// No row at all for Thursday, as opposed to an is_working=false one.
	delete(repo.hours, hoursKey(1, 4))

	slots, err := svc.AvailableSlots(ctx, 1, 1, "2026-03-12")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

// hoursFailRepo simulates the store going away mid-read.
type hoursFailRepo struct {
	*fakeRepo
	err error
}

func (r *hoursFailRepo) GetWorkingHour(_ context.Context, _, _ uint, _ int) (*models.WorkingHour, error) {
	return nil, r.err
}

func TestAvailabilityStoreErrorSurfaces(t *testing.T) {
	_, repo, _ := newTestEnv()
	broken := &hoursFailRepo{fakeRepo: repo, err: errors.New("connection refused")}
	svc := NewService(broken, &fakeLocker{}, &recordingNotifier{}, nil, clock.Fixed{T: testNow}, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.AvailableSlots(ctx, 1, 1, "2026-03-12")
	require.Error(t, err)

	_, err = svc.TimeButtons(ctx, 1, 1, "2026-03-12", 30, true)
	require.Error(t, err)
}

func TestCancelApprovedNeedsNotice(t *testing.T) {
	svc, repo, _ := newTestEnv()
	ctx := context.Background()

	// Approved for today 09:30, thirty minutes ahead of the frozen clock.
	repo.requests[500] = &models.AppointmentRequest{
		ID: 500, BarbershopID: 1, BarberID: 1,
		CustomerName: "João", CustomerPhone: "+5511988880001",
		Date: "2026-03-10", StartTime: "09:30", EndTime: "10:00",
		Status: string(domain.StatusApproved),
	}

	_, err := svc.Cancel(ctx, 1, 500, domain.ActorCustomer, nil)
	require.Error(t, err)
	assert.Equal(t, "cancellation_too_close", domain.CodeOf(err))
	assert.True(t, domain.IsKind(err, domain.KindPolicy))

	// Admins are not held to the notice window.
	cancelled, err := svc.Cancel(ctx, 1, 500, domain.ActorAdmin, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)

	// Same day but outside the window cancels normally.
	repo.requests[501] = &models.AppointmentRequest{
		ID: 501, BarbershopID: 1, BarberID: 1,
		CustomerName: "João", CustomerPhone: "+5511988880002",
		Date: "2026-03-10", StartTime: "11:00", EndTime: "11:30",
		Status: string(domain.StatusApproved),
	}
	_, err = svc.Cancel(ctx, 1, 501, domain.ActorCustomer, nil)
	require.NoError(t, err)
}
