package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo is an in-memory Repository for exercising the engine without a
// database. InTx runs the callback against the same store; transactional
// rollback is not simulated.
type fakeRepo struct {
	nextID uint

	shops     map[uint]*models.Barbershop
	barbers   map[uint]*models.Barber
	hours     map[string]*models.WorkingHour
	overrides map[uint]*models.WorkingHourOverride
	slots     map[uint]*models.AppointmentSlot
	requests  map[uint]*models.AppointmentRequest
	bans      []models.BannedCustomer
	subs      map[uint]*models.Subscription
	waitlist  map[uint]*models.AppointmentWaitlist
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops:     make(map[uint]*models.Barbershop),
		barbers:   make(map[uint]*models.Barber),
		hours:     make(map[string]*models.WorkingHour),
		overrides: make(map[uint]*models.WorkingHourOverride),
		slots:     make(map[uint]*models.AppointmentSlot),
		requests:  make(map[uint]*models.AppointmentRequest),
		subs:      make(map[uint]*models.Subscription),
		waitlist:  make(map[uint]*models.AppointmentWaitlist),
	}
}

func (f *fakeRepo) id() uint {
	f.nextID++
	return f.nextID
}

func hoursKey(barberID uint, weekday int) string {
	return fmt.Sprintf("%d:%d", barberID, weekday)
}

func (f *fakeRepo) InTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	return fn(f)
}

// -------- Barbershop --------

func (f *fakeRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	s, ok := f.shops[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) GetBarbershopBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	for _, s := range f.shops {
		if s.Slug == slug {
			cp := *s
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) ListBarbershops(_ context.Context) ([]models.Barbershop, error) {
	var out []models.Barbershop
	for _, s := range f.shops {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// -------- Barber --------

func (f *fakeRepo) GetBarber(_ context.Context, shopID, barberID uint) (*models.Barber, error) {
	b, ok := f.barbers[barberID]
	if !ok || b.BarbershopID != shopID {
		return nil, errNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) UpdateBarber(_ context.Context, b *models.Barber) error {
	cp := *b
	f.barbers[b.ID] = &cp
	return nil
}

// -------- Working hours --------

func (f *fakeRepo) GetWorkingHour(_ context.Context, shopID, barberID uint, weekday int) (*models.WorkingHour, error) {
	wh, ok := f.hours[hoursKey(barberID, weekday)]
	if !ok || wh.BarbershopID != shopID {
		// Missing weekday rows are not an error, matching the store contract.
		return nil, nil
	}
	cp := *wh
	return &cp, nil
}

func (f *fakeRepo) ListWorkingHours(_ context.Context, shopID, barberID uint) ([]models.WorkingHour, error) {
	var out []models.WorkingHour
	for _, wh := range f.hours {
		if wh.BarbershopID == shopID && wh.BarberID == barberID {
			out = append(out, *wh)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

func (f *fakeRepo) UpsertWorkingHour(_ context.Context, wh *models.WorkingHour) error {
	cp := *wh
	if cp.ID == 0 {
		cp.ID = f.id()
	}
	f.hours[hoursKey(cp.BarberID, cp.Weekday)] = &cp
	return nil
}

// -------- Overrides --------

func (f *fakeRepo) ListOverrides(_ context.Context, shopID, barberID uint, date string) ([]models.WorkingHourOverride, error) {
	var out []models.WorkingHourOverride
	for _, o := range f.overrides {
		if o.BarbershopID == shopID && o.BarberID == barberID && o.Date == date {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (f *fakeRepo) CreateOverride(_ context.Context, o *models.WorkingHourOverride) error {
	o.ID = f.id()
	cp := *o
	f.overrides[o.ID] = &cp
	return nil
}

func (f *fakeRepo) GetOverride(_ context.Context, shopID, overrideID uint) (*models.WorkingHourOverride, error) {
	o, ok := f.overrides[overrideID]
	if !ok || o.BarbershopID != shopID {
		return nil, errNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeRepo) DeleteOverride(_ context.Context, shopID, overrideID uint) error {
	if o, ok := f.overrides[overrideID]; ok && o.BarbershopID == shopID {
		delete(f.overrides, overrideID)
	}
	return nil
}

// -------- Slots --------

func (f *fakeRepo) ListSlots(_ context.Context, shopID, barberID uint, date string) ([]models.AppointmentSlot, error) {
	var out []models.AppointmentSlot
	for _, s := range f.slots {
		if s.BarbershopID == shopID && s.BarberID == barberID && s.Date == date {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (f *fakeRepo) ListSlotsLocked(ctx context.Context, shopID, barberID uint, date string) ([]models.AppointmentSlot, error) {
	return f.ListSlots(ctx, shopID, barberID, date)
}

func (f *fakeRepo) CreateSlot(_ context.Context, s *models.AppointmentSlot) error {
	for _, existing := range f.slots {
		if existing.BarberID == s.BarberID && existing.Date == s.Date && existing.StartTime == s.StartTime {
			return domain.Conflict("time_conflict", "slot window already reserved")
		}
	}
	s.ID = f.id()
	cp := *s
	f.slots[s.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteSlotByRequest(_ context.Context, shopID, requestID uint) error {
	for id, s := range f.slots {
		if s.BarbershopID == shopID && s.RequestID == requestID {
			delete(f.slots, id)
		}
	}
	return nil
}

// -------- Requests --------

func (f *fakeRepo) GetRequest(_ context.Context, shopID, requestID uint) (*models.AppointmentRequest, error) {
	r, ok := f.requests[requestID]
	if !ok || r.BarbershopID != shopID {
		return nil, errNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) CreateRequest(_ context.Context, r *models.AppointmentRequest) error {
	r.ID = f.id()
	cp := *r
	f.requests[r.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateRequest(_ context.Context, r *models.AppointmentRequest) error {
	cp := *r
	f.requests[r.ID] = &cp
	return nil
}

func statusIn(status string, statuses []domain.Status) bool {
	for _, s := range statuses {
		if status == string(s) {
			return true
		}
	}
	return false
}

func sortRequests(out []models.AppointmentRequest) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
}

func (f *fakeRepo) ListRequestsByStatus(_ context.Context, shopID, barberID uint, date string, statuses []domain.Status) ([]models.AppointmentRequest, error) {
	var out []models.AppointmentRequest
	for _, r := range f.requests {
		if r.BarbershopID == shopID && r.BarberID == barberID && r.Date == date && statusIn(r.Status, statuses) {
			out = append(out, *r)
		}
	}
	sortRequests(out)
	return out, nil
}

func (f *fakeRepo) HasActiveRequestForPhone(_ context.Context, shopID uint, phone, fromDate string) (bool, error) {
	for _, r := range f.requests {
		if r.BarbershopID == shopID && r.CustomerPhone == phone && r.Date >= fromDate &&
			(r.Status == string(domain.StatusPending) || r.Status == string(domain.StatusApproved)) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ListFutureRequestsForBarber(_ context.Context, shopID, barberID uint, fromDate string, statuses []domain.Status) ([]models.AppointmentRequest, error) {
	var out []models.AppointmentRequest
	for _, r := range f.requests {
		if r.BarbershopID == shopID && r.BarberID == barberID && r.Date >= fromDate && statusIn(r.Status, statuses) {
			out = append(out, *r)
		}
	}
	sortRequests(out)
	return out, nil
}

func (f *fakeRepo) ListFutureRequestsForSubscription(_ context.Context, shopID, subscriptionID uint, fromDate string, statuses []domain.Status) ([]models.AppointmentRequest, error) {
	var out []models.AppointmentRequest
	for _, r := range f.requests {
		if r.BarbershopID == shopID && r.SubscriptionID != nil && *r.SubscriptionID == subscriptionID &&
			r.Date >= fromDate && statusIn(r.Status, statuses) {
			out = append(out, *r)
		}
	}
	sortRequests(out)
	return out, nil
}

func (f *fakeRepo) ListApprovedForDate(_ context.Context, shopID uint, date string) ([]models.AppointmentRequest, error) {
	var out []models.AppointmentRequest
	for _, r := range f.requests {
		if r.BarbershopID == shopID && r.Date == date && r.Status == string(domain.StatusApproved) {
			out = append(out, *r)
		}
	}
	sortRequests(out)
	return out, nil
}

// -------- Bans --------

func (f *fakeRepo) IsBanned(_ context.Context, shopID uint, phone string, now time.Time) (bool, error) {
	for _, b := range f.bans {
		if b.BarbershopID != shopID || b.Phone != phone {
			continue
		}
		if b.BanType == "permanent" || b.ExpiresAt == nil || b.ExpiresAt.After(now) {
			return true, nil
		}
	}
	return false, nil
}

// -------- Subscriptions --------

func (f *fakeRepo) CreateSubscription(_ context.Context, s *models.Subscription) error {
	s.ID = f.id()
	cp := *s
	f.subs[s.ID] = &cp
	return nil
}

func (f *fakeRepo) GetSubscription(_ context.Context, shopID, subscriptionID uint) (*models.Subscription, error) {
	s, ok := f.subs[subscriptionID]
	if !ok || s.BarbershopID != shopID {
		return nil, errNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) UpdateSubscription(_ context.Context, s *models.Subscription) error {
	cp := *s
	f.subs[s.ID] = &cp
	return nil
}

func (f *fakeRepo) ListActiveSubscriptions(_ context.Context, shopID uint) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, s := range f.subs {
		if s.BarbershopID == shopID && s.IsActive {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// -------- Waitlist --------

func (f *fakeRepo) CreateWaitlistEntry(_ context.Context, e *models.AppointmentWaitlist) error {
	for _, existing := range f.waitlist {
		if existing.CustomerPhone == e.CustomerPhone && existing.BarberID == e.BarberID && existing.PreferredDate == e.PreferredDate {
			return domain.Conflict("duplicate_waitlist_entry", "already on the waitlist for this barber and date")
		}
	}
	e.ID = f.id()
	cp := *e
	f.waitlist[e.ID] = &cp
	return nil
}

func (f *fakeRepo) ListActiveWaitlist(_ context.Context, shopID, barberID uint, date string) ([]models.AppointmentWaitlist, error) {
	var out []models.AppointmentWaitlist
	for _, e := range f.waitlist {
		if e.BarbershopID == shopID && e.BarberID == barberID && e.PreferredDate == date && e.Status == "active" {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) UpdateWaitlistEntry(_ context.Context, e *models.AppointmentWaitlist) error {
	cp := *e
	f.waitlist[e.ID] = &cp
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)
