package schedule

import (
	"context"
	"time"

	"github.com/sharpcut/booking-api/internal/models"
)

// Repository is the persistence contract for the scheduling engine. Every
// method is tenant-scoped by barbershop id; the store must supply atomic
// multi-row transactions via InTx and the uniqueness constraints declared on
// the models.
type Repository interface {
	// InTx runs fn against a transactional view of the repository. All
	// multi-step mutations (approve, cancel, admin booking, override
	// cascade) go through here so partial application never survives.
	InTx(ctx context.Context, fn func(tx Repository) error) error

	// -------- Barbershop --------
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
	ListBarbershops(ctx context.Context) ([]models.Barbershop, error)

	// -------- Barber --------
	GetBarber(ctx context.Context, shopID, barberID uint) (*models.Barber, error)
	UpdateBarber(ctx context.Context, b *models.Barber) error

	// -------- Working hours --------

	// GetWorkingHour returns (nil, nil) when no row exists for the weekday;
	// a non-nil error always means the store itself failed.
	GetWorkingHour(ctx context.Context, shopID, barberID uint, weekday int) (*models.WorkingHour, error)
	ListWorkingHours(ctx context.Context, shopID, barberID uint) ([]models.WorkingHour, error)
	UpsertWorkingHour(ctx context.Context, wh *models.WorkingHour) error

	// -------- Overrides --------
	ListOverrides(ctx context.Context, shopID, barberID uint, date string) ([]models.WorkingHourOverride, error)
	CreateOverride(ctx context.Context, o *models.WorkingHourOverride) error
	GetOverride(ctx context.Context, shopID, overrideID uint) (*models.WorkingHourOverride, error)
	DeleteOverride(ctx context.Context, shopID, overrideID uint) error

	// -------- Slots (reservations) --------
	ListSlots(ctx context.Context, shopID, barberID uint, date string) ([]models.AppointmentSlot, error)
	// ListSlotsLocked takes row locks; only meaningful inside InTx.
	ListSlotsLocked(ctx context.Context, shopID, barberID uint, date string) ([]models.AppointmentSlot, error)
	CreateSlot(ctx context.Context, s *models.AppointmentSlot) error
	DeleteSlotByRequest(ctx context.Context, shopID, requestID uint) error

	// -------- Requests --------
	GetRequest(ctx context.Context, shopID, requestID uint) (*models.AppointmentRequest, error)
	CreateRequest(ctx context.Context, r *models.AppointmentRequest) error
	UpdateRequest(ctx context.Context, r *models.AppointmentRequest) error
	ListRequestsByStatus(ctx context.Context, shopID, barberID uint, date string, statuses []Status) ([]models.AppointmentRequest, error)
	HasActiveRequestForPhone(ctx context.Context, shopID uint, phone, fromDate string) (bool, error)
	ListFutureRequestsForBarber(ctx context.Context, shopID, barberID uint, fromDate string, statuses []Status) ([]models.AppointmentRequest, error)
	ListFutureRequestsForSubscription(ctx context.Context, shopID, subscriptionID uint, fromDate string, statuses []Status) ([]models.AppointmentRequest, error)
	ListApprovedForDate(ctx context.Context, shopID uint, date string) ([]models.AppointmentRequest, error)

	// -------- Bans --------
	IsBanned(ctx context.Context, shopID uint, phone string, now time.Time) (bool, error)

	// -------- Subscriptions --------
	CreateSubscription(ctx context.Context, s *models.Subscription) error
	GetSubscription(ctx context.Context, shopID, subscriptionID uint) (*models.Subscription, error)
	UpdateSubscription(ctx context.Context, s *models.Subscription) error
	ListActiveSubscriptions(ctx context.Context, shopID uint) ([]models.Subscription, error)

	// -------- Waitlist --------
	CreateWaitlistEntry(ctx context.Context, e *models.AppointmentWaitlist) error
	ListActiveWaitlist(ctx context.Context, shopID, barberID uint, date string) ([]models.AppointmentWaitlist, error)
	UpdateWaitlistEntry(ctx context.Context, e *models.AppointmentWaitlist) error
}
