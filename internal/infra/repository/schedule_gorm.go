package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/sharpcut/booking-api/internal/domain/schedule"
	"github.com/sharpcut/booking-api/internal/models"
)

// ScheduleGormRepository is the postgres-backed persistence layer for the
// scheduling engine. Every query carries the barbershop id predicate; the
// unique indexes declared on the models back up the in-transaction overlap
// checks.
type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// InTx re-binds the repository to a transaction so every multi-step
// mutation commits or rolls back as a unit.
func (r *ScheduleGormRepository) InTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ScheduleGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ScheduleGormRepository) GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ScheduleGormRepository) ListBarbershops(ctx context.Context) ([]models.Barbershop, error) {
	var shops []models.Barbershop
	if err := r.db.WithContext(ctx).Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBarber(ctx context.Context, shopID, barberID uint) (*models.Barber, error) {
	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", barberID, shopID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *ScheduleGormRepository) UpdateBarber(ctx context.Context, b *models.Barber) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *ScheduleGormRepository) GetWorkingHour(ctx context.Context, shopID, barberID uint, weekday int) (*models.WorkingHour, error) {
	var wh models.WorkingHour
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND barber_id = ? AND weekday = ?", shopID, barberID, weekday).
		First(&wh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No row means the day was never configured, which reads as closed;
		// only real store failures surface as errors.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *ScheduleGormRepository) ListWorkingHours(ctx context.Context, shopID, barberID uint) ([]models.WorkingHour, error) {
	var hours []models.WorkingHour
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND barber_id = ?", shopID, barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *ScheduleGormRepository) UpsertWorkingHour(ctx context.Context, wh *models.WorkingHour) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "barber_id"}, {Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_working", "start_time", "end_time", "updated_at",
			}),
		}).
		Create(wh).Error
}

// --------------------------------------------------
// Overrides
// --------------------------------------------------

func (r *ScheduleGormRepository) ListOverrides(ctx context.Context, shopID, barberID uint, date string) ([]models.WorkingHourOverride, error) {
	var overrides []models.WorkingHourOverride
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND barber_id = ? AND date = ?", shopID, barberID, date).
		Order("start_time ASC").
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *ScheduleGormRepository) CreateOverride(ctx context.Context, o *models.WorkingHourOverride) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *ScheduleGormRepository) GetOverride(ctx context.Context, shopID, overrideID uint) (*models.WorkingHourOverride, error) {
	var o models.WorkingHourOverride
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", overrideID, shopID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ScheduleGormRepository) DeleteOverride(ctx context.Context, shopID, overrideID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", overrideID, shopID).
		Delete(&models.WorkingHourOverride{}).Error
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *ScheduleGormRepository) ListSlots(ctx context.Context, shopID, barberID uint, date string) ([]models.AppointmentSlot, error) {
	return r.listSlots(ctx, shopID, barberID, date, false)
}

func (r *ScheduleGormRepository) ListSlotsLocked(ctx context.Context, shopID, barberID uint, date string) ([]models.AppointmentSlot, error) {
	return r.listSlots(ctx, shopID, barberID, date, true)
}

func (r *ScheduleGormRepository) listSlots(ctx context.Context, shopID, barberID uint, date string, locked bool) ([]models.AppointmentSlot, error) {
	q := r.db.WithContext(ctx)
	if locked {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var slots []models.AppointmentSlot
	if err := q.
		Where("barbershop_id = ? AND barber_id = ? AND date = ?", shopID, barberID, date).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *ScheduleGormRepository) CreateSlot(ctx context.Context, s *models.AppointmentSlot) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Conflict("time_conflict", "slot window already reserved")
	}
	return err
}

func (r *ScheduleGormRepository) DeleteSlotByRequest(ctx context.Context, shopID, requestID uint) error {
	return r.db.WithContext(ctx).
		Where("barbershop_id = ? AND request_id = ?", shopID, requestID).
		Delete(&models.AppointmentSlot{}).Error
}

// --------------------------------------------------
// Requests
// --------------------------------------------------

func (r *ScheduleGormRepository) GetRequest(ctx context.Context, shopID, requestID uint) (*models.AppointmentRequest, error) {
	var req models.AppointmentRequest
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", requestID, shopID).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *ScheduleGormRepository) CreateRequest(ctx context.Context, req *models.AppointmentRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *ScheduleGormRepository) UpdateRequest(ctx context.Context, req *models.AppointmentRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *ScheduleGormRepository) ListRequestsByStatus(
	ctx context.Context,
	shopID, barberID uint,
	date string,
	statuses []domain.Status,
) ([]models.AppointmentRequest, error) {

	var reqs []models.AppointmentRequest
	if err := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND barber_id = ? AND date = ? AND status IN ?",
			shopID, barberID, date, statusStrings(statuses),
		).
		Order("start_time ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *ScheduleGormRepository) HasActiveRequestForPhone(ctx context.Context, shopID uint, phone, fromDate string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AppointmentRequest{}).
		Where(
			"barbershop_id = ? AND customer_phone = ? AND date >= ? AND status IN ?",
			shopID, phone, fromDate,
			[]string{string(domain.StatusPending), string(domain.StatusApproved)},
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ScheduleGormRepository) ListFutureRequestsForBarber(
	ctx context.Context,
	shopID, barberID uint,
	fromDate string,
	statuses []domain.Status,
) ([]models.AppointmentRequest, error) {

	var reqs []models.AppointmentRequest
	if err := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND barber_id = ? AND date >= ? AND status IN ?",
			shopID, barberID, fromDate, statusStrings(statuses),
		).
		Order("date ASC, start_time ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *ScheduleGormRepository) ListFutureRequestsForSubscription(
	ctx context.Context,
	shopID, subscriptionID uint,
	fromDate string,
	statuses []domain.Status,
) ([]models.AppointmentRequest, error) {

	var reqs []models.AppointmentRequest
	if err := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND subscription_id = ? AND date >= ? AND status IN ?",
			shopID, subscriptionID, fromDate, statusStrings(statuses),
		).
		Order("date ASC, start_time ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *ScheduleGormRepository) ListApprovedForDate(ctx context.Context, shopID uint, date string) ([]models.AppointmentRequest, error) {
	var reqs []models.AppointmentRequest
	if err := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND date = ? AND status = ?",
			shopID, date, string(domain.StatusApproved),
		).
		Order("start_time ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// --------------------------------------------------
// Bans
// --------------------------------------------------

func (r *ScheduleGormRepository) IsBanned(ctx context.Context, shopID uint, phone string, now time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BannedCustomer{}).
		Where(
			"barbershop_id = ? AND phone = ? AND (ban_type = 'permanent' OR expires_at IS NULL OR expires_at > ?)",
			shopID, phone, now,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Subscriptions
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateSubscription(ctx context.Context, s *models.Subscription) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScheduleGormRepository) GetSubscription(ctx context.Context, shopID, subscriptionID uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", subscriptionID, shopID).
		First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *ScheduleGormRepository) UpdateSubscription(ctx context.Context, s *models.Subscription) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ScheduleGormRepository) ListActiveSubscriptions(ctx context.Context, shopID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND is_active = ?", shopID, true).
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// --------------------------------------------------
// Waitlist
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateWaitlistEntry(ctx context.Context, e *models.AppointmentWaitlist) error {
	err := r.db.WithContext(ctx).Create(e).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Conflict("duplicate_waitlist_entry", "already on the waitlist for this barber and date")
	}
	return err
}

func (r *ScheduleGormRepository) ListActiveWaitlist(ctx context.Context, shopID, barberID uint, date string) ([]models.AppointmentWaitlist, error) {
	var entries []models.AppointmentWaitlist
	if err := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND barber_id = ? AND preferred_date = ? AND status = ?",
			shopID, barberID, date, "active",
		).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *ScheduleGormRepository) UpdateWaitlistEntry(ctx context.Context, e *models.AppointmentWaitlist) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
