package models

import "time"

// AppointmentWaitlist registers interest in a freed half-day range. The
// unique triple prevents a customer from stacking entries for the same
// barber and date.
type AppointmentWaitlist struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID  uint   `gorm:"index" json:"barbershop_id"`
	CustomerPhone string `gorm:"size:20;uniqueIndex:idx_waitlist_triple" json:"customer_phone"`
	BarberID      uint   `gorm:"uniqueIndex:idx_waitlist_triple" json:"barber_id"`
	PreferredDate string `gorm:"size:10;uniqueIndex:idx_waitlist_triple" json:"preferred_date"`

	// TimeRange is "morning" or "evening", split at the midpoint of the
	// day's working hours.
	TimeRange string `gorm:"size:10;not null" json:"time_range"`
	Status    string `gorm:"size:10;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
