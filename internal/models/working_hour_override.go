package models

import "time"

// WorkingHourOverride blocks a time window on one specific date (closure or
// special hours). Booking inside the window is never allowed, regardless of
// the weekly WorkingHour row.
type WorkingHourOverride struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint `gorm:"index" json:"barbershop_id"`
	BarberID     uint `gorm:"index:idx_override_barber_date" json:"barber_id"`

	Date      string `gorm:"size:10;index:idx_override_barber_date" json:"date"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Reason    string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
