package models

import "time"

// WorkingHour holds the weekly base hours: exactly one row per barber per
// weekday (0 = Sunday .. 6 = Saturday), upserted by the admin.
type WorkingHour struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint `gorm:"index" json:"barbershop_id"`
	BarberID     uint `gorm:"uniqueIndex:idx_wh_barber_weekday" json:"barber_id"`
	Weekday      int  `gorm:"uniqueIndex:idx_wh_barber_weekday" json:"weekday"`

	IsWorking bool   `json:"is_working"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
