package models

import "time"

// AppointmentSlot is the reservation record. One exists per approved request
// and is deleted the moment the request leaves the approved state. The unique
// index on (barber, date, start_time) is the storage-level backstop against
// double-booking.
type AppointmentSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint `gorm:"index" json:"barbershop_id"`
	BarberID     uint `gorm:"uniqueIndex:idx_slot_window" json:"barber_id"`

	RequestID uint `gorm:"uniqueIndex" json:"request_id"`

	Date      string `gorm:"size:10;uniqueIndex:idx_slot_window" json:"date"`
	StartTime string `gorm:"size:5;uniqueIndex:idx_slot_window" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
}
