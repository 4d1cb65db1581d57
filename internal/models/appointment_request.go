package models

import "time"

// AppointmentRequest is the booking record tracked through the lifecycle
// state machine. It only consumes barber capacity once approved, via its
// AppointmentSlot.
type AppointmentRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint `gorm:"index" json:"barbershop_id"`

	BarberID uint   `gorm:"index:idx_request_barber_date" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20;not null;index" json:"customer_phone"`

	Date      string `gorm:"size:10;index:idx_request_barber_date" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	ServiceType string `gorm:"size:50" json:"service_type"`

	Status      string  `gorm:"size:20;default:'pending'" json:"status"`
	CancelledBy *string `gorm:"size:20" json:"cancelled_by"`

	SubscriptionID *uint `gorm:"index" json:"subscription_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
