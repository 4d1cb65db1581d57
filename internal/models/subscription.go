package models

import "time"

// Subscription is a recurring booking definition. Each generated occurrence
// is materialized as its own AppointmentRequest referencing this row.
type Subscription struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint `gorm:"index" json:"barbershop_id"`
	BarberID     uint `gorm:"index" json:"barber_id"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20;not null;index" json:"customer_phone"`

	RecurrenceType string `gorm:"size:20;not null" json:"recurrence_type"`

	// DayOfWeek is ISO style: 1 = Monday .. 7 = Sunday.
	DayOfWeek int `json:"day_of_week"`
	// WeekOfMonth (1-5) is only meaningful for monthly recurrence.
	WeekOfMonth int `json:"week_of_month"`

	StartTime       string `gorm:"size:5;not null" json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`

	StartDate string  `gorm:"size:10;not null" json:"start_date"`
	EndDate   *string `gorm:"size:10" json:"end_date"`

	ServiceType string `gorm:"size:50" json:"service_type"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
