package models

import "time"

// BannedCustomer is a phone-keyed block list entry checked before any new
// request or admin booking. Temporary bans stop applying after ExpiresAt.
type BannedCustomer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint   `gorm:"index" json:"barbershop_id"`
	Phone        string `gorm:"size:20;not null;index" json:"phone"`

	BanType   string     `gorm:"size:20;default:'permanent'" json:"ban_type"`
	Reason    string     `gorm:"size:255" json:"reason"`
	ExpiresAt *time.Time `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}
