package models

import (
	"time"
)

// Employee is the payroll profile attached 1:1 to a user account.
// It is created lazily with DefaultHourlyRate the first time the
// user is resolved as an actor.
type Employee struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	HourlyRate float64   `gorm:"not null;default:10.00" json:"hourly_rate"`
}

const DefaultHourlyRate = 10.00

func (e *Employee) DisplayName() string {
	return e.User.DisplayName()
}
