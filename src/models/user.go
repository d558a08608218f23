package models

import (
	"tbs/src/types"
)

type User struct {
	ID       uint           `gorm:"primarykey" json:"id"`
	Name     string         `json:"name,omitempty"`
	Email    string         `gorm:"uniqueIndex" json:"email,omitempty"`
	Password string         `json:"-"`
	Phone    string         `gorm:"size:15" json:"phone,omitempty"`
	Role     types.UserRole `gorm:"size:10;default:'user'" json:"role,omitempty"`

	Bookings []Booking `gorm:"foreignKey:user_id" json:"bookings,omitempty"`

	types.Timestamps
}
