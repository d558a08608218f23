package models

import "tbs/src/types"

// PassengerDetail rows are created alongside a booking and keep their
// request order; when provided their count matches the booked seat count.
type PassengerDetail struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	BookingID      uint   `gorm:"index" json:"booking_id,omitempty"`
	FirstName      string `gorm:"size:50" json:"first_name,omitempty"`
	LastName       string `gorm:"size:50" json:"last_name,omitempty"`
	Age            uint   `json:"age,omitempty"`
	Gender         string `gorm:"size:10" json:"gender,omitempty"`
	IDNumber       string `gorm:"size:50" json:"id_number,omitempty"`
	SeatPreference string `gorm:"size:20" json:"seat_preference,omitempty"`

	types.Timestamps
}
