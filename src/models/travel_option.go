package models

import (
	"tbs/src/types"
	"time"

	"gorm.io/gorm"
)

type TravelOption struct {
	ID                uint             `gorm:"primarykey" json:"id"`
	TravelID          string           `gorm:"size:20;uniqueIndex" json:"travel_id,omitempty"`
	Type              types.TravelType `gorm:"size:10;index:idx_route,priority:1" json:"type,omitempty"`
	Source            string           `gorm:"size:100;index:idx_route,priority:2" json:"source,omitempty"`
	Destination       string           `gorm:"size:100;index:idx_route,priority:3" json:"destination,omitempty"`
	DepartureDatetime time.Time        `gorm:"index" json:"departure_datetime,omitempty"`
	ArrivalDatetime   time.Time        `json:"arrival_datetime,omitempty"`
	Price             float64          `json:"price"`
	TotalSeats        uint             `json:"total_seats,omitempty"`
	AvailableSeats    uint             `json:"available_seats"`
	OperatorName      string           `gorm:"size:100" json:"operator_name,omitempty"`
	Slug              string           `json:"slug,omitempty"`
	Description       string           `json:"description,omitempty"`
	Amenities         types.JSONBArray `gorm:"type:jsonb" json:"amenities,omitempty"`
	IsActive          bool             `gorm:"default:true;index" json:"is_active"`

	Bookings []Booking `json:"bookings,omitempty"`

	types.Timestamps
}

func (t *TravelOption) Duration() time.Duration {
	return t.ArrivalDatetime.Sub(t.DepartureDatetime)
}

func (t *TravelOption) DurationHours() float64 {
	return t.Duration().Hours()
}

// IsAvailable is advisory only. It reads whatever copy of the row the
// caller holds; the authoritative capacity check is the conditional update
// inside ReserveSeats.
func (t *TravelOption) IsAvailable() bool {
	return t.IsActive && t.AvailableSeats > 0 && t.DepartureDatetime.After(time.Now())
}

// ReserveSeats decrements available_seats by n as a single conditional
// UPDATE, so the capacity check and the decrement are one atomic statement
// in the store. Under contention one caller wins; the losers see zero rows
// affected and get ErrInsufficientCapacity.
func (t *TravelOption) ReserveSeats(tx *gorm.DB, n uint) error {
	if n < 1 {
		return ErrInvalidSeatCount
	}
	res := tx.
		Model(&TravelOption{}).
		Where("id = ? AND available_seats >= ?", t.ID, n).
		UpdateColumn("available_seats", gorm.Expr("available_seats - ?", n))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientCapacity
	}
	if t.AvailableSeats >= n {
		t.AvailableSeats -= n
	}
	return nil
}

// ReleaseSeats restores n seats, refusing to go past total_seats. A zero
// row count here means the caller is releasing seats it never reserved.
func (t *TravelOption) ReleaseSeats(tx *gorm.DB, n uint) error {
	if n < 1 {
		return ErrInvalidSeatCount
	}
	res := tx.
		Model(&TravelOption{}).
		Where("id = ? AND available_seats + ? <= total_seats", t.ID, n).
		UpdateColumn("available_seats", gorm.Expr("available_seats + ?", n))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCapacityOverflow
	}
	t.AvailableSeats += n
	return nil
}
