package models

import (
	"fmt"
	"strings"
	"tbs/src/config"
	"tbs/src/types"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID                 uint                `gorm:"primarykey" json:"id"`
	BookingID          string              `gorm:"size:20;uniqueIndex" json:"booking_id,omitempty"`
	UserID             uint                `gorm:"index:idx_user_status,priority:1" json:"user_id,omitempty"`
	TravelOptionID     uint                `json:"travel_option_id,omitempty"`
	NumberOfSeats      uint                `json:"number_of_seats,omitempty"`
	TotalPrice         float64             `json:"total_price,omitempty"`
	Status             types.BookingStatus `gorm:"size:10;default:'PENDING';index:idx_user_status,priority:2" json:"status,omitempty"`
	ContactEmail       string              `json:"contact_email,omitempty"`
	ContactPhone       string              `gorm:"size:15" json:"contact_phone,omitempty"`
	SpecialRequests    string              `json:"special_requests,omitempty"`
	PaymentMethod      string              `gorm:"size:50" json:"payment_method,omitempty"`
	PaymentReference   string              `gorm:"size:100" json:"payment_reference,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	CancellationReason string              `json:"cancellation_reason,omitempty"`

	User         *User             `gorm:"foreignKey:user_id" json:"user,omitempty"`
	TravelOption *TravelOption     `gorm:"foreignKey:travel_option_id" json:"travel_option,omitempty"`
	Passengers   []PassengerDetail `gorm:"foreignKey:booking_id" json:"passenger_details,omitempty"`

	types.Timestamps
}

// NewBookingID builds the human-facing booking reference. The random
// suffix is best effort; the unique index on booking_id is what actually
// guarantees uniqueness.
func NewBookingID() string {
	stamp := time.Now().UTC().Format("20060102")
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("BK%s%s", stamp, suffix)
}

// Confirm reserves the booking's seats and advances PENDING to CONFIRMED.
// Both writes ride the caller's transaction: if the status flip loses a
// race the whole transaction rolls back and the reservation is undone.
func (b *Booking) Confirm(tx *gorm.DB) error {
	if b.Status != types.BOOKING_PENDING {
		return ErrInvalidTransition
	}
	option := b.TravelOption
	if option == nil {
		option = &TravelOption{}
		if err := tx.Where("id = ?", b.TravelOptionID).First(option).Error; err != nil {
			return err
		}
		b.TravelOption = option
	}
	if err := option.ReserveSeats(tx, b.NumberOfSeats); err != nil {
		return err
	}
	res := tx.
		Model(&Booking{}).
		Where("id = ? AND status = ?", b.ID, types.BOOKING_PENDING).
		Update("status", types.BOOKING_CONFIRMED)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	b.Status = types.BOOKING_CONFIRMED
	return nil
}

// Cancel moves a PENDING or CONFIRMED booking to CANCELLED. Seats go back
// to the ledger only when they were committed at confirmation; a release
// failure aborts the cancellation so ledger and status never diverge.
func (b *Booking) Cancel(tx *gorm.DB, reason string) error {
	if b.Status != types.BOOKING_PENDING && b.Status != types.BOOKING_CONFIRMED {
		return ErrInvalidTransition
	}
	if b.Status == types.BOOKING_CONFIRMED {
		option := b.TravelOption
		if option == nil {
			option = &TravelOption{}
			if err := tx.Where("id = ?", b.TravelOptionID).First(option).Error; err != nil {
				return err
			}
			b.TravelOption = option
		}
		if err := option.ReleaseSeats(tx, b.NumberOfSeats); err != nil {
			return err
		}
	}
	now := time.Now()
	res := tx.
		Model(&Booking{}).
		Where("id = ? AND status IN (?)", b.ID, []types.BookingStatus{types.BOOKING_PENDING, types.BOOKING_CONFIRMED}).
		Updates(map[string]any{
			"status":              types.BOOKING_CANCELLED,
			"cancelled_at":        now,
			"cancellation_reason": reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	b.Status = types.BOOKING_CANCELLED
	b.CancelledAt = &now
	b.CancellationReason = reason
	return nil
}

// CanBeCancelled is the cancellation gate surfaced to callers. The cutoff
// window is enforced by the calling layer, not by Cancel itself.
func (b *Booking) CanBeCancelled() bool {
	if b.Status != types.BOOKING_PENDING && b.Status != types.BOOKING_CONFIRMED {
		return false
	}
	if b.TravelOption == nil {
		return false
	}
	untilDeparture := time.Until(b.TravelOption.DepartureDatetime)
	return untilDeparture > config.CANCELLATION_CUTOFF_HOURS*time.Hour
}

func (b *Booking) IsUpcoming() bool {
	return b.TravelOption != nil && b.TravelOption.DepartureDatetime.After(time.Now())
}

func (b *Booking) DaysUntilTravel() int {
	if !b.IsUpcoming() {
		return 0
	}
	return int(time.Until(b.TravelOption.DepartureDatetime).Hours() / 24)
}
