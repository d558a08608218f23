package common

import (
	"errors"
	"fmt"
	"log"
	"tbs/src/db"
	"tbs/src/models"
	"tbs/src/types"
	"time"

	"gorm.io/gorm"
)

var ErrNotBookable = errors.New("travel option is not available for booking")

// CreateBooking validates the request against the current ledger state and
// persists a PENDING booking. The availability check here is advisory; the
// ledger is not touched until confirmation, so an abandoned booking never
// consumes capacity.
func CreateBooking(params *types.CreateBookingRequestBody, userID uint) (*models.Booking, error) {
	if len(params.Passengers) > 0 && uint(len(params.Passengers)) != params.NumberOfSeats {
		return nil, fmt.Errorf("expected %d passenger records, got %d", params.NumberOfSeats, len(params.Passengers))
	}

	var booking models.Booking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var option models.TravelOption
		err := tx.
			Where(&models.TravelOption{ID: params.TravelOptionID, IsActive: true}).
			First(&option).
			Error
		if err != nil {
			return ErrNotBookable
		}
		if !option.IsAvailable() {
			return ErrNotBookable
		}
		if params.NumberOfSeats > option.AvailableSeats {
			return models.ErrInsufficientCapacity
		}

		booking = models.Booking{
			BookingID:       models.NewBookingID(),
			UserID:          userID,
			TravelOptionID:  option.ID,
			NumberOfSeats:   params.NumberOfSeats,
			TotalPrice:      option.Price * float64(params.NumberOfSeats),
			Status:          types.BOOKING_PENDING,
			ContactEmail:    params.ContactEmail,
			ContactPhone:    params.ContactPhone,
			SpecialRequests: params.SpecialRequests,
			PaymentMethod:   params.PaymentMethod,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		for _, p := range params.Passengers {
			passenger := models.PassengerDetail{
				BookingID:      booking.ID,
				FirstName:      p.FirstName,
				LastName:       p.LastName,
				Age:            p.Age,
				Gender:         p.Gender,
				IDNumber:       p.IDNumber,
				SeatPreference: p.SeatPreference,
			}
			if err := tx.Create(&passenger).Error; err != nil {
				return err
			}
			booking.Passengers = append(booking.Passengers, passenger)
		}
		booking.TravelOption = &option
		return nil
	})
	if err != nil {
		log.Printf("CreateBooking failed: %s\n", err.Error())
		return nil, err
	}
	return &booking, nil
}

// ConfirmBooking advances a PENDING booking and commits its seats against
// the ledger in one transaction. An ErrInsufficientCapacity here leaves the
// booking PENDING with nothing persisted.
func ConfirmBooking(id uint, userID uint) (*models.Booking, error) {
	var booking models.Booking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where(&models.Booking{ID: id, UserID: userID}).
			Preload("TravelOption").
			First(&booking).
			Error
		if err != nil {
			return err
		}
		return booking.Confirm(tx)
	})
	if err != nil {
		log.Printf("ConfirmBooking failed for booking [%d]: %s\n", id, err.Error())
		return nil, err
	}
	go invalidateAvailabilityCache(booking.TravelOptionID)
	return &booking, nil
}

// CancelBooking moves a booking to CANCELLED, restoring its seats when it
// had been confirmed. The release is the gating step: if it fails nothing
// is persisted.
func CancelBooking(id uint, userID uint, reason string) (*models.Booking, error) {
	var booking models.Booking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where(&models.Booking{ID: id, UserID: userID}).
			Preload("TravelOption").
			First(&booking).
			Error
		if err != nil {
			return err
		}
		return booking.Cancel(tx, reason)
	})
	if err != nil {
		if errors.Is(err, models.ErrCapacityOverflow) {
			log.Printf("ALERT: seat ledger overflow on booking [%d], travel option [%d]: %s\n", id, booking.TravelOptionID, err.Error())
		} else {
			log.Printf("CancelBooking failed for booking [%d]: %s\n", id, err.Error())
		}
		return nil, err
	}
	go invalidateAvailabilityCache(booking.TravelOptionID)
	return &booking, nil
}

// RefundBooking is an administrative transition out of CANCELLED. Only the
// payment reference is recorded; the seats were already released at
// cancellation so the ledger is untouched.
func RefundBooking(id uint, reference string) error {
	db := db.GetDb()
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Booking{}).
			Where("id = ? AND status = ?", id, types.BOOKING_CANCELLED).
			Updates(map[string]any{
				"status":            types.BOOKING_REFUNDED,
				"payment_reference": reference,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrInvalidTransition
		}
		return nil
	})
}

// CompleteElapsedTrips marks CONFIRMED bookings whose travel has arrived as
// COMPLETED. Runs from the scheduler; completion consumes the seats, so the
// ledger stays as it was.
func CompleteElapsedTrips() {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Booking{}).
			Where("status = ?", types.BOOKING_CONFIRMED).
			Where("travel_option_id IN (?)", tx.
				Model(&models.TravelOption{}).
				Select("id").
				Where("arrival_datetime < ?", time.Now()),
			).
			Update("status", types.BOOKING_COMPLETED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			log.Printf("Completed %d elapsed bookings\n", res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error completing elapsed bookings: %s\n", err.Error())
	}
}

func GetOwnBookings(userID uint, status string) ([]models.Booking, error) {
	db := db.GetDb()
	var bookings []models.Booking
	q := db.
		Model(&models.Booking{}).
		Where(&models.Booking{UserID: userID}).
		Preload("TravelOption").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&bookings).Error
	return bookings, err
}

func GetBooking(id uint, userID uint) (*models.Booking, error) {
	db := db.GetDb()
	var booking models.Booking
	err := db.
		Where(&models.Booking{ID: id, UserID: userID}).
		Preload("TravelOption").
		Preload("Passengers").
		First(&booking).
		Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
