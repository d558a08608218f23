package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"tbs/src/types"
)

func TestNewBookingID(t *testing.T) {
	pattern := regexp.MustCompile(`^BK\d{8}[0-9A-F]{6}$`)
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		id := NewBookingID()
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestCanBeCancelled(t *testing.T) {
	farOut := &TravelOption{DepartureDatetime: time.Now().Add(72 * time.Hour)}
	tooClose := &TravelOption{DepartureDatetime: time.Now().Add(12 * time.Hour)}

	booking := Booking{Status: types.BOOKING_PENDING, TravelOption: farOut}
	assert.True(t, booking.CanBeCancelled())

	booking = Booking{Status: types.BOOKING_CONFIRMED, TravelOption: farOut}
	assert.True(t, booking.CanBeCancelled())

	booking = Booking{Status: types.BOOKING_CONFIRMED, TravelOption: tooClose}
	assert.False(t, booking.CanBeCancelled())

	booking = Booking{Status: types.BOOKING_CANCELLED, TravelOption: farOut}
	assert.False(t, booking.CanBeCancelled())

	booking = Booking{Status: types.BOOKING_COMPLETED, TravelOption: farOut}
	assert.False(t, booking.CanBeCancelled())

	booking = Booking{Status: types.BOOKING_PENDING}
	assert.False(t, booking.CanBeCancelled())
}

func TestConfirmBooking(t *testing.T) {
	gdb, mock := newMockDB(t)
	option := &TravelOption{ID: 7, TotalSeats: 10, AvailableSeats: 10}
	booking := Booking{
		ID:             3,
		TravelOptionID: 7,
		NumberOfSeats:  2,
		Status:         types.BOOKING_PENDING,
		TravelOption:   option,
	}

	mock.
		ExpectExec(`UPDATE "travel_options" SET "available_seats"=available_seats - `).
		WithArgs(2, 7, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.
		ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := booking.Confirm(gdb)
	assert.NoError(t, err)
	assert.Equal(t, types.BOOKING_CONFIRMED, booking.Status)
	assert.Equal(t, uint(8), option.AvailableSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmBookingInsufficientSeats(t *testing.T) {
	gdb, mock := newMockDB(t)
	option := &TravelOption{ID: 7, TotalSeats: 10, AvailableSeats: 1}
	booking := Booking{
		ID:             3,
		TravelOptionID: 7,
		NumberOfSeats:  2,
		Status:         types.BOOKING_PENDING,
		TravelOption:   option,
	}

	mock.
		ExpectExec(`UPDATE "travel_options" SET "available_seats"=available_seats - `).
		WithArgs(2, 7, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := booking.Confirm(gdb)
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Equal(t, types.BOOKING_PENDING, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmBookingInvalidStatus(t *testing.T) {
	gdb, _ := newMockDB(t)
	for _, status := range []types.BookingStatus{
		types.BOOKING_CONFIRMED,
		types.BOOKING_CANCELLED,
		types.BOOKING_COMPLETED,
		types.BOOKING_REFUNDED,
	} {
		booking := Booking{ID: 3, Status: status}
		err := booking.Confirm(gdb)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
}

func TestCancelConfirmedBookingReleasesSeats(t *testing.T) {
	gdb, mock := newMockDB(t)
	option := &TravelOption{ID: 7, TotalSeats: 10, AvailableSeats: 8}
	booking := Booking{
		ID:             3,
		TravelOptionID: 7,
		NumberOfSeats:  2,
		Status:         types.BOOKING_CONFIRMED,
		TravelOption:   option,
	}

	mock.
		ExpectExec(`UPDATE "travel_options" SET "available_seats"=available_seats \+ `).
		WithArgs(2, 7, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.
		ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := booking.Cancel(gdb, "change of plans")
	assert.NoError(t, err)
	assert.Equal(t, types.BOOKING_CANCELLED, booking.Status)
	assert.Equal(t, "change of plans", booking.CancellationReason)
	assert.NotNil(t, booking.CancelledAt)
	assert.Equal(t, uint(10), option.AvailableSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelPendingBookingSkipsLedger(t *testing.T) {
	gdb, mock := newMockDB(t)
	booking := Booking{
		ID:             3,
		TravelOptionID: 7,
		NumberOfSeats:  2,
		Status:         types.BOOKING_PENDING,
	}

	mock.
		ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := booking.Cancel(gdb, "")
	assert.NoError(t, err)
	assert.Equal(t, types.BOOKING_CANCELLED, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingInvalidStatus(t *testing.T) {
	gdb, _ := newMockDB(t)
	for _, status := range []types.BookingStatus{
		types.BOOKING_CANCELLED,
		types.BOOKING_COMPLETED,
		types.BOOKING_REFUNDED,
	} {
		booking := Booking{ID: 3, Status: status}
		err := booking.Cancel(gdb, "too late")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
}
