package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type TravelType string

const (
	TRAVEL_FLIGHT TravelType = "FLIGHT"
	TRAVEL_TRAIN  TravelType = "TRAIN"
	TRAVEL_BUS    TravelType = "BUS"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "PENDING"
	BOOKING_CONFIRMED BookingStatus = "CONFIRMED"
	BOOKING_CANCELLED BookingStatus = "CANCELLED"
	BOOKING_COMPLETED BookingStatus = "COMPLETED"
	BOOKING_REFUNDED  BookingStatus = "REFUNDED"
)

type UserRole string

const (
	ROLE_USER  UserRole = "user"
	ROLE_ADMIN UserRole = "admin"
)

type CreateTravelOptionRequestBody struct {
	TravelID          string  `json:"travel_id" binding:"required,max=20"`
	Type              string  `json:"type" binding:"required,oneof=FLIGHT TRAIN BUS"`
	Source            string  `json:"source" binding:"required"`
	Destination       string  `json:"destination" binding:"required"`
	DepartureDatetime string  `json:"departure_datetime" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	ArrivalDatetime   string  `json:"arrival_datetime" binding:"required,gtdate=DepartureDatetime" time_format:"2006-01-02 15:04:05 -07:00"`
	Price             float64 `json:"price" binding:"required,gte=0"`
	TotalSeats        uint    `json:"total_seats" binding:"required,min=1"`
	OperatorName      string  `json:"operator_name" binding:"required"`
	Description       string  `json:"description,omitempty"`
	Amenities         []any   `json:"amenities,omitempty"`
}

type UpdateTravelOptionRequestBody struct {
	Source            string   `json:"source,omitempty"`
	Destination       string   `json:"destination,omitempty"`
	DepartureDatetime *string  `json:"departure_datetime,omitempty" binding:"omitempty,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	ArrivalDatetime   *string  `json:"arrival_datetime,omitempty" binding:"omitempty" time_format:"2006-01-02 15:04:05 -07:00"`
	Price             *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	OperatorName      string   `json:"operator_name,omitempty"`
	Description       string   `json:"description,omitempty"`
	Amenities         []any    `json:"amenities,omitempty"`
}

type TravelQueryFilters struct {
	Source            string  `form:"source"`
	Destination       string  `form:"destination"`
	Type              string  `form:"type" binding:"omitempty,oneof=FLIGHT TRAIN BUS"`
	DepartureDate     string  `form:"departure_date" binding:"omitempty,datetime=2006-01-02"`
	PriceMin          float64 `form:"price_min"`
	PriceMax          float64 `form:"price_max"`
	AvailableSeatsMin uint    `form:"available_seats_min"`
	Operator          string  `form:"operator"`
}

type PassengerInfo struct {
	FirstName      string `json:"first_name" binding:"required,max=50"`
	LastName       string `json:"last_name" binding:"required,max=50"`
	Age            uint   `json:"age" binding:"required,min=1"`
	Gender         string `json:"gender" binding:"required,oneof=M F O"`
	IDNumber       string `json:"id_number,omitempty"`
	SeatPreference string `json:"seat_preference,omitempty"`
}

type CreateBookingRequestBody struct {
	TravelOptionID  uint            `json:"travel_option" binding:"required"`
	NumberOfSeats   uint            `json:"number_of_seats" binding:"required,min=1"`
	ContactEmail    string          `json:"contact_email" binding:"required,email"`
	ContactPhone    string          `json:"contact_phone" binding:"required,max=15"`
	SpecialRequests string          `json:"special_requests,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	Passengers      []PassengerInfo `json:"passenger_details,omitempty" binding:"omitempty,dive"`
}

type CancelBookingRequestBody struct {
	Reason string `json:"reason,omitempty"`
}

type RefundBookingRequestBody struct {
	PaymentReference string `json:"payment_reference" binding:"required"`
}

type RegisterUserRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone,omitempty" binding:"omitempty,max=15"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type BookingsQueryFilters struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED REFUNDED"`
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type APIResponseTravelOption struct {
	ID                uint       `json:"id"`
	TravelID          string     `json:"travel_id,omitempty"`
	Type              string     `json:"type,omitempty"`
	Source            string     `json:"source,omitempty"`
	Destination       string     `json:"destination,omitempty"`
	DepartureDatetime *time.Time `json:"departure_datetime,omitempty"`
	ArrivalDatetime   *time.Time `json:"arrival_datetime,omitempty"`
	Price             *float64   `json:"price,omitempty"`
	TotalSeats        *uint      `json:"total_seats,omitempty"`
	AvailableSeats    *uint      `json:"available_seats,omitempty"`
	OperatorName      string     `json:"operator_name,omitempty"`
	DurationHours     *float64   `json:"duration_hours,omitempty"`
	IsAvailable       bool       `json:"is_available"`
}

type APIResponseBooking struct {
	ID             uint                     `json:"id,omitempty"`
	BookingID      string                   `json:"booking_id,omitempty"`
	Status         string                   `json:"status,omitempty"`
	NumberOfSeats  uint                     `json:"number_of_seats,omitempty"`
	TotalPrice     float64                  `json:"total_price,omitempty"`
	UserID         uint                     `json:"user_id,omitempty"`
	TravelOptionID uint                     `json:"travel_option_id,omitempty"`
	CanBeCancelled bool                     `json:"can_be_cancelled"`
	TravelOption   *APIResponseTravelOption `json:"travel_option,omitempty"`

	Timestamps
}
