package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"tbs/src/config"
	"tbs/src/db"
	"tbs/src/lib"
	"tbs/src/models"
	"tbs/src/types"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type SeatAvailability struct {
	TravelOptionID uint `json:"travel_option_id"`
	TotalSeats     uint `json:"total_seats"`
	AvailableSeats uint `json:"available_seats"`
}

// CreateTravelOption is the operator-facing creation path. Seats start
// fully available and total_seats never changes afterwards.
func CreateTravelOption(params *types.CreateTravelOptionRequestBody) (uint, error) {
	departure, err := time.Parse(config.TIME_PARSE_FORMAT, params.DepartureDatetime)
	if err != nil {
		log.Printf("Error parsing departure_datetime: %s\n", err.Error())
		return 0, err
	}
	arrival, err := time.Parse(config.TIME_PARSE_FORMAT, params.ArrivalDatetime)
	if err != nil {
		log.Printf("Error parsing arrival_datetime: %s\n", err.Error())
		return 0, err
	}
	if !departure.Before(arrival) {
		return 0, errors.New("departure time must be before arrival time")
	}

	option := models.TravelOption{
		TravelID:          params.TravelID,
		Type:              types.TravelType(params.Type),
		Source:            params.Source,
		Destination:       params.Destination,
		DepartureDatetime: departure,
		ArrivalDatetime:   arrival,
		Price:             params.Price,
		TotalSeats:        params.TotalSeats,
		AvailableSeats:    params.TotalSeats,
		OperatorName:      params.OperatorName,
		Description:       params.Description,
		Amenities:         types.JSONBArray(params.Amenities),
		IsActive:          true,
		Slug:              slug.Make(fmt.Sprintf("%s %s %s %s", params.OperatorName, params.Type, params.Source, params.Destination)),
	}
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&option).Error
	})
	if err != nil {
		return 0, err
	}
	return option.ID, nil
}

// UpdateTravelOption edits descriptive fields. Seat counters are off
// limits here: only reserve/release driven by the booking state machine
// may move available_seats.
func UpdateTravelOption(id uint, params *types.UpdateTravelOptionRequestBody) error {
	updates := map[string]any{}
	if params.Source != "" {
		updates["source"] = params.Source
	}
	if params.Destination != "" {
		updates["destination"] = params.Destination
	}
	if params.OperatorName != "" {
		updates["operator_name"] = params.OperatorName
	}
	if params.Description != "" {
		updates["description"] = params.Description
	}
	if params.Price != nil {
		updates["price"] = *params.Price
	}
	if params.Amenities != nil {
		updates["amenities"] = types.JSONBArray(params.Amenities)
	}
	var departure, arrival *time.Time
	if params.DepartureDatetime != nil {
		t, err := time.Parse(config.TIME_PARSE_FORMAT, *params.DepartureDatetime)
		if err != nil {
			return err
		}
		departure = &t
		updates["departure_datetime"] = t
	}
	if params.ArrivalDatetime != nil {
		t, err := time.Parse(config.TIME_PARSE_FORMAT, *params.ArrivalDatetime)
		if err != nil {
			return err
		}
		arrival = &t
		updates["arrival_datetime"] = t
	}
	if len(updates) == 0 {
		return nil
	}

	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var option models.TravelOption
		if err := tx.Where("id = ?", id).First(&option).Error; err != nil {
			return err
		}
		dep := option.DepartureDatetime
		arr := option.ArrivalDatetime
		if departure != nil {
			dep = *departure
		}
		if arrival != nil {
			arr = *arrival
		}
		if !dep.Before(arr) {
			return errors.New("departure time must be before arrival time")
		}
		return tx.
			Model(&models.TravelOption{}).
			Where("id = ?", id).
			Updates(updates).
			Error
	})
	if err != nil {
		return err
	}
	go invalidateAvailabilityCache(id)
	return nil
}

// DeactivateTravelOption pulls an option from sale without touching the
// bookings that reference it.
func DeactivateTravelOption(id uint) error {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.TravelOption{}).
			Where("id = ? AND is_active = ?", id, true).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	go invalidateAvailabilityCache(id)
	return nil
}

// SearchTravelOptions lists active, future options matching the filters.
func SearchTravelOptions(filters *types.TravelQueryFilters) ([]models.TravelOption, error) {
	db := db.GetDb()
	var options []models.TravelOption
	q := db.
		Model(&models.TravelOption{}).
		Where("is_active = ?", true).
		Where("departure_datetime > ?", time.Now())
	if filters.Source != "" {
		q = q.Where("source ILIKE ?", "%"+filters.Source+"%")
	}
	if filters.Destination != "" {
		q = q.Where("destination ILIKE ?", "%"+filters.Destination+"%")
	}
	if filters.Type != "" {
		q = q.Where("type = ?", filters.Type)
	}
	if filters.Operator != "" {
		q = q.Where("operator_name ILIKE ?", "%"+filters.Operator+"%")
	}
	if filters.DepartureDate != "" {
		day, err := time.Parse("2006-01-02", filters.DepartureDate)
		if err != nil {
			return nil, err
		}
		q = q.Where("departure_datetime >= ? AND departure_datetime < ?", day, day.Add(24*time.Hour))
	}
	if filters.PriceMin > 0 {
		q = q.Where("price >= ?", filters.PriceMin)
	}
	if filters.PriceMax > 0 {
		q = q.Where("price <= ?", filters.PriceMax)
	}
	if filters.AvailableSeatsMin > 0 {
		q = q.Where("available_seats >= ?", filters.AvailableSeatsMin)
	}
	err := q.Order("departure_datetime asc").Find(&options).Error
	return options, err
}

func GetTravelOption(id uint) (*models.TravelOption, error) {
	db := db.GetDb()
	var option models.TravelOption
	if err := db.
		Where(&models.TravelOption{ID: id, IsActive: true}).
		First(&option).
		Error; err != nil {
		return nil, errors.New("travel option not found")
	}
	return &option, nil
}

// GetSeatAvailability returns an advisory snapshot of the ledger, served
// from a short-lived Redis cache when possible. List views use this for
// early feedback; a reservation never trusts it.
func GetSeatAvailability(id uint) (*SeatAvailability, error) {
	cacheKey := fmt.Sprintf("travel:%d:availability", id)
	rd := lib.GetRedisClient()
	if rd != nil {
		if val, err := rd.Get(context.Background(), cacheKey).Result(); err == nil {
			var cached SeatAvailability
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	db := db.GetDb()
	var option models.TravelOption
	if err := db.
		Select("id", "total_seats", "available_seats").
		Where("id = ?", id).
		First(&option).
		Error; err != nil {
		return nil, err
	}
	snapshot := &SeatAvailability{
		TravelOptionID: option.ID,
		TotalSeats:     option.TotalSeats,
		AvailableSeats: option.AvailableSeats,
	}
	if rd != nil {
		if b, err := json.Marshal(snapshot); err == nil {
			if err := rd.SetEx(context.Background(), cacheKey, string(b), 30*time.Second).Err(); err != nil {
				log.Printf("[redis] Error caching availability for [%d]: %s\n", id, err.Error())
			}
		}
	}
	return snapshot, nil
}

func invalidateAvailabilityCache(id uint) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	cacheKey := fmt.Sprintf("travel:%d:availability", id)
	if err := rd.Del(context.Background(), cacheKey).Err(); err != nil {
		log.Printf("[redis] Error invalidating cache for [%d]: %s\n", id, err.Error())
	}
}
