package models

import "errors"

var (
	// ErrInsufficientCapacity is returned when a reservation asks for more
	// seats than the travel option currently has available. It is a normal
	// business outcome, not a fault, and must never trigger a retry.
	ErrInsufficientCapacity = errors.New("not enough seats available")

	// ErrCapacityOverflow is returned when releasing seats would push
	// available_seats past total_seats. It signals a bookkeeping bug
	// upstream (double release, or releasing never-reserved seats).
	ErrCapacityOverflow = errors.New("seat release exceeds total capacity")

	// ErrInvalidTransition is returned when a booking status change is not
	// permitted from the booking's current status.
	ErrInvalidTransition = errors.New("invalid booking status transition")

	ErrInvalidSeatCount = errors.New("seat count must be at least 1")
)
