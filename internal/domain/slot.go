package domain

import (
	"fmt"
	"time"
)

// Slot represents a bookable date/time window of an experience with finite capacity.
// Invariant: 0 <= AvailableSpots <= TotalSpots.
type Slot struct {
	ID             int64
	ExperienceID   int64
	Date           time.Time
	StartTime      string // "HH:MM"
	EndTime        string // "HH:MM"
	TotalSpots     int
	AvailableSpots int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasCapacity returns true if the slot can take count more people
func (s *Slot) HasCapacity(count int) bool {
	return count > 0 && count <= s.AvailableSpots
}

// Reserve takes count spots from the slot.
// The slot is left untouched when the reservation is rejected.
func (s *Slot) Reserve(count int) error {
	if count <= 0 {
		return ErrInvalidSpotCount
	}
	if count > s.AvailableSpots {
		return fmt.Errorf("%w: requested %d, available %d", ErrInsufficientCapacity, count, s.AvailableSpots)
	}
	s.AvailableSpots -= count
	return nil
}

// Release returns count spots to the slot, never above TotalSpots
func (s *Slot) Release(count int) error {
	if count <= 0 {
		return ErrInvalidSpotCount
	}
	if s.AvailableSpots+count > s.TotalSpots {
		return fmt.Errorf("%w: releasing %d would exceed total %d (available %d)",
			ErrCapacityOverflow, count, s.TotalSpots, s.AvailableSpots)
	}
	s.AvailableSpots += count
	return nil
}

// IsFull returns true if the slot has no available spots
func (s *Slot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// IsUpcoming returns true if the slot date is today or later
func (s *Slot) IsUpcoming(now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	sy, sm, sd := s.Date.Date()
	return !time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC).Before(today)
}

// TimeRange returns the "HH:MM - HH:MM" representation used in confirmations
func (s *Slot) TimeRange() string {
	return s.StartTime + " - " + s.EndTime
}
