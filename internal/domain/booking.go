package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Booking represents a reservation of NumberOfPeople spots on a slot.
// ExperienceID and SlotID are references, a booking never owns them.
type Booking struct {
	ID             int64
	ExperienceID   int64
	SlotID         int64
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	NumberOfPeople int
	TotalPrice     decimal.Decimal
	PromoCode      *string
	Discount       decimal.Decimal
	Status         BookingStatus

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking holds slot capacity
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// BookingDetails booking joined with experience and slot data for display
type BookingDetails struct {
	Booking

	ExperienceTitle    string
	ExperienceLocation string
	ExperienceImageURL string
	SlotDate           time.Time
	SlotStartTime      string
	SlotEndTime        string
}
