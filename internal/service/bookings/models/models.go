package models

import (
	"time"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
)

// Response модели

// ExperienceSummary данные experience для отображения бронирования
type ExperienceSummary struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	ImageURL string `json:"imageUrl"`
}

// SlotSummary данные слота для отображения бронирования
type SlotSummary struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "06:00"
	EndTime   string `json:"endTime"`   // "09:00"
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64      `json:"id"`
	ExperienceID   int64      `json:"experienceId"`
	SlotID         int64      `json:"slotId"`
	CustomerName   string     `json:"customerName"`
	CustomerEmail  string     `json:"customerEmail"`
	CustomerPhone  string     `json:"customerPhone"`
	NumberOfPeople int        `json:"numberOfPeople"`
	TotalPrice     float64    `json:"totalPrice"`
	Discount       float64    `json:"discount"`
	PromoCode      *string    `json:"promoCode,omitempty"`
	Status         string     `json:"status"`
	CancelledAt    *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	Experience ExperienceSummary `json:"experience"`
	Slot       SlotSummary       `json:"slot"`
}

// FromDomainDetails конвертирует domain.BookingDetails в BookingResponse
func FromDomainDetails(d *domain.BookingDetails) *BookingResponse {
	return &BookingResponse{
		ID:             d.ID,
		ExperienceID:   d.ExperienceID,
		SlotID:         d.SlotID,
		CustomerName:   d.CustomerName,
		CustomerEmail:  d.CustomerEmail,
		CustomerPhone:  d.CustomerPhone,
		NumberOfPeople: d.NumberOfPeople,
		TotalPrice:     d.TotalPrice.InexactFloat64(),
		Discount:       d.Discount.InexactFloat64(),
		PromoCode:      d.PromoCode,
		Status:         string(d.Status),
		CancelledAt:    d.CancelledAt,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		Experience: ExperienceSummary{
			Title:    d.ExperienceTitle,
			Location: d.ExperienceLocation,
			ImageURL: d.ExperienceImageURL,
		},
		Slot: SlotSummary{
			Date:      d.SlotDate.Format(domain.DateFormat),
			StartTime: d.SlotStartTime,
			EndTime:   d.SlotEndTime,
		},
	}
}
