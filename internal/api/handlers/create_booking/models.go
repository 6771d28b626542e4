package create_booking

import (
	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	createBooking "github.com/MoNiLBaRiYa/BookIt/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ExperienceID   int64   `json:"experienceId"`
	SlotID         int64   `json:"slotId"`
	CustomerName   string  `json:"customerName"`
	CustomerEmail  string  `json:"customerEmail"`
	CustomerPhone  string  `json:"customerPhone"`
	NumberOfPeople int     `json:"numberOfPeople"`
	PromoCode      *string `json:"promoCode,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID       int64   `json:"bookingId"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	ExperienceTitle string  `json:"experienceTitle"`
	Date            string  `json:"date"` // "2025-10-15"
	Time            string  `json:"time"` // "06:00 - 09:00"
	NumberOfPeople  int     `json:"numberOfPeople"`
	BasePrice       float64 `json:"basePrice"`
	TotalPrice      float64 `json:"totalPrice"`
	Discount        float64 `json:"discount"`
	PromoCode       *string `json:"promoCode,omitempty"`
	Status          string  `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		ExperienceID:   r.ExperienceID,
		SlotID:         r.SlotID,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		NumberOfPeople: r.NumberOfPeople,
		PromoCode:      r.PromoCode,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:       resp.BookingID,
		CustomerName:    resp.CustomerName,
		CustomerEmail:   resp.CustomerEmail,
		ExperienceTitle: resp.ExperienceTitle,
		Date:            resp.Date.Format(domain.DateFormat),
		Time:            resp.Time,
		NumberOfPeople:  resp.NumberOfPeople,
		BasePrice:       resp.BasePrice.InexactFloat64(),
		TotalPrice:      resp.TotalPrice.InexactFloat64(),
		Discount:        resp.Discount.InexactFloat64(),
		PromoCode:       resp.PromoCode,
		Status:          resp.Status,
	}
}
