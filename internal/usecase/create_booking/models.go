package create_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	ExperienceID   int64   `name:"experienceId" validate:"gt=0"`
	SlotID         int64   `name:"slotId" validate:"gt=0"`
	CustomerName   string  `name:"customerName" validate:"customer_name"`
	CustomerEmail  string  `name:"customerEmail" validate:"customer_email"`
	CustomerPhone  string  `name:"customerPhone" validate:"customer_phone"`
	NumberOfPeople int     `name:"numberOfPeople" validate:"people"`
	PromoCode      *string `name:"promoCode" validate:"omitempty,promo_code"` // опционально
}

// Response подтверждение бронирования
type Response struct {
	BookingID       int64
	ExperienceID    int64
	SlotID          int64
	CustomerName    string
	CustomerEmail   string
	ExperienceTitle string
	Date            time.Time // дата слота
	Time            string    // "HH:MM - HH:MM"
	NumberOfPeople  int
	BasePrice       decimal.Decimal
	Discount        decimal.Decimal
	TotalPrice      decimal.Decimal
	PromoCode       *string // нормализованный код, только если он распознан
	Status          string
	CreatedAt       time.Time
}
