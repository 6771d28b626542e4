package create_booking

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/pricing"
)

// SlotRepository интерфейс репозитория слотов (Slot Capacity Ledger)
type SlotRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error)
	Reserve(ctx context.Context, id int64, count int) (*domain.Slot, error)
}

// ExperienceRepository интерфейс каталога
type ExperienceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Experience, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// PriceCalculator интерфейс расчета стоимости
type PriceCalculator interface {
	Price(unitPrice decimal.Decimal, partySize int, promoCode *string) (pricing.Quote, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder бизнес-метрики бронирований
type MetricsRecorder interface {
	BookingCreated(people int)
	BookingRejected(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopMetrics struct{}

func (noopMetrics) BookingCreated(int)     {}
func (noopMetrics) BookingRejected(string) {}
