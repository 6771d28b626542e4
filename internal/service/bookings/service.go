package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	bookingRepo "github.com/MoNiLBaRiYa/BookIt/internal/infra/storage/booking"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/bookings/models"
)

// Service сервис для чтения и отмены бронирований
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		metrics:     noopMetrics{},
		logger:      logger,
	}
}

// WithMetrics подключает метрики отмен
func (s *Service) WithMetrics(m MetricsRecorder) *Service {
	if m != nil {
		s.metrics = m
	}
	return s
}

// GetByID получает бронирование вместе с данными experience и слота
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	details, err := s.bookingRepo.GetDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDetails(details), nil
}

// Cancel отменяет бронирование и возвращает места в слот.
// Смена статуса и возврат мест выполняются в одной транзакции,
// строка бронирования блокируется до ее конца
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	s.logger.Info("Cancel: cancelling booking id=%d", id)

	var released int
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - get booking: %w", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			return fmt.Errorf("%w: status is %s", ErrCannotCancel, booking.Status)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, booking.Status, domain.StatusCancelled); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: status changed concurrently", ErrCannotCancel)
			}
			return fmt.Errorf("%w: Cancel - update status: %w", ErrInternal, err)
		}

		if _, err := s.slotRepo.Release(txCtx, booking.SlotID, booking.NumberOfPeople); err != nil {
			return fmt.Errorf("%w: Cancel - release %d spots on slot id=%d: %w",
				ErrInternal, booking.NumberOfPeople, booking.SlotID, err)
		}

		released = booking.NumberOfPeople
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrCannotCancel):
			s.logger.Warn("Cancel: booking id=%d: %v", id, err)
		default:
			s.logger.Error("Cancel: booking id=%d rolled back: %v", id, err)
		}
		return nil, err
	}

	s.metrics.BookingCancelled(released)
	s.logger.Info("Cancel: cancelled booking id=%d, released %d spots", id, released)

	return s.GetByID(ctx, id)
}
