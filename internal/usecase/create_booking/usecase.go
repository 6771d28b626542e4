package create_booking

import (
	"context"
	"errors"
)

// UseCase use case для создания бронирования
type UseCase struct {
	slotRepo       SlotRepository
	experienceRepo ExperienceRepository
	bookingRepo    BookingRepository
	calculator     PriceCalculator
	txManager      TransactionManager
	metrics        MetricsRecorder
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	experienceRepo ExperienceRepository,
	bookingRepo BookingRepository,
	calculator PriceCalculator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:       slotRepo,
		experienceRepo: experienceRepo,
		bookingRepo:    bookingRepo,
		calculator:     calculator,
		txManager:      txManager,
		metrics:        noopMetrics{},
		logger:         logger,
	}
}

// WithMetrics подключает бизнес-метрики
func (uc *UseCase) WithMetrics(m MetricsRecorder) *UseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка вместимости, запись бронирования и списание мест выполняются
// в одной транзакции: либо все вместе, либо ничего
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req != nil {
		normalizeRequest(req)
	}

	// 1. Валидация входных данных (до любого обращения к хранилищу)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.BookingRejected(rejectReason(err))
		return nil, err
	}

	uc.logger.Info("CreateBooking: experience=%d, slot=%d, people=%d",
		req.ExperienceID, req.SlotID, req.NumberOfPeople)

	// 2. Транзакционная часть
	res := &reservation{
		req:         req,
		slots:       uc.slotRepo,
		experiences: uc.experienceRepo,
		bookings:    uc.bookingRepo,
		calculator:  uc.calculator,
	}

	if err := uc.txManager.Do(ctx, res.run); err != nil {
		err = classifyTxError(err)
		failedAt := res.state
		res.state = stateRolledBack
		uc.metrics.BookingRejected(rejectReason(err))
		uc.logRejection(req, failedAt, err)
		return nil, err
	}
	res.state = stateCommitted

	uc.metrics.BookingCreated(res.booking.NumberOfPeople)
	uc.logger.Info("CreateBooking: created booking id=%d, slot=%d has %d/%d spots left, total=%s",
		res.booking.ID, res.slot.ID, res.slot.AvailableSpots, res.slot.TotalSpots, res.quote.TotalPrice.StringFixed(2))

	return &Response{
		BookingID:       res.booking.ID,
		ExperienceID:    res.booking.ExperienceID,
		SlotID:          res.booking.SlotID,
		CustomerName:    res.booking.CustomerName,
		CustomerEmail:   res.booking.CustomerEmail,
		ExperienceTitle: res.experience.Title,
		Date:            res.slot.Date,
		Time:            res.slot.TimeRange(),
		NumberOfPeople:  res.booking.NumberOfPeople,
		BasePrice:       res.quote.BasePrice,
		Discount:        res.booking.Discount,
		TotalPrice:      res.booking.TotalPrice,
		PromoCode:       res.booking.PromoCode,
		Status:          string(res.booking.Status),
		CreatedAt:       res.booking.CreatedAt,
	}, nil
}

func (uc *UseCase) logRejection(req *Request, failedAt state, err error) {
	switch {
	case errors.Is(err, ErrPersistence), errors.Is(err, ErrInternal):
		uc.logger.Error("CreateBooking: rolled back after %s, slot=%d: %v", failedAt, req.SlotID, err)
	default:
		uc.logger.Warn("CreateBooking: rejected after %s, slot=%d: %v", failedAt, req.SlotID, err)
	}
}
