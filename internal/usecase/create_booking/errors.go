package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrExperienceNotFound возвращается, когда experience не найден
	ErrExperienceNotFound = errors.New("create_booking: experience not found")

	// ErrSlotExperienceMismatch возвращается, когда слот принадлежит другому experience
	ErrSlotExperienceMismatch = errors.New("create_booking: slot does not belong to experience")

	// ErrInsufficientCapacity возвращается, когда в слоте недостаточно мест
	ErrInsufficientCapacity = errors.New("create_booking: insufficient capacity")

	// ErrPersistence возвращается, когда хранилище не смогло выполнить транзакцию.
	// Все изменения откатываются, запрос можно повторить
	ErrPersistence = errors.New("create_booking: persistence failure")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// CapacityError отказ по вместимости с фактическим остатком мест
type CapacityError struct {
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: requested %d, only %d spots available", ErrInsufficientCapacity, e.Requested, e.Available)
}

func (e *CapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}

// rejectReason метка отказа для метрик
func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrSlotNotFound):
		return "slot_not_found"
	case errors.Is(err, ErrExperienceNotFound):
		return "experience_not_found"
	case errors.Is(err, ErrSlotExperienceMismatch):
		return "slot_mismatch"
	case errors.Is(err, ErrInsufficientCapacity):
		return "insufficient_capacity"
	case errors.Is(err, ErrPersistence):
		return "persistence"
	default:
		return "internal"
	}
}

// classifyTxError ошибки самого менеджера транзакций (begin, commit) относятся к хранилищу
func classifyTxError(err error) error {
	for _, known := range []error{
		ErrInvalidInput, ErrSlotNotFound, ErrExperienceNotFound, ErrSlotExperienceMismatch,
		ErrInsufficientCapacity, ErrPersistence, ErrInternal,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
