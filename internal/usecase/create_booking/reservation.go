package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	experienceRepo "github.com/MoNiLBaRiYa/BookIt/internal/infra/storage/experience"
	slotRepo "github.com/MoNiLBaRiYa/BookIt/internal/infra/storage/slot"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/pricing"
)

// state шаг бронирования
type state int

const (
	stateStarted state = iota
	stateSlotLoaded
	stateCapacityChecked
	statePriceComputed
	stateRecordPersisted
	stateLedgerUpdated
	stateCommitted
	stateRolledBack
)

func (s state) String() string {
	switch s {
	case stateStarted:
		return "started"
	case stateSlotLoaded:
		return "slot_loaded"
	case stateCapacityChecked:
		return "capacity_checked"
	case statePriceComputed:
		return "price_computed"
	case stateRecordPersisted:
		return "record_persisted"
	case stateLedgerUpdated:
		return "ledger_updated"
	case stateCommitted:
		return "committed"
	case stateRolledBack:
		return "rolled_back"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// reservation единица работы бронирования: запись бронирования и списание мест слота.
// run выполняется целиком внутри одной транзакции; при повторе транзакции начинается заново
type reservation struct {
	req *Request

	slots       SlotRepository
	experiences ExperienceRepository
	bookings    BookingRepository
	calculator  PriceCalculator

	state      state
	slot       *domain.Slot
	experience *domain.Experience
	quote      pricing.Quote
	booking    *domain.Booking
}

type reservationStep struct {
	done state
	run  func(ctx context.Context) error
}

func (r *reservation) steps() []reservationStep {
	return []reservationStep{
		{done: stateSlotLoaded, run: r.loadSlot},
		{done: stateCapacityChecked, run: r.checkCapacity},
		{done: statePriceComputed, run: r.computePrice},
		{done: stateRecordPersisted, run: r.persistRecord},
		{done: stateLedgerUpdated, run: r.updateLedger},
	}
}

func (r *reservation) run(ctx context.Context) error {
	r.state = stateStarted
	r.slot, r.experience, r.booking = nil, nil, nil
	r.quote = pricing.Quote{}

	for _, step := range r.steps() {
		if err := step.run(ctx); err != nil {
			return err
		}
		r.state = step.done
	}
	return nil
}

func (r *reservation) loadSlot(ctx context.Context) error {
	slot, err := r.slots.GetByIDForUpdate(ctx, r.req.SlotID)
	if errors.Is(err, slotRepo.ErrSlotNotFound) {
		return fmt.Errorf("%w: id=%d", ErrSlotNotFound, r.req.SlotID)
	}
	if err != nil {
		return fmt.Errorf("%w: load slot: %w", ErrPersistence, err)
	}

	r.slot = slot
	return nil
}

func (r *reservation) checkCapacity(_ context.Context) error {
	if !r.slot.HasCapacity(r.req.NumberOfPeople) {
		return &CapacityError{Requested: r.req.NumberOfPeople, Available: r.slot.AvailableSpots}
	}
	return nil
}

// computePrice загружает experience ради цены и считает стоимость
func (r *reservation) computePrice(ctx context.Context) error {
	exp, err := r.experiences.GetByID(ctx, r.req.ExperienceID)
	if errors.Is(err, experienceRepo.ErrExperienceNotFound) {
		return fmt.Errorf("%w: id=%d", ErrExperienceNotFound, r.req.ExperienceID)
	}
	if err != nil {
		return fmt.Errorf("%w: load experience: %w", ErrPersistence, err)
	}
	if r.slot.ExperienceID != exp.ID {
		return fmt.Errorf("%w: slot id=%d belongs to experience id=%d", ErrSlotExperienceMismatch, r.slot.ID, r.slot.ExperienceID)
	}
	r.experience = exp

	quote, err := r.calculator.Price(exp.Price, r.req.NumberOfPeople, r.req.PromoCode)
	if err != nil {
		return fmt.Errorf("%w: price booking: %v", ErrInternal, err)
	}
	r.quote = quote
	return nil
}

func (r *reservation) persistRecord(ctx context.Context) error {
	created, err := r.bookings.Create(ctx, &domain.Booking{
		ExperienceID:   r.experience.ID,
		SlotID:         r.slot.ID,
		CustomerName:   r.req.CustomerName,
		CustomerEmail:  r.req.CustomerEmail,
		CustomerPhone:  r.req.CustomerPhone,
		NumberOfPeople: r.req.NumberOfPeople,
		TotalPrice:     r.quote.TotalPrice,
		PromoCode:      r.quote.PromoCode,
		Discount:       r.quote.Discount,
		Status:         domain.StatusConfirmed,
	})
	if err != nil {
		return fmt.Errorf("%w: create booking: %w", ErrPersistence, err)
	}

	r.booking = created
	return nil
}

func (r *reservation) updateLedger(ctx context.Context) error {
	slot, err := r.slots.Reserve(ctx, r.slot.ID, r.req.NumberOfPeople)
	switch {
	case errors.Is(err, slotRepo.ErrInsufficientCapacity):
		return &CapacityError{Requested: r.req.NumberOfPeople, Available: r.slot.AvailableSpots}
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		return fmt.Errorf("%w: id=%d", ErrSlotNotFound, r.slot.ID)
	case err != nil:
		return fmt.Errorf("%w: reserve spots: %w", ErrPersistence, err)
	}

	r.slot = slot
	return nil
}
