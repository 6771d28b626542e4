package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	slotRepo "github.com/MoNiLBaRiYa/BookIt/internal/infra/storage/slot"
)

// SlotRepository слоты хранилища в памяти, контракт совпадает с postgres-репозиторием
type SlotRepository struct {
	store *Store
}

// Slots возвращает репозиторий слотов
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	var found *domain.Slot
	err := r.store.view(ctx, func(t *tx) error {
		slot, ok := t.slot(id)
		if !ok {
			return slotRepo.ErrSlotNotFound
		}
		found = slot
		return nil
	})
	return found, err
}

// GetByIDForUpdate работает только внутри транзакции; блокировка уже удерживается ей
func (r *SlotRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	if _, ok := r.store.txFromContext(ctx); !ok {
		return nil, slotRepo.ErrNoTransaction
	}
	return r.GetByID(ctx, id)
}

func (r *SlotRepository) CheckAvailability(ctx context.Context, id int64, count int) (bool, error) {
	slot, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return slot.HasCapacity(count), nil
}

func (r *SlotRepository) Reserve(ctx context.Context, id int64, count int) (*domain.Slot, error) {
	var reserved *domain.Slot
	err := r.store.write(ctx, slotRepo.ErrNoTransaction, func(t *tx) error {
		slot, ok := t.slot(id)
		if !ok {
			return slotRepo.ErrSlotNotFound
		}

		if err := slot.Reserve(count); err != nil {
			if errors.Is(err, domain.ErrInvalidSpotCount) {
				return fmt.Errorf("%w: Reserve - %v", slotRepo.ErrInsufficientCapacity, err)
			}
			return fmt.Errorf("%w: slot id=%d has %d of %d spots available",
				slotRepo.ErrInsufficientCapacity, id, slot.AvailableSpots, slot.TotalSpots)
		}

		slot.UpdatedAt = r.store.now()
		t.putSlot(slot)
		reserved = slot
		return nil
	})
	return reserved, err
}

func (r *SlotRepository) Release(ctx context.Context, id int64, count int) (*domain.Slot, error) {
	var released *domain.Slot
	err := r.store.write(ctx, slotRepo.ErrNoTransaction, func(t *tx) error {
		slot, ok := t.slot(id)
		if !ok {
			return slotRepo.ErrSlotNotFound
		}

		if err := slot.Release(count); err != nil {
			return fmt.Errorf("%w: Release - %v", slotRepo.ErrCapacityOverflow, err)
		}

		slot.UpdatedAt = r.store.now()
		t.putSlot(slot)
		released = slot
		return nil
	})
	return released, err
}

// ListAvailableByExperience слоты experience с даты from со свободными местами, по дате и времени начала
func (r *SlotRepository) ListAvailableByExperience(ctx context.Context, experienceID int64, from time.Time) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)
	err := r.store.view(ctx, func(t *tx) error {
		for id := range t.store.slots {
			slot, _ := t.slot(id)
			if slot.ExperienceID != experienceID || slot.IsFull() || !slot.IsUpcoming(from) {
				continue
			}
			slots = append(slots, slot)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return slots[i].ID < slots[j].ID
	})
	return slots, nil
}
