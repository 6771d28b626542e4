package memory

import (
	"context"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	bookingRepo "github.com/MoNiLBaRiYa/BookIt/internal/infra/storage/booking"
)

// BookingRepository бронирования хранилища в памяти
type BookingRepository struct {
	store *Store
}

// Bookings возвращает репозиторий бронирований
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// Create требует транзакцию, как и postgres-версия: запись видна только после commit
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	err := r.store.write(ctx, bookingRepo.ErrNoTransaction, func(t *tx) error {
		r.store.nextBookingID++
		booking.ID = r.store.nextBookingID

		now := r.store.now()
		booking.CreatedAt, booking.UpdatedAt = now, now
		t.putBooking(booking)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var found *domain.Booking
	err := r.store.view(ctx, func(t *tx) error {
		b, ok := t.booking(id)
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}
		found = b
		return nil
	})
	return found, err
}

func (r *BookingRepository) GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	var details *domain.BookingDetails
	err := r.store.view(ctx, func(t *tx) error {
		b, ok := t.booking(id)
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}
		exp, ok := t.store.experiences[b.ExperienceID]
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}
		slot, ok := t.slot(b.SlotID)
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}

		details = &domain.BookingDetails{
			Booking:            *b,
			ExperienceTitle:    exp.Title,
			ExperienceLocation: exp.Location,
			ExperienceImageURL: exp.ImageURL,
			SlotDate:           slot.Date,
			SlotStartTime:      slot.StartTime,
			SlotEndTime:        slot.EndTime,
		}
		return nil
	})
	return details, err
}

// UpdateStatus переводит бронирование из from в to; вне транзакции открывает собственную
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	return r.store.TxManager().Do(ctx, func(ctx context.Context) error {
		return r.store.write(ctx, bookingRepo.ErrNoTransaction, func(t *tx) error {
			b, ok := t.booking(id)
			if !ok || b.Status != from {
				return bookingRepo.ErrStatusConflict
			}

			now := r.store.now()
			b.Status = to
			b.UpdatedAt = now
			if to == domain.StatusCancelled {
				b.CancelledAt = &now
			}
			t.putBooking(b)
			return nil
		})
	})
}
