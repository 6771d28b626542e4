// Package memory хранилище в памяти для локального запуска и тестов.
// Выбирается при старте через storage.driver = "memory"; это не fallback
// для postgres. Транзакция держит блокировку хранилища целиком, поэтому
// все записывающие единицы работы выполняются строго последовательно.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
)

// Store данные каталога, слотов и бронирований
type Store struct {
	mu sync.RWMutex

	experiences map[int64]*domain.Experience
	slots       map[int64]*domain.Slot
	bookings    map[int64]*domain.Booking

	nextExperienceID int64
	nextSlotID       int64
	nextBookingID    int64

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		experiences: make(map[int64]*domain.Experience),
		slots:       make(map[int64]*domain.Slot),
		bookings:    make(map[int64]*domain.Booking),
		now:         time.Now,
	}
}

// tx единица работы: изменения копятся в staged-картах и применяются только на commit
type tx struct {
	store    *Store
	readOnly bool

	slots    map[int64]*domain.Slot
	bookings map[int64]*domain.Booking
}

func newTx(s *Store, readOnly bool) *tx {
	return &tx{
		store:    s,
		readOnly: readOnly,
		slots:    make(map[int64]*domain.Slot),
		bookings: make(map[int64]*domain.Booking),
	}
}

func (t *tx) slot(id int64) (*domain.Slot, bool) {
	if s, ok := t.slots[id]; ok {
		return copySlot(s), true
	}
	s, ok := t.store.slots[id]
	if !ok {
		return nil, false
	}
	return copySlot(s), true
}

func (t *tx) putSlot(s *domain.Slot) {
	t.slots[s.ID] = copySlot(s)
}

func (t *tx) booking(id int64) (*domain.Booking, bool) {
	if b, ok := t.bookings[id]; ok {
		return copyBooking(b), true
	}
	b, ok := t.store.bookings[id]
	if !ok {
		return nil, false
	}
	return copyBooking(b), true
}

func (t *tx) putBooking(b *domain.Booking) {
	t.bookings[b.ID] = copyBooking(b)
}

func (t *tx) commit() {
	for id, s := range t.slots {
		t.store.slots[id] = s
	}
	for id, b := range t.bookings {
		t.store.bookings[id] = b
	}
}

type txKey struct{}

func (s *Store) txFromContext(ctx context.Context) (*tx, bool) {
	t, ok := ctx.Value(txKey{}).(*tx)
	if !ok || t == nil || t.store != s {
		return nil, false
	}
	return t, true
}

// view выполняет чтение: внутри транзакции - через нее, иначе под RLock
func (s *Store) view(ctx context.Context, fn func(t *tx) error) error {
	if t, ok := s.txFromContext(ctx); ok {
		return fn(t)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(newTx(s, true))
}

// write выполняет изменение только внутри записывающей транзакции
func (s *Store) write(ctx context.Context, noTx error, fn func(t *tx) error) error {
	t, ok := s.txFromContext(ctx)
	if !ok || t.readOnly {
		return noTx
	}
	return fn(t)
}

// AddExperience добавляет experience в каталог (административная операция)
func (s *Store) AddExperience(e domain.Experience) *domain.Experience {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextExperienceID++
	e.ID = s.nextExperienceID
	now := s.now()
	e.CreatedAt, e.UpdatedAt = now, now
	s.experiences[e.ID] = copyExperience(&e)
	return copyExperience(&e)
}

// AddSlot добавляет слот (административная операция).
// Некорректная вместимость приводится к границам 0..TotalSpots
func (s *Store) AddSlot(sl domain.Slot) *domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSlotID++
	sl.ID = s.nextSlotID
	if sl.AvailableSpots > sl.TotalSpots {
		sl.AvailableSpots = sl.TotalSpots
	}
	if sl.AvailableSpots < 0 {
		sl.AvailableSpots = 0
	}
	now := s.now()
	sl.CreatedAt, sl.UpdatedAt = now, now
	s.slots[sl.ID] = copySlot(&sl)
	return copySlot(&sl)
}

// BookingCount количество закоммиченных бронирований
func (s *Store) BookingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}

// TxManager менеджер транзакций хранилища в памяти
type TxManager struct {
	store *Store
}

// TxManager возвращает менеджер транзакций для хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

// Do выполняет fn в записывающей транзакции.
// Записывающие транзакции хранилища в памяти выполняются строго по очереди
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, false, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, true, fn)
}

func (m *TxManager) run(ctx context.Context, readOnly bool, fn func(ctx context.Context) error) error {
	if _, ok := m.store.txFromContext(ctx); ok {
		return fn(ctx)
	}

	if readOnly {
		m.store.mu.RLock()
		defer m.store.mu.RUnlock()
	} else {
		m.store.mu.Lock()
		defer m.store.mu.Unlock()
	}

	t := newTx(m.store, readOnly)
	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		return err
	}

	if !readOnly {
		t.commit()
	}
	return nil
}

func copySlot(s *domain.Slot) *domain.Slot {
	c := *s
	return &c
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.PromoCode != nil {
		code := *b.PromoCode
		c.PromoCode = &code
	}
	if b.CancelledAt != nil {
		t := *b.CancelledAt
		c.CancelledAt = &t
	}
	return &c
}

func copyExperience(e *domain.Experience) *domain.Experience {
	c := *e
	c.Highlights = append([]string(nil), e.Highlights...)
	c.Included = append([]string(nil), e.Included...)
	return &c
}
