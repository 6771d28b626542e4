package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	"github.com/MoNiLBaRiYa/BookIt/internal/infra/memory"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/pricing"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/promotions"
	"github.com/MoNiLBaRiYa/BookIt/pkg/logger"
)

type fixture struct {
	store      *memory.Store
	experience *domain.Experience
	slot       *domain.Slot
	calculator *pricing.Calculator
}

func newFixture(t *testing.T, price int64, spots int) *fixture {
	t.Helper()

	table, err := promotions.NewTable(promotions.DefaultRules())
	require.NoError(t, err)

	store := memory.NewStore()
	exp := store.AddExperience(domain.Experience{Title: "Sunrise Kayak", Price: decimal.NewFromInt(price)})
	slot := store.AddSlot(domain.Slot{
		ExperienceID:   exp.ID,
		Date:           time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC),
		StartTime:      "06:00",
		EndTime:        "09:00",
		TotalSpots:     spots,
		AvailableSpots: spots,
	})

	return &fixture{
		store:      store,
		experience: exp,
		slot:       slot,
		calculator: pricing.NewCalculator(promotions.NewResolver(table)),
	}
}

func (f *fixture) useCase(slots SlotRepository) *UseCase {
	if slots == nil {
		slots = f.store.Slots()
	}
	return NewUseCase(slots, f.store.Experiences(), f.store.Bookings(), f.calculator, f.store.TxManager(), logger.Discard())
}

func (f *fixture) request(people int, promo *string) *Request {
	return &Request{
		ExperienceID:   f.experience.ID,
		SlotID:         f.slot.ID,
		CustomerName:   "Ann Lee",
		CustomerEmail:  "ann@example.com",
		CustomerPhone:  "+91 98765 43210",
		NumberOfPeople: people,
		PromoCode:      promo,
	}
}

func (f *fixture) availableSpots(t *testing.T) int {
	t.Helper()
	slot, err := f.store.Slots().GetByID(context.Background(), f.slot.ID)
	require.NoError(t, err)
	return slot.AvailableSpots
}

func strPtr(s string) *string { return &s }

// failingSlots списывает места с ошибкой уже после записи бронирования
type failingSlots struct {
	SlotRepository
	err error
}

func (f failingSlots) Reserve(context.Context, int64, int) (*domain.Slot, error) {
	return nil, f.err
}

// countingSlots считает обращения к хранилищу
type countingSlots struct {
	SlotRepository
	mu    sync.Mutex
	calls int
}

func (c *countingSlots) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.SlotRepository.GetByIDForUpdate(ctx, id)
}

type recordingMetrics struct {
	mu       sync.Mutex
	created  int
	people   int
	rejected []string
}

func (m *recordingMetrics) BookingCreated(people int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
	m.people += people
}

func (m *recordingMetrics) BookingRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, reason)
}

func TestExecute_CreatesBookingAndRoundTrips(t *testing.T) {
	f := newFixture(t, 1000, 10)
	ctx := context.Background()

	resp, err := f.useCase(nil).Execute(ctx, f.request(3, strPtr(" save10 ")))
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "Sunrise Kayak", resp.ExperienceTitle)
	assert.Equal(t, "06:00 - 09:00", resp.Time)
	assert.True(t, decimal.NewFromInt(3000).Equal(resp.BasePrice))
	assert.True(t, decimal.NewFromInt(300).Equal(resp.Discount))
	assert.True(t, decimal.NewFromInt(2700).Equal(resp.TotalPrice))
	require.NotNil(t, resp.PromoCode)
	assert.Equal(t, "SAVE10", *resp.PromoCode)
	assert.Equal(t, 7, f.availableSpots(t))

	stored, err := f.store.Bookings().GetByID(ctx, resp.BookingID)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", stored.CustomerName)
	assert.Equal(t, "ann@example.com", stored.CustomerEmail)
	assert.Equal(t, "+91 98765 43210", stored.CustomerPhone)
	assert.Equal(t, 3, stored.NumberOfPeople)
	assert.True(t, resp.TotalPrice.Equal(stored.TotalPrice))
	assert.True(t, resp.Discount.Equal(stored.Discount))
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
}

func TestExecute_UnknownPromoCodeIsNotAnError(t *testing.T) {
	f := newFixture(t, 1000, 10)

	resp, err := f.useCase(nil).Execute(context.Background(), f.request(1, strPtr("NOPE")))
	require.NoError(t, err)

	assert.True(t, decimal.Zero.Equal(resp.Discount))
	assert.True(t, decimal.NewFromInt(1000).Equal(resp.TotalPrice))
	assert.Nil(t, resp.PromoCode)
}

func TestExecute_FixedDiscountIsClamped(t *testing.T) {
	f := newFixture(t, 40, 10)

	resp, err := f.useCase(nil).Execute(context.Background(), f.request(1, strPtr("FLAT100")))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(40).Equal(resp.Discount))
	assert.True(t, decimal.Zero.Equal(resp.TotalPrice))
}

func TestExecute_RejectsOversell(t *testing.T) {
	f := newFixture(t, 1000, 5)

	_, err := f.useCase(nil).Execute(context.Background(), f.request(6, nil))
	require.ErrorIs(t, err, ErrInsufficientCapacity)

	var capErr *CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, 6, capErr.Requested)
	assert.Equal(t, 5, capErr.Available)
	assert.Contains(t, err.Error(), "only 5 spots available")

	assert.Equal(t, 5, f.availableSpots(t))
	assert.Equal(t, 0, f.store.BookingCount())
}

func TestExecute_FailureAfterPersistRollsBack(t *testing.T) {
	f := newFixture(t, 1000, 5)
	diskFull := errors.New("disk full")

	_, err := f.useCase(failingSlots{SlotRepository: f.store.Slots(), err: diskFull}).
		Execute(context.Background(), f.request(2, nil))

	require.ErrorIs(t, err, ErrPersistence)
	require.ErrorIs(t, err, diskFull)
	assert.Equal(t, 0, f.store.BookingCount())
	assert.Equal(t, 5, f.availableSpots(t))
}

func TestExecute_CapacityInvariantUnderConcurrency(t *testing.T) {
	const totalSpots = 10
	f := newFixture(t, 500, totalSpots)
	uc := f.useCase(nil)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		booked   int
		accepted int
	)

	for i := 0; i < 40; i++ {
		people := i%3 + 1
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := uc.Execute(context.Background(), f.request(people, nil))
			if err != nil {
				assert.ErrorIs(t, err, ErrInsufficientCapacity)
				return
			}
			mu.Lock()
			booked += resp.NumberOfPeople
			accepted++
			mu.Unlock()
		}()
	}
	wg.Wait()

	left := f.availableSpots(t)
	assert.LessOrEqual(t, booked, totalSpots)
	assert.GreaterOrEqual(t, left, 0)
	assert.Equal(t, totalSpots-booked, left)
	assert.Equal(t, accepted, f.store.BookingCount())
}

func TestExecute_ValidationHappensBeforeStoreAccess(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		msg    string
	}{
		{name: "missing experience", mutate: func(r *Request) { r.ExperienceID = 0 }, msg: "experienceId must be positive"},
		{name: "missing slot", mutate: func(r *Request) { r.SlotID = -1 }, msg: "slotId must be positive"},
		{name: "blank name", mutate: func(r *Request) { r.CustomerName = "   " }, msg: "customerName is required"},
		{name: "bad email", mutate: func(r *Request) { r.CustomerEmail = "not-an-email" }, msg: "customerEmail must be a valid email address"},
		{name: "missing phone", mutate: func(r *Request) { r.CustomerPhone = "" }, msg: "customerPhone is required"},
		{name: "zero people", mutate: func(r *Request) { r.NumberOfPeople = 0 }, msg: "numberOfPeople must be at least 1"},
		{
			name:   "long name",
			mutate: func(r *Request) { r.CustomerName = strings.Repeat("a", domain.MaxCustomerNameLength+1) },
			msg:    fmt.Sprintf("customerName must be at most %d characters", domain.MaxCustomerNameLength),
		},
		{
			name:   "long phone",
			mutate: func(r *Request) { r.CustomerPhone = strings.Repeat("1", domain.MaxCustomerPhoneLength+1) },
			msg:    fmt.Sprintf("customerPhone must be at most %d characters", domain.MaxCustomerPhoneLength),
		},
		{
			name:   "long promo code",
			mutate: func(r *Request) { r.PromoCode = strPtr(strings.Repeat("X", domain.MaxPromoCodeLength+1)) },
			msg:    fmt.Sprintf("promoCode must be at most %d characters", domain.MaxPromoCodeLength),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 1000, 5)
			spy := &countingSlots{SlotRepository: f.store.Slots()}

			req := f.request(1, nil)
			tt.mutate(req)

			_, err := f.useCase(spy).Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, 0, spy.calls)
		})
	}

	f := newFixture(t, 1000, 5)
	_, err := f.useCase(nil).Execute(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateRequest_AcceptsFieldsAtLimit(t *testing.T) {
	f := newFixture(t, 1000, 5)
	req := f.request(1, strPtr(strings.Repeat("X", domain.MaxPromoCodeLength)))
	req.CustomerName = strings.Repeat("a", domain.MaxCustomerNameLength)
	req.CustomerPhone = strings.Repeat("1", domain.MaxCustomerPhoneLength)

	require.NoError(t, validateRequest(req))

	req.CustomerEmail = strings.Repeat("a", domain.MaxCustomerEmailLength) + "@example.com"
	err := validateRequest(req)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "customerEmail")
}

func TestExecute_ReferentialErrors(t *testing.T) {
	f := newFixture(t, 1000, 5)
	other := f.store.AddExperience(domain.Experience{Title: "Other", Price: decimal.NewFromInt(10)})
	uc := f.useCase(nil)
	ctx := context.Background()

	req := f.request(1, nil)
	req.SlotID = 999
	_, err := uc.Execute(ctx, req)
	require.ErrorIs(t, err, ErrSlotNotFound)

	req = f.request(1, nil)
	req.ExperienceID = 999
	_, err = uc.Execute(ctx, req)
	require.ErrorIs(t, err, ErrExperienceNotFound)

	req = f.request(1, nil)
	req.ExperienceID = other.ID
	_, err = uc.Execute(ctx, req)
	require.ErrorIs(t, err, ErrSlotExperienceMismatch)

	assert.Equal(t, 0, f.store.BookingCount())
	assert.Equal(t, 5, f.availableSpots(t))
}

func TestExecute_RecordsMetrics(t *testing.T) {
	f := newFixture(t, 1000, 3)
	rec := &recordingMetrics{}
	uc := f.useCase(nil).WithMetrics(rec)
	ctx := context.Background()

	_, err := uc.Execute(ctx, f.request(2, nil))
	require.NoError(t, err)
	_, err = uc.Execute(ctx, f.request(2, nil))
	require.Error(t, err)
	req := f.request(1, nil)
	req.CustomerEmail = "broken"
	_, err = uc.Execute(ctx, req)
	require.Error(t, err)

	assert.Equal(t, 1, rec.created)
	assert.Equal(t, 2, rec.people)
	assert.Equal(t, []string{"insufficient_capacity", "invalid_input"}, rec.rejected)
}

func TestReservation_StopsAtFailingStep(t *testing.T) {
	f := newFixture(t, 1000, 5)
	res := &reservation{
		req:         f.request(2, nil),
		slots:       failingSlots{SlotRepository: f.store.Slots(), err: errors.New("io")},
		experiences: f.store.Experiences(),
		bookings:    f.store.Bookings(),
		calculator:  f.calculator,
	}

	err := f.store.TxManager().Do(context.Background(), res.run)
	require.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, stateRecordPersisted, res.state)
	assert.NotNil(t, res.booking)
	assert.Equal(t, 0, f.store.BookingCount())

	res.slots = f.store.Slots()
	require.NoError(t, f.store.TxManager().Do(context.Background(), res.run))
	assert.Equal(t, stateLedgerUpdated, res.state)
	assert.Equal(t, 3, res.slot.AvailableSpots)
	assert.Equal(t, "ledger_updated", res.state.String())
}

type commitFailingTx struct{}

func (commitFailingTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return errors.New("txmanager: failed to commit transaction: connection reset")
}

func TestExecute_TxManagerFailureIsPersistenceError(t *testing.T) {
	f := newFixture(t, 1500, 5)
	uc := NewUseCase(f.store.Slots(), f.store.Experiences(), f.store.Bookings(), f.calculator, commitFailingTx{}, logger.Discard())

	_, err := uc.Execute(context.Background(), f.request(1, nil))
	require.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, 5, f.availableSpots(t))
}
