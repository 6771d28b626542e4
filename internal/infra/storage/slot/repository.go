package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	"github.com/MoNiLBaRiYa/BookIt/pkg/dbmetrics"
	"github.com/MoNiLBaRiYa/BookIt/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"experience_id",
	"date",
	"start_time",
	"end_time",
	"total_spots",
	"available_spots",
	"created_at",
	"updated_at",
}

// Repository хранит слоты и их вместимость.
// Свободные места меняются только через Reserve/Release внутри транзакции
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID без блокировки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает слот и блокирует строку до конца транзакции (SELECT ... FOR UPDATE).
// Под READ COMMITTED параллельные бронирования того же слота ждут здесь,
// а после коммита первой транзакции перечитывают строку и видят уже уменьшенный остаток.
// Под SERIALIZABLE ожидающая транзакция вместо этого завершится ошибкой 40001
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNoTransaction
	}
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// CheckAvailability проверяет, что в слоте есть count свободных мест
func (r *Repository) CheckAvailability(ctx context.Context, id int64, count int) (bool, error) {
	slot, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return slot.HasCapacity(count), nil
}

// Reserve списывает count мест со слота.
// UPDATE защищен условием available_spots >= count, поэтому остаток не уходит в минус
// даже при чтении устаревших данных
func (r *Repository) Reserve(ctx context.Context, id int64, count int) (*domain.Slot, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNoTransaction
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: Reserve - %v", ErrInsufficientCapacity, domain.ErrInvalidSpotCount)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("available_spots", squirrel.Expr("available_spots - ?", count)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.GtOrEq{"available_spots": count}).
		Suffix("RETURNING " + strings.Join(slotColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.explainMiss(ctx, id, ErrInsufficientCapacity)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - execute update: %w", ErrExecQuery, err)
	}

	return slot, nil
}

// Release возвращает count мест в слот, не превышая total_spots
func (r *Repository) Release(ctx context.Context, id int64, count int) (*domain.Slot, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNoTransaction
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: Release - %v", ErrCapacityOverflow, domain.ErrInvalidSpotCount)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("available_spots", squirrel.Expr("available_spots + ?", count)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("available_spots + ? <= total_spots", count)).
		Suffix("RETURNING " + strings.Join(slotColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.explainMiss(ctx, id, ErrCapacityOverflow)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Release - execute update: %w", ErrExecQuery, err)
	}

	return slot, nil
}

// ListAvailableByExperience возвращает слоты experience, начиная с даты from, где есть свободные места
func (r *Repository) ListAvailableByExperience(ctx context.Context, experienceID int64, from time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"experience_id": experienceID}).
		Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)}).
		Where(squirrel.Gt{"available_spots": 0}).
		OrderBy("date ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableByExperience - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableByExperience - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAvailableByExperience - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailableByExperience - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// explainMiss различает отсутствующий слот и нарушение вместимости после UPDATE без строк
func (r *Repository) explainMiss(ctx context.Context, id int64, capacityErr error) error {
	slot, err := r.getByID(ctx, id, false)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: slot id=%d has %d of %d spots available",
		capacityErr, id, slot.AvailableSpots, slot.TotalSpots)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		slot                 domain.Slot
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&slot.ID,
		&slot.ExperienceID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.TotalSpots,
		&slot.AvailableSpots,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time
	return &slot, nil
}
