package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	"github.com/MoNiLBaRiYa/BookIt/pkg/dbmetrics"
	"github.com/MoNiLBaRiYa/BookIt/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"b.id",
	"b.experience_id",
	"b.slot_id",
	"b.customer_name",
	"b.customer_email",
	"b.customer_phone",
	"b.number_of_people",
	"b.total_price",
	"b.promo_code",
	"b.discount",
	"b.status",
	"b.cancelled_at",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Выполняется только внутри транзакции: запись бронирования и списание мест
// слота должны закоммититься вместе
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNoTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"experience_id",
			"slot_id",
			"customer_name",
			"customer_email",
			"customer_phone",
			"number_of_people",
			"total_price",
			"promo_code",
			"discount",
			"status",
		).
		Values(
			booking.ExperienceID,
			booking.SlotID,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.NumberOfPeople,
			booking.TotalPrice,
			booking.PromoCode,
			booking.Discount,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы смена статуса
// не пересеклась с параллельной отменой
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	err = scanBooking(executor.QueryRowContext(ctx, query, args...), &booking)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return &booking, nil
}

// GetDetailsByID получает бронирование вместе с данными experience и слота для отображения
func (r *Repository) GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append(append([]string{}, bookingColumns...),
		"e.title",
		"e.location",
		"e.image_url",
		"s.date",
		"s.start_time",
		"s.end_time",
	)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings b").
		Join("experiences e ON e.id = b.experience_id").
		Join("slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		details              domain.BookingDetails
		createdAt, updatedAt sql.NullTime
		promoCode            sql.NullString
		cancelledAt          sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&details.ID,
		&details.ExperienceID,
		&details.SlotID,
		&details.CustomerName,
		&details.CustomerEmail,
		&details.CustomerPhone,
		&details.NumberOfPeople,
		&details.TotalPrice,
		&promoCode,
		&details.Discount,
		&details.Status,
		&cancelledAt,
		&createdAt,
		&updatedAt,
		&details.ExperienceTitle,
		&details.ExperienceLocation,
		&details.ExperienceImageURL,
		&details.SlotDate,
		&details.SlotStartTime,
		&details.SlotEndTime,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - scan booking: %w", ErrScanRow, err)
	}
	if !details.Status.IsValid() {
		return nil, fmt.Errorf("%w: GetDetailsByID - unknown status %q", ErrScanRow, details.Status)
	}

	applyNullable(&details.Booking, promoCode, cancelledAt, createdAt, updatedAt)
	return &details, nil
}

// UpdateStatus переводит бронирование из статуса from в статус to.
// Если статус уже изменился, возвращает ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from})

	if to == domain.StatusCancelled {
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

func scanBooking(row *sql.Row, booking *domain.Booking) error {
	var (
		createdAt, updatedAt sql.NullTime
		promoCode            sql.NullString
		cancelledAt          sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.ExperienceID,
		&booking.SlotID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.NumberOfPeople,
		&booking.TotalPrice,
		&promoCode,
		&booking.Discount,
		&booking.Status,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return err
	}
	if !booking.Status.IsValid() {
		return fmt.Errorf("unknown status %q", booking.Status)
	}

	applyNullable(booking, promoCode, cancelledAt, createdAt, updatedAt)
	return nil
}

func applyNullable(booking *domain.Booking, promoCode sql.NullString, cancelledAt, createdAt, updatedAt sql.NullTime) {
	if promoCode.Valid {
		code := promoCode.String
		booking.PromoCode = &code
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		booking.CancelledAt = &t
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
}
