package slot

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoNiLBaRiYa/BookIt/pkg/dbmetrics"
	"github.com/MoNiLBaRiYa/BookIt/pkg/txmanager"
)

func newMockRepo(t *testing.T) (*Repository, *txmanager.TransactionManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), txmanager.NewTransactionManager(wrapped), mock
}

// sqlPattern собирает регулярное выражение из фрагментов запроса в заданном порядке
func sqlPattern(parts ...string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return strings.Join(quoted, ".*")
}

func slotRow(available, total int) *sqlmock.Rows {
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(slotColumns).
		AddRow(int64(7), int64(3), time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC), "06:00", "09:00", total, available, now, now)
}

var (
	reserveSQL = sqlPattern("UPDATE slots SET available_spots = available_spots - $1", "updated_at = NOW()",
		"WHERE id = $2 AND available_spots >= $3", "RETURNING id")
	releaseSQL = sqlPattern("UPDATE slots SET available_spots = available_spots + $1",
		"WHERE id = $2 AND available_spots + $3 <= total_spots", "RETURNING id")
	selectSQL = sqlPattern("SELECT id", "FROM slots WHERE id = $1") + "$"
)

func TestReserve_DecrementsWithGuardedUpdate(t *testing.T) {
	repo, tx, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(reserveSQL).
		WithArgs(int64(2), int64(7), int64(2)).
		WillReturnRows(slotRow(3, 5))
	mock.ExpectCommit()

	var reserved int
	err := tx.Do(context.Background(), func(ctx context.Context) error {
		slot, err := repo.Reserve(ctx, 7, 2)
		if err != nil {
			return err
		}
		reserved = slot.AvailableSpots
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, reserved)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReserve_ZeroRowsIsExplained(t *testing.T) {
	tests := []struct {
		name     string
		existing *sqlmock.Rows
		wantErr  error
		wantMsg  string
	}{
		{
			name:     "slot without enough spots",
			existing: slotRow(1, 5),
			wantErr:  ErrInsufficientCapacity,
			wantMsg:  "slot id=7 has 1 of 5 spots available",
		},
		{
			name:     "missing slot",
			existing: sqlmock.NewRows(slotColumns),
			wantErr:  ErrSlotNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, tx, mock := newMockRepo(t)

			mock.ExpectBegin()
			mock.ExpectQuery(reserveSQL).
				WithArgs(int64(2), int64(7), int64(2)).
				WillReturnRows(sqlmock.NewRows(slotColumns))
			mock.ExpectQuery(selectSQL).
				WithArgs(int64(7)).
				WillReturnRows(tt.existing)
			mock.ExpectRollback()

			err := tx.Do(context.Background(), func(ctx context.Context) error {
				_, err := repo.Reserve(ctx, 7, 2)
				return err
			})

			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReserve_RequiresTransaction(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	_, err := repo.Reserve(context.Background(), 7, 2)
	require.ErrorIs(t, err, ErrNoTransaction)

	_, err = repo.Release(context.Background(), 7, 2)
	require.ErrorIs(t, err, ErrNoTransaction)

	_, err = repo.GetByIDForUpdate(context.Background(), 7)
	require.ErrorIs(t, err, ErrNoTransaction)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReserve_RejectsNonPositiveCountWithoutQuery(t *testing.T) {
	repo, tx, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tx.Do(context.Background(), func(ctx context.Context) error {
		_, err := repo.Reserve(ctx, 7, 0)
		return err
	})

	require.ErrorIs(t, err, ErrInsufficientCapacity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelease_OverflowIsRejected(t *testing.T) {
	repo, tx, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(releaseSQL).
		WithArgs(int64(3), int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows(slotColumns))
	mock.ExpectQuery(selectSQL).
		WithArgs(int64(7)).
		WillReturnRows(slotRow(4, 5))
	mock.ExpectRollback()

	err := tx.Do(context.Background(), func(ctx context.Context) error {
		_, err := repo.Release(ctx, 7, 3)
		return err
	})

	require.ErrorIs(t, err, ErrCapacityOverflow)
	assert.Contains(t, err.Error(), "has 4 of 5 spots available")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDForUpdate_LocksRow(t *testing.T) {
	repo, tx, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(sqlPattern("FROM slots WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(7)).
		WillReturnRows(slotRow(5, 5))
	mock.ExpectCommit()

	err := tx.Do(context.Background(), func(ctx context.Context) error {
		slot, err := repo.GetByIDForUpdate(ctx, 7)
		if err != nil {
			return err
		}
		assert.Equal(t, "06:00 - 09:00", slot.TimeRange())
		return nil
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_ExecErrorIsWrapped(t *testing.T) {
	repo, _, mock := newMockRepo(t)

	mock.ExpectQuery(selectSQL).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, ErrScanRow)
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}
