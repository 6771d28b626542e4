package experience

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	"github.com/MoNiLBaRiYa/BookIt/pkg/dbmetrics"
	"github.com/MoNiLBaRiYa/BookIt/pkg/psqlbuilder"
)

var experienceColumns = []string{
	"id",
	"title",
	"description",
	"location",
	"price",
	"duration",
	"category",
	"image_url",
	"rating",
	"review_count",
	"highlights",
	"included",
	"created_at",
	"updated_at",
}

// Repository каталог experiences (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает experience по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(experienceColumns...).
		From("experiences").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	exp, err := scanExperience(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExperienceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan experience: %w", ErrScanRow, err)
	}

	return exp, nil
}

// List возвращает experiences по фильтру, отсортированные по рейтингу и числу отзывов
func (r *Repository) List(ctx context.Context, filter domain.ExperienceFilter) ([]*domain.Experience, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(experienceColumns...).
		From("experiences")

	if filter.HasCategory() {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.MinPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"price": *filter.MaxPrice})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + escapeLike(*filter.Search) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
			squirrel.ILike{"location": pattern},
		})
	}

	query, args, err := selectBuilder.
		OrderBy("rating DESC", "review_count DESC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	experiences := make([]*domain.Experience, 0)
	for rows.Next() {
		exp, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		experiences = append(experiences, exp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return experiences, nil
}

// likeEscaper экранирует спецсимволы LIKE; обратный слеш в PostgreSQL escape-символ по умолчанию
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike превращает строку поиска в литерал для ILIKE, как strings.Contains в хранилище в памяти
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExperience(row rowScanner) (*domain.Experience, error) {
	var (
		exp                  domain.Experience
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&exp.ID,
		&exp.Title,
		&exp.Description,
		&exp.Location,
		&exp.Price,
		&exp.Duration,
		&exp.Category,
		&exp.ImageURL,
		&exp.Rating,
		&exp.ReviewCount,
		pq.Array(&exp.Highlights),
		pq.Array(&exp.Included),
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	exp.CreatedAt = createdAt.Time
	exp.UpdatedAt = updatedAt.Time
	return &exp, nil
}
