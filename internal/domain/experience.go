package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Experience представляет бронируемую активность каталога.
// Для бронирования используется только Price, остальное - витрина
type Experience struct {
	ID          int64
	Title       string
	Description string
	Location    string
	Price       decimal.Decimal // цена за одного человека
	Duration    string
	Category    string
	ImageURL    string
	Rating      float64
	ReviewCount int
	Highlights  []string
	Included    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExperienceFilter фильтр каталога, все поля опциональны
type ExperienceFilter struct {
	Category *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Search   *string
}

// HasCategory возвращает true, если фильтр по категории действительно ограничивает выборку
func (f ExperienceFilter) HasCategory() bool {
	return f.Category != nil && *f.Category != "" && *f.Category != AllCategories
}

// Matches проверяет experience на соответствие фильтру
func (f ExperienceFilter) Matches(e *Experience) bool {
	if f.HasCategory() && e.Category != *f.Category {
		return false
	}
	if f.MinPrice != nil && e.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && e.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.Search != nil && *f.Search != "" {
		term := strings.ToLower(*f.Search)
		if !strings.Contains(strings.ToLower(e.Title), term) &&
			!strings.Contains(strings.ToLower(e.Description), term) &&
			!strings.Contains(strings.ToLower(e.Location), term) {
			return false
		}
	}
	return true
}

// RanksBefore порядок каталога: рейтинг по убыванию, затем число отзывов по убыванию, затем ID
func (e *Experience) RanksBefore(other *Experience) bool {
	if e.Rating != other.Rating {
		return e.Rating > other.Rating
	}
	if e.ReviewCount != other.ReviewCount {
		return e.ReviewCount > other.ReviewCount
	}
	return e.ID < other.ID
}
