package catalog

import (
	"context"
	"time"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
)

// ExperienceRepository интерфейс каталога
type ExperienceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Experience, error)
	List(ctx context.Context, filter domain.ExperienceFilter) ([]*domain.Experience, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListAvailableByExperience(ctx context.Context, experienceID int64, from time.Time) ([]*domain.Slot, error)
}

// Cache кэш метаданных каталога (опционально)
type Cache interface {
	GetExperience(ctx context.Context, id int64) (*domain.Experience, bool, error)
	SetExperience(ctx context.Context, e *domain.Experience) error
	GetList(ctx context.Context, filter domain.ExperienceFilter) ([]*domain.Experience, bool, error)
	SetList(ctx context.Context, filter domain.ExperienceFilter, experiences []*domain.Experience) error
}

// CacheMetrics учет попаданий в кэш
type CacheMetrics interface {
	CacheHit(cache string)
	CacheMiss(cache string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopMetrics struct{}

func (noopMetrics) CacheHit(string)  {}
func (noopMetrics) CacheMiss(string) {}
