// Package catalog read-through кэш метаданных каталога в Redis.
// Вместимость слотов сюда никогда не попадает: она читается только из хранилища
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
)

var (
	ErrEncode = errors.New("catalog.cache: failed to encode value")
	ErrDecode = errors.New("catalog.cache: failed to decode value")
	ErrRedis  = errors.New("catalog.cache: redis command failed")
)

const defaultPrefix = "bookit:catalog"

// Options настройки подключения к Redis
type Options struct {
	Address  string
	Password string
	DB       int
	PoolSize int
}

// NewRedisClient создает новый клиент Redis
func NewRedisClient(opts Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: opts.PoolSize,
	})
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client redis.Cmdable) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Cache кэш experiences и результатов поиска по каталогу
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

// New создает кэш; пустой prefix заменяется на "bookit:catalog"
func New(client redis.Cmdable, ttl time.Duration, prefix string) *Cache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Cache{client: client, ttl: ttl, prefix: prefix}
}

type cachedExperience struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Price       decimal.Decimal `json:"price"`
	Duration    string          `json:"duration"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"reviewCount"`
	Highlights  []string        `json:"highlights"`
	Included    []string        `json:"included"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func toCached(e *domain.Experience) cachedExperience {
	return cachedExperience{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Price:       e.Price,
		Duration:    e.Duration,
		Category:    e.Category,
		ImageURL:    e.ImageURL,
		Rating:      e.Rating,
		ReviewCount: e.ReviewCount,
		Highlights:  e.Highlights,
		Included:    e.Included,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (c cachedExperience) toDomain() *domain.Experience {
	return &domain.Experience{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Location:    c.Location,
		Price:       c.Price,
		Duration:    c.Duration,
		Category:    c.Category,
		ImageURL:    c.ImageURL,
		Rating:      c.Rating,
		ReviewCount: c.ReviewCount,
		Highlights:  c.Highlights,
		Included:    c.Included,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (c *Cache) experienceKey(id int64) string {
	return c.prefix + ":experience:" + strconv.FormatInt(id, 10)
}

// listKey ключ результата поиска; одинаковые фильтры дают одинаковый ключ
func (c *Cache) listKey(f domain.ExperienceFilter) string {
	parts := []string{c.prefix, "list"}

	category := ""
	if f.HasCategory() {
		category = *f.Category
	}
	parts = append(parts, "c="+category)

	if f.MinPrice != nil {
		parts = append(parts, "min="+f.MinPrice.String())
	} else {
		parts = append(parts, "min=")
	}
	if f.MaxPrice != nil {
		parts = append(parts, "max="+f.MaxPrice.String())
	} else {
		parts = append(parts, "max=")
	}

	search := ""
	if f.Search != nil {
		search = strings.ToLower(strings.TrimSpace(*f.Search))
	}
	parts = append(parts, "q="+search)

	return strings.Join(parts, ":")
}

// GetExperience возвращает experience из кэша; ok=false при промахе
func (c *Cache) GetExperience(ctx context.Context, id int64) (*domain.Experience, bool, error) {
	var cached cachedExperience
	ok, err := c.get(ctx, c.experienceKey(id), &cached)
	if err != nil || !ok {
		return nil, false, err
	}
	return cached.toDomain(), true, nil
}

// SetExperience кладет experience в кэш на ttl
func (c *Cache) SetExperience(ctx context.Context, e *domain.Experience) error {
	return c.set(ctx, c.experienceKey(e.ID), toCached(e))
}

// GetList возвращает результат поиска по фильтру
func (c *Cache) GetList(ctx context.Context, f domain.ExperienceFilter) ([]*domain.Experience, bool, error) {
	var cached []cachedExperience
	ok, err := c.get(ctx, c.listKey(f), &cached)
	if err != nil || !ok {
		return nil, false, err
	}

	experiences := make([]*domain.Experience, 0, len(cached))
	for _, e := range cached {
		experiences = append(experiences, e.toDomain())
	}
	return experiences, true, nil
}

// SetList кладет результат поиска в кэш
func (c *Cache) SetList(ctx context.Context, f domain.ExperienceFilter, experiences []*domain.Experience) error {
	cached := make([]cachedExperience, 0, len(experiences))
	for _, e := range experiences {
		cached = append(cached, toCached(e))
	}
	return c.set(ctx, c.listKey(f), cached)
}

func (c *Cache) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: GET %s: %w", ErrRedis, key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrDecode, key, err)
	}
	return true, nil
}

func (c *Cache) set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, key, err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: SET %s: %w", ErrRedis, key, err)
	}
	return nil
}
