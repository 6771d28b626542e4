// Package config загружает конфигурацию сервиса из TOML-файла с переопределением через переменные окружения BOOKIT_*
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "BOOKIT"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	PromotionsFromConfig   = "config"
	PromotionsFromDatabase = "database"
)

// ErrInvalidConfig возвращается при несогласованной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logs       LogsConfig       `toml:"logs"`
	Database   DatabaseConfig   `toml:"database"`
	Storage    StorageConfig    `toml:"storage"`
	Redis      RedisConfig      `toml:"redis"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Promotions PromotionsConfig `toml:"promotions"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type LogsConfig struct {
	Level string `toml:"level" split_words:"true"`
	File  string `toml:"file" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
	MaxTxAttempts   int    `toml:"max_tx_attempts" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// StorageConfig выбор хранилища при старте: postgres или memory
type StorageConfig struct {
	Driver string `toml:"driver" split_words:"true"`
	Seed   bool   `toml:"seed" split_words:"true"`
}

// RedisConfig кэш метаданных каталога, TTL в секундах
type RedisConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	Address  string `toml:"address" split_words:"true"`
	Password string `toml:"password" split_words:"true"`
	DB       int    `toml:"db" split_words:"true"`
	PoolSize int    `toml:"pool_size" split_words:"true"`
	TTL      int    `toml:"ttl" split_words:"true"`
	Prefix   string `toml:"prefix" split_words:"true"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// PromotionsConfig источник промокодов: config (секция codes) или database (таблица promo_codes)
type PromotionsConfig struct {
	Source string            `toml:"source" split_words:"true"`
	Codes  []PromoCodeConfig `toml:"codes" ignored:"true"`
}

type PromoCodeConfig struct {
	Code        string `toml:"code"`
	Kind        string `toml:"kind"`
	Value       string `toml:"value"`
	Description string `toml:"description"`
}

// Default конфигурация для локального запуска без файла
func Default() Config {
	return Config{
		Server: ServerConfig{
			HTTPPort:        5000,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "bookit",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MaxTxAttempts:   3,
		},
		Storage: StorageConfig{
			Driver: StorageMemory,
			Seed:   true,
		},
		Redis: RedisConfig{
			Address:  "localhost:6379",
			PoolSize: 10,
			TTL:      300,
			Prefix:   "bookit:catalog",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "bookit",
		},
		Promotions: PromotionsConfig{
			Source: PromotionsFromConfig,
		},
	}
}

// Load читает файл path поверх значений по умолчанию, затем применяет переменные окружения.
// Отсутствующий файл не ошибка
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Promotions.Source = strings.ToLower(strings.TrimSpace(c.Promotions.Source))
	c.Logs.Level = strings.ToLower(strings.TrimSpace(c.Logs.Level))
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalidConfig)
		}
		if c.Database.MaxTxAttempts < 1 {
			return fmt.Errorf("%w: database.max_tx_attempts must be at least 1", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Redis.Enabled {
		if c.Redis.Address == "" {
			return fmt.Errorf("%w: redis.address is required when redis is enabled", ErrInvalidConfig)
		}
		if c.Redis.TTL <= 0 {
			return fmt.Errorf("%w: redis.ttl must be positive", ErrInvalidConfig)
		}
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}

	switch c.Promotions.Source {
	case PromotionsFromConfig:
		if _, err := c.Promotions.Rules(); err != nil {
			return err
		}
	case PromotionsFromDatabase:
		if c.Storage.Driver != StoragePostgres {
			return fmt.Errorf("%w: promotions.source=database requires storage.driver=postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown promotions.source %q", ErrInvalidConfig, c.Promotions.Source)
	}

	return nil
}

// Rules правила промокодов из секции [[promotions.codes]]; nil, если секция пуста
func (p PromotionsConfig) Rules() ([]domain.PromotionRule, error) {
	if len(p.Codes) == 0 {
		return nil, nil
	}

	rules := make([]domain.PromotionRule, 0, len(p.Codes))
	for _, c := range p.Codes {
		value, err := decimal.NewFromString(strings.TrimSpace(c.Value))
		if err != nil {
			return nil, fmt.Errorf("%w: promotions.codes %s value %q: %v", ErrInvalidConfig, c.Code, c.Value, err)
		}

		rule := domain.PromotionRule{
			Code:        c.Code,
			Kind:        domain.PromotionKind(strings.ToLower(strings.TrimSpace(c.Kind))),
			Value:       value,
			Description: c.Description,
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
