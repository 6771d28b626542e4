package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/MoNiLBaRiYa/BookIt/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/MoNiLBaRiYa/BookIt/internal/api/handlers/create_booking"
	getBookingHandler "github.com/MoNiLBaRiYa/BookIt/internal/api/handlers/get_booking"
	getExperienceHandler "github.com/MoNiLBaRiYa/BookIt/internal/api/handlers/get_experience"
	healthHandler "github.com/MoNiLBaRiYa/BookIt/internal/api/handlers/health"
	listExperiencesHandler "github.com/MoNiLBaRiYa/BookIt/internal/api/handlers/list_experiences"
	validatePromoHandler "github.com/MoNiLBaRiYa/BookIt/internal/api/handlers/validate_promo"
	"github.com/MoNiLBaRiYa/BookIt/internal/api/middleware"
	"github.com/MoNiLBaRiYa/BookIt/internal/config"
	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	catalogCache "github.com/MoNiLBaRiYa/BookIt/internal/infra/cache/catalog"
	"github.com/MoNiLBaRiYa/BookIt/internal/infra/memory"
	bookingRepo "github.com/MoNiLBaRiYa/BookIt/internal/infra/storage/booking"
	experienceRepo "github.com/MoNiLBaRiYa/BookIt/internal/infra/storage/experience"
	promotionRepo "github.com/MoNiLBaRiYa/BookIt/internal/infra/storage/promotion"
	slotRepo "github.com/MoNiLBaRiYa/BookIt/internal/infra/storage/slot"
	bookingsService "github.com/MoNiLBaRiYa/BookIt/internal/service/bookings"
	catalogService "github.com/MoNiLBaRiYa/BookIt/internal/service/catalog"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/pricing"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/promotions"
	createBookingUC "github.com/MoNiLBaRiYa/BookIt/internal/usecase/create_booking"
	"github.com/MoNiLBaRiYa/BookIt/pkg/dbmetrics"
	"github.com/MoNiLBaRiYa/BookIt/pkg/logger"
	"github.com/MoNiLBaRiYa/BookIt/pkg/metrics"
	"github.com/MoNiLBaRiYa/BookIt/pkg/txmanager"
)

// slotStore объединение требований всех потребителей к репозиторию слотов
type slotStore interface {
	createBookingUC.SlotRepository
	bookingsService.SlotRepository
	catalogService.SlotRepository
}

type bookingStore interface {
	createBookingUC.BookingRepository
	bookingsService.BookingRepository
}

type experienceStore interface {
	createBookingUC.ExperienceRepository
	catalogService.ExperienceRepository
}

// storage выбранное при старте хранилище
type storage struct {
	slots       slotStore
	bookings    bookingStore
	experiences experienceStore
	txManager   createBookingUC.TransactionManager
	rules       func(ctx context.Context) ([]domain.PromotionRule, error)
	pinger      healthHandler.Pinger
	close       func()
}

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting BookIt...")
	log.Info("Configuration loaded from %s (storage=%s, promotions=%s)",
		*configPath, cfg.Storage.Driver, cfg.Promotions.Source)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	stopMetricsCh := make(chan struct{})

	var store *storage
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		store, err = openPostgres(cfg, metricsCollector, stopMetricsCh, log)
	default:
		store = openMemory(cfg, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Промокоды загружаются один раз при старте
	rules, err := loadPromotionRules(cfg, store)
	if err != nil {
		log.Fatal("Failed to load promotion rules: %v", err)
	}
	promoTable, err := promotions.NewTable(rules)
	if err != nil {
		log.Fatal("Invalid promotion rules: %v", err)
	}
	log.Info("Loaded %d promotion codes from %s", promoTable.Len(), cfg.Promotions.Source)

	// Инициализируем сервисы
	calculator := pricing.NewCalculator(promotions.NewResolver(promoTable))
	promoSvc := promotions.NewService(promoTable, log)

	bookingSvc := bookingsService.NewService(store.bookings, store.slots, store.txManager, log)
	catalogSvc := catalogService.NewService(store.experiences, store.slots, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.slots,
		store.experiences,
		store.bookings,
		calculator,
		store.txManager,
		log,
	)

	if cfg.Metrics.Enabled {
		createBookingUseCase.WithMetrics(metricsCollector)
		bookingSvc.WithMetrics(metricsCollector)
	}

	if cfg.Redis.Enabled {
		redisClient := catalogCache.NewRedisClient(catalogCache.Options{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := catalogCache.Ping(pingCtx, redisClient); err != nil {
			// каталог работает и без кэша
			log.Warn("Redis is unreachable at %s, catalog cache will fall through: %v", cfg.Redis.Address, err)
		}
		cancel()

		cache := catalogCache.New(redisClient, time.Duration(cfg.Redis.TTL)*time.Second, cfg.Redis.Prefix)
		if cfg.Metrics.Enabled {
			catalogSvc.WithCache(cache, metricsCollector)
		} else {
			catalogSvc.WithCache(cache, nil)
		}
		log.Info("Catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Address, cfg.Redis.TTL)
	}

	// Инициализируем handlers
	listExperiences := listExperiencesHandler.NewHandler(catalogSvc, log)
	getExperience := getExperienceHandler.NewHandler(catalogSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	validatePromo := validatePromoHandler.NewHandler(promoSvc, log)
	health := healthHandler.NewHandler(cfg.Storage.Driver, store.pinger, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recovery(log), middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api").Subrouter()

	// Каталог
	api.HandleFunc("/experiences", listExperiences.Handle).Methods(http.MethodGet)
	api.HandleFunc("/experiences/{id}", getExperience.Handle).Methods(http.MethodGet)

	// Бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Промокоды
	api.HandleFunc("/promo/validate", validatePromo.Handle).Methods(http.MethodPost)

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// openPostgres подключается к базе и собирает репозитории поверх dbmetrics-обертки
func openPostgres(cfg *config.Config, collector *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if collector != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, collector, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	promotionRepository := promotionRepo.NewRepository(wrappedDB)

	return &storage{
		slots:       slotRepo.NewRepository(wrappedDB),
		bookings:    bookingRepo.NewRepository(wrappedDB),
		experiences: experienceRepo.NewRepository(wrappedDB),
		txManager:   txmanager.NewTransactionManager(wrappedDB).WithMaxAttempts(cfg.Database.MaxTxAttempts),
		rules: func(ctx context.Context) ([]domain.PromotionRule, error) {
			return promotionRepository.ListActive(ctx)
		},
		pinger: wrappedDB,
		close:  func() { _ = db.Close() },
	}, nil
}

// openMemory хранилище в памяти процесса, при storage.seed заполняется демо-каталогом
func openMemory(cfg *config.Config, log *logger.Logger) *storage {
	store := memory.NewStore()
	if cfg.Storage.Seed {
		slots := memory.Seed(store, time.Now().UTC())
		log.Info("Memory store seeded with demo catalog (%d slots)", slots)
	}

	return &storage{
		slots:       store.Slots(),
		bookings:    store.Bookings(),
		experiences: store.Experiences(),
		txManager:   store.TxManager(),
		close:       func() {},
	}
}

// loadPromotionRules правила из конфигурации или из таблицы promotions
func loadPromotionRules(cfg *config.Config, store *storage) ([]domain.PromotionRule, error) {
	if cfg.Promotions.Source == config.PromotionsFromDatabase {
		if store.rules == nil {
			return nil, fmt.Errorf("storage %s cannot serve promotions", cfg.Storage.Driver)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return store.rules(ctx)
	}

	rules, err := cfg.Promotions.Rules()
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return promotions.DefaultRules(), nil
	}
	return rules, nil
}
