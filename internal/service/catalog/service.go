package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	experienceRepo "github.com/MoNiLBaRiYa/BookIt/internal/infra/storage/experience"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/catalog/models"
)

const (
	cacheList       = "catalog_list"
	cacheExperience = "catalog_experience"
)

// Service сервис каталога experiences
type Service struct {
	experienceRepo ExperienceRepository
	slotRepo       SlotRepository
	cache          Cache
	metrics        CacheMetrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(experienceRepo ExperienceRepository, slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		experienceRepo: experienceRepo,
		slotRepo:       slotRepo,
		metrics:        noopMetrics{},
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// WithCache включает кэш метаданных; nil отключает его
func (s *Service) WithCache(cache Cache, metrics CacheMetrics) *Service {
	s.cache = cache
	if metrics != nil {
		s.metrics = metrics
	}
	return s
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// List возвращает experiences по фильтру: рейтинг и число отзывов по убыванию
func (s *Service) List(ctx context.Context, req *models.ListRequest) ([]models.ExperienceResponse, error) {
	filter, err := toFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	if cached, ok := s.cachedList(ctx, filter); ok {
		return models.FromDomainExperienceList(cached), nil
	}

	experiences, err := s.experienceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, filter, experiences); err != nil {
			s.logger.Warn("List: failed to cache result: %v", err)
		}
	}

	s.logger.Info("List: found %d experiences", len(experiences))
	return models.FromDomainExperienceList(experiences), nil
}

// Get возвращает experience и его будущие слоты со свободными местами.
// Слоты всегда читаются из хранилища, кэшируются только метаданные
func (s *Service) Get(ctx context.Context, id int64) (*models.ExperienceDetailsResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: experience id must be positive", ErrInvalidInput)
	}

	exp, err := s.experience(ctx, id)
	if err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.ListAvailableByExperience(ctx, id, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("Get: failed to list slots for experience id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - list slots: %v", ErrInternal, err)
	}

	resp := &models.ExperienceDetailsResponse{
		ExperienceResponse: models.FromDomainExperience(exp),
		Slots:              make([]models.SlotResponse, 0, len(slots)),
	}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, models.FromDomainSlot(slot))
	}
	return resp, nil
}

func (s *Service) experience(ctx context.Context, id int64) (*domain.Experience, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetExperience(ctx, id)
		switch {
		case err != nil:
			s.logger.Warn("Get: cache read failed for experience id=%d: %v", id, err)
		case ok:
			s.metrics.CacheHit(cacheExperience)
			return cached, nil
		default:
			s.metrics.CacheMiss(cacheExperience)
		}
	}

	exp, err := s.experienceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, experienceRepo.ErrExperienceNotFound) {
			s.logger.Warn("Get: experience id=%d not found", id)
			return nil, ErrExperienceNotFound
		}
		s.logger.Error("Get: repository error for experience id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.SetExperience(ctx, exp); err != nil {
			s.logger.Warn("Get: failed to cache experience id=%d: %v", id, err)
		}
	}
	return exp, nil
}

func (s *Service) cachedList(ctx context.Context, filter domain.ExperienceFilter) ([]*domain.Experience, bool) {
	if s.cache == nil {
		return nil, false
	}

	cached, ok, err := s.cache.GetList(ctx, filter)
	if err != nil {
		s.logger.Warn("List: cache read failed: %v", err)
		return nil, false
	}
	if !ok {
		s.metrics.CacheMiss(cacheList)
		return nil, false
	}

	s.metrics.CacheHit(cacheList)
	return cached, true
}

// toFilter проверяет и нормализует фильтры запроса
func toFilter(req *models.ListRequest) (domain.ExperienceFilter, error) {
	var filter domain.ExperienceFilter
	if req == nil {
		return filter, nil
	}

	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category != "" {
			filter.Category = &category
		}
	}
	if req.Search != nil {
		search := strings.TrimSpace(*req.Search)
		if search != "" {
			filter.Search = &search
		}
	}

	if req.MinPrice != nil && req.MinPrice.IsNegative() {
		return filter, fmt.Errorf("%w: minPrice must not be negative", ErrInvalidInput)
	}
	if req.MaxPrice != nil && req.MaxPrice.IsNegative() {
		return filter, fmt.Errorf("%w: maxPrice must not be negative", ErrInvalidInput)
	}
	if req.MinPrice != nil && req.MaxPrice != nil && req.MinPrice.GreaterThan(*req.MaxPrice) {
		return filter, fmt.Errorf("%w: minPrice is greater than maxPrice", ErrInvalidInput)
	}
	filter.MinPrice = req.MinPrice
	filter.MaxPrice = req.MaxPrice

	return filter, nil
}
