package promotions

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	"github.com/MoNiLBaRiYa/BookIt/internal/service/promotions/models"
)

// Resolver вычисляет скидку по промокоду.
// Чистая функция: никакого I/O, одинаковый вход дает одинаковый результат
type Resolver struct {
	rules RuleProvider
}

// NewResolver создает резолвер поверх источника правил
func NewResolver(rules RuleProvider) *Resolver {
	return &Resolver{rules: rules}
}

// Resolve возвращает скидку для суммы base и признак того, что код распознан.
// Неизвестный код - это не ошибка: скидка 0, recognized=false
func (r *Resolver) Resolve(code string, base decimal.Decimal) (discount decimal.Decimal, recognized bool) {
	rule, ok := r.rules.Lookup(code)
	if !ok {
		return decimal.Zero, false
	}
	return rule.DiscountFor(base), true
}

// Service сервис предварительной проверки промокодов
type Service struct {
	rules  RuleProvider
	logger Logger
}

// NewService создает новый экземпляр сервиса промокодов
func NewService(rules RuleProvider, logger Logger) *Service {
	return &Service{
		rules:  rules,
		logger: logger,
	}
}

// Validate считает скидку для суммы без резервирования чего-либо
func (s *Service) Validate(ctx context.Context, req *models.ValidateRequest) (*models.ValidateResponse, error) {
	code := domain.NormalizePromoCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	rule, ok := s.rules.Lookup(code)
	if !ok {
		s.logger.Warn("Validate: unknown promo code %q", code)
		return nil, ErrInvalidCode
	}

	discount := rule.DiscountFor(req.Amount)

	s.logger.Info("Validate: code=%s amount=%s discount=%s", rule.Code, req.Amount, discount)
	return &models.ValidateResponse{
		Code:           rule.Code,
		Description:    rule.Description,
		Discount:       discount,
		OriginalAmount: req.Amount,
		FinalAmount:    req.Amount.Sub(discount),
	}, nil
}
