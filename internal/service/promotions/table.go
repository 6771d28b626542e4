package promotions

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
)

// Table неизменяемая таблица промокодов в памяти.
// После создания только читается, поэтому безопасна для конкурентного доступа
type Table struct {
	rules map[string]domain.PromotionRule
}

// NewTable строит таблицу из правил, нормализуя коды
func NewTable(rules []domain.PromotionRule) (*Table, error) {
	t := &Table{rules: make(map[string]domain.PromotionRule, len(rules))}

	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		key := domain.NormalizePromoCode(rule.Code)
		if _, exists := t.rules[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, key)
		}
		rule.Code = key
		t.rules[key] = rule
	}

	return t, nil
}

// Lookup ищет правило по коду без учета регистра
func (t *Table) Lookup(code string) (domain.PromotionRule, bool) {
	rule, ok := t.rules[domain.NormalizePromoCode(code)]
	return rule, ok
}

// Len количество правил в таблице
func (t *Table) Len() int {
	return len(t.rules)
}

// DefaultRules промокоды витрины по умолчанию
func DefaultRules() []domain.PromotionRule {
	return []domain.PromotionRule{
		{Code: "SAVE10", Kind: domain.PromotionPercentage, Value: decimal.NewFromInt(10), Description: "Save 10% on your booking"},
		{Code: "FLAT100", Kind: domain.PromotionFixed, Value: decimal.NewFromInt(100), Description: "Get ₹100 off on your booking"},
		{Code: "WELCOME20", Kind: domain.PromotionPercentage, Value: decimal.NewFromInt(20), Description: "Welcome offer: 20% off"},
		{Code: "FIRST50", Kind: domain.PromotionFixed, Value: decimal.NewFromInt(50), Description: "First booking: ₹50 off"},
	}
}
