package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PromotionKind тип скидки промокода
type PromotionKind string

const (
	PromotionPercentage PromotionKind = "percentage"
	PromotionFixed      PromotionKind = "fixed"
)

var hundred = decimal.NewFromInt(100)

// PromotionRule правило промокода
type PromotionRule struct {
	Code        string
	Kind        PromotionKind
	Value       decimal.Decimal
	Description string
}

// NormalizePromoCode приводит код к ключу поиска (без пробелов, в верхнем регистре)
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate проверяет корректность правила
func (r PromotionRule) Validate() error {
	if NormalizePromoCode(r.Code) == "" {
		return fmt.Errorf("%w: code is empty", ErrInvalidPromotion)
	}
	if r.Value.IsNegative() || r.Value.IsZero() {
		return fmt.Errorf("%w: %s value must be positive", ErrInvalidPromotion, r.Code)
	}
	switch r.Kind {
	case PromotionPercentage:
		if r.Value.GreaterThan(hundred) {
			return fmt.Errorf("%w: %s percentage above 100", ErrInvalidPromotion, r.Code)
		}
	case PromotionFixed:
	default:
		return fmt.Errorf("%w: %s unknown kind %q", ErrInvalidPromotion, r.Code, r.Kind)
	}
	return nil
}

// DiscountFor считает скидку для суммы base.
// Результат округляется до копеек и никогда не превышает base
func (r PromotionRule) DiscountFor(base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch r.Kind {
	case PromotionPercentage:
		discount = base.Mul(r.Value).Div(hundred)
	case PromotionFixed:
		discount = decimal.Min(r.Value, base)
	default:
		return decimal.Zero
	}

	discount = discount.Round(MoneyPlaces)
	if discount.GreaterThan(base) {
		return base
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}
