package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
)

var (
	// ErrInvalidPartySize возвращается, когда количество человек меньше 1
	ErrInvalidPartySize = errors.New("pricing: party size must be at least 1")

	// ErrNegativeUnitPrice возвращается при отрицательной цене за человека
	ErrNegativeUnitPrice = errors.New("pricing: unit price must not be negative")
)

// PromotionResolver вычисляет скидку по промокоду
type PromotionResolver interface {
	Resolve(code string, base decimal.Decimal) (decimal.Decimal, bool)
}

// Quote результат расчета стоимости
type Quote struct {
	BasePrice  decimal.Decimal
	Discount   decimal.Decimal
	TotalPrice decimal.Decimal

	// PromoCode нормализованный код, если он был распознан и применен
	PromoCode *string
}

// Calculator считает итоговую стоимость бронирования
type Calculator struct {
	resolver PromotionResolver
}

// NewCalculator создает калькулятор
func NewCalculator(resolver PromotionResolver) *Calculator {
	return &Calculator{resolver: resolver}
}

// Price считает base = unit * partySize, скидку по промокоду и total = base - discount (не меньше 0)
func (c *Calculator) Price(unitPrice decimal.Decimal, partySize int, promoCode *string) (Quote, error) {
	if partySize < domain.MinNumberOfPeople {
		return Quote{}, fmt.Errorf("%w: got %d", ErrInvalidPartySize, partySize)
	}
	if unitPrice.IsNegative() {
		return Quote{}, fmt.Errorf("%w: got %s", ErrNegativeUnitPrice, unitPrice)
	}

	base := unitPrice.Mul(decimal.NewFromInt(int64(partySize)))
	quote := Quote{
		BasePrice: base,
		Discount:  decimal.Zero,
	}

	if promoCode != nil && domain.NormalizePromoCode(*promoCode) != "" {
		discount, recognized := c.resolver.Resolve(*promoCode, base)
		if recognized {
			code := domain.NormalizePromoCode(*promoCode)
			quote.PromoCode = &code
			quote.Discount = clamp(discount, base)
		}
	}

	quote.TotalPrice = base.Sub(quote.Discount)
	if quote.TotalPrice.IsNegative() {
		quote.TotalPrice = decimal.Zero
	}

	return quote, nil
}

// clamp удерживает скидку в диапазоне [0, base]
func clamp(discount, base decimal.Decimal) decimal.Decimal {
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(base) {
		return base
	}
	return discount
}
