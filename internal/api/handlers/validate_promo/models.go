package validate_promo

import (
	"github.com/shopspring/decimal"

	"github.com/MoNiLBaRiYa/BookIt/internal/service/promotions/models"
)

// ValidatePromoRequest HTTP request model
type ValidatePromoRequest struct {
	Code   string           `json:"code"`
	Amount *decimal.Decimal `json:"amount"`
}

// ValidatePromoResponse HTTP response model
type ValidatePromoResponse struct {
	Code           string  `json:"code"`
	Description    string  `json:"description"`
	Discount       float64 `json:"discount"`
	OriginalAmount float64 `json:"originalAmount"`
	FinalAmount    float64 `json:"finalAmount"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса; отсутствующая сумма считается нулевой
func (r *ValidatePromoRequest) ToServiceRequest() *models.ValidateRequest {
	amount := decimal.Zero
	if r.Amount != nil {
		amount = *r.Amount
	}
	return &models.ValidateRequest{
		Code:   r.Code,
		Amount: amount,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ValidateResponse) *ValidatePromoResponse {
	return &ValidatePromoResponse{
		Code:           resp.Code,
		Description:    resp.Description,
		Discount:       resp.Discount.InexactFloat64(),
		OriginalAmount: resp.OriginalAmount.InexactFloat64(),
		FinalAmount:    resp.FinalAmount.InexactFloat64(),
	}
}
