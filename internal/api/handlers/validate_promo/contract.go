package validate_promo

import (
	"context"

	"github.com/MoNiLBaRiYa/BookIt/internal/service/promotions/models"
)

type PromotionService interface {
	Validate(ctx context.Context, req *models.ValidateRequest) (*models.ValidateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
