package get_experience

import (
	"context"

	"github.com/MoNiLBaRiYa/BookIt/internal/service/catalog/models"
)

type CatalogService interface {
	Get(ctx context.Context, id int64) (*models.ExperienceDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
