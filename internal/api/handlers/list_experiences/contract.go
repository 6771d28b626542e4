package list_experiences

import (
	"context"

	"github.com/MoNiLBaRiYa/BookIt/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, req *models.ListRequest) ([]models.ExperienceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
