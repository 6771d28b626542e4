package list_experiences

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/MoNiLBaRiYa/BookIt/internal/service/catalog/models"
)

// ToServiceRequest разбирает query параметры category, minPrice, maxPrice, search
func ToServiceRequest(query url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{}

	if v := query.Get("category"); v != "" {
		req.Category = &v
	}
	if v := query.Get("search"); v != "" {
		req.Search = &v
	}

	var err error
	if req.MinPrice, err = parsePrice(query, "minPrice"); err != nil {
		return nil, err
	}
	if req.MaxPrice, err = parsePrice(query, "maxPrice"); err != nil {
		return nil, err
	}

	return req, nil
}

func parsePrice(query url.Values, name string) (*decimal.Decimal, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &price, nil
}
