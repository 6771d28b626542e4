package models

import "github.com/shopspring/decimal"

// ValidateRequest запрос на предварительный расчет скидки
type ValidateRequest struct {
	Code   string
	Amount decimal.Decimal
}

// ValidateResponse результат предварительного расчета скидки
type ValidateResponse struct {
	Code           string
	Description    string
	Discount       decimal.Decimal
	OriginalAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}
