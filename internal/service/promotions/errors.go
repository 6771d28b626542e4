package promotions

import "errors"

var (
	// ErrInvalidCode возвращается, когда промокод не найден
	ErrInvalidCode = errors.New("promotions: invalid promo code")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("promotions: invalid input data")

	// ErrDuplicateCode возвращается, когда в наборе правил встречается один код дважды
	ErrDuplicateCode = errors.New("promotions: duplicate promo code")
)
