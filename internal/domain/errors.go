package domain

import "errors"

var (
	// ErrInsufficientCapacity возвращается, когда в слоте меньше свободных мест, чем запрошено
	ErrInsufficientCapacity = errors.New("domain: insufficient slot capacity")

	// ErrCapacityOverflow возвращается, когда возврат мест превысил бы общую вместимость слота
	ErrCapacityOverflow = errors.New("domain: slot capacity overflow")

	// ErrInvalidSpotCount возвращается при неположительном количестве мест
	ErrInvalidSpotCount = errors.New("domain: spot count must be positive")

	// ErrInvalidPromotion возвращается при некорректном правиле промокода
	ErrInvalidPromotion = errors.New("domain: invalid promotion rule")
)
