package catalog

import "errors"

var (
	// ErrExperienceNotFound возвращается, когда experience не найден
	ErrExperienceNotFound = errors.New("experience not found")

	// ErrInvalidInput возвращается при некорректных фильтрах
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
