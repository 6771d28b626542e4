package experience

import "errors"

var (
	// ErrExperienceNotFound возвращается, когда experience не найден
	ErrExperienceNotFound = errors.New("experience.repository: experience not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("experience.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("experience.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("experience.repository: failed to scan row")
)
