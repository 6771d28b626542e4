package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrInsufficientCapacity возвращается, когда в слоте недостаточно свободных мест
	ErrInsufficientCapacity = errors.New("slot.repository: insufficient capacity")

	// ErrCapacityOverflow возвращается, когда возврат мест превысил бы total_spots
	ErrCapacityOverflow = errors.New("slot.repository: capacity overflow")

	// ErrNoTransaction возвращается, когда изменение вместимости выполняется вне транзакции
	ErrNoTransaction = errors.New("slot.repository: operation requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
