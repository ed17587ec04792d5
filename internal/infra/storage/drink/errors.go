package drink

import "errors"

var (
	// ErrDrinkOptionNotFound возвращается, когда позиция меню не найдена
	ErrDrinkOptionNotFound = errors.New("drink.repository: drink option not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("drink.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("drink.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("drink.repository: failed to scan row")
)
