package bar

import "errors"

var (
	// ErrBarNotFound возвращается, когда бар не найден
	ErrBarNotFound = errors.New("bar.repository: bar not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bar.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bar.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("bar.repository: failed to scan row")
)
