package seatoption

import "errors"

var (
	// ErrSeatOptionNotFound возвращается, когда конфигурация типа посадки не найдена
	ErrSeatOptionNotFound = errors.New("seatoption.repository: seat option not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("seatoption.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("seatoption.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("seatoption.repository: failed to scan row")
)
