package get_bar_availability

import "errors"

var (
	// ErrBarNotFound возвращается, когда бар не найден
	ErrBarNotFound = errors.New("get_bar_availability: bar not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_bar_availability: invalid input data")

	// ErrInvalidRange возвращается, когда диапазон дат выходит за окно бронирования
	// или конец диапазона раньше начала
	ErrInvalidRange = errors.New("get_bar_availability: invalid date range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_bar_availability: internal error")
)
