package get_seats_for_date

import "errors"

var (
	// ErrBarNotFound возвращается, когда бар не найден
	ErrBarNotFound = errors.New("get_seats_for_date: bar not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_seats_for_date: invalid input data")

	// ErrInvalidRange возвращается, когда дата выходит за окно бронирования
	ErrInvalidRange = errors.New("get_seats_for_date: date outside booking window")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_seats_for_date: internal error")
)
