package schedule

import "errors"

var (
	// ErrBarNotFound возвращается, когда бар не найден
	ErrBarNotFound = errors.New("bar not found")

	// ErrExceptionNotFound возвращается, когда исключение для даты не найдено
	ErrExceptionNotFound = errors.New("exception not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
