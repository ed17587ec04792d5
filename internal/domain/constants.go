package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Booking window business rule
const (
	// MaxBookingWindowDays верхняя граница окна бронирования: сегодня + 30 дней
	MaxBookingWindowDays = 30
)

// Business validation constants
const (
	MinPartySize                = 1
	MaxPartySize                = 100
	MaxSeatUnitsPerType         = 500
	MaxSpecialRequestsLength    = 500
	MaxCancellationReasonLength = 500
	MaxDrinkLineQuantity        = 99
)

// SingleDrinkName фиксированное имя позиции single-drink в меню бара
// Бутылки именуются владельцем, single-drink всегда ровно одна на бар
const SingleDrinkName = "single"

// InactiveStatuses список статусов, не занимающих места
// Используется при подсчёте оставшейся вместимости
var InactiveStatuses = []ReservationStatus{
	StatusCancelledByCustomer,
	StatusCancelledByBar,
	StatusNoShow,
}

// CanonicalSeatOrder фиксированный порядок типов посадки в ответах API
// Клиент рендерит все три типа независимо от конфигурации бара, поэтому
// порядок должен быть детерминированным
var CanonicalSeatOrder = []SeatType{
	SeatTypeTable,
	SeatTypeBar,
	SeatTypeVIP,
}
