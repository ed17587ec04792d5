package create_reservation

import (
	"errors"
	"fmt"
)

var (
	// ErrBarNotFound возвращается, когда бар не найден
	ErrBarNotFound = errors.New("create_reservation: bar not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidRange возвращается, когда дата вне окна бронирования
	ErrInvalidRange = errors.New("create_reservation: date outside booking window")

	// ErrBarClosed возвращается, когда бар закрыт в запрошенную дату
	ErrBarClosed = errors.New("create_reservation: bar is closed on this date")

	// ErrSeatTypeUnavailable возвращается, когда тип посадки не настроен или выключен
	ErrSeatTypeUnavailable = errors.New("create_reservation: seat type is not offered")

	// ErrPartySizeOutOfRange возвращается, когда размер компании вне границ типа
	ErrPartySizeOutOfRange = errors.New("create_reservation: party size out of range")

	// ErrDrinkMinimumNotMet возвращается, когда заказ напитков не покрывает
	// минимальные требования типа посадки
	ErrDrinkMinimumNotMet = errors.New("create_reservation: drink minimum not met")

	// ErrSoldOut возвращается, когда все места типа на дату уже заняты
	ErrSoldOut = errors.New("create_reservation: seat type is sold out for this date")

	// ErrDrinkOptionNotFound возвращается, когда позиция меню не принадлежит бару
	ErrDrinkOptionNotFound = errors.New("create_reservation: drink option not found")

	// ErrDrinkAttachmentFailed возвращается, когда бронь создана, но напитки
	// не удалось сохранить. Бронь при этом остаётся в силе
	ErrDrinkAttachmentFailed = errors.New("create_reservation: reservation created, drinks not attached")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// DrinkMinimumError детализирует непокрытый минимум: какой именно порог
// нарушен и сколько не хватает
type DrinkMinimumError struct {
	MinBottles     int     // Требуемый минимум бутылок (0, если не нарушен)
	ActualBottles  int     // Бутылок в заказе
	MinConsumption float64 // Требуемая минимальная сумма (0, если не нарушена)
	ActualAmount   float64 // Сумма заказа по ценам меню
}

func (e *DrinkMinimumError) Error() string {
	if e.MinBottles > 0 {
		return fmt.Sprintf("%v: requires at least %d bottle(s), got %d, short by %d",
			ErrDrinkMinimumNotMet, e.MinBottles, e.ActualBottles, e.MinBottles-e.ActualBottles)
	}
	return fmt.Sprintf("%v: requires minimum consumption %.2f, got %.2f, short by %.2f",
		ErrDrinkMinimumNotMet, e.MinConsumption, e.ActualAmount, e.MinConsumption-e.ActualAmount)
}

// Unwrap делает ошибку совместимой с errors.Is(err, ErrDrinkMinimumNotMet)
func (e *DrinkMinimumError) Unwrap() error {
	return ErrDrinkMinimumNotMet
}
