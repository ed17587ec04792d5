package create_reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BarID <= 0 {
		return fmt.Errorf("%w: barID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.SeatType.IsValid() {
		return fmt.Errorf("%w: unknown seat type %q", ErrInvalidInput, req.SeatType)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: partySize must be between %d and %d",
			ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests must not exceed %d characters",
			ErrInvalidInput, domain.MaxSpecialRequestsLength)
	}

	if req.IdempotencyKey != nil {
		if _, err := uuid.Parse(*req.IdempotencyKey); err != nil {
			return fmt.Errorf("%w: idempotencyKey must be a valid UUID", ErrInvalidInput)
		}
	}

	seen := make(map[int64]struct{}, len(req.Drinks))
	for i, line := range req.Drinks {
		if line.DrinkOptionID <= 0 {
			return fmt.Errorf("%w: drinks[%d].drinkOptionId must be positive", ErrInvalidInput, i)
		}
		if line.Quantity < 1 || line.Quantity > domain.MaxDrinkLineQuantity {
			return fmt.Errorf("%w: drinks[%d].quantity must be between 1 and %d",
				ErrInvalidInput, i, domain.MaxDrinkLineQuantity)
		}
		if _, ok := seen[line.DrinkOptionID]; ok {
			return fmt.Errorf("%w: drinks[%d].drinkOptionId is duplicated", ErrInvalidInput, i)
		}
		seen[line.DrinkOptionID] = struct{}{}
	}

	return nil
}

// validateDate проверяет дату против окна бронирования
// Даты в прошлом отклоняются до обращения к расписанию
func validateDate(date, now time.Time) error {
	if domain.IsDateInPast(date, now) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidRange)
	}

	if domain.IsDateBeyondWindow(date, now) {
		return fmt.Errorf("%w: date exceeds the %d-day booking window", ErrInvalidRange, domain.MaxBookingWindowDays)
	}

	return nil
}

// validateDrinkMinimums проверяет заказ напитков против ограничений типа посадки
// Порядок фиксирован: сначала минимум бутылок, затем минимальная сумма
func validateDrinkMinimums(restrictions domain.Restrictions, drinks []domain.ReservationDrink) error {
	if restrictions.MinBottles != nil && *restrictions.MinBottles > 0 {
		bottles := domain.CountBottles(drinks)
		if bottles < *restrictions.MinBottles {
			return &DrinkMinimumError{
				MinBottles:    *restrictions.MinBottles,
				ActualBottles: bottles,
			}
		}
	}

	if restrictions.MinConsumption != nil && *restrictions.MinConsumption > 0 {
		amount := domain.TotalConsumption(drinks)
		if amount < *restrictions.MinConsumption {
			return &DrinkMinimumError{
				MinConsumption: *restrictions.MinConsumption,
				ActualAmount:   amount,
			}
		}
	}

	return nil
}
