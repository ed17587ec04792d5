package get_bar_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BarID <= 0 {
		return fmt.Errorf("%w: barID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", ErrInvalidInput)
	}

	return nil
}

// validateRange проверяет границы диапазона относительно окна бронирования
// Диапазон длиннее окна отклоняется целиком, а не обрезается - клиент должен
// знать, что запросил невозможное
func validateRange(startDate, endDate, now time.Time) error {
	if endDate.Before(startDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidRange)
	}

	if domain.IsDateBeyondWindow(endDate, now) {
		return fmt.Errorf("%w: endDate exceeds the %d-day booking window", ErrInvalidRange, domain.MaxBookingWindowDays)
	}

	return nil
}
