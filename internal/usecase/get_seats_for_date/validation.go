package get_seats_for_date

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

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет дату против окна бронирования
func validateDate(date, now time.Time) error {
	if domain.IsDateBeyondWindow(date, now) {
		return fmt.Errorf("%w: date exceeds the %d-day booking window", ErrInvalidRange, domain.MaxBookingWindowDays)
	}

	return nil
}
