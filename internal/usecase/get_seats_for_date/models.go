package get_seats_for_date

import (
	"time"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	"github.com/m04kA/BRS-ReservationService/pkg/types"
)

// Request модель запроса детализации даты
type Request struct {
	BarID int64     // ID бара
	Date  time.Time // Запрашиваемая дата
}

// Response модель ответа: состояние одной даты с разбивкой по типам посадки
type Response struct {
	BarID         int64                     // ID бара
	Date          string                    // Дата в формате YYYY-MM-DD
	IsOpen        bool                      // Открыт ли бар в эту дату
	IsException   bool                      // Дата перекрыта исключением
	OpenTime      types.TimeString          // Время открытия (пустое, если закрыт)
	CloseTime     types.TimeString          // Время закрытия
	ClosesNextDay bool                      // Закрытие на следующий календарный день
	Seats         []domain.SeatAvailability // Доступность по типам в каноническом порядке
}
