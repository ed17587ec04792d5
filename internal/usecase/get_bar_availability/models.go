package get_bar_availability

import (
	"time"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	"github.com/m04kA/BRS-ReservationService/pkg/types"
)

// Request модель запроса календаря доступности
type Request struct {
	BarID     int64     // ID бара
	StartDate time.Time // Начало диапазона (включительно)
	EndDate   time.Time // Конец диапазона (включительно)
}

// Response модель ответа: статус каждой даты диапазона
type Response struct {
	BarID        int64                 // ID бара
	DateStatuses map[string]DateStatus // Ключ - дата в формате YYYY-MM-DD
}

// DateStatus состояние одной даты календаря
type DateStatus struct {
	IsOpen             bool              // Открыт ли бар в эту дату
	IsException        bool              // Дата перекрыта исключением
	OpenTime           types.TimeString  // Время открытия (пустое, если закрыт)
	CloseTime          types.TimeString  // Время закрытия
	ClosesNextDay      bool              // Закрытие на следующий календарный день
	IsFullyBooked      bool              // Все включённые типы посадки распроданы
	AvailableSeatTypes []domain.SeatType // Типы посадки с остатком > 0
}
