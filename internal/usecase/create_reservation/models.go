package create_reservation

import (
	"time"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
)

// DrinkLine одна позиция заказа напитков в запросе
type DrinkLine struct {
	DrinkOptionID int64 // ID позиции меню бара
	Quantity      int   // Количество (1..MaxDrinkLineQuantity)
}

// Request модель запроса создания бронирования
type Request struct {
	BarID           int64           // ID бара
	CustomerID      int64           // ID клиента (из заголовка аутентификации)
	Date            time.Time       // Дата бронирования
	SeatType        domain.SeatType // Тип посадки
	PartySize       int             // Размер компании
	SpecialRequests *string         // Пожелания клиента (опционально)
	Drinks          []DrinkLine     // Предзаказ напитков (опционально)
	IdempotencyKey  *string         // UUID для безопасного повтора запроса (опционально)
}

// Response модель ответа: созданное бронирование с напитками
type Response struct {
	Reservation *domain.Reservation       // Созданная бронь
	Drinks      []domain.ReservationDrink // Прикреплённые напитки

	// IsReplay признак идемпотентного повтора: бронь уже существовала
	IsReplay bool

	// DrinksWarning не-фатальная ошибка прикрепления напитков:
	// бронь создана и действительна, напитки не сохранены
	DrinksWarning error
}
