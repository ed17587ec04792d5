package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
)

// BarRepository интерфейс репозитория баров
type BarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Bar, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetHoursByBar(ctx context.Context, barID int64) ([]domain.OperatingHour, error)
	GetExceptionByDate(ctx context.Context, barID int64, date time.Time) (*domain.BarException, error)
}

// SeatOptionRepository интерфейс репозитория посадочных мест
type SeatOptionRepository interface {
	GetByBarAndType(ctx context.Context, barID int64, seatType domain.SeatType) (*domain.SeatOption, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByIdempotencyKey(ctx context.Context, customerID int64, key string) (*domain.Reservation, error)
	CountActiveOnDate(ctx context.Context, barID int64, date time.Time) (map[domain.SeatType]int, error)
	AttachDrinks(ctx context.Context, reservationID int64, drinks []domain.ReservationDrink) ([]domain.ReservationDrink, error)
	GetDrinks(ctx context.Context, reservationID int64) ([]domain.ReservationDrink, error)
}

// DrinkRepository интерфейс репозитория меню напитков
type DrinkRepository interface {
	GetByIDs(ctx context.Context, barID int64, ids []int64) ([]domain.DrinkOption, error)
}

// TxManager интерфейс менеджера сериализуемых транзакций
// Проверка вместимости и вставка брони выполняются атомарно внутри fn
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
