package inventory

import (
	"context"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
)

// SeatOptionRepository интерфейс репозитория посадочных мест
type SeatOptionRepository interface {
	GetByBar(ctx context.Context, barID int64) ([]domain.SeatOption, error)
	Upsert(ctx context.Context, opt *domain.SeatOption) (*domain.SeatOption, error)
}

// DrinkRepository интерфейс репозитория меню напитков
type DrinkRepository interface {
	GetByBar(ctx context.Context, barID int64) ([]domain.DrinkOption, error)
}

// BarRepository интерфейс репозитория баров
type BarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Bar, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
