package schedule

import (
	"context"
	"time"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetHoursByBar(ctx context.Context, barID int64) ([]domain.OperatingHour, error)
	ReplaceHours(ctx context.Context, barID int64, hours []domain.OperatingHour) error
	GetExceptionsInRange(ctx context.Context, barID int64, startDate, endDate time.Time) ([]*domain.BarException, error)
	UpsertException(ctx context.Context, exc *domain.BarException) (*domain.BarException, error)
	DeleteException(ctx context.Context, barID int64, date time.Time) error
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
