package get_bar_availability

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
	GetExceptionsInRange(ctx context.Context, barID int64, startDate, endDate time.Time) ([]*domain.BarException, error)
}

// SeatOptionRepository интерфейс репозитория посадочных мест
type SeatOptionRepository interface {
	GetByBar(ctx context.Context, barID int64) ([]domain.SeatOption, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// CountActiveInRange подсчитывает активные бронирования по дням и типам посадки
	CountActiveInRange(ctx context.Context, barID int64, startDate, endDate time.Time) (map[string]map[domain.SeatType]int, error)
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
