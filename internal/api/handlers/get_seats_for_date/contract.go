package get_seats_for_date

import (
	"context"

	getSeatsForDate "github.com/m04kA/BRS-ReservationService/internal/usecase/get_seats_for_date"
)

type GetSeatsForDateUseCase interface {
	Execute(ctx context.Context, req *getSeatsForDate.Request) (*getSeatsForDate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
