package get_bar_availability

import (
	"context"

	getBarAvailability "github.com/m04kA/BRS-ReservationService/internal/usecase/get_bar_availability"
)

type GetBarAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getBarAvailability.Request) (*getBarAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
