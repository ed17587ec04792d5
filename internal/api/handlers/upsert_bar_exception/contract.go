package upsert_bar_exception

import (
	"context"
	"time"

	"github.com/m04kA/BRS-ReservationService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetExceptions(ctx context.Context, barID int64, startDate, endDate time.Time) ([]*models.ExceptionResponse, error)
	UpsertException(ctx context.Context, req *models.UpsertExceptionRequest) (*models.ExceptionResponse, error)
	DeleteException(ctx context.Context, barID int64, userID int64, dateStr string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
