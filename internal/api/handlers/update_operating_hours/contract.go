package update_operating_hours

import (
	"context"

	"github.com/m04kA/BRS-ReservationService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, barID int64) (*models.ScheduleResponse, error)
	ReplaceHours(ctx context.Context, req *models.ReplaceHoursRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
