package update_seat_options

import (
	"context"

	"github.com/m04kA/BRS-ReservationService/internal/service/inventory/models"
)

type InventoryService interface {
	GetSeatOptions(ctx context.Context, barID int64, userID int64) (*models.SeatOptionListResponse, error)
	UpdateSeatOptions(ctx context.Context, req *models.UpdateSeatOptionsRequest) (*models.SeatOptionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
