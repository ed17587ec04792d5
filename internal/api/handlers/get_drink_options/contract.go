package get_drink_options

import (
	"context"

	"github.com/m04kA/BRS-ReservationService/internal/service/inventory/models"
)

type InventoryService interface {
	GetDrinkMenu(ctx context.Context, barID int64) (*models.DrinkMenuResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
