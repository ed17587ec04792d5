package get_bar_reservations

import (
	"strconv"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	"github.com/m04kA/BRS-ReservationService/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос сервиса из параметров URL и query
func ToServiceRequest(barID, userID int64, dateStr, seatTypeStr, statusStr, includeInactiveStr string) (*models.GetBarReservationsRequest, error) {
	req := &models.GetBarReservationsRequest{
		UserID: userID,
		BarID:  barID,
	}

	if dateStr != "" {
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if seatTypeStr != "" {
		req.SeatType = &seatTypeStr
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
