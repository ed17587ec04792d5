package get_bar_availability

import (
	"sort"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	getBarAvailability "github.com/m04kA/BRS-ReservationService/internal/usecase/get_bar_availability"
	"github.com/m04kA/BRS-ReservationService/pkg/ptr"
)

// DateStatusResponse состояние одной даты календаря
type DateStatusResponse struct {
	Date               string   `json:"date"`
	IsOpen             bool     `json:"isOpen"`
	IsException        bool     `json:"isException"`
	OpenTime           *string  `json:"openTime,omitempty"`
	CloseTime          *string  `json:"closeTime,omitempty"`
	ClosesNextDay      bool     `json:"closesNextDay"`
	IsFullyBooked      bool     `json:"isFullyBooked"`
	AvailableSeatTypes []string `json:"availableSeatTypes"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	BarID int64                `json:"barId"`
	Dates []DateStatusResponse `json:"dates"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(barID int64, startDateStr, endDateStr string) (*getBarAvailability.Request, error) {
	startDate, err := domain.ParseDate(startDateStr)
	if err != nil {
		return nil, err
	}

	endDate, err := domain.ParseDate(endDateStr)
	if err != nil {
		return nil, err
	}

	return &getBarAvailability.Request{
		BarID:     barID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Даты отдаются отсортированным списком, а не map - порядок стабилен
func FromUseCaseResponse(resp *getBarAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		BarID: resp.BarID,
		Dates: make([]DateStatusResponse, 0, len(resp.DateStatuses)),
	}

	keys := make([]string, 0, len(resp.DateStatuses))
	for key := range resp.DateStatuses {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		status := resp.DateStatuses[key]

		item := DateStatusResponse{
			Date:               key,
			IsOpen:             status.IsOpen,
			IsException:        status.IsException,
			ClosesNextDay:      status.ClosesNextDay,
			IsFullyBooked:      status.IsFullyBooked,
			AvailableSeatTypes: seatTypesToStrings(status.AvailableSeatTypes),
		}

		// Исключение "открыт весь день" не несёт часов
		if status.IsOpen && status.OpenTime != "" {
			item.OpenTime = ptr.Ptr(status.OpenTime.String())
			item.CloseTime = ptr.Ptr(status.CloseTime.String())
		}

		out.Dates = append(out.Dates, item)
	}

	return out
}

func seatTypesToStrings(seatTypes []domain.SeatType) []string {
	out := make([]string, 0, len(seatTypes))
	for _, t := range seatTypes {
		out = append(out, string(t))
	}
	return out
}
