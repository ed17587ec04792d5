package get_seats_for_date

import (
	"github.com/m04kA/BRS-ReservationService/internal/domain"
	getSeatsForDate "github.com/m04kA/BRS-ReservationService/internal/usecase/get_seats_for_date"
)

// SeatAvailabilityResponse состояние одного типа посадки
type SeatAvailabilityResponse struct {
	SeatType     string               `json:"seatType"`
	Remaining    int                  `json:"remaining"`
	MinPeople    int                  `json:"minPeople"`
	MaxPeople    int                  `json:"maxPeople"`
	Restrictions *domain.Restrictions `json:"restrictions,omitempty"`
}

// SeatsResponse HTTP response model
type SeatsResponse struct {
	BarID         int64                      `json:"barId"`
	Date          string                     `json:"date"`
	IsOpen        bool                       `json:"isOpen"`
	IsException   bool                       `json:"isException"`
	OpenTime      *string                    `json:"openTime,omitempty"`
	CloseTime     *string                    `json:"closeTime,omitempty"`
	ClosesNextDay bool                       `json:"closesNextDay"`
	Seats         []SeatAvailabilityResponse `json:"seats"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(barID int64, dateStr string) (*getSeatsForDate.Request, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getSeatsForDate.Request{
		BarID: barID,
		Date:  date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSeatsForDate.Response) *SeatsResponse {
	out := &SeatsResponse{
		BarID:         resp.BarID,
		Date:          resp.Date,
		IsOpen:        resp.IsOpen,
		IsException:   resp.IsException,
		ClosesNextDay: resp.ClosesNextDay,
		Seats:         make([]SeatAvailabilityResponse, 0, len(resp.Seats)),
	}

	if resp.IsOpen {
		openStr := resp.OpenTime.String()
		closeStr := resp.CloseTime.String()
		out.OpenTime = &openStr
		out.CloseTime = &closeStr
	}

	for _, seat := range resp.Seats {
		item := SeatAvailabilityResponse{
			SeatType:  string(seat.Type),
			Remaining: seat.Remaining,
			MinPeople: seat.MinPeople,
			MaxPeople: seat.MaxPeople,
		}
		if !seat.Restrictions.IsZero() {
			restrictions := seat.Restrictions
			item.Restrictions = &restrictions
		}
		out.Seats = append(out.Seats, item)
	}

	return out
}
