package create_reservation

import (
	"time"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	createReservation "github.com/m04kA/BRS-ReservationService/internal/usecase/create_reservation"
)

// DrinkLineRequest позиция предзаказа напитков
type DrinkLineRequest struct {
	DrinkOptionID int64 `json:"drinkOptionId"`
	Quantity      int   `json:"quantity"`
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	BarID           int64              `json:"barId"`
	Date            string             `json:"date"` // "2026-09-15"
	SeatType        string             `json:"seatType"`
	PartySize       int                `json:"partySize"`
	SpecialRequests *string            `json:"specialRequests,omitempty"`
	Drinks          []DrinkLineRequest `json:"drinks,omitempty"`
	IdempotencyKey  *string            `json:"idempotencyKey,omitempty"`
}

// ReservationDrinkResponse позиция напитков созданного бронирования
type ReservationDrinkResponse struct {
	DrinkOptionID int64   `json:"drinkOptionId"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	PricePerUnit  float64 `json:"pricePerUnit"`
	Quantity      int     `json:"quantity"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64                      `json:"id"`
	BarID           int64                      `json:"barId"`
	CustomerID      int64                      `json:"customerId"`
	ReservationDate string                     `json:"reservationDate"`
	SeatType        string                     `json:"seatType"`
	PartySize       int                        `json:"partySize"`
	Status          string                     `json:"status"`
	SpecialRequests *string                    `json:"specialRequests,omitempty"`
	Drinks          []ReservationDrinkResponse `json:"drinks"`
	Warning         *string                    `json:"warning,omitempty"`
	CreatedAt       string                     `json:"createdAt"`
	UpdatedAt       string                     `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(customerID int64) (*createReservation.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	drinks := make([]createReservation.DrinkLine, 0, len(r.Drinks))
	for _, line := range r.Drinks {
		drinks = append(drinks, createReservation.DrinkLine{
			DrinkOptionID: line.DrinkOptionID,
			Quantity:      line.Quantity,
		})
	}

	return &createReservation.Request{
		BarID:           r.BarID,
		CustomerID:      customerID,
		Date:            date,
		SeatType:        domain.SeatType(r.SeatType),
		PartySize:       r.PartySize,
		SpecialRequests: r.SpecialRequests,
		Drinks:          drinks,
		IdempotencyKey:  r.IdempotencyKey,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response, warning *string) *ReservationResponse {
	res := resp.Reservation

	out := &ReservationResponse{
		ID:              res.ID,
		BarID:           res.BarID,
		CustomerID:      res.CustomerID,
		ReservationDate: res.ReservationDate.Format(domain.DateFormat),
		SeatType:        string(res.SeatType),
		PartySize:       res.PartySize,
		Status:          string(res.Status),
		SpecialRequests: res.SpecialRequests,
		Drinks:          make([]ReservationDrinkResponse, 0, len(resp.Drinks)),
		Warning:         warning,
		CreatedAt:       res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       res.UpdatedAt.Format(time.RFC3339),
	}

	for _, d := range resp.Drinks {
		out.Drinks = append(out.Drinks, ReservationDrinkResponse{
			DrinkOptionID: d.DrinkOptionID,
			Name:          d.NameAtBooking,
			Type:          string(d.TypeAtBooking),
			PricePerUnit:  d.PriceAtBooking,
			Quantity:      d.Quantity,
		})
	}

	return out
}
