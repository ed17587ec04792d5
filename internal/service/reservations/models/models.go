package models

import (
	"errors"
	"time"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования (владелец бара)
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserReservationsRequest запрос на получение бронирований клиента
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetBarReservationsRequest запрос на получение бронирований бара
type GetBarReservationsRequest struct {
	UserID          int64      `json:"userId"`
	BarID           int64      `json:"barId"`
	Date            *time.Time `json:"date,omitempty"`            // Конкретная дата (опционально)
	SeatType        *string    `json:"seatType,omitempty"`        // Фильтр по типу посадки (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и no-show
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBarReservationsRequest) ToDomainFilter() (domain.BarReservationsFilter, error) {
	filter := domain.BarReservationsFilter{
		BarID:           r.BarID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.SeatType != nil {
		seatType := domain.SeatType(*r.SeatType)
		if !seatType.IsValid() {
			return filter, errors.New("invalid seat type")
		}
		filter.SeatType = &seatType
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationDrinkResponse позиция напитков бронирования
type ReservationDrinkResponse struct {
	DrinkOptionID int64   `json:"drinkOptionId"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	PricePerUnit  float64 `json:"pricePerUnit"`
	Quantity      int     `json:"quantity"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64  `json:"id"`
	BarID           int64  `json:"barId"`
	CustomerID      int64  `json:"customerId"`
	ReservationDate string `json:"reservationDate"` // "2026-09-15"
	SeatType        string `json:"seatType"`
	PartySize       int    `json:"partySize"`
	Status          string `json:"status"`

	SpecialRequests *string                    `json:"specialRequests,omitempty"`
	Drinks          []ReservationDrinkResponse `json:"drinks"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// ToDomainReservationStatus конвертирует строку в domain статус
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(s) {
	case domain.StatusConfirmed:
		return domain.StatusConfirmed, nil
	case domain.StatusCancelledByCustomer:
		return domain.StatusCancelledByCustomer, nil
	case domain.StatusCancelledByBar:
		return domain.StatusCancelledByBar, nil
	case domain.StatusNoShow:
		return domain.StatusNoShow, nil
	default:
		return "", ErrInvalidStatus
	}
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation, drinks []domain.ReservationDrink) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		BarID:              r.BarID,
		CustomerID:         r.CustomerID,
		ReservationDate:    r.ReservationDate.Format(domain.DateFormat),
		SeatType:           string(r.SeatType),
		PartySize:          r.PartySize,
		Status:             string(r.Status),
		SpecialRequests:    r.SpecialRequests,
		Drinks:             FromDomainReservationDrinks(drinks),
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationDrinks конвертирует позиции напитков в DTO
func FromDomainReservationDrinks(drinks []domain.ReservationDrink) []ReservationDrinkResponse {
	resp := make([]ReservationDrinkResponse, 0, len(drinks))
	for _, d := range drinks {
		resp = append(resp, ReservationDrinkResponse{
			DrinkOptionID: d.DrinkOptionID,
			Name:          d.NameAtBooking,
			Type:          string(d.TypeAtBooking),
			PricePerUnit:  d.PriceAtBooking,
			Quantity:      d.Quantity,
		})
	}
	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
// Списочные ответы не включают напитки - их состав доступен в детальном ответе
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		item := FromDomainReservation(r, nil)
		if item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}
