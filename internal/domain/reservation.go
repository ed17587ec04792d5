package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusConfirmed           ReservationStatus = "confirmed"
	StatusCancelledByCustomer ReservationStatus = "cancelled_by_customer"
	StatusCancelledByBar      ReservationStatus = "cancelled_by_bar"
	StatusNoShow              ReservationStatus = "no_show"
)

// Reservation represents a committed booking of one seat unit for one date
// The bar has a single opening window per day, so a reservation carries a
// date only, not a time slot
type Reservation struct {
	ID              int64
	BarID           int64
	CustomerID      int64
	ReservationDate time.Time
	SeatType        SeatType
	PartySize       int
	SpecialRequests *string
	Status          ReservationStatus

	// Optional client-supplied token making timeout retries safe:
	// a second attempt with the same key returns the existing row
	IdempotencyKey *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies a seat unit
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelledByCustomer &&
		r.Status != StatusCancelledByBar &&
		r.Status != StatusNoShow
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelledByCustomer || r.Status == StatusCancelledByBar
}

// ReservationDrink is a drink line item snapshotted at booking time
// Name, type and price are copied from the menu row so later menu edits do
// not rewrite history
type ReservationDrink struct {
	ID             int64
	ReservationID  int64
	DrinkOptionID  int64
	NameAtBooking  string
	TypeAtBooking  DrinkType
	PriceAtBooking float64
	Quantity       int
	CreatedAt      time.Time
}

// BarReservationsFilter фильтр для получения бронирований бара
type BarReservationsFilter struct {
	BarID           int64              // Обязательный параметр
	Date            *time.Time         // Конкретная дата (опционально)
	SeatType        *SeatType          // Фильтр по типу посадки (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и no-show
}

// CountBottles суммарное количество бутылок в заказе напитков
func CountBottles(drinks []ReservationDrink) int {
	total := 0
	for _, d := range drinks {
		if d.TypeAtBooking == DrinkTypeBottle {
			total += d.Quantity
		}
	}
	return total
}

// TotalConsumption суммарная стоимость заказа напитков по ценам на момент брони
func TotalConsumption(drinks []ReservationDrink) float64 {
	total := 0.0
	for _, d := range drinks {
		total += d.PriceAtBooking * float64(d.Quantity)
	}
	return total
}
