package models

import (
	"github.com/m04kA/BRS-ReservationService/internal/domain"
)

// Request модели

// SeatOptionInput конфигурация одного типа посадки в запросе
type SeatOptionInput struct {
	SeatType       string               `json:"seatType"`
	Enabled        bool                 `json:"enabled"`
	AvailableCount int                  `json:"availableCount"`
	MinPeople      int                  `json:"minPeople"`
	MaxPeople      int                  `json:"maxPeople"`
	Restrictions   *domain.Restrictions `json:"restrictions,omitempty"`
}

// UpdateSeatOptionsRequest запрос на обновление конфигурации посадки бара
type UpdateSeatOptionsRequest struct {
	UserID  int64             `json:"userId"`
	BarID   int64             `json:"barId"`
	Options []SeatOptionInput `json:"options"`
}

// Response модели

// SeatOptionResponse конфигурация одного типа посадки
type SeatOptionResponse struct {
	SeatType       string               `json:"seatType"`
	Enabled        bool                 `json:"enabled"`
	AvailableCount int                  `json:"availableCount"`
	MinPeople      int                  `json:"minPeople"`
	MaxPeople      int                  `json:"maxPeople"`
	Restrictions   *domain.Restrictions `json:"restrictions,omitempty"`
}

// SeatOptionListResponse ответ с конфигурацией посадки бара
type SeatOptionListResponse struct {
	BarID   int64                `json:"barId"`
	Options []SeatOptionResponse `json:"options"`
}

// DrinkOptionResponse позиция меню напитков
type DrinkOptionResponse struct {
	ID    int64   `json:"id"`
	Type  string  `json:"type"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// DrinkMenuResponse ответ с меню напитков бара
type DrinkMenuResponse struct {
	BarID  int64                 `json:"barId"`
	Drinks []DrinkOptionResponse `json:"drinks"`
}

// Методы конвертации

// FromDomainSeatOptions конвертирует конфигурацию посадки в DTO
// Порядок следует за domain.CanonicalSeatOrder
func FromDomainSeatOptions(barID int64, options []domain.SeatOption) *SeatOptionListResponse {
	byType := make(map[domain.SeatType]domain.SeatOption, len(options))
	for _, opt := range options {
		byType[opt.Type] = opt
	}

	resp := &SeatOptionListResponse{
		BarID:   barID,
		Options: make([]SeatOptionResponse, 0, len(options)),
	}

	for _, seatType := range domain.CanonicalSeatOrder {
		opt, ok := byType[seatType]
		if !ok {
			continue
		}

		item := SeatOptionResponse{
			SeatType:       string(opt.Type),
			Enabled:        opt.Enabled,
			AvailableCount: opt.AvailableCount,
			MinPeople:      opt.MinPeople,
			MaxPeople:      opt.MaxPeople,
		}
		if !opt.Restrictions.IsZero() {
			restrictions := opt.Restrictions
			item.Restrictions = &restrictions
		}

		resp.Options = append(resp.Options, item)
	}

	return resp
}

// FromDomainDrinkOptions конвертирует меню напитков в DTO
func FromDomainDrinkOptions(barID int64, drinks []domain.DrinkOption) *DrinkMenuResponse {
	resp := &DrinkMenuResponse{
		BarID:  barID,
		Drinks: make([]DrinkOptionResponse, 0, len(drinks)),
	}

	for _, d := range drinks {
		resp.Drinks = append(resp.Drinks, DrinkOptionResponse{
			ID:    d.ID,
			Type:  string(d.Type),
			Name:  d.Name,
			Price: d.Price,
		})
	}

	return resp
}
