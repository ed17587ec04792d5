package models

import (
	"github.com/m04kA/BRS-ReservationService/internal/domain"
	"github.com/m04kA/BRS-ReservationService/pkg/types"
)

// Request модели

// OperatingHourInput одна строка недельного шаблона в запросе
type OperatingHourInput struct {
	DayOfWeek     int    `json:"dayOfWeek"` // 1=понедельник .. 7=воскресенье
	OpenTime      string `json:"openTime"`  // "18:00"
	CloseTime     string `json:"closeTime"` // "02:00"
	ClosesNextDay bool   `json:"closesNextDay,omitempty"`
}

// ReplaceHoursRequest запрос на полную замену недельного шаблона бара
// Дни, отсутствующие в списке, становятся закрытыми
type ReplaceHoursRequest struct {
	UserID int64                `json:"userId"`
	BarID  int64                `json:"barId"`
	Hours  []OperatingHourInput `json:"hours"`
}

// UpsertExceptionRequest запрос на установку исключения для даты
type UpsertExceptionRequest struct {
	UserID        int64   `json:"userId"`
	BarID         int64   `json:"barId"`
	Date          string  `json:"date"` // "2026-09-15"
	IsClosed      bool    `json:"isClosed"`
	OpenTime      *string `json:"openTime,omitempty"`
	CloseTime     *string `json:"closeTime,omitempty"`
	ClosesNextDay bool    `json:"closesNextDay,omitempty"`
}

// Response модели

// OperatingHourResponse строка недельного шаблона
type OperatingHourResponse struct {
	DayOfWeek     int    `json:"dayOfWeek"`
	OpenTime      string `json:"openTime"`
	CloseTime     string `json:"closeTime"`
	ClosesNextDay bool   `json:"closesNextDay"`
}

// ScheduleResponse ответ с недельным шаблоном бара
type ScheduleResponse struct {
	BarID int64                   `json:"barId"`
	Hours []OperatingHourResponse `json:"hours"`
}

// ExceptionResponse ответ с исключением для даты
type ExceptionResponse struct {
	BarID         int64   `json:"barId"`
	Date          string  `json:"date"`
	IsClosed      bool    `json:"isClosed"`
	OpenTime      *string `json:"openTime,omitempty"`
	CloseTime     *string `json:"closeTime,omitempty"`
	ClosesNextDay bool    `json:"closesNextDay"`
}

// Методы конвертации

// ToDomainHours конвертирует входной шаблон в domain модели
func (r *ReplaceHoursRequest) ToDomainHours() ([]domain.OperatingHour, error) {
	hours := make([]domain.OperatingHour, 0, len(r.Hours))
	for _, in := range r.Hours {
		openTime, err := types.NewTimeStringFromString(in.OpenTime)
		if err != nil {
			return nil, err
		}
		closeTime, err := types.NewTimeStringFromString(in.CloseTime)
		if err != nil {
			return nil, err
		}

		hours = append(hours, domain.OperatingHour{
			BarID:         r.BarID,
			DayOfWeek:     in.DayOfWeek,
			OpenTime:      openTime,
			CloseTime:     closeTime,
			ClosesNextDay: in.ClosesNextDay,
		})
	}
	return hours, nil
}

// FromDomainHours конвертирует недельный шаблон в DTO
func FromDomainHours(barID int64, hours []domain.OperatingHour) *ScheduleResponse {
	resp := &ScheduleResponse{
		BarID: barID,
		Hours: make([]OperatingHourResponse, 0, len(hours)),
	}

	for _, h := range hours {
		resp.Hours = append(resp.Hours, OperatingHourResponse{
			DayOfWeek:     h.DayOfWeek,
			OpenTime:      h.OpenTime.String(),
			CloseTime:     h.CloseTime.String(),
			ClosesNextDay: h.ClosesNextDay,
		})
	}

	return resp
}

// FromDomainException конвертирует исключение в DTO
func FromDomainException(exc *domain.BarException) *ExceptionResponse {
	if exc == nil {
		return nil
	}

	resp := &ExceptionResponse{
		BarID:         exc.BarID,
		Date:          exc.ExceptionDate.Format(domain.DateFormat),
		IsClosed:      exc.IsClosed,
		ClosesNextDay: exc.ClosesNextDay,
	}

	if exc.OpenTime != nil {
		openStr := exc.OpenTime.String()
		resp.OpenTime = &openStr
	}
	if exc.CloseTime != nil {
		closeStr := exc.CloseTime.String()
		resp.CloseTime = &closeStr
	}

	return resp
}
