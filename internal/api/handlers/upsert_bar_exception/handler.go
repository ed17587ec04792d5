package upsert_bar_exception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BRS-ReservationService/internal/api/handlers"
	"github.com/m04kA/BRS-ReservationService/internal/api/middleware"
	"github.com/m04kA/BRS-ReservationService/internal/domain"
	"github.com/m04kA/BRS-ReservationService/internal/service/schedule"
	"github.com/m04kA/BRS-ReservationService/internal/service/schedule/models"
)

const (
	msgInvalidBarID       = "некорректный ID бара"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBarNotFound        = "бар не найден"
	msgExceptionNotFound  = "исключение для даты не найдено"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ExceptionRequest HTTP request model
type ExceptionRequest struct {
	Date          string  `json:"date"` // "2026-09-15"
	IsClosed      bool    `json:"isClosed"`
	OpenTime      *string `json:"openTime,omitempty"`
	CloseTime     *string `json:"closeTime,omitempty"`
	ClosesNextDay bool    `json:"closesNextDay,omitempty"`
}

// Handle PUT /api/v1/bars/{barId}/exceptions
// Устанавливает или обновляет исключение для даты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barID, userID, ok := h.extractIDs(w, r, "PUT")
	if !ok {
		return
	}

	var req ExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bars/{id}/exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpsertExceptionRequest{
		UserID:        userID,
		BarID:         barID,
		Date:          req.Date,
		IsClosed:      req.IsClosed,
		OpenTime:      req.OpenTime,
		CloseTime:     req.CloseTime,
		ClosesNextDay: req.ClosesNextDay,
	}

	// Сохраняем исключение (сервис сам проверит права владельца)
	result, err := h.service.UpsertException(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBarNotFound):
			h.logger.Warn("PUT /bars/{id}/exceptions - Bar not found: bar_id=%d", barID)
			handlers.RespondNotFound(w, msgBarNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /bars/{id}/exceptions - Access denied: bar_id=%d, user_id=%d", barID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /bars/{id}/exceptions - Invalid input: bar_id=%d, error=%v", barID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /bars/{id}/exceptions - Failed to upsert exception: bar_id=%d, error=%v", barID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bars/{id}/exceptions - Exception saved successfully: bar_id=%d, date=%s",
		barID, result.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/bars/{barId}/exceptions
// Query params: startDate, endDate (обе обязательны, YYYY-MM-DD)
// Исключения диапазона - публичный endpoint
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barIDStr := vars["barId"]

	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bars/{id}/exceptions - Invalid bar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return
	}

	startDate, err := domain.ParseDate(r.URL.Query().Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /bars/{id}/exceptions - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := domain.ParseDate(r.URL.Query().Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /bars/{id}/exceptions - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetExceptions(r.Context(), barID, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBarNotFound):
			h.logger.Warn("GET /bars/{id}/exceptions - Bar not found: bar_id=%d", barID)
			handlers.RespondNotFound(w, msgBarNotFound)

		default:
			h.logger.Error("GET /bars/{id}/exceptions - Failed to get exceptions: bar_id=%d, error=%v", barID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bars/{id}/exceptions - Exceptions retrieved successfully: bar_id=%d, count=%d",
		barID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/bars/{barId}/exceptions/{date}
// Удаляет исключение, возвращая дату под недельный шаблон
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	barID, userID, ok := h.extractIDs(w, r, "DELETE")
	if !ok {
		return
	}

	dateStr := mux.Vars(r)["date"]

	if err := h.service.DeleteException(r.Context(), barID, userID, dateStr); err != nil {
		switch {
		case errors.Is(err, schedule.ErrBarNotFound):
			h.logger.Warn("DELETE /bars/{id}/exceptions/{date} - Bar not found: bar_id=%d", barID)
			handlers.RespondNotFound(w, msgBarNotFound)

		case errors.Is(err, schedule.ErrExceptionNotFound):
			h.logger.Warn("DELETE /bars/{id}/exceptions/{date} - Exception not found: bar_id=%d, date=%s", barID, dateStr)
			handlers.RespondNotFound(w, msgExceptionNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /bars/{id}/exceptions/{date} - Access denied: bar_id=%d, user_id=%d", barID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /bars/{id}/exceptions/{date} - Invalid date: bar_id=%d, date=%s", barID, dateStr)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /bars/{id}/exceptions/{date} - Failed to delete exception: bar_id=%d, error=%v", barID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bars/{id}/exceptions/{date} - Exception deleted successfully: bar_id=%d, date=%s",
		barID, dateStr)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// extractIDs извлекает barId из URL и userID из контекста
func (h *Handler) extractIDs(w http.ResponseWriter, r *http.Request, method string) (barID, userID int64, ok bool) {
	vars := mux.Vars(r)
	barIDStr := vars["barId"]

	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("%s /bars/{id}/exceptions - Invalid bar ID: %v", method, err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return 0, 0, false
	}

	userID, found := middleware.GetUserID(r.Context())
	if !found {
		h.logger.Warn("%s /bars/{id}/exceptions - Missing user ID", method)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, 0, false
	}

	return barID, userID, true
}
