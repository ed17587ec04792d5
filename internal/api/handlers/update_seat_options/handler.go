package update_seat_options

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BRS-ReservationService/internal/api/handlers"
	"github.com/m04kA/BRS-ReservationService/internal/api/middleware"
	"github.com/m04kA/BRS-ReservationService/internal/service/inventory"
	"github.com/m04kA/BRS-ReservationService/internal/service/inventory/models"
)

const (
	msgInvalidBarID       = "некорректный ID бара"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBarNotFound        = "бар не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service InventoryService
	logger  Logger
}

func NewHandler(service InventoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SeatOptionsRequest HTTP request model
type SeatOptionsRequest struct {
	Options []models.SeatOptionInput `json:"options"`
}

// Handle PUT /api/v1/bars/{barId}/seat-options
// Обновляет конфигурацию посадки; существующие бронирования не затрагиваются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barID, userID, ok := h.extractIDs(w, r, "PUT")
	if !ok {
		return
	}

	var req SeatOptionsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bars/{id}/seat-options - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpdateSeatOptionsRequest{
		UserID:  userID,
		BarID:   barID,
		Options: req.Options,
	}

	// Обновляем конфигурацию (сервис сам проверит права владельца)
	result, err := h.service.UpdateSeatOptions(r.Context(), serviceReq)
	if err != nil {
		h.respondServiceError(w, "PUT", barID, userID, err)
		return
	}

	h.logger.Info("PUT /bars/{id}/seat-options - Seat options updated successfully: bar_id=%d, types=%d",
		barID, len(result.Options))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/bars/{barId}/seat-options
// Полная конфигурация посадки, включая выключенные типы - для владельца
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	barID, userID, ok := h.extractIDs(w, r, "GET")
	if !ok {
		return
	}

	result, err := h.service.GetSeatOptions(r.Context(), barID, userID)
	if err != nil {
		h.respondServiceError(w, "GET", barID, userID, err)
		return
	}

	h.logger.Info("GET /bars/{id}/seat-options - Seat options retrieved successfully: bar_id=%d, types=%d",
		barID, len(result.Options))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// respondServiceError маппит ошибки сервиса инвентаря на HTTP статусы
func (h *Handler) respondServiceError(w http.ResponseWriter, method string, barID, userID int64, err error) {
	switch {
	case errors.Is(err, inventory.ErrBarNotFound):
		h.logger.Warn("%s /bars/{id}/seat-options - Bar not found: bar_id=%d", method, barID)
		handlers.RespondNotFound(w, msgBarNotFound)

	case errors.Is(err, inventory.ErrAccessDenied):
		h.logger.Warn("%s /bars/{id}/seat-options - Access denied: bar_id=%d, user_id=%d", method, barID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, inventory.ErrInvalidInput):
		h.logger.Warn("%s /bars/{id}/seat-options - Invalid input: bar_id=%d, error=%v", method, barID, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s /bars/{id}/seat-options - Service error: bar_id=%d, error=%v", method, barID, err)
		handlers.RespondInternalError(w)
	}
}

// extractIDs извлекает barId из URL и userID из контекста
func (h *Handler) extractIDs(w http.ResponseWriter, r *http.Request, method string) (barID, userID int64, ok bool) {
	vars := mux.Vars(r)
	barIDStr := vars["barId"]

	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("%s /bars/{id}/seat-options - Invalid bar ID: %v", method, err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return 0, 0, false
	}

	userID, found := middleware.GetUserID(r.Context())
	if !found {
		h.logger.Warn("%s /bars/{id}/seat-options - Missing user ID", method)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, 0, false
	}

	return barID, userID, true
}
