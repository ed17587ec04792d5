package get_bar_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BRS-ReservationService/internal/api/handlers"
	"github.com/m04kA/BRS-ReservationService/internal/api/middleware"
	"github.com/m04kA/BRS-ReservationService/internal/service/reservations"
)

const (
	msgInvalidBarID  = "некорректный ID бара"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgBarNotFound   = "бар не найден"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bars/{barId}/reservations
// Query params: date, seatType, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barIDStr := vars["barId"]

	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bars/{id}/reservations - Invalid bar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bars/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	seatTypeStr := r.URL.Query().Get("seatType")
	statusStr := r.URL.Query().Get("status")
	includeInactiveStr := r.URL.Query().Get("includeInactive")

	serviceReq, err := ToServiceRequest(barID, userID, dateStr, seatTypeStr, statusStr, includeInactiveStr)
	if err != nil {
		h.logger.Warn("GET /bars/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем бронирования бара (сервис сам проверит права владельца)
	result, err := h.service.GetBarReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrBarNotFound):
			h.logger.Warn("GET /bars/{id}/reservations - Bar not found: bar_id=%d", barID)
			handlers.RespondNotFound(w, msgBarNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /bars/{id}/reservations - Access denied: bar_id=%d, user_id=%d", barID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /bars/{id}/reservations - Invalid parameters: bar_id=%d, error=%v", barID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /bars/{id}/reservations - Failed to get reservations: bar_id=%d, error=%v", barID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bars/{id}/reservations - Reservations retrieved successfully: bar_id=%d, count=%d",
		barID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
