package update_operating_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BRS-ReservationService/internal/api/handlers"
	"github.com/m04kA/BRS-ReservationService/internal/api/middleware"
	"github.com/m04kA/BRS-ReservationService/internal/service/schedule"
	"github.com/m04kA/BRS-ReservationService/internal/service/schedule/models"
)

const (
	msgInvalidBarID       = "некорректный ID бара"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBarNotFound        = "бар не найден"
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

// HoursRequest HTTP request model
type HoursRequest struct {
	Hours []models.OperatingHourInput `json:"hours"`
}

// Handle PUT /api/v1/bars/{barId}/hours
// Полностью заменяет недельный шаблон: дни вне списка становятся закрытыми
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barIDStr := vars["barId"]

	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bars/{id}/hours - Invalid bar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bars/{id}/hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req HoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bars/{id}/hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.ReplaceHoursRequest{
		UserID: userID,
		BarID:  barID,
		Hours:  req.Hours,
	}

	// Заменяем шаблон (сервис сам проверит права владельца)
	result, err := h.service.ReplaceHours(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBarNotFound):
			h.logger.Warn("PUT /bars/{id}/hours - Bar not found: bar_id=%d", barID)
			handlers.RespondNotFound(w, msgBarNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /bars/{id}/hours - Access denied: bar_id=%d, user_id=%d", barID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /bars/{id}/hours - Invalid input: bar_id=%d, error=%v", barID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /bars/{id}/hours - Failed to replace hours: bar_id=%d, error=%v", barID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bars/{id}/hours - Schedule replaced successfully: bar_id=%d, days=%d",
		barID, len(result.Hours))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/bars/{barId}/hours
// Недельный шаблон бара - публичный endpoint
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barIDStr := vars["barId"]

	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bars/{id}/hours - Invalid bar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), barID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBarNotFound):
			h.logger.Warn("GET /bars/{id}/hours - Bar not found: bar_id=%d", barID)
			handlers.RespondNotFound(w, msgBarNotFound)

		default:
			h.logger.Error("GET /bars/{id}/hours - Failed to get schedule: bar_id=%d, error=%v", barID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bars/{id}/hours - Schedule retrieved successfully: bar_id=%d, days=%d",
		barID, len(result.Hours))
	handlers.RespondJSON(w, http.StatusOK, result)
}
