package get_seats_for_date

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BRS-ReservationService/internal/api/handlers"
	getSeatsForDate "github.com/m04kA/BRS-ReservationService/internal/usecase/get_seats_for_date"
)

const (
	msgInvalidBarID = "некорректный ID бара"
	msgMissingDate  = "параметр date обязателен"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange = "дата вне окна бронирования"
	msgBarNotFound  = "бар не найден"
)

type Handler struct {
	useCase GetSeatsForDateUseCase
	logger  Logger
}

func NewHandler(useCase GetSeatsForDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bars/{barId}/seats
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	barIDStr := vars["barId"]
	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bars/{id}/seats - Invalid bar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /bars/{id}/seats - Missing date: bar_id=%d", barID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(barID, dateStr)
	if err != nil {
		h.logger.Warn("GET /bars/{id}/seats - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSeatsForDate.ErrBarNotFound):
			h.logger.Warn("GET /bars/{id}/seats - Bar not found: bar_id=%d", barID)
			handlers.RespondNotFound(w, msgBarNotFound)

		case errors.Is(err, getSeatsForDate.ErrInvalidRange):
			h.logger.Warn("GET /bars/{id}/seats - Date outside booking window: bar_id=%d, date=%s", barID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getSeatsForDate.ErrInvalidInput):
			h.logger.Warn("GET /bars/{id}/seats - Invalid input: bar_id=%d, error=%v", barID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /bars/{id}/seats - Failed to get seats: bar_id=%d, date=%s, error=%v", barID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /bars/{id}/seats - Seats retrieved successfully: bar_id=%d, date=%s, seat_types=%d",
		barID, dateStr, len(response.Seats))
	handlers.RespondJSON(w, http.StatusOK, response)
}
