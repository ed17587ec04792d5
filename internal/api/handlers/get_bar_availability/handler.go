package get_bar_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BRS-ReservationService/internal/api/handlers"
	getBarAvailability "github.com/m04kA/BRS-ReservationService/internal/usecase/get_bar_availability"
)

const (
	msgInvalidBarID     = "некорректный ID бара"
	msgMissingStartDate = "параметр startDate обязателен"
	msgMissingEndDate   = "параметр endDate обязателен"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange     = "некорректный диапазон дат"
	msgBarNotFound      = "бар не найден"
)

type Handler struct {
	useCase GetBarAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetBarAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bars/{barId}/availability
// Query params: startDate (required), endDate (required), обе в формате YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	barIDStr := vars["barId"]
	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bars/{id}/availability - Invalid bar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return
	}

	startDateStr := r.URL.Query().Get("startDate")
	if startDateStr == "" {
		h.logger.Warn("GET /bars/{id}/availability - Missing start date: bar_id=%d", barID)
		handlers.RespondBadRequest(w, msgMissingStartDate)
		return
	}

	endDateStr := r.URL.Query().Get("endDate")
	if endDateStr == "" {
		h.logger.Warn("GET /bars/{id}/availability - Missing end date: bar_id=%d", barID)
		handlers.RespondBadRequest(w, msgMissingEndDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(barID, startDateStr, endDateStr)
	if err != nil {
		h.logger.Warn("GET /bars/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getBarAvailability.ErrBarNotFound):
			h.logger.Warn("GET /bars/{id}/availability - Bar not found: bar_id=%d", barID)
			handlers.RespondNotFound(w, msgBarNotFound)

		case errors.Is(err, getBarAvailability.ErrInvalidRange):
			h.logger.Warn("GET /bars/{id}/availability - Invalid range: bar_id=%d, error=%v", barID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getBarAvailability.ErrInvalidInput):
			h.logger.Warn("GET /bars/{id}/availability - Invalid input: bar_id=%d, error=%v", barID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /bars/{id}/availability - Failed to get availability: bar_id=%d, error=%v", barID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /bars/{id}/availability - Availability retrieved successfully: bar_id=%d, dates_count=%d",
		barID, len(response.Dates))
	handlers.RespondJSON(w, http.StatusOK, response)
}
