package get_drink_options

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BRS-ReservationService/internal/api/handlers"
	"github.com/m04kA/BRS-ReservationService/internal/service/inventory"
)

const (
	msgInvalidBarID = "некорректный ID бара"
	msgBarNotFound  = "бар не найден"
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

// Handle GET /api/v1/bars/{barId}/drinks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barIDStr := vars["barId"]

	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bars/{id}/drinks - Invalid bar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return
	}

	result, err := h.service.GetDrinkMenu(r.Context(), barID)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrBarNotFound):
			h.logger.Warn("GET /bars/{id}/drinks - Bar not found: bar_id=%d", barID)
			handlers.RespondNotFound(w, msgBarNotFound)

		default:
			h.logger.Error("GET /bars/{id}/drinks - Failed to get drink menu: bar_id=%d, error=%v", barID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bars/{id}/drinks - Drink menu retrieved successfully: bar_id=%d, count=%d",
		barID, len(result.Drinks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
