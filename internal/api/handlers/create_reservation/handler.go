package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/BRS-ReservationService/internal/api/handlers"
	"github.com/m04kA/BRS-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/BRS-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgBarNotFound         = "бар не найден"
	msgBarClosed           = "бар закрыт в выбранную дату"
	msgInvalidRange        = "дата вне окна бронирования"
	msgSeatTypeUnavailable = "выбранный тип посадки недоступен"
	msgSoldOut             = "все места выбранного типа на эту дату заняты"
	msgDrinkNotFound       = "позиция меню напитков не найдена"
	msgDrinksNotAttached   = "бронирование создано, но напитки не были сохранены"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrBarNotFound):
			h.logger.Warn("POST /reservations - Bar not found: bar_id=%d", req.BarID)
			handlers.RespondNotFound(w, msgBarNotFound)

		case errors.Is(err, createReservation.ErrBarClosed):
			h.logger.Warn("POST /reservations - Bar closed: bar_id=%d, date=%s", req.BarID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgBarClosed)

		case errors.Is(err, createReservation.ErrInvalidRange):
			h.logger.Warn("POST /reservations - Date outside booking window: bar_id=%d, date=%s", req.BarID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createReservation.ErrSeatTypeUnavailable):
			h.logger.Warn("POST /reservations - Seat type unavailable: bar_id=%d, seat_type=%s", req.BarID, req.SeatType)
			handlers.RespondError(w, http.StatusConflict, msgSeatTypeUnavailable)

		case errors.Is(err, createReservation.ErrPartySizeOutOfRange):
			h.logger.Warn("POST /reservations - Party size out of range: bar_id=%d, party_size=%d", req.BarID, req.PartySize)
			// Текст ошибки несёт допустимые границы для этого типа посадки
			handlers.RespondError(w, http.StatusUnprocessableEntity, err.Error())

		case errors.Is(err, createReservation.ErrDrinkMinimumNotMet):
			h.logger.Warn("POST /reservations - Drink minimum not met: bar_id=%d, seat_type=%s, error=%v",
				req.BarID, req.SeatType, err)
			// Текст ошибки несёт требуемый минимум и размер недобора
			handlers.RespondError(w, http.StatusUnprocessableEntity, err.Error())

		case errors.Is(err, createReservation.ErrSoldOut):
			h.logger.Warn("POST /reservations - Sold out: bar_id=%d, date=%s, seat_type=%s",
				req.BarID, req.Date, req.SeatType)
			handlers.RespondError(w, http.StatusConflict, msgSoldOut)

		case errors.Is(err, createReservation.ErrDrinkOptionNotFound):
			h.logger.Warn("POST /reservations - Drink option not found: bar_id=%d, error=%v", req.BarID, err)
			handlers.RespondNotFound(w, msgDrinkNotFound)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: customer_id=%d, bar_id=%d, error=%v",
				customerID, req.BarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Не-фатальный отказ сохранения напитков отдаём предупреждением в теле
	var warning *string
	if result.DrinksWarning != nil {
		msg := msgDrinksNotAttached
		warning = &msg
	}

	response := FromUseCaseResponse(result, warning)

	// Идемпотентный повтор возвращает существующую бронь с 200
	status := http.StatusCreated
	if result.IsReplay {
		status = http.StatusOK
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, customer_id=%d, bar_id=%d, replay=%t",
		result.Reservation.ID, customerID, req.BarID, result.IsReplay)
	handlers.RespondJSON(w, status, response)
}
