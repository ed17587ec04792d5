package get_seats_for_date

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	barRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/bar"
	scheduleRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/schedule"
)

// UseCase use case детализации даты: остатки, границы вместимости и
// ограничения каждого включённого типа посадки
type UseCase struct {
	barRepo         BarRepository
	scheduleRepo    ScheduleRepository
	seatOptionRepo  SeatOptionRepository
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	barRepo BarRepository,
	scheduleRepo ScheduleRepository,
	seatOptionRepo SeatOptionRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		barRepo:         barRepo,
		scheduleRepo:    scheduleRepo,
		seatOptionRepo:  seatOptionRepo,
		reservationRepo: reservationRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения посадки на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSeatsForDate: validation failed: %v", err)
		return nil, err
	}

	dateKey := req.Date.Format(domain.DateFormat)
	uc.logger.Info("GetSeatsForDate: bar=%d, date=%s", req.BarID, dateKey)

	// 2. Проверка окна бронирования
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetSeatsForDate: date validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем существование бара
	if _, err := uc.barRepo.GetByID(ctx, req.BarID); err != nil {
		if errors.Is(err, barRepo.ErrBarNotFound) {
			uc.logger.Warn("GetSeatsForDate: bar id=%d not found", req.BarID)
			return nil, ErrBarNotFound
		}
		uc.logger.Error("GetSeatsForDate: failed to get bar id=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: failed to get bar: %v", ErrInternal, err)
	}

	// 4. Разрешаем календарь даты
	// Даты в прошлом никогда не бронируемы и разрешаются как закрытые
	resolution := domain.DayResolution{}
	if !domain.IsDateInPast(req.Date, now) {
		hours, err := uc.scheduleRepo.GetHoursByBar(ctx, req.BarID)
		if err != nil {
			uc.logger.Error("GetSeatsForDate: failed to get operating hours: %v", err)
			return nil, fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
		}

		exception, err := uc.scheduleRepo.GetExceptionByDate(ctx, req.BarID, req.Date)
		if err != nil && !errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			uc.logger.Error("GetSeatsForDate: failed to get exception: %v", err)
			return nil, fmt.Errorf("%w: failed to get exception: %v", ErrInternal, err)
		}

		resolution = domain.ResolveDay(hours, exception, req.Date)
	}

	resp := &Response{
		BarID:         req.BarID,
		Date:          dateKey,
		IsOpen:        resolution.IsOpen,
		IsException:   resolution.IsException,
		OpenTime:      resolution.OpenTime,
		CloseTime:     resolution.CloseTime,
		ClosesNextDay: resolution.ClosesNextDay,
		Seats:         []domain.SeatAvailability{},
	}

	// 5. Закрытый день остатков не имеет - запросы вместимости не нужны
	if !resolution.IsOpen {
		return resp, nil
	}

	// 6. Считаем остатки по включённым типам посадки
	options, err := uc.seatOptionRepo.GetByBar(ctx, req.BarID)
	if err != nil {
		uc.logger.Error("GetSeatsForDate: failed to get seat options: %v", err)
		return nil, fmt.Errorf("%w: failed to get seat options: %v", ErrInternal, err)
	}

	reserved, err := uc.reservationRepo.CountActiveOnDate(ctx, req.BarID, req.Date)
	if err != nil {
		uc.logger.Error("GetSeatsForDate: failed to count reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to count reservations: %v", ErrInternal, err)
	}

	resp.Seats = domain.ComputeAvailability(options, reserved)

	uc.logger.Info("GetSeatsForDate: bar=%d, date=%s, seat types=%d", req.BarID, dateKey, len(resp.Seats))

	return resp, nil
}
