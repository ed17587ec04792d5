package get_bar_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	barRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/bar"
)

// UseCase use case календаря доступности: для каждой даты диапазона отвечает,
// открыт ли бар и какие типы посадки ещё можно забронировать
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

// Execute выполняет use case получения календаря доступности
// Чтение без блокировок: результат может отставать от параллельно создаваемых
// бронирований, финальную проверку вместимости делает только admission
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBarAvailability: bar=%d, range=%s..%s",
		req.BarID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetBarAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка диапазона против окна бронирования
	now := uc.timeProvider.Now()
	if err := validateRange(req.StartDate, req.EndDate, now); err != nil {
		uc.logger.Warn("GetBarAvailability: range validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем существование бара
	if _, err := uc.barRepo.GetByID(ctx, req.BarID); err != nil {
		if errors.Is(err, barRepo.ErrBarNotFound) {
			uc.logger.Warn("GetBarAvailability: bar id=%d not found", req.BarID)
			return nil, ErrBarNotFound
		}
		uc.logger.Error("GetBarAvailability: failed to get bar id=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: failed to get bar: %v", ErrInternal, err)
	}

	// 4. Получаем недельный шаблон и исключения диапазона
	hours, err := uc.scheduleRepo.GetHoursByBar(ctx, req.BarID)
	if err != nil {
		uc.logger.Error("GetBarAvailability: failed to get operating hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
	}

	exceptions, err := uc.scheduleRepo.GetExceptionsInRange(ctx, req.BarID, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Error("GetBarAvailability: failed to get exceptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
	}

	exceptionsByDate := make(map[string]*domain.BarException, len(exceptions))
	for _, exc := range exceptions {
		exceptionsByDate[exc.ExceptionDate.Format(domain.DateFormat)] = exc
	}

	// 5. Разрешаем календарь всего диапазона
	// Даты в прошлом никогда не бронируемы и разрешаются как закрытые
	type resolvedDay struct {
		key        string
		resolution domain.DayResolution
	}

	days := make([]resolvedDay, 0, domain.MaxBookingWindowDays+1)
	hasOpenDay := false

	for date := domain.DateOnly(req.StartDate); !date.After(domain.DateOnly(req.EndDate)); date = date.AddDate(0, 0, 1) {
		key := date.Format(domain.DateFormat)

		var resolution domain.DayResolution
		if !domain.IsDateInPast(date, now) {
			resolution = domain.ResolveDay(hours, exceptionsByDate[key], date)
		}

		if resolution.IsOpen {
			hasOpenDay = true
		}
		days = append(days, resolvedDay{key: key, resolution: resolution})
	}

	// 6. Считаем вместимость только если в диапазоне есть открытые дни -
	// закрытые дни не могут иметь мест, запросы по ним не нужны
	var options []domain.SeatOption
	var reservedByDay map[string]map[domain.SeatType]int

	if hasOpenDay {
		options, err = uc.seatOptionRepo.GetByBar(ctx, req.BarID)
		if err != nil {
			uc.logger.Error("GetBarAvailability: failed to get seat options: %v", err)
			return nil, fmt.Errorf("%w: failed to get seat options: %v", ErrInternal, err)
		}

		reservedByDay, err = uc.reservationRepo.CountActiveInRange(ctx, req.BarID, req.StartDate, req.EndDate)
		if err != nil {
			uc.logger.Error("GetBarAvailability: failed to count reservations: %v", err)
			return nil, fmt.Errorf("%w: failed to count reservations: %v", ErrInternal, err)
		}
	}

	// 7. Собираем статусы дат
	statuses := make(map[string]DateStatus, len(days))
	for _, day := range days {
		if !day.resolution.IsOpen {
			statuses[day.key] = DateStatus{
				IsOpen:             false,
				IsException:        day.resolution.IsException,
				AvailableSeatTypes: []domain.SeatType{},
			}
			continue
		}

		availability := domain.ComputeAvailability(options, reservedByDay[day.key])
		availableTypes, fullyBooked := domain.ClassifyAvailability(availability)

		statuses[day.key] = DateStatus{
			IsOpen:             true,
			IsException:        day.resolution.IsException,
			OpenTime:           day.resolution.OpenTime,
			CloseTime:          day.resolution.CloseTime,
			ClosesNextDay:      day.resolution.ClosesNextDay,
			IsFullyBooked:      fullyBooked,
			AvailableSeatTypes: availableTypes,
		}
	}

	uc.logger.Info("GetBarAvailability: resolved %d dates for bar=%d", len(statuses), req.BarID)

	return &Response{
		BarID:        req.BarID,
		DateStatuses: statuses,
	}, nil
}
