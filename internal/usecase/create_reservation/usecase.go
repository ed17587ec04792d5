package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	barRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/bar"
	reservationRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/schedule"
	seatoptionRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/seatoption"
)

// UseCase use case создания бронирования. Пропускает запрос через цепочку
// проверок допуска (календарь, тип посадки, размер компании, минимумы по
// напиткам) и атомарно занимает место внутри сериализуемой транзакции
type UseCase struct {
	barRepo         BarRepository
	scheduleRepo    ScheduleRepository
	seatOptionRepo  SeatOptionRepository
	reservationRepo ReservationRepository
	drinkRepo       DrinkRepository
	txManager       TxManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	barRepo BarRepository,
	scheduleRepo ScheduleRepository,
	seatOptionRepo SeatOptionRepository,
	reservationRepo ReservationRepository,
	drinkRepo DrinkRepository,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		barRepo:         barRepo,
		scheduleRepo:    scheduleRepo,
		seatOptionRepo:  seatOptionRepo,
		reservationRepo: reservationRepo,
		drinkRepo:       drinkRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Порядок проверок фиксирован: закрытый бар, недоступный тип посадки, размер
// компании, минимумы по напиткам, распроданность. Клиент всегда получает
// первую причину отказа по этому порядку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: bar=%d, customer=%d, date=%s, seatType=%s, party=%d",
		req.BarID, req.CustomerID, req.Date.Format(domain.DateFormat), req.SeatType, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка окна бронирования
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	// 3. Идемпотентный повтор: ключ уже использован - возвращаем существующую бронь
	if req.IdempotencyKey != nil {
		existing, err := uc.findReplay(ctx, req.CustomerID, *req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	// 4. Проверяем существование бара
	if _, err := uc.barRepo.GetByID(ctx, req.BarID); err != nil {
		if errors.Is(err, barRepo.ErrBarNotFound) {
			uc.logger.Warn("CreateReservation: bar id=%d not found", req.BarID)
			return nil, ErrBarNotFound
		}
		uc.logger.Error("CreateReservation: failed to get bar id=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: failed to get bar: %v", ErrInternal, err)
	}

	// 5. Бар должен быть открыт в запрошенную дату
	if err := uc.checkBarOpen(ctx, req.BarID, req.Date); err != nil {
		return nil, err
	}

	// 6. Тип посадки настроен, включён и вмещает компанию
	option, err := uc.checkSeatOption(ctx, req)
	if err != nil {
		return nil, err
	}

	// 7. Снимаем snapshot позиций меню и проверяем минимумы по напиткам
	drinks, err := uc.resolveDrinks(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := validateDrinkMinimums(option.Restrictions, drinks); err != nil {
		uc.logger.Warn("CreateReservation: drink minimums not met for bar=%d, seatType=%s: %v",
			req.BarID, req.SeatType, err)
		return nil, err
	}

	// 8. Атомарный допуск: пересчёт занятости и вставка в одной сериализуемой
	// транзакции. Конкурентная бронь того же типа на ту же дату либо
	// сериализуется, либо приводит к retry внутри менеджера
	var created *domain.Reservation
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		counts, err := uc.reservationRepo.CountActiveOnDate(txCtx, req.BarID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to count reservations: %v", ErrInternal, err)
		}

		if option.Remaining(counts[req.SeatType]) <= 0 {
			return ErrSoldOut
		}

		created, err = uc.reservationRepo.Create(txCtx, &domain.Reservation{
			BarID:           req.BarID,
			CustomerID:      req.CustomerID,
			ReservationDate: domain.DateOnly(req.Date),
			SeatType:        req.SeatType,
			PartySize:       req.PartySize,
			SpecialRequests: req.SpecialRequests,
			Status:          domain.StatusConfirmed,
			IdempotencyKey:  req.IdempotencyKey,
		})
		if err != nil {
			return err
		}

		return nil
	})

	if txErr != nil {
		// Гонка двух запросов с одним ключом: проигравший читает бронь победителя
		if errors.Is(txErr, reservationRepo.ErrDuplicateIdempotencyKey) && req.IdempotencyKey != nil {
			replay, err := uc.findReplay(ctx, req.CustomerID, *req.IdempotencyKey)
			if err != nil {
				return nil, err
			}
			if replay != nil {
				return replay, nil
			}
		}

		if errors.Is(txErr, ErrSoldOut) {
			uc.logger.Warn("CreateReservation: sold out: bar=%d, date=%s, seatType=%s",
				req.BarID, req.Date.Format(domain.DateFormat), req.SeatType)
			return nil, ErrSoldOut
		}
		if errors.Is(txErr, ErrInternal) {
			uc.logger.Error("CreateReservation: %v", txErr)
			return nil, txErr
		}

		uc.logger.Error("CreateReservation: transaction failed: %v", txErr)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, txErr)
	}

	uc.logger.Info("CreateReservation: created reservation id=%d for bar=%d, date=%s",
		created.ID, created.BarID, created.ReservationDate.Format(domain.DateFormat))

	resp := &Response{
		Reservation: created,
		Drinks:      []domain.ReservationDrink{},
	}

	// 9. Напитки прикрепляются после фиксации брони. Отказ здесь не откатывает
	// бронь: место уже занято, клиент получает предупреждение
	if len(drinks) > 0 {
		attached, err := uc.reservationRepo.AttachDrinks(ctx, created.ID, drinks)
		if err != nil {
			uc.logger.Warn("CreateReservation: failed to attach drinks to reservation id=%d: %v", created.ID, err)
			resp.DrinksWarning = fmt.Errorf("%w: %v", ErrDrinkAttachmentFailed, err)
		} else {
			resp.Drinks = attached
		}
	}

	return resp, nil
}

// findReplay возвращает существующую бронь по ключу идемпотентности
// или nil, если ключ ещё не использован
func (uc *UseCase) findReplay(ctx context.Context, customerID int64, key string) (*Response, error) {
	existing, err := uc.reservationRepo.GetByIdempotencyKey(ctx, customerID, key)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, nil
		}
		uc.logger.Error("CreateReservation: idempotency lookup failed for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: idempotency lookup failed: %v", ErrInternal, err)
	}

	drinks, err := uc.reservationRepo.GetDrinks(ctx, existing.ID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get drinks for reservation id=%d: %v", existing.ID, err)
		return nil, fmt.Errorf("%w: failed to get drinks: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateReservation: idempotent replay for customer=%d, reservation id=%d",
		customerID, existing.ID)

	return &Response{
		Reservation: existing,
		Drinks:      drinks,
		IsReplay:    true,
	}, nil
}

// checkBarOpen проверяет, что бар открыт в запрошенную дату
func (uc *UseCase) checkBarOpen(ctx context.Context, barID int64, date time.Time) error {
	hours, err := uc.scheduleRepo.GetHoursByBar(ctx, barID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get operating hours: %v", err)
		return fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
	}

	exception, err := uc.scheduleRepo.GetExceptionByDate(ctx, barID, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
		uc.logger.Error("CreateReservation: failed to get exception: %v", err)
		return fmt.Errorf("%w: failed to get exception: %v", ErrInternal, err)
	}

	if resolution := domain.ResolveDay(hours, exception, date); !resolution.IsOpen {
		uc.logger.Warn("CreateReservation: bar=%d is closed on %s", barID, date.Format(domain.DateFormat))
		return ErrBarClosed
	}

	return nil
}

// checkSeatOption проверяет конфигурацию типа посадки и размер компании
func (uc *UseCase) checkSeatOption(ctx context.Context, req *Request) (*domain.SeatOption, error) {
	option, err := uc.seatOptionRepo.GetByBarAndType(ctx, req.BarID, req.SeatType)
	if err != nil {
		if errors.Is(err, seatoptionRepo.ErrSeatOptionNotFound) {
			uc.logger.Warn("CreateReservation: seat type %s is not configured for bar=%d", req.SeatType, req.BarID)
			return nil, ErrSeatTypeUnavailable
		}
		uc.logger.Error("CreateReservation: failed to get seat option: %v", err)
		return nil, fmt.Errorf("%w: failed to get seat option: %v", ErrInternal, err)
	}

	if !option.Enabled {
		uc.logger.Warn("CreateReservation: seat type %s is disabled for bar=%d", req.SeatType, req.BarID)
		return nil, ErrSeatTypeUnavailable
	}

	if !option.FitsPartySize(req.PartySize) {
		uc.logger.Warn("CreateReservation: party size %d out of range [%d, %d] for bar=%d, seatType=%s",
			req.PartySize, option.MinPeople, option.MaxPeople, req.BarID, req.SeatType)
		return nil, fmt.Errorf("%w: allowed range is %d..%d for %s seating",
			ErrPartySizeOutOfRange, option.MinPeople, option.MaxPeople, req.SeatType)
	}

	return option, nil
}

// resolveDrinks превращает строки заказа в snapshot позиций меню бара
// Имя, тип и цена копируются из меню на момент бронирования
func (uc *UseCase) resolveDrinks(ctx context.Context, req *Request) ([]domain.ReservationDrink, error) {
	if len(req.Drinks) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(req.Drinks))
	for _, line := range req.Drinks {
		ids = append(ids, line.DrinkOptionID)
	}

	options, err := uc.drinkRepo.GetByIDs(ctx, req.BarID, ids)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get drink options: %v", err)
		return nil, fmt.Errorf("%w: failed to get drink options: %v", ErrInternal, err)
	}

	byID := make(map[int64]domain.DrinkOption, len(options))
	for _, opt := range options {
		byID[opt.ID] = opt
	}

	drinks := make([]domain.ReservationDrink, 0, len(req.Drinks))
	for _, line := range req.Drinks {
		opt, ok := byID[line.DrinkOptionID]
		if !ok {
			uc.logger.Warn("CreateReservation: drink option id=%d does not belong to bar=%d",
				line.DrinkOptionID, req.BarID)
			return nil, fmt.Errorf("%w: drink option id=%d", ErrDrinkOptionNotFound, line.DrinkOptionID)
		}

		drinks = append(drinks, domain.ReservationDrink{
			DrinkOptionID:  opt.ID,
			NameAtBooking:  opt.Name,
			TypeAtBooking:  opt.Type,
			PriceAtBooking: opt.Price,
			Quantity:       line.Quantity,
		})
	}

	return drinks, nil
}
