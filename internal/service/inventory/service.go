package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	barRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/bar"
	"github.com/m04kA/BRS-ReservationService/internal/service/inventory/models"
)

// Service сервис для управления посадкой и меню напитков бара
type Service struct {
	seatOptionRepo SeatOptionRepository
	drinkRepo      DrinkRepository
	barRepo        BarRepository
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса инвентаря
func NewService(
	seatOptionRepo SeatOptionRepository,
	drinkRepo DrinkRepository,
	barRepo BarRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		seatOptionRepo: seatOptionRepo,
		drinkRepo:      drinkRepo,
		barRepo:        barRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// GetSeatOptions получает конфигурацию посадки бара, включая выключенные типы
// Доступно только владельцу бара - клиентские остатки отдаёт календарь
func (s *Service) GetSeatOptions(ctx context.Context, barID int64, userID int64) (*models.SeatOptionListResponse, error) {
	s.logger.Info("GetSeatOptions: fetching seat options for bar=%d by user=%d", barID, userID)

	if err := s.checkOwnerAccess(ctx, barID, userID); err != nil {
		return nil, err
	}

	options, err := s.seatOptionRepo.GetByBar(ctx, barID)
	if err != nil {
		s.logger.Error("GetSeatOptions: repository error for bar=%d: %v", barID, err)
		return nil, fmt.Errorf("%w: GetSeatOptions - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSeatOptions(barID, options), nil
}

// UpdateSeatOptions обновляет конфигурацию посадки бара
// Уменьшение вместимости не отменяет существующие бронирования: остаток
// опускается до нуля, и новые бронирования не принимаются
// Доступно только владельцу бара
func (s *Service) UpdateSeatOptions(ctx context.Context, req *models.UpdateSeatOptionsRequest) (*models.SeatOptionListResponse, error) {
	s.logger.Info("UpdateSeatOptions: updating %d seat options for bar=%d by user=%d",
		len(req.Options), req.BarID, req.UserID)

	// 1. Валидируем конфигурацию
	if err := s.validateSeatOptions(req.Options); err != nil {
		s.logger.Warn("UpdateSeatOptions: validation failed for bar=%d: %v", req.BarID, err)
		return nil, err
	}

	// 2. Проверяем права доступа (только владелец бара)
	if err := s.checkOwnerAccess(ctx, req.BarID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Сохраняем все типы атомарно
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, in := range req.Options {
			opt := &domain.SeatOption{
				BarID:          req.BarID,
				Type:           domain.SeatType(in.SeatType),
				Enabled:        in.Enabled,
				AvailableCount: in.AvailableCount,
				MinPeople:      in.MinPeople,
				MaxPeople:      in.MaxPeople,
			}
			if in.Restrictions != nil {
				opt.Restrictions = *in.Restrictions
			}

			if _, err := s.seatOptionRepo.Upsert(txCtx, opt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateSeatOptions: repository error for bar=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: UpdateSeatOptions - repository error: %v", ErrInternal, err)
	}

	// 4. Возвращаем актуальную конфигурацию
	options, err := s.seatOptionRepo.GetByBar(ctx, req.BarID)
	if err != nil {
		s.logger.Error("UpdateSeatOptions: failed to reload options for bar=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: UpdateSeatOptions - failed to reload options: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSeatOptions: successfully updated seat options for bar=%d", req.BarID)
	return models.FromDomainSeatOptions(req.BarID, options), nil
}

// GetDrinkMenu получает меню напитков бара
// Публичный метод - доступен всем
func (s *Service) GetDrinkMenu(ctx context.Context, barID int64) (*models.DrinkMenuResponse, error) {
	s.logger.Info("GetDrinkMenu: fetching drink menu for bar=%d", barID)

	if err := s.checkBarExists(ctx, barID); err != nil {
		return nil, err
	}

	drinks, err := s.drinkRepo.GetByBar(ctx, barID)
	if err != nil {
		s.logger.Error("GetDrinkMenu: repository error for bar=%d: %v", barID, err)
		return nil, fmt.Errorf("%w: GetDrinkMenu - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDrinkMenu: successfully fetched %d drinks for bar=%d", len(drinks), barID)
	return models.FromDomainDrinkOptions(barID, drinks), nil
}

// Вспомогательные методы

// validateSeatOptions валидирует конфигурацию посадки
func (s *Service) validateSeatOptions(options []models.SeatOptionInput) error {
	if len(options) == 0 {
		return fmt.Errorf("%w: options must not be empty", ErrInvalidInput)
	}

	seen := make(map[domain.SeatType]struct{}, len(options))

	for i, in := range options {
		seatType := domain.SeatType(in.SeatType)
		if !seatType.IsValid() {
			return fmt.Errorf("%w: options[%d].seatType %q is unknown", ErrInvalidInput, i, in.SeatType)
		}
		if _, ok := seen[seatType]; ok {
			return fmt.Errorf("%w: options[%d].seatType is duplicated", ErrInvalidInput, i)
		}
		seen[seatType] = struct{}{}

		if in.AvailableCount < 0 || in.AvailableCount > domain.MaxSeatUnitsPerType {
			return fmt.Errorf("%w: options[%d].availableCount must be between 0 and %d",
				ErrInvalidInput, i, domain.MaxSeatUnitsPerType)
		}
		if in.MinPeople < domain.MinPartySize {
			return fmt.Errorf("%w: options[%d].minPeople must be at least %d",
				ErrInvalidInput, i, domain.MinPartySize)
		}
		if in.MaxPeople > domain.MaxPartySize {
			return fmt.Errorf("%w: options[%d].maxPeople must not exceed %d",
				ErrInvalidInput, i, domain.MaxPartySize)
		}
		if in.MinPeople > in.MaxPeople {
			return fmt.Errorf("%w: options[%d].minPeople must not exceed maxPeople", ErrInvalidInput, i)
		}

		if in.Restrictions != nil {
			if in.Restrictions.MinBottles != nil && *in.Restrictions.MinBottles < 0 {
				return fmt.Errorf("%w: options[%d].restrictions.minBottles must not be negative", ErrInvalidInput, i)
			}
			if in.Restrictions.MinConsumption != nil && *in.Restrictions.MinConsumption < 0 {
				return fmt.Errorf("%w: options[%d].restrictions.minConsumption must not be negative", ErrInvalidInput, i)
			}
		}
	}

	return nil
}

// checkBarExists проверяет существование бара
func (s *Service) checkBarExists(ctx context.Context, barID int64) error {
	if _, err := s.barRepo.GetByID(ctx, barID); err != nil {
		if errors.Is(err, barRepo.ErrBarNotFound) {
			s.logger.Warn("checkBarExists: bar id=%d not found", barID)
			return ErrBarNotFound
		}
		s.logger.Error("checkBarExists: failed to get bar id=%d: %v", barID, err)
		return fmt.Errorf("%w: failed to get bar: %v", ErrInternal, err)
	}
	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем бара
func (s *Service) checkOwnerAccess(ctx context.Context, barID int64, userID int64) error {
	bar, err := s.barRepo.GetByID(ctx, barID)
	if err != nil {
		if errors.Is(err, barRepo.ErrBarNotFound) {
			s.logger.Warn("checkOwnerAccess: bar id=%d not found", barID)
			return ErrBarNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get bar id=%d: %v", barID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get bar: %v", ErrInternal, err)
	}

	if !bar.IsOwnedBy(userID) {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of bar=%d", userID, barID)
		return ErrAccessDenied
	}

	return nil
}
