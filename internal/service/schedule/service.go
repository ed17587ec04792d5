package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	barRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/bar"
	scheduleRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/BRS-ReservationService/internal/service/schedule/models"
	"github.com/m04kA/BRS-ReservationService/pkg/types"
)

// Service сервис для управления расписанием бара
type Service struct {
	scheduleRepo ScheduleRepository
	barRepo      BarRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	barRepo BarRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		barRepo:      barRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule получает недельный шаблон бара
// Публичный метод - доступен всем
func (s *Service) GetSchedule(ctx context.Context, barID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for bar=%d", barID)

	if err := s.checkBarExists(ctx, barID); err != nil {
		return nil, err
	}

	hours, err := s.scheduleRepo.GetHoursByBar(ctx, barID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for bar=%d: %v", barID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHours(barID, hours), nil
}

// ReplaceHours полностью заменяет недельный шаблон бара
// Дни, отсутствующие в запросе, становятся закрытыми
// Доступно только владельцу бара. Существующие бронирования не затрагиваются
func (s *Service) ReplaceHours(ctx context.Context, req *models.ReplaceHoursRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ReplaceHours: replacing schedule for bar=%d by user=%d, days=%d",
		req.BarID, req.UserID, len(req.Hours))

	// 1. Валидируем шаблон
	if err := s.validateHours(req.Hours); err != nil {
		s.logger.Warn("ReplaceHours: validation failed for bar=%d: %v", req.BarID, err)
		return nil, err
	}

	// 2. Проверяем права доступа (только владелец бара)
	if err := s.checkOwnerAccess(ctx, req.BarID, req.UserID); err != nil {
		return nil, err
	}

	hours, err := req.ToDomainHours()
	if err != nil {
		s.logger.Warn("ReplaceHours: invalid time format for bar=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Заменяем шаблон атомарно (DELETE + INSERT в одной транзакции)
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceHours(txCtx, req.BarID, hours)
	})
	if err != nil {
		s.logger.Error("ReplaceHours: repository error for bar=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: ReplaceHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceHours: successfully replaced schedule for bar=%d", req.BarID)
	return models.FromDomainHours(req.BarID, hours), nil
}

// UpsertException устанавливает исключение для конкретной даты
// Исключение перекрывает недельный шаблон: закрытие, изменённые часы
// Доступно только владельцу бара
func (s *Service) UpsertException(ctx context.Context, req *models.UpsertExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("UpsertException: setting exception for bar=%d, date=%s by user=%d",
		req.BarID, req.Date, req.UserID)

	// 1. Валидируем и конвертируем дату
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("UpsertException: invalid date %q for bar=%d", req.Date, req.BarID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exc := &domain.BarException{
		BarID:         req.BarID,
		ExceptionDate: date,
		IsClosed:      req.IsClosed,
		ClosesNextDay: req.ClosesNextDay,
	}

	// 2. Часы открытого исключения задаются парой; без часов бар открыт весь день
	if !req.IsClosed && (req.OpenTime != nil || req.CloseTime != nil) {
		if req.OpenTime == nil || req.CloseTime == nil {
			s.logger.Warn("UpsertException: incomplete hours for bar=%d, date=%s", req.BarID, req.Date)
			return nil, fmt.Errorf("%w: openTime and closeTime must be set together", ErrInvalidInput)
		}

		openTime, err := types.NewTimeStringFromString(*req.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		closeTime, err := types.NewTimeStringFromString(*req.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := validateWindow(openTime, closeTime, req.ClosesNextDay); err != nil {
			s.logger.Warn("UpsertException: invalid window for bar=%d, date=%s: %v", req.BarID, req.Date, err)
			return nil, err
		}

		exc.OpenTime = &openTime
		exc.CloseTime = &closeTime
	}

	// 3. Проверяем права доступа (только владелец бара)
	if err := s.checkOwnerAccess(ctx, req.BarID, req.UserID); err != nil {
		return nil, err
	}

	// 4. Сохраняем исключение (INSERT ... ON CONFLICT DO UPDATE)
	saved, err := s.scheduleRepo.UpsertException(ctx, exc)
	if err != nil {
		s.logger.Error("UpsertException: repository error for bar=%d, date=%s: %v", req.BarID, req.Date, err)
		return nil, fmt.Errorf("%w: UpsertException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertException: successfully saved exception id=%d for bar=%d, date=%s",
		saved.ID, req.BarID, req.Date)
	return models.FromDomainException(saved), nil
}

// DeleteException удаляет исключение для даты, возвращая дату под недельный шаблон
// Доступно только владельцу бара
func (s *Service) DeleteException(ctx context.Context, barID int64, userID int64, dateStr string) error {
	s.logger.Info("DeleteException: deleting exception for bar=%d, date=%s by user=%d", barID, dateStr, userID)

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		s.logger.Warn("DeleteException: invalid date %q for bar=%d", dateStr, barID)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.checkOwnerAccess(ctx, barID, userID); err != nil {
		return err
	}

	if err := s.scheduleRepo.DeleteException(ctx, barID, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeleteException: exception not found for bar=%d, date=%s", barID, dateStr)
			return ErrExceptionNotFound
		}
		s.logger.Error("DeleteException: repository error for bar=%d, date=%s: %v", barID, dateStr, err)
		return fmt.Errorf("%w: DeleteException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteException: successfully deleted exception for bar=%d, date=%s", barID, dateStr)
	return nil
}

// GetExceptions получает исключения бара в диапазоне дат
// Публичный метод - доступен всем
func (s *Service) GetExceptions(ctx context.Context, barID int64, startDate, endDate time.Time) ([]*models.ExceptionResponse, error) {
	s.logger.Info("GetExceptions: fetching exceptions for bar=%d, range=%s..%s",
		barID, startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat))

	if err := s.checkBarExists(ctx, barID); err != nil {
		return nil, err
	}

	exceptions, err := s.scheduleRepo.GetExceptionsInRange(ctx, barID, startDate, endDate)
	if err != nil {
		s.logger.Error("GetExceptions: repository error for bar=%d: %v", barID, err)
		return nil, fmt.Errorf("%w: GetExceptions - repository error: %v", ErrInternal, err)
	}

	resp := make([]*models.ExceptionResponse, 0, len(exceptions))
	for _, exc := range exceptions {
		resp = append(resp, models.FromDomainException(exc))
	}
	return resp, nil
}

// Вспомогательные методы

// validateHours валидирует недельный шаблон: корректные дни без дубликатов
// и согласованные временные окна
func (s *Service) validateHours(hours []models.OperatingHourInput) error {
	seen := make(map[int]struct{}, len(hours))

	for i, h := range hours {
		if h.DayOfWeek < 1 || h.DayOfWeek > 7 {
			return fmt.Errorf("%w: hours[%d].dayOfWeek must be between 1 and 7", ErrInvalidInput, i)
		}
		if _, ok := seen[h.DayOfWeek]; ok {
			return fmt.Errorf("%w: hours[%d].dayOfWeek is duplicated", ErrInvalidInput, i)
		}
		seen[h.DayOfWeek] = struct{}{}

		openTime, err := types.NewTimeStringFromString(h.OpenTime)
		if err != nil {
			return fmt.Errorf("%w: hours[%d].openTime: %v", ErrInvalidInput, i, err)
		}
		closeTime, err := types.NewTimeStringFromString(h.CloseTime)
		if err != nil {
			return fmt.Errorf("%w: hours[%d].closeTime: %v", ErrInvalidInput, i, err)
		}

		if err := validateWindow(openTime, closeTime, h.ClosesNextDay); err != nil {
			return fmt.Errorf("hours[%d]: %w", i, err)
		}
	}

	return nil
}

// validateWindow проверяет согласованность окна работы
// Закрытие в тот же день должно быть позже открытия; закрытие на следующий
// день допускает любое время закрытия
func validateWindow(openTime, closeTime types.TimeString, closesNextDay bool) error {
	if !closesNextDay && !openTime.IsBefore(closeTime) {
		return fmt.Errorf("%w: closeTime must be after openTime unless closesNextDay is set", ErrInvalidInput)
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
