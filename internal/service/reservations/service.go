package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	barRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/bar"
	reservationRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/BRS-ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	barRepo         BarRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	barRepo BarRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		barRepo:         barRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - клиент видит только своё бронирование,
// владелец бара - бронирования своего бара
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	drinks, err := s.reservationRepo.GetDrinks(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get drinks for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get drinks: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation, drinks), nil
}

// GetUserReservations получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByCustomerID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetBarReservations получает бронирования бара с гибкой фильтрацией
// по дате, типу посадки, статусу и включению неактивных
// Доступно только владельцу бара
func (s *Service) GetBarReservations(ctx context.Context, req *models.GetBarReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetBarReservations: fetching reservations for bar=%d, user=%d", req.BarID, req.UserID)

	// Проверяем права доступа владельца
	if err := s.checkOwnerAccess(ctx, req.BarID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBarReservations: invalid filter for bar=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByBarWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBarReservations: repository error for bar=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: GetBarReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBarReservations: successfully fetched %d reservations for bar=%d", len(reservations), req.BarID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Клиент может отменить только своё бронирование (cancelled_by_customer)
// Владелец бара может отменить любое бронирование своего бара (cancelled_by_bar)
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Отменить можно только подтверждённую бронь
	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.ReservationStatus

	if reservation.CustomerID == req.UserID {
		cancelStatus = domain.StatusCancelledByCustomer
	} else {
		if err := s.checkOwnerAccess(ctx, reservation.BarID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByBar
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d with status=%s", reservationID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус бронирования (например, отметка no_show)
// Доступно только владельцу бара
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d",
		reservationID, req.Status, req.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только владелец бара)
	if err := s.checkOwnerAccess(ctx, reservation.BarID, req.UserID); err != nil {
		return err
	}

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", reservationID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Клиент видит своё бронирование, владелец бара - бронирования своего бара
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	if reservation.CustomerID == userID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, reservation.BarID, userID); err != nil {
		// Ошибка уже залогирована в checkOwnerAccess
		return ErrAccessDenied
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
