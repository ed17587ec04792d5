package reservations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	barRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/bar"
	reservationRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/BRS-ReservationService/internal/service/reservations/models"
)

type fakeReservationRepo struct {
	byID        map[int64]*domain.Reservation
	byCustomer  []*domain.Reservation
	cancelled   map[int64]domain.ReservationStatus
	statuses    map[int64]domain.ReservationStatus
	drinks      map[int64][]domain.ReservationDrink
	lastFilter  *domain.BarReservationsFilter
	filteredRes []*domain.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		byID:      make(map[int64]*domain.Reservation),
		cancelled: make(map[int64]domain.ReservationStatus),
		statuses:  make(map[int64]domain.ReservationStatus),
		drinks:    make(map[int64][]domain.ReservationDrink),
	}
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeReservationRepo) GetByCustomerID(ctx context.Context, customerID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	return f.byCustomer, nil
}

func (f *fakeReservationRepo) GetByBarWithFilter(ctx context.Context, filter domain.BarReservationsFilter) ([]*domain.Reservation, error) {
	f.lastFilter = &filter
	return f.filteredRes, nil
}

func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	if _, ok := f.byID[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeReservationRepo) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string) error {
	if _, ok := f.byID[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	f.cancelled[id] = status
	return nil
}

func (f *fakeReservationRepo) GetDrinks(ctx context.Context, reservationID int64) ([]domain.ReservationDrink, error) {
	return f.drinks[reservationID], nil
}

type fakeBarRepo struct {
	bars map[int64]*domain.Bar
}

func (f *fakeBarRepo) GetByID(ctx context.Context, id int64) (*domain.Bar, error) {
	bar, ok := f.bars[id]
	if !ok {
		return nil, barRepo.ErrBarNotFound
	}
	return bar, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

const (
	customerID = int64(7)
	ownerID    = int64(100)
	strangerID = int64(55)
)

func newTestService() (*Service, *fakeReservationRepo) {
	reservations := newFakeReservationRepo()
	bars := &fakeBarRepo{
		bars: map[int64]*domain.Bar{
			1: {ID: 1, OwnerID: ownerID},
		},
	}
	return NewService(reservations, bars, noopLogger{}), reservations
}

func confirmedReservation(id int64) *domain.Reservation {
	return &domain.Reservation{
		ID:         id,
		BarID:      1,
		CustomerID: customerID,
		SeatType:   domain.SeatTypeTable,
		PartySize:  2,
		Status:     domain.StatusConfirmed,
	}
}

func TestGetByID_CustomerSeesOwnReservation(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[10] = confirmedReservation(10)

	resp, err := svc.GetByID(context.Background(), 10, customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
}

func TestGetByID_OwnerSeesBarReservation(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[10] = confirmedReservation(10)

	_, err := svc.GetByID(context.Background(), 10, ownerID)
	assert.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[10] = confirmedReservation(10)

	_, err := svc.GetByID(context.Background(), 10, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 404, customerID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_ByCustomer(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[10] = confirmedReservation(10)

	err := svc.Cancel(context.Background(), 10, &models.CancelReservationRequest{
		UserID:             customerID,
		CancellationReason: "изменились планы",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByCustomer, repo.cancelled[10])
}

func TestCancel_ByBarOwner(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[10] = confirmedReservation(10)

	err := svc.Cancel(context.Background(), 10, &models.CancelReservationRequest{
		UserID: ownerID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByBar, repo.cancelled[10])
}

func TestCancel_StrangerDenied(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[10] = confirmedReservation(10)

	err := svc.Cancel(context.Background(), 10, &models.CancelReservationRequest{
		UserID: strangerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	svc, repo := newTestService()
	res := confirmedReservation(10)
	res.Status = domain.StatusCancelledByCustomer
	repo.byID[10] = res

	err := svc.Cancel(context.Background(), 10, &models.CancelReservationRequest{
		UserID: customerID,
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_NoShowCannotBeCancelled(t *testing.T) {
	svc, repo := newTestService()
	res := confirmedReservation(10)
	res.Status = domain.StatusNoShow
	repo.byID[10] = res

	err := svc.Cancel(context.Background(), 10, &models.CancelReservationRequest{
		UserID: ownerID,
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_OwnerMarksNoShow(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[10] = confirmedReservation(10)

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "no_show",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, repo.statuses[10])
}

func TestUpdateStatus_CustomerDenied(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[10] = confirmedReservation(10)

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: customerID,
		Status: "no_show",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[10] = confirmedReservation(10)

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "vanished",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBarReservations_OwnerOnly(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetBarReservations(context.Background(), &models.GetBarReservationsRequest{
		BarID:  1,
		UserID: strangerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetBarReservations_FilterPassedThrough(t *testing.T) {
	svc, repo := newTestService()
	seatType := "table"

	_, err := svc.GetBarReservations(context.Background(), &models.GetBarReservationsRequest{
		BarID:    1,
		UserID:   ownerID,
		SeatType: &seatType,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, int64(1), repo.lastFilter.BarID)
	require.NotNil(t, repo.lastFilter.SeatType)
	assert.Equal(t, domain.SeatTypeTable, *repo.lastFilter.SeatType)
}
