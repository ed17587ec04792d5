package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	barRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/bar"
	"github.com/m04kA/BRS-ReservationService/internal/service/schedule/models"
)

type fakeScheduleRepo struct {
	hours      []domain.OperatingHour
	replaced   []domain.OperatingHour
	upserted   *domain.BarException
	deleted    []time.Time
	exceptions []*domain.BarException
}

func (f *fakeScheduleRepo) GetHoursByBar(ctx context.Context, barID int64) ([]domain.OperatingHour, error) {
	return f.hours, nil
}

func (f *fakeScheduleRepo) ReplaceHours(ctx context.Context, barID int64, hours []domain.OperatingHour) error {
	f.replaced = hours
	return nil
}

func (f *fakeScheduleRepo) GetExceptionsInRange(ctx context.Context, barID int64, startDate, endDate time.Time) ([]*domain.BarException, error) {
	return f.exceptions, nil
}

func (f *fakeScheduleRepo) UpsertException(ctx context.Context, exc *domain.BarException) (*domain.BarException, error) {
	exc.ID = 1
	f.upserted = exc
	return exc, nil
}

func (f *fakeScheduleRepo) DeleteException(ctx context.Context, barID int64, date time.Time) error {
	f.deleted = append(f.deleted, date)
	return nil
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

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

const ownerID = int64(100)

func newTestService() (*Service, *fakeScheduleRepo, *fakeTxManager) {
	schedule := &fakeScheduleRepo{}
	bars := &fakeBarRepo{bars: map[int64]*domain.Bar{1: {ID: 1, OwnerID: ownerID}}}
	tx := &fakeTxManager{}
	return NewService(schedule, bars, tx, noopLogger{}), schedule, tx
}

func TestReplaceHours_AtomicReplace(t *testing.T) {
	svc, repo, tx := newTestService()

	resp, err := svc.ReplaceHours(context.Background(), &models.ReplaceHoursRequest{
		UserID: ownerID,
		BarID:  1,
		Hours: []models.OperatingHourInput{
			{DayOfWeek: 5, OpenTime: "18:00", CloseTime: "02:00", ClosesNextDay: true},
			{DayOfWeek: 6, OpenTime: "18:00", CloseTime: "23:00"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	require.Len(t, repo.replaced, 2)
	assert.Len(t, resp.Hours, 2)
}

func TestReplaceHours_DuplicateDayRejected(t *testing.T) {
	svc, _, tx := newTestService()

	_, err := svc.ReplaceHours(context.Background(), &models.ReplaceHoursRequest{
		UserID: ownerID,
		BarID:  1,
		Hours: []models.OperatingHourInput{
			{DayOfWeek: 5, OpenTime: "18:00", CloseTime: "23:00"},
			{DayOfWeek: 5, OpenTime: "12:00", CloseTime: "20:00"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, tx.calls)
}

func TestReplaceHours_WindowValidation(t *testing.T) {
	svc, _, _ := newTestService()

	// Закрытие раньше открытия без closesNextDay
	_, err := svc.ReplaceHours(context.Background(), &models.ReplaceHoursRequest{
		UserID: ownerID,
		BarID:  1,
		Hours: []models.OperatingHourInput{
			{DayOfWeek: 5, OpenTime: "18:00", CloseTime: "02:00"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// То же окно с closesNextDay корректно
	_, err = svc.ReplaceHours(context.Background(), &models.ReplaceHoursRequest{
		UserID: ownerID,
		BarID:  1,
		Hours: []models.OperatingHourInput{
			{DayOfWeek: 5, OpenTime: "18:00", CloseTime: "02:00", ClosesNextDay: true},
		},
	})
	assert.NoError(t, err)
}

func TestReplaceHours_NotOwner(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ReplaceHours(context.Background(), &models.ReplaceHoursRequest{
		UserID: 55,
		BarID:  1,
		Hours: []models.OperatingHourInput{
			{DayOfWeek: 5, OpenTime: "18:00", CloseTime: "23:00"},
		},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestReplaceHours_EmptyListClosesBar(t *testing.T) {
	svc, repo, tx := newTestService()

	resp, err := svc.ReplaceHours(context.Background(), &models.ReplaceHoursRequest{
		UserID: ownerID,
		BarID:  1,
		Hours:  []models.OperatingHourInput{},
	})
	require.NoError(t, err)

	// Пустой шаблон валиден - бар закрыт каждый день
	assert.Equal(t, 1, tx.calls)
	assert.Empty(t, repo.replaced)
	assert.Empty(t, resp.Hours)
}

func TestUpsertException_Closed(t *testing.T) {
	svc, repo, _ := newTestService()

	resp, err := svc.UpsertException(context.Background(), &models.UpsertExceptionRequest{
		UserID:   ownerID,
		BarID:    1,
		Date:     "2026-09-15",
		IsClosed: true,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsClosed)
	require.NotNil(t, repo.upserted)
	assert.True(t, repo.upserted.IsClosed)
	assert.Nil(t, repo.upserted.OpenTime)
}

func TestUpsertException_OpenAllDayWithoutHours(t *testing.T) {
	svc, repo, _ := newTestService()

	resp, err := svc.UpsertException(context.Background(), &models.UpsertExceptionRequest{
		UserID:   ownerID,
		BarID:    1,
		Date:     "2026-09-15",
		IsClosed: false,
	})
	require.NoError(t, err)

	// Открытое исключение без часов - бар открыт весь день
	assert.False(t, resp.IsClosed)
	require.NotNil(t, repo.upserted)
	assert.Nil(t, repo.upserted.OpenTime)
	assert.Nil(t, repo.upserted.CloseTime)
}

func TestUpsertException_IncompleteHoursRejected(t *testing.T) {
	svc, _, _ := newTestService()

	openTime := "12:00"
	_, err := svc.UpsertException(context.Background(), &models.UpsertExceptionRequest{
		UserID:   ownerID,
		BarID:    1,
		Date:     "2026-09-15",
		OpenTime: &openTime,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertException_OpenWithHours(t *testing.T) {
	svc, repo, _ := newTestService()

	openTime := "12:00"
	closeTime := "20:00"
	resp, err := svc.UpsertException(context.Background(), &models.UpsertExceptionRequest{
		UserID:    ownerID,
		BarID:     1,
		Date:      "2026-09-15",
		OpenTime:  &openTime,
		CloseTime: &closeTime,
	})
	require.NoError(t, err)

	assert.False(t, resp.IsClosed)
	require.NotNil(t, repo.upserted.OpenTime)
	assert.Equal(t, "12:00", repo.upserted.OpenTime.String())
}

func TestUpsertException_InvalidDate(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpsertException(context.Background(), &models.UpsertExceptionRequest{
		UserID:   ownerID,
		BarID:    1,
		Date:     "2026-02-30",
		IsClosed: true,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteException(t *testing.T) {
	svc, repo, _ := newTestService()

	err := svc.DeleteException(context.Background(), 1, ownerID, "2026-09-15")
	require.NoError(t, err)
	require.Len(t, repo.deleted, 1)
	assert.Equal(t, "2026-09-15", repo.deleted[0].Format(domain.DateFormat))
}

func TestDeleteException_NotOwner(t *testing.T) {
	svc, repo, _ := newTestService()

	err := svc.DeleteException(context.Background(), 1, 55, "2026-09-15")
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deleted)
}

func TestGetSchedule_BarNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetSchedule(context.Background(), 999)
	assert.ErrorIs(t, err, ErrBarNotFound)
}
