package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/schedule"
	seatoptionRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/seatoption"
	"github.com/m04kA/BRS-ReservationService/pkg/types"
)

type fakeBarRepo struct {
	bar *domain.Bar
	err error
}

func (f *fakeBarRepo) GetByID(ctx context.Context, id int64) (*domain.Bar, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bar, nil
}

type fakeScheduleRepo struct {
	hours     []domain.OperatingHour
	exception *domain.BarException
}

func (f *fakeScheduleRepo) GetHoursByBar(ctx context.Context, barID int64) ([]domain.OperatingHour, error) {
	return f.hours, nil
}

func (f *fakeScheduleRepo) GetExceptionByDate(ctx context.Context, barID int64, date time.Time) (*domain.BarException, error) {
	if f.exception == nil {
		return nil, scheduleRepo.ErrExceptionNotFound
	}
	return f.exception, nil
}

type fakeSeatOptionRepo struct {
	option *domain.SeatOption
	err    error
}

func (f *fakeSeatOptionRepo) GetByBarAndType(ctx context.Context, barID int64, seatType domain.SeatType) (*domain.SeatOption, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.option, nil
}

type fakeReservationRepo struct {
	counts     map[domain.SeatType]int
	existing   *domain.Reservation
	createErr  error
	attachErr  error
	created    []*domain.Reservation
	nextID     int64
	drinksByID map[int64][]domain.ReservationDrink
}

func (f *fakeReservationRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	res.ID = f.nextID
	f.created = append(f.created, res)
	return res, nil
}

func (f *fakeReservationRepo) GetByIdempotencyKey(ctx context.Context, customerID int64, key string) (*domain.Reservation, error) {
	if f.existing == nil {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return f.existing, nil
}

func (f *fakeReservationRepo) CountActiveOnDate(ctx context.Context, barID int64, date time.Time) (map[domain.SeatType]int, error) {
	return f.counts, nil
}

func (f *fakeReservationRepo) AttachDrinks(ctx context.Context, reservationID int64, drinks []domain.ReservationDrink) ([]domain.ReservationDrink, error) {
	if f.attachErr != nil {
		return nil, f.attachErr
	}
	for i := range drinks {
		drinks[i].ReservationID = reservationID
	}
	return drinks, nil
}

func (f *fakeReservationRepo) GetDrinks(ctx context.Context, reservationID int64) ([]domain.ReservationDrink, error) {
	return f.drinksByID[reservationID], nil
}

type fakeDrinkRepo struct {
	options []domain.DrinkOption
}

func (f *fakeDrinkRepo) GetByIDs(ctx context.Context, barID int64, ids []int64) ([]domain.DrinkOption, error) {
	return f.options, nil
}

// fakeTxManager выполняет fn без транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// 2026-01-12 - понедельник
var testNow = time.Date(2026, time.January, 12, 10, 0, 0, 0, time.UTC)

// mondayDate открытый по шаблону день в пределах окна бронирования
var mondayDate = time.Date(2026, time.January, 19, 0, 0, 0, 0, time.UTC)

type fixture struct {
	bars         *fakeBarRepo
	schedule     *fakeScheduleRepo
	seats        *fakeSeatOptionRepo
	reservations *fakeReservationRepo
	drinks       *fakeDrinkRepo
	tx           *fakeTxManager
}

func newFixture() *fixture {
	return &fixture{
		bars: &fakeBarRepo{bar: &domain.Bar{ID: 1}},
		schedule: &fakeScheduleRepo{
			hours: []domain.OperatingHour{
				{DayOfWeek: 1, OpenTime: types.TimeString("18:00"), CloseTime: types.TimeString("23:00")},
			},
		},
		seats: &fakeSeatOptionRepo{
			option: &domain.SeatOption{
				Type:           domain.SeatTypeTable,
				Enabled:        true,
				AvailableCount: 5,
				MinPeople:      1,
				MaxPeople:      6,
			},
		},
		reservations: &fakeReservationRepo{},
		drinks:       &fakeDrinkRepo{},
		tx:           &fakeTxManager{},
	}
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(f.bars, f.schedule, f.seats, f.reservations, f.drinks, f.tx, noopLogger{})
	uc.timeProvider = &fixedClock{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		BarID:      1,
		CustomerID: 7,
		Date:       mondayDate,
		SeatType:   domain.SeatTypeTable,
		PartySize:  2,
	}
}

func TestExecute_CreatesReservation(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.IsReplay)
	assert.Equal(t, domain.StatusConfirmed, resp.Reservation.Status)
	assert.Equal(t, int64(7), resp.Reservation.CustomerID)
	assert.Equal(t, 1, f.tx.calls)
	require.Len(t, f.reservations.created, 1)
}

func TestExecute_BarClosedOnDate(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	req := validRequest()
	// 2026-01-20 - вторник, строки в шаблоне нет
	req.Date = time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBarClosed)
	assert.Zero(t, f.tx.calls)
}

func TestExecute_SeatTypeNotConfigured(t *testing.T) {
	f := newFixture()
	f.seats.err = seatoptionRepo.ErrSeatOptionNotFound
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSeatTypeUnavailable)
}

func TestExecute_SeatTypeDisabled(t *testing.T) {
	f := newFixture()
	f.seats.option.Enabled = false
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSeatTypeUnavailable)
}

func TestExecute_PartySizeOutOfRange(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	req := validRequest()
	req.PartySize = 10 // option.MaxPeople = 6

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPartySizeOutOfRange)
	// Валидация отсекает запрос до проверки вместимости
	assert.Zero(t, f.tx.calls)
}

func TestExecute_SoldOut(t *testing.T) {
	f := newFixture()
	f.reservations.counts = map[domain.SeatType]int{domain.SeatTypeTable: 5}
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSoldOut)
	assert.Empty(t, f.reservations.created)
}

// liveCountRepo считает активные брони по фактически созданным строкам,
// как это делает пересчёт внутри сериализуемой транзакции
type liveCountRepo struct {
	*fakeReservationRepo
}

func (r *liveCountRepo) CountActiveOnDate(ctx context.Context, barID int64, date time.Time) (map[domain.SeatType]int, error) {
	counts := map[domain.SeatType]int{}
	for _, res := range r.created {
		counts[res.SeatType]++
	}
	return counts, nil
}

func TestExecute_LastUnitAdmitsExactlyOne(t *testing.T) {
	f := newFixture()
	f.seats.option.AvailableCount = 1
	uc := f.useCase()
	uc.reservationRepo = &liveCountRepo{fakeReservationRepo: f.reservations}

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, first.Reservation.Status)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSoldOut)
	assert.Len(t, f.reservations.created, 1)
}

func TestExecute_PastDateRejected(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_DateBeyondWindowRejected(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, domain.MaxBookingWindowDays+1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_InvalidIdempotencyKey(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	req := validRequest()
	key := "not-a-uuid"
	req.IdempotencyKey = &key

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_IdempotentReplay(t *testing.T) {
	f := newFixture()
	f.reservations.existing = &domain.Reservation{
		ID:         42,
		BarID:      1,
		CustomerID: 7,
		Status:     domain.StatusConfirmed,
	}
	f.reservations.drinksByID = map[int64][]domain.ReservationDrink{
		42: {{DrinkOptionID: 3, Quantity: 1}},
	}
	uc := f.useCase()

	req := validRequest()
	key := "5e0442e0-8a9e-4a5f-bb1a-1a1f5ad2c19a"
	req.IdempotencyKey = &key

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.IsReplay)
	assert.Equal(t, int64(42), resp.Reservation.ID)
	assert.Len(t, resp.Drinks, 1)
	// Новая бронь не создаётся
	assert.Empty(t, f.reservations.created)
	assert.Zero(t, f.tx.calls)
}

func TestExecute_DrinkMinimumBottlesNotMet(t *testing.T) {
	f := newFixture()
	minBottles := 2
	f.seats.option.Restrictions = domain.Restrictions{MinBottles: &minBottles}
	f.drinks.options = []domain.DrinkOption{
		{ID: 3, BarID: 1, Type: domain.DrinkTypeBottle, Name: "cava", Price: 80},
	}
	uc := f.useCase()

	req := validRequest()
	req.Drinks = []DrinkLine{{DrinkOptionID: 3, Quantity: 1}}

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrDrinkMinimumNotMet)

	var minimumErr *DrinkMinimumError
	require.True(t, errors.As(err, &minimumErr))
	assert.Equal(t, 2, minimumErr.MinBottles)
	assert.Equal(t, 1, minimumErr.ActualBottles)
}

func TestExecute_DrinkMinimumConsumptionNotMet(t *testing.T) {
	f := newFixture()
	minConsumption := 500.0
	f.seats.option.Restrictions = domain.Restrictions{MinConsumption: &minConsumption}
	f.drinks.options = []domain.DrinkOption{
		{ID: 3, BarID: 1, Type: domain.DrinkTypeBottle, Name: "cava", Price: 80},
	}
	uc := f.useCase()

	req := validRequest()
	req.Drinks = []DrinkLine{{DrinkOptionID: 3, Quantity: 2}}

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrDrinkMinimumNotMet)

	var minimumErr *DrinkMinimumError
	require.True(t, errors.As(err, &minimumErr))
	assert.InDelta(t, 500.0, minimumErr.MinConsumption, 0.001)
	assert.InDelta(t, 160.0, minimumErr.ActualAmount, 0.001)
}

func TestExecute_DrinkOptionFromAnotherBar(t *testing.T) {
	f := newFixture()
	// Репозиторий ничего не нашёл - ID не принадлежит бару
	f.drinks.options = nil
	uc := f.useCase()

	req := validRequest()
	req.Drinks = []DrinkLine{{DrinkOptionID: 99, Quantity: 1}}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDrinkOptionNotFound)
}

func TestExecute_DrinksSnapshotPrices(t *testing.T) {
	f := newFixture()
	f.drinks.options = []domain.DrinkOption{
		{ID: 3, BarID: 1, Type: domain.DrinkTypeBottle, Name: "cava", Price: 80},
		{ID: 4, BarID: 1, Type: domain.DrinkTypeSingle, Name: "single", Price: 9.5},
	}
	uc := f.useCase()

	req := validRequest()
	req.Drinks = []DrinkLine{
		{DrinkOptionID: 3, Quantity: 2},
		{DrinkOptionID: 4, Quantity: 4},
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Drinks, 2)
	assert.Equal(t, "cava", resp.Drinks[0].NameAtBooking)
	assert.InDelta(t, 80.0, resp.Drinks[0].PriceAtBooking, 0.001)
	assert.Equal(t, domain.DrinkTypeSingle, resp.Drinks[1].TypeAtBooking)
}

func TestExecute_DrinkAttachmentFailureIsNonFatal(t *testing.T) {
	f := newFixture()
	f.drinks.options = []domain.DrinkOption{
		{ID: 3, BarID: 1, Type: domain.DrinkTypeBottle, Name: "cava", Price: 80},
	}
	f.reservations.attachErr = errors.New("connection reset")
	uc := f.useCase()

	req := validRequest()
	req.Drinks = []DrinkLine{{DrinkOptionID: 3, Quantity: 1}}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Бронь создана, ошибка напитков - предупреждение, а не отказ
	require.Len(t, f.reservations.created, 1)
	assert.ErrorIs(t, resp.DrinksWarning, ErrDrinkAttachmentFailed)
	assert.Empty(t, resp.Drinks)
}

func TestExecute_DuplicateKeyRaceReturnsWinner(t *testing.T) {
	f := newFixture()
	f.reservations.createErr = reservationRepo.ErrDuplicateIdempotencyKey
	uc := f.useCase()

	req := validRequest()
	key := "5e0442e0-8a9e-4a5f-bb1a-1a1f5ad2c19a"
	req.IdempotencyKey = &key

	// После проигрыша гонки повторный поиск находит бронь победителя
	winner := &domain.Reservation{ID: 17, BarID: 1, CustomerID: 7, Status: domain.StatusConfirmed}

	// Первый findReplay (до транзакции) ничего не находит, второй - находит
	lookups := 0
	f.reservations.existing = nil
	base := f.reservations
	uc.reservationRepo = &replaySequenceRepo{fakeReservationRepo: base, winner: winner, lookups: &lookups}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.IsReplay)
	assert.Equal(t, int64(17), resp.Reservation.ID)
}

// replaySequenceRepo первый поиск по ключу отвечает not-found,
// последующие возвращают бронь победителя гонки
type replaySequenceRepo struct {
	*fakeReservationRepo
	winner  *domain.Reservation
	lookups *int
}

func (r *replaySequenceRepo) GetByIdempotencyKey(ctx context.Context, customerID int64, key string) (*domain.Reservation, error) {
	*r.lookups++
	if *r.lookups == 1 {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r.winner, nil
}

func TestExecute_DuplicateDrinkLinesRejected(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	req := validRequest()
	req.Drinks = []DrinkLine{
		{DrinkOptionID: 3, Quantity: 1},
		{DrinkOptionID: 3, Quantity: 2},
	}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
