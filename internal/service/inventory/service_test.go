package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	barRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/bar"
	"github.com/m04kA/BRS-ReservationService/internal/service/inventory/models"
	"github.com/m04kA/BRS-ReservationService/pkg/ptr"
)

type fakeSeatOptionRepo struct {
	options  []domain.SeatOption
	upserted []*domain.SeatOption
}

func (f *fakeSeatOptionRepo) GetByBar(ctx context.Context, barID int64) ([]domain.SeatOption, error) {
	return f.options, nil
}

func (f *fakeSeatOptionRepo) Upsert(ctx context.Context, opt *domain.SeatOption) (*domain.SeatOption, error) {
	f.upserted = append(f.upserted, opt)
	return opt, nil
}

type fakeDrinkRepo struct {
	drinks []domain.DrinkOption
}

func (f *fakeDrinkRepo) GetByBar(ctx context.Context, barID int64) ([]domain.DrinkOption, error) {
	return f.drinks, nil
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

func newTestService() (*Service, *fakeSeatOptionRepo, *fakeDrinkRepo, *fakeTxManager) {
	seats := &fakeSeatOptionRepo{}
	drinks := &fakeDrinkRepo{}
	bars := &fakeBarRepo{bars: map[int64]*domain.Bar{1: {ID: 1, OwnerID: ownerID}}}
	tx := &fakeTxManager{}
	return NewService(seats, drinks, bars, tx, noopLogger{}), seats, drinks, tx
}

func validOptions() []models.SeatOptionInput {
	return []models.SeatOptionInput{
		{SeatType: "table", Enabled: true, AvailableCount: 10, MinPeople: 1, MaxPeople: 6},
		{SeatType: "vip", Enabled: true, AvailableCount: 2, MinPeople: 4, MaxPeople: 12},
	}
}

func TestUpdateSeatOptions_UpsertsAllTypes(t *testing.T) {
	svc, seats, _, tx := newTestService()

	_, err := svc.UpdateSeatOptions(context.Background(), &models.UpdateSeatOptionsRequest{
		UserID:  ownerID,
		BarID:   1,
		Options: validOptions(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	require.Len(t, seats.upserted, 2)
	assert.Equal(t, domain.SeatTypeTable, seats.upserted[0].Type)
	assert.Equal(t, domain.SeatTypeVIP, seats.upserted[1].Type)
}

func TestUpdateSeatOptions_NotOwner(t *testing.T) {
	svc, seats, _, _ := newTestService()

	_, err := svc.UpdateSeatOptions(context.Background(), &models.UpdateSeatOptionsRequest{
		UserID:  55,
		BarID:   1,
		Options: validOptions(),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, seats.upserted)
}

func TestUpdateSeatOptions_UnknownSeatType(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpdateSeatOptions(context.Background(), &models.UpdateSeatOptionsRequest{
		UserID: ownerID,
		BarID:  1,
		Options: []models.SeatOptionInput{
			{SeatType: "sofa", Enabled: true, AvailableCount: 1, MinPeople: 1, MaxPeople: 2},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateSeatOptions_DuplicateTypeRejected(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpdateSeatOptions(context.Background(), &models.UpdateSeatOptionsRequest{
		UserID: ownerID,
		BarID:  1,
		Options: []models.SeatOptionInput{
			{SeatType: "table", Enabled: true, AvailableCount: 5, MinPeople: 1, MaxPeople: 4},
			{SeatType: "table", Enabled: false, AvailableCount: 3, MinPeople: 1, MaxPeople: 4},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateSeatOptions_BoundsValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	cases := []struct {
		name   string
		option models.SeatOptionInput
	}{
		{"negative count", models.SeatOptionInput{SeatType: "table", AvailableCount: -1, MinPeople: 1, MaxPeople: 4}},
		{"count above limit", models.SeatOptionInput{SeatType: "table", AvailableCount: domain.MaxSeatUnitsPerType + 1, MinPeople: 1, MaxPeople: 4}},
		{"min above max", models.SeatOptionInput{SeatType: "table", AvailableCount: 5, MinPeople: 6, MaxPeople: 4}},
		{"zero min people", models.SeatOptionInput{SeatType: "table", AvailableCount: 5, MinPeople: 0, MaxPeople: 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateSeatOptions(context.Background(), &models.UpdateSeatOptionsRequest{
				UserID:  ownerID,
				BarID:   1,
				Options: []models.SeatOptionInput{tc.option},
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateSeatOptions_NegativeRestrictions(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpdateSeatOptions(context.Background(), &models.UpdateSeatOptionsRequest{
		UserID: ownerID,
		BarID:  1,
		Options: []models.SeatOptionInput{
			{
				SeatType: "vip", Enabled: true, AvailableCount: 2, MinPeople: 4, MaxPeople: 12,
				Restrictions: &domain.Restrictions{MinBottles: ptr.Ptr(-1)},
			},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSeatOptions_OwnerOnly(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetSeatOptions(context.Background(), 1, 55)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetSeatOptions(context.Background(), 1, ownerID)
	assert.NoError(t, err)
}

func TestGetDrinkMenu_Public(t *testing.T) {
	svc, _, drinks, _ := newTestService()
	drinks.drinks = []domain.DrinkOption{
		{ID: 1, BarID: 1, Type: domain.DrinkTypeSingle, Name: "single", Price: 9.5},
		{ID: 2, BarID: 1, Type: domain.DrinkTypeBottle, Name: "cava", Price: 80},
	}

	resp, err := svc.GetDrinkMenu(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.Drinks, 2)
}

func TestGetDrinkMenu_BarNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetDrinkMenu(context.Background(), 999)
	assert.ErrorIs(t, err, ErrBarNotFound)
}
