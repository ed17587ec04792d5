package get_bar_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	getBarAvailability "github.com/m04kA/BRS-ReservationService/internal/usecase/get_bar_availability"
	"github.com/m04kA/BRS-ReservationService/pkg/types"
)

type fakeUseCase struct {
	resp *getBarAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *getBarAvailability.Request) (*getBarAvailability.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func get(handler *Handler, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bars/{barId}/availability", handler.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_SortedDates(t *testing.T) {
	uc := &fakeUseCase{
		resp: &getBarAvailability.Response{
			BarID: 1,
			DateStatuses: map[string]getBarAvailability.DateStatus{
				"2026-09-16": {IsOpen: false, AvailableSeatTypes: []domain.SeatType{}},
				"2026-09-15": {
					IsOpen:             true,
					OpenTime:           types.TimeString("18:00"),
					CloseTime:          types.TimeString("02:00"),
					ClosesNextDay:      true,
					AvailableSeatTypes: []domain.SeatType{domain.SeatTypeTable},
				},
			},
		},
	}
	handler := NewHandler(uc, noopLogger{})

	rec := get(handler, "/api/v1/bars/1/availability?startDate=2026-09-15&endDate=2026-09-16")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Dates, 2)

	// Даты идут по возрастанию независимо от порядка в map
	assert.Equal(t, "2026-09-15", resp.Dates[0].Date)
	assert.Equal(t, "2026-09-16", resp.Dates[1].Date)

	// Часы присутствуют только у открытого дня
	require.NotNil(t, resp.Dates[0].OpenTime)
	assert.Equal(t, "18:00", *resp.Dates[0].OpenTime)
	assert.Nil(t, resp.Dates[1].OpenTime)
}

func TestHandle_BarNotFound(t *testing.T) {
	handler := NewHandler(&fakeUseCase{err: getBarAvailability.ErrBarNotFound}, noopLogger{})

	rec := get(handler, "/api/v1/bars/99/availability?startDate=2026-09-15&endDate=2026-09-16")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_MissingQueryParams(t *testing.T) {
	handler := NewHandler(&fakeUseCase{}, noopLogger{})

	rec := get(handler, "/api/v1/bars/1/availability?startDate=2026-09-15")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(handler, "/api/v1/bars/1/availability?endDate=2026-09-16")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidDateFormat(t *testing.T) {
	handler := NewHandler(&fakeUseCase{}, noopLogger{})

	rec := get(handler, "/api/v1/bars/1/availability?startDate=15.09.2026&endDate=2026-09-16")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidRange(t *testing.T) {
	handler := NewHandler(&fakeUseCase{err: getBarAvailability.ErrInvalidRange}, noopLogger{})

	rec := get(handler, "/api/v1/bars/1/availability?startDate=2026-09-16&endDate=2026-09-15")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
