package create_reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BRS-ReservationService/internal/api/middleware"
	"github.com/m04kA/BRS-ReservationService/internal/domain"
	createReservation "github.com/m04kA/BRS-ReservationService/internal/usecase/create_reservation"
)

type fakeUseCase struct {
	resp *createReservation.Response
	err  error
	got  *createReservation.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func post(t *testing.T, handler *Handler, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewReader(raw))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)
	return rec
}

func validBody() CreateReservationRequest {
	return CreateReservationRequest{
		BarID:     1,
		Date:      "2026-09-15",
		SeatType:  "table",
		PartySize: 2,
	}
}

func createdResponse() *createReservation.Response {
	return &createReservation.Response{
		Reservation: &domain.Reservation{
			ID:         10,
			BarID:      1,
			CustomerID: 7,
			SeatType:   domain.SeatTypeTable,
			PartySize:  2,
			Status:     domain.StatusConfirmed,
		},
		Drinks: []domain.ReservationDrink{},
	}
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: createdResponse()}
	handler := NewHandler(uc, noopLogger{})

	rec := post(t, handler, "7", validBody())

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(7), uc.got.CustomerID)

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Nil(t, resp.Warning)
}

func TestHandle_ReplayReturns200(t *testing.T) {
	resp := createdResponse()
	resp.IsReplay = true
	handler := NewHandler(&fakeUseCase{resp: resp}, noopLogger{})

	rec := post(t, handler, "7", validBody())

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_DrinksWarningInBody(t *testing.T) {
	resp := createdResponse()
	resp.DrinksWarning = createReservation.ErrDrinkAttachmentFailed
	handler := NewHandler(&fakeUseCase{resp: resp}, noopLogger{})

	rec := post(t, handler, "7", validBody())

	require.Equal(t, http.StatusCreated, rec.Code)

	var out ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotNil(t, out.Warning)
	assert.Equal(t, msgDrinksNotAttached, *out.Warning)
}

func TestHandle_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"bar not found", createReservation.ErrBarNotFound, http.StatusNotFound},
		{"bar closed", createReservation.ErrBarClosed, http.StatusConflict},
		{"seat type unavailable", createReservation.ErrSeatTypeUnavailable, http.StatusConflict},
		{"sold out", createReservation.ErrSoldOut, http.StatusConflict},
		{"party size", createReservation.ErrPartySizeOutOfRange, http.StatusUnprocessableEntity},
		{"drink minimum", createReservation.ErrDrinkMinimumNotMet, http.StatusUnprocessableEntity},
		{"drink not found", createReservation.ErrDrinkOptionNotFound, http.StatusNotFound},
		{"date out of window", createReservation.ErrInvalidRange, http.StatusBadRequest},
		{"invalid input", createReservation.ErrInvalidInput, http.StatusBadRequest},
		{"internal", createReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHandler(&fakeUseCase{err: tc.err}, noopLogger{})

			rec := post(t, handler, "7", validBody())

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestHandle_DrinkMinimumDetailInBody(t *testing.T) {
	uc := &fakeUseCase{err: &createReservation.DrinkMinimumError{MinBottles: 2, ActualBottles: 1}}
	handler := NewHandler(uc, noopLogger{})

	rec := post(t, handler, "7", validBody())

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	// Тело ответа называет требуемый минимум, фактический заказ и недобор
	assert.Contains(t, out["error"], "at least 2 bottle(s)")
	assert.Contains(t, out["error"], "got 1")
	assert.Contains(t, out["error"], "short by 1")
}

func TestHandle_PartySizeBoundsInBody(t *testing.T) {
	err := fmt.Errorf("%w: allowed range is 4..8 for vip seating", createReservation.ErrPartySizeOutOfRange)
	handler := NewHandler(&fakeUseCase{err: err}, noopLogger{})

	rec := post(t, handler, "7", validBody())

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out["error"], "allowed range is 4..8")
}

func TestHandle_Unauthorized(t *testing.T) {
	handler := NewHandler(&fakeUseCase{resp: createdResponse()}, noopLogger{})

	rec := post(t, handler, "", validBody())

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_InvalidDate(t *testing.T) {
	handler := NewHandler(&fakeUseCase{resp: createdResponse()}, noopLogger{})

	body := validBody()
	body.Date = "15.09.2026"
	rec := post(t, handler, "7", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
