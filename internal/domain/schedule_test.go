package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BRS-ReservationService/pkg/ptr"
	"github.com/m04kA/BRS-ReservationService/pkg/types"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func tsPtr(s string) *types.TimeString {
	return ptr.Ptr(types.TimeString(s))
}

func TestWeekdayNumber(t *testing.T) {
	// 2026-01-05 - понедельник, 2026-01-11 - воскресенье
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, WeekdayNumber(monday))
	assert.Equal(t, 7, WeekdayNumber(sunday))
}

func TestResolveDay_WeeklyTemplate(t *testing.T) {
	hours := []OperatingHour{
		{DayOfWeek: 5, OpenTime: ts("18:00"), CloseTime: ts("02:00"), ClosesNextDay: true},
	}

	// 2026-01-09 - пятница
	friday := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)
	res := ResolveDay(hours, nil, friday)

	assert.True(t, res.IsOpen)
	assert.False(t, res.IsException)
	assert.Equal(t, ts("18:00"), res.OpenTime)
	assert.Equal(t, ts("02:00"), res.CloseTime)
	assert.True(t, res.ClosesNextDay)
}

func TestResolveDay_NoTemplateRowMeansClosed(t *testing.T) {
	hours := []OperatingHour{
		{DayOfWeek: 5, OpenTime: ts("18:00"), CloseTime: ts("23:00")},
	}

	// 2026-01-05 - понедельник, строки в шаблоне нет
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	res := ResolveDay(hours, nil, monday)

	assert.False(t, res.IsOpen)
	assert.False(t, res.IsException)
}

func TestResolveDay_ClosedExceptionOverridesTemplate(t *testing.T) {
	hours := []OperatingHour{
		{DayOfWeek: 5, OpenTime: ts("18:00"), CloseTime: ts("23:00")},
	}
	friday := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)
	exc := &BarException{ExceptionDate: friday, IsClosed: true}

	res := ResolveDay(hours, exc, friday)

	assert.False(t, res.IsOpen)
	assert.True(t, res.IsException)
}

func TestResolveDay_OpenExceptionOverridesHours(t *testing.T) {
	hours := []OperatingHour{
		{DayOfWeek: 5, OpenTime: ts("18:00"), CloseTime: ts("23:00")},
	}
	friday := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)
	exc := &BarException{
		ExceptionDate: friday,
		OpenTime:      tsPtr("12:00"),
		CloseTime:     tsPtr("20:00"),
	}

	res := ResolveDay(hours, exc, friday)

	assert.True(t, res.IsOpen)
	assert.True(t, res.IsException)
	assert.Equal(t, ts("12:00"), res.OpenTime)
	assert.Equal(t, ts("20:00"), res.CloseTime)
	assert.False(t, res.ClosesNextDay)
}

func TestResolveDay_OpenExceptionOnClosedWeekday(t *testing.T) {
	// Шаблон пустой - бар закрыт каждый день, но исключение открывает дату
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	exc := &BarException{
		ExceptionDate: monday,
		OpenTime:      tsPtr("10:00"),
		CloseTime:     tsPtr("22:00"),
	}

	res := ResolveDay(nil, exc, monday)

	assert.True(t, res.IsOpen)
	assert.True(t, res.IsException)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, time.March, date.Month())
	assert.Equal(t, 15, date.Day())

	_, err = ParseDate("2026-02-30")
	assert.Error(t, err)

	_, err = ParseDate("15.03.2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2026, 1, 10, 15, 30, 0, 0, time.UTC)

	yesterday := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsDateInPast(yesterday, now))
	// Сегодняшняя дата не считается прошедшей, даже если время уже позднее
	assert.False(t, IsDateInPast(today, now))
	assert.False(t, IsDateInPast(tomorrow, now))
}

func TestIsDateBeyondWindow(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	edge := now.AddDate(0, 0, MaxBookingWindowDays)
	beyond := now.AddDate(0, 0, MaxBookingWindowDays+1)

	// Граница окна включительно
	assert.False(t, IsDateBeyondWindow(edge, now))
	assert.True(t, IsDateBeyondWindow(beyond, now))
}
