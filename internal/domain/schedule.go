package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/BRS-ReservationService/pkg/types"
)

// OperatingHour represents one row of a bar's weekly opening template
// At most one row per (barID, dayOfWeek); a missing row means the bar is
// closed on that weekday
type OperatingHour struct {
	ID            int64
	BarID         int64
	DayOfWeek     int // 1=Monday .. 7=Sunday (ISO 8601)
	OpenTime      types.TimeString
	CloseTime     types.TimeString
	ClosesNextDay bool // close time falls on the following calendar day
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BarException overrides the weekly template for a single calendar date
// When present it is authoritative: the weekly row for that weekday is ignored
type BarException struct {
	ID            int64
	BarID         int64
	ExceptionDate time.Time
	IsClosed      bool
	OpenTime      *types.TimeString // nil when closed or open all day
	CloseTime     *types.TimeString
	ClosesNextDay bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DayResolution is the resolved opening state of a bar for one calendar date
type DayResolution struct {
	IsOpen        bool
	IsException   bool
	OpenTime      types.TimeString
	CloseTime     types.TimeString
	ClosesNextDay bool
}

// WeekdayNumber returns the ISO weekday number for a date (1=Monday .. 7=Sunday)
func WeekdayNumber(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7 // time.Sunday is 0
	}
	return wd
}

// ResolveDay resolves whether a bar is open on the given date and with which
// time window. An exception for the exact date takes precedence over the
// weekly template; with neither present the bar is closed
func ResolveDay(hours []OperatingHour, exception *BarException, date time.Time) DayResolution {
	if exception != nil {
		if exception.IsClosed {
			return DayResolution{IsOpen: false, IsException: true}
		}

		resolution := DayResolution{
			IsOpen:        true,
			IsException:   true,
			ClosesNextDay: exception.ClosesNextDay,
		}
		if exception.OpenTime != nil {
			resolution.OpenTime = *exception.OpenTime
		}
		if exception.CloseTime != nil {
			resolution.CloseTime = *exception.CloseTime
		}
		return resolution
	}

	weekday := WeekdayNumber(date)
	for _, h := range hours {
		if h.DayOfWeek == weekday {
			return DayResolution{
				IsOpen:        true,
				OpenTime:      h.OpenTime,
				CloseTime:     h.CloseTime,
				ClosesNextDay: h.ClosesNextDay,
			}
		}
	}

	return DayResolution{IsOpen: false}
}

// ParseDate parses a YYYY-MM-DD string into a date, rejecting non-calendar
// dates such as February 30th
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return date, nil
}

// DateOnly truncates a timestamp to its calendar date (midnight, same location)
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsDateInPast returns true if date is strictly before today's date
func IsDateInPast(date, now time.Time) bool {
	return DateOnly(date).Before(DateOnly(now))
}

// IsDateBeyondWindow returns true if date is past the booking window
// (today + MaxBookingWindowDays, inclusive)
func IsDateBeyondWindow(date, now time.Time) bool {
	limit := DateOnly(now).AddDate(0, 0, MaxBookingWindowDays)
	return DateOnly(date).After(limit)
}
