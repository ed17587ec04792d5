package domain

import "time"

// SeatType represents a seating category offered by a bar
type SeatType string

const (
	SeatTypeBar   SeatType = "bar"
	SeatTypeTable SeatType = "table"
	SeatTypeVIP   SeatType = "vip"
)

// IsValid returns true for a known seat type
func (t SeatType) IsValid() bool {
	return t == SeatTypeBar || t == SeatTypeTable || t == SeatTypeVIP
}

// SeatOption is the inventory configuration of one seat type at a bar
// AvailableCount is the total sellable units per operating day; it is never
// mutated by bookings - remaining capacity is recomputed from reservations
type SeatOption struct {
	ID             int64
	BarID          int64
	Type           SeatType
	Enabled        bool
	AvailableCount int
	MinPeople      int
	MaxPeople      int
	Restrictions   Restrictions
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FitsPartySize returns true if size falls within the option's occupancy bounds
func (o *SeatOption) FitsPartySize(size int) bool {
	return size >= o.MinPeople && size <= o.MaxPeople
}

// SeatAvailability is the computed state of one seat type for one date
type SeatAvailability struct {
	Type         SeatType
	Remaining    int
	MinPeople    int
	MaxPeople    int
	Restrictions Restrictions
}

// HasCapacity returns true if at least one unit remains
func (a *SeatAvailability) HasCapacity() bool {
	return a.Remaining > 0
}

// Remaining computes the units of this seat type left on a date given the
// number of active reservations, floored at zero (reservations may exceed the
// configured count after the owner shrinks the inventory)
func (o *SeatOption) Remaining(activeReservations int) int {
	remaining := o.AvailableCount - activeReservations
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ComputeAvailability builds per-type availability for the enabled seat
// options of a bar. reservedCounts maps seat type to the number of active
// reservations on the date. The result follows CanonicalSeatOrder
func ComputeAvailability(options []SeatOption, reservedCounts map[SeatType]int) []SeatAvailability {
	byType := make(map[SeatType]SeatOption, len(options))
	for _, opt := range options {
		if opt.Enabled {
			byType[opt.Type] = opt
		}
	}

	availability := make([]SeatAvailability, 0, len(byType))
	for _, seatType := range CanonicalSeatOrder {
		opt, ok := byType[seatType]
		if !ok {
			continue
		}
		availability = append(availability, SeatAvailability{
			Type:         opt.Type,
			Remaining:    opt.Remaining(reservedCounts[opt.Type]),
			MinPeople:    opt.MinPeople,
			MaxPeople:    opt.MaxPeople,
			Restrictions: opt.Restrictions,
		})
	}

	return availability
}

// ClassifyAvailability derives the seat types open for booking and the
// fully-booked flag. A bar with zero enabled seat types is NOT fully booked -
// it is open with nothing configured, and callers render that distinctly
func ClassifyAvailability(availability []SeatAvailability) (availableTypes []SeatType, fullyBooked bool) {
	availableTypes = make([]SeatType, 0, len(availability))
	for _, a := range availability {
		if a.HasCapacity() {
			availableTypes = append(availableTypes, a.Type)
		}
	}

	fullyBooked = len(availability) > 0 && len(availableTypes) == 0
	return availableTypes, fullyBooked
}
