package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatOption_Remaining(t *testing.T) {
	opt := SeatOption{AvailableCount: 10}

	assert.Equal(t, 10, opt.Remaining(0))
	assert.Equal(t, 3, opt.Remaining(7))
	assert.Equal(t, 0, opt.Remaining(10))
	// Владелец уменьшил вместимость после набора броней - остаток не уходит в минус
	assert.Equal(t, 0, opt.Remaining(15))
}

func TestSeatOption_FitsPartySize(t *testing.T) {
	opt := SeatOption{MinPeople: 2, MaxPeople: 6}

	assert.False(t, opt.FitsPartySize(1))
	assert.True(t, opt.FitsPartySize(2))
	assert.True(t, opt.FitsPartySize(6))
	assert.False(t, opt.FitsPartySize(7))
}

func TestComputeAvailability_CanonicalOrder(t *testing.T) {
	options := []SeatOption{
		{Type: SeatTypeVIP, Enabled: true, AvailableCount: 2},
		{Type: SeatTypeBar, Enabled: true, AvailableCount: 8},
		{Type: SeatTypeTable, Enabled: true, AvailableCount: 5},
	}

	availability := ComputeAvailability(options, map[SeatType]int{
		SeatTypeTable: 1,
		SeatTypeBar:   8,
	})

	// Порядок всегда table -> bar -> vip независимо от порядка конфигурации
	assert.Len(t, availability, 3)
	assert.Equal(t, SeatTypeTable, availability[0].Type)
	assert.Equal(t, SeatTypeBar, availability[1].Type)
	assert.Equal(t, SeatTypeVIP, availability[2].Type)

	assert.Equal(t, 4, availability[0].Remaining)
	assert.Equal(t, 0, availability[1].Remaining)
	assert.Equal(t, 2, availability[2].Remaining)
}

func TestComputeAvailability_SkipsDisabled(t *testing.T) {
	options := []SeatOption{
		{Type: SeatTypeTable, Enabled: true, AvailableCount: 5},
		{Type: SeatTypeVIP, Enabled: false, AvailableCount: 2},
	}

	availability := ComputeAvailability(options, nil)

	assert.Len(t, availability, 1)
	assert.Equal(t, SeatTypeTable, availability[0].Type)
}

func TestClassifyAvailability(t *testing.T) {
	t.Run("partially booked", func(t *testing.T) {
		types, fullyBooked := ClassifyAvailability([]SeatAvailability{
			{Type: SeatTypeTable, Remaining: 3},
			{Type: SeatTypeBar, Remaining: 0},
		})

		assert.Equal(t, []SeatType{SeatTypeTable}, types)
		assert.False(t, fullyBooked)
	})

	t.Run("fully booked", func(t *testing.T) {
		types, fullyBooked := ClassifyAvailability([]SeatAvailability{
			{Type: SeatTypeTable, Remaining: 0},
			{Type: SeatTypeVIP, Remaining: 0},
		})

		assert.Empty(t, types)
		assert.True(t, fullyBooked)
	})

	t.Run("no enabled seat types is not fully booked", func(t *testing.T) {
		types, fullyBooked := ClassifyAvailability(nil)

		assert.Empty(t, types)
		assert.False(t, fullyBooked)
	})
}

func TestSeatType_IsValid(t *testing.T) {
	assert.True(t, SeatTypeBar.IsValid())
	assert.True(t, SeatTypeTable.IsValid())
	assert.True(t, SeatTypeVIP.IsValid())
	assert.False(t, SeatType("sofa").IsValid())
	assert.False(t, SeatType("").IsValid())
}
