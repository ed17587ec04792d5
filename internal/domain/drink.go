package domain

import "time"

// DrinkType represents the kind of a sellable drink position
type DrinkType string

const (
	// DrinkTypeSingle per-glass position; at most one per bar, named SingleDrinkName
	DrinkTypeSingle DrinkType = "single-drink"
	// DrinkTypeBottle bottle position; many per bar, uniquely named
	DrinkTypeBottle DrinkType = "bottle"
)

// IsValid returns true for a known drink type
func (t DrinkType) IsValid() bool {
	return t == DrinkTypeSingle || t == DrinkTypeBottle
}

// DrinkOption is one sellable position of a bar's drink menu
type DrinkOption struct {
	ID        int64
	BarID     int64
	Type      DrinkType
	Name      string
	Price     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
