package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Restrictions consumption requirements attached to a seat type
// Known fields are typed; unknown keys are preserved round-trip in Extra so
// future restriction kinds survive reads and writes by older code
type Restrictions struct {
	MinBottles     *int
	MinConsumption *float64
	Extra          map[string]json.RawMessage
}

// IsZero returns true when no restriction of any kind is set
func (r Restrictions) IsZero() bool {
	return r.MinBottles == nil && r.MinConsumption == nil && len(r.Extra) == 0
}

// MarshalJSON emits known fields alongside preserved unknown keys
func (r Restrictions) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+2)
	for k, v := range r.Extra {
		out[k] = v
	}

	if r.MinBottles != nil {
		raw, err := json.Marshal(*r.MinBottles)
		if err != nil {
			return nil, err
		}
		out["minBottles"] = raw
	}
	if r.MinConsumption != nil {
		raw, err := json.Marshal(*r.MinConsumption)
		if err != nil {
			return nil, err
		}
		out["minConsumption"] = raw
	}

	return json.Marshal(out)
}

// UnmarshalJSON extracts the known fields and keeps the rest in Extra
func (r *Restrictions) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Restrictions{}

	if v, ok := raw["minBottles"]; ok {
		var minBottles int
		if err := json.Unmarshal(v, &minBottles); err != nil {
			return fmt.Errorf("restrictions: invalid minBottles: %w", err)
		}
		r.MinBottles = &minBottles
		delete(raw, "minBottles")
	}

	if v, ok := raw["minConsumption"]; ok {
		var minConsumption float64
		if err := json.Unmarshal(v, &minConsumption); err != nil {
			return fmt.Errorf("restrictions: invalid minConsumption: %w", err)
		}
		r.MinConsumption = &minConsumption
		delete(raw, "minConsumption")
	}

	if len(raw) > 0 {
		r.Extra = raw
	}

	return nil
}

// Value serializes restrictions to jsonb for storage; empty restrictions
// are stored as NULL
func (r Restrictions) Value() (driver.Value, error) {
	if r.IsZero() {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan reads restrictions back from a jsonb column
func (r *Restrictions) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*r = Restrictions{}
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("cannot scan %T into Restrictions", src)
	}
}
