package domain

import "time"

// Bar represents a bar venue in the system
// Bar metadata is managed by an external owner-facing application; this
// service reads bars only for existence and ownership checks
type Bar struct {
	ID        int64
	OwnerID   int64
	Name      string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy returns true if the given user owns this bar
func (b *Bar) IsOwnedBy(userID int64) bool {
	return b.OwnerID == userID
}
