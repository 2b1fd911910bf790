package entity

import "time"

// ShortURL maps an alias to its target. Rows are insert-only.
type ShortURL struct {
	ID        string
	Alias     string
	TargetURL string
	OwnerID   string
	CreatedAt time.Time
}
