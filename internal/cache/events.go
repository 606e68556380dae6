package cache

import "time"

// Op names a cache mutation.
type Op string

const (
	OpInsert        Op = "insert"
	OpInvalidate    Op = "invalidate"
	OpInvalidateAll Op = "invalidate_all"
	OpVacuum        Op = "vacuum"
)

// Event describes a committed mutation.
type Event struct {
	Op      Op        `json:"op"`
	Key     string    `json:"key,omitempty"`
	TypeTag string    `json:"type,omitempty"`
	Count   int64     `json:"count"`
	At      time.Time `json:"at"`
}
