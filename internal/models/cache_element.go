package models

import (
	"math"
	"time"
)

// NeverExpires is the expiration tick stored for entries inserted without an
// expiration.
const NeverExpires int64 = math.MaxInt64

// CacheElement represents one cached value in the system
type CacheElement struct {
	Key        string `gorm:"column:key;primaryKey"`
	TypeName   string `gorm:"column:type_name;not null;index"`
	Value      []byte `gorm:"column:value"`
	Expiration int64  `gorm:"column:expiration;not null;index"`
	Created    int64  `gorm:"column:created_at;not null"`
}

// TableName specifies the table name for CacheElement Model
func (CacheElement) TableName() string {
	return "cache_elements"
}

// Expires reports whether the element carries a finite expiration.
func (e CacheElement) Expires() bool {
	return e.Expiration != NeverExpires
}

// ExpiresAt returns the expiration time, or the zero time when the element
// never expires.
func (e CacheElement) ExpiresAt() time.Time {
	if !e.Expires() {
		return time.Time{}
	}
	return time.Unix(0, e.Expiration).UTC()
}

// CreatedAt returns the insertion time of the element.
func (e CacheElement) CreatedAt() time.Time {
	return time.Unix(0, e.Created).UTC()
}

// Ticks converts t to the stored representation. Times past the last
// representable tick are clamped to NeverExpires.
func Ticks(t time.Time) int64 {
	if t.After(maxTickTime) {
		return NeverExpires
	}
	if t.Before(minTickTime) {
		return math.MinInt64
	}
	return t.UnixNano()
}

var (
	maxTickTime = time.Unix(0, math.MaxInt64)
	minTickTime = time.Unix(0, math.MinInt64)
)
