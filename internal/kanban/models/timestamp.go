package models

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Timestamp is a point in time in Unix milliseconds, the unit used by the
// persisted and exported board formats.
type Timestamp int64

// Now returns the current time as a Timestamp
func Now() Timestamp {
	return FromTime(time.Now())
}

// FromTime converts t to a Timestamp
func FromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time converts the timestamp back to a time.Time in UTC
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

// Sub returns the duration t-u
func (t Timestamp) Sub(u Timestamp) time.Duration {
	return time.Duration(t-u) * time.Millisecond
}

// NewID returns a fresh, time-sortable identifier for cards and columns
func NewID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
