package model

import (
	"time"
)

// instantLayout fixes millisecond precision so repeated passes over the same
// snapshot serialize byte-identically regardless of sub-millisecond noise in
// parsed inputs.
const instantLayout = "2006-01-02T15:04:05.000Z07:00"

// unknownLabel is the caller-visible sentinel for timestamps that failed
// every parse. Substituting the current time here would break idempotence,
// so extraction never does it.
const unknownLabel = "unknown"

// Instant is a point in time with an explicit unknown state. The zero value
// is the unknown instant.
type Instant struct {
	t time.Time
}

// InstantOf returns a known Instant at t, truncated to millisecond precision
// in UTC.
func InstantOf(t time.Time) Instant {
	return Instant{t: t.UTC().Truncate(time.Millisecond)}
}

// UnknownInstant returns the unknown-time sentinel.
func UnknownInstant() Instant {
	return Instant{}
}

// Known reports whether the instant carries an actual time.
func (i Instant) Known() bool {
	return !i.t.IsZero()
}

// Time returns the underlying time. Only meaningful when Known.
func (i Instant) Time() time.Time {
	return i.t
}

// After reports whether i is strictly after other. An unknown instant is
// never after anything; any known instant is after an unknown one.
func (i Instant) After(other Instant) bool {
	if !i.Known() {
		return false
	}
	if !other.Known() {
		return true
	}
	return i.t.After(other.t)
}

// Before reports whether i sorts strictly before other. Unknown sorts before
// every known instant so message ordering stays total.
func (i Instant) Before(other Instant) bool {
	return other.After(i)
}

// Equal reports whether both instants are the same point in time, or both
// unknown.
func (i Instant) Equal(other Instant) bool {
	if !i.Known() || !other.Known() {
		return i.Known() == other.Known()
	}
	return i.t.Equal(other.t)
}

// Max returns the later of i and other, preferring known instants.
func (i Instant) Max(other Instant) Instant {
	if other.After(i) {
		return other
	}
	return i
}

// String returns the RFC 3339 form, or the unknown sentinel.
func (i Instant) String() string {
	if !i.Known() {
		return unknownLabel
	}
	return i.t.Format(instantLayout)
}

// MarshalJSON encodes the instant as an RFC 3339 string, or the literal
// "unknown" sentinel.
func (i Instant) MarshalJSON() ([]byte, error) {
	return []byte(`"` + i.String() + `"`), nil
}

// UnmarshalJSON decodes an instant previously produced by MarshalJSON.
func (i *Instant) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == unknownLabel || s == "" {
		*i = Instant{}
		return nil
	}
	t, err := time.Parse(instantLayout, s)
	if err != nil {
		return err
	}
	*i = InstantOf(t)
	return nil
}
