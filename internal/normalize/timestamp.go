// Package normalize extracts typed fields from resolved raw records using
// ordered fallback chains.
//
// Nothing in this package raises on a missing or malformed field: every
// extractor degrades along its chain and bottoms out in an explicit
// sentinel (the unknown instant, the raw identifier). Defaulting an
// unparseable timestamp to the current time would make repeated passes over
// the same snapshot diverge, so it is never done.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/clearway/teamsdb/internal/model"
	"github.com/clearway/teamsdb/internal/raw"
)

// msEpochThreshold splits seconds-since-epoch from milliseconds-since-epoch.
// Anything above it is far beyond any plausible seconds value.
const msEpochThreshold = 1e12

// Timestamp normalizes a raw timestamp value. The store persists timestamps
// as millisecond numbers, second numbers, numeric strings, and ISO 8601
// strings, depending on the record's vintage. Any value that fails all
// parses normalizes to the unknown instant.
func Timestamp(v raw.Value) model.Instant {
	switch val := v.(type) {
	case raw.Number:
		return numericTimestamp(float64(val))
	case raw.String:
		return stringTimestamp(string(val))
	case raw.Bytes:
		return stringTimestamp(string(val))
	default:
		return model.UnknownInstant()
	}
}

// TimestampField normalizes the named field of a record.
func TimestampField(fields raw.Map, key string) model.Instant {
	v, ok := fields.Field(key)
	if !ok {
		return model.UnknownInstant()
	}
	return Timestamp(v)
}

func numericTimestamp(f float64) model.Instant {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return model.UnknownInstant()
	}
	if f > msEpochThreshold {
		return model.InstantOf(time.UnixMilli(int64(math.Round(f))))
	}
	sec, frac := math.Modf(f)
	return model.InstantOf(time.Unix(int64(sec), int64(math.Round(frac*1e9))))
}

func stringTimestamp(s string) model.Instant {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.UnknownInstant()
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return model.InstantOf(t)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return numericTimestamp(f)
	}
	return model.UnknownInstant()
}

// Horizon parses a consumption-horizon value: semicolon-separated numeric
// segments, each a timestamp in its own right. Invalid segments are
// discarded; the result is the maximum valid segment, the "read up to this
// point" instant. Returns the unknown instant when no segment parses.
func Horizon(v raw.Value) model.Instant {
	s, ok := raw.Stringify(v)
	if !ok {
		return model.UnknownInstant()
	}
	horizon := model.UnknownInstant()
	for _, part := range strings.Split(s, ";") {
		seg := stringTimestamp(part)
		horizon = horizon.Max(seg)
	}
	return horizon
}

// HorizonField parses the named horizon field of a record.
func HorizonField(fields raw.Map, key string) model.Instant {
	v, ok := fields.Field(key)
	if !ok {
		return model.UnknownInstant()
	}
	return Horizon(v)
}
