package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearway/teamsdb/internal/model"
	"github.com/clearway/teamsdb/internal/raw"
)

func TestTimestamp_MillisecondNumber(t *testing.T) {
	got := Timestamp(raw.Number(1769563301037))
	require.True(t, got.Known())
	assert.Equal(t, "2026-01-28T01:21:41.037Z", got.String())
}

func TestTimestamp_SecondsNumber(t *testing.T) {
	got := Timestamp(raw.Number(1769563301))
	require.True(t, got.Known())
	assert.Equal(t, "2026-01-28T01:21:41.000Z", got.String())
}

func TestTimestamp_FractionalSeconds(t *testing.T) {
	got := Timestamp(raw.Number(1769563301.5))
	require.True(t, got.Known())
	assert.Equal(t, "2026-01-28T01:21:41.500Z", got.String())
}

func TestTimestamp_ISOString(t *testing.T) {
	got := Timestamp(raw.String("2026-01-28T01:21:41.037Z"))
	require.True(t, got.Known())
	assert.Equal(t, model.InstantOf(time.Date(2026, 1, 28, 1, 21, 41, 37e6, time.UTC)), got)
}

func TestTimestamp_ISOStringWithOffset(t *testing.T) {
	got := Timestamp(raw.String("2026-01-28T02:21:41+01:00"))
	require.True(t, got.Known())
	assert.Equal(t, "2026-01-28T01:21:41.000Z", got.String())
}

func TestTimestamp_NumericString(t *testing.T) {
	got := Timestamp(raw.String("1769563301037"))
	require.True(t, got.Known())
	assert.Equal(t, "2026-01-28T01:21:41.037Z", got.String())
}

func TestTimestamp_UnparseableIsUnknown(t *testing.T) {
	for _, v := range []raw.Value{
		raw.String("not a time"),
		raw.String(""),
		raw.Number(0),
		raw.Number(-5),
		raw.Bool(true),
		raw.Map{},
	} {
		got := Timestamp(v)
		assert.False(t, got.Known(), "value %#v must normalize to unknown", v)
		assert.Equal(t, "unknown", got.String())
	}
}

func TestTimestamp_UnknownIsStable(t *testing.T) {
	// The sentinel must not drift between calls the way a now() default
	// would.
	a := Timestamp(raw.String("garbage"))
	b := Timestamp(raw.String("garbage"))
	assert.True(t, a.Equal(b))
}

func TestTimestampField_Missing(t *testing.T) {
	got := TimestampField(raw.Map{}, "lastMessageTimeUtc")
	assert.False(t, got.Known())
}

func TestHorizon_MaxValidSegment(t *testing.T) {
	got := Horizon(raw.String("1769563301037;0;0"))
	require.True(t, got.Known())
	assert.Equal(t, "2026-01-28T01:21:41.037Z", got.String())
}

func TestHorizon_PicksLargestOfMultiple(t *testing.T) {
	got := Horizon(raw.String("1769563200000;1769563301037;1769563000000"))
	require.True(t, got.Known())
	assert.Equal(t, "2026-01-28T01:21:41.037Z", got.String())
}

func TestHorizon_SkipsInvalidSegments(t *testing.T) {
	got := Horizon(raw.String("garbage;1769563301037;"))
	require.True(t, got.Known())
	assert.Equal(t, "2026-01-28T01:21:41.037Z", got.String())
}

func TestHorizon_AllInvalid(t *testing.T) {
	assert.False(t, Horizon(raw.String("a;b;c")).Known())
	assert.False(t, Horizon(raw.String("")).Known())
	assert.False(t, Horizon(raw.Map{}).Known())
}

func TestHorizon_NumericValue(t *testing.T) {
	// Some record vintages persist the horizon as a bare number.
	got := Horizon(raw.Number(1769563301037))
	require.True(t, got.Known())
	assert.Equal(t, "2026-01-28T01:21:41.037Z", got.String())
}
