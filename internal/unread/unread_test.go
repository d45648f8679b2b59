package unread

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clearway/teamsdb/internal/model"
)

func at(ms int64) model.Instant {
	return model.InstantOf(time.UnixMilli(ms))
}

func msgsAt(times ...int64) []model.Message {
	msgs := make([]model.Message, len(times))
	for i, ms := range times {
		msgs[i] = model.Message{ID: "m", Timestamp: at(ms)}
	}
	return msgs
}

func TestApply_HorizonCountsMessagesAfter(t *testing.T) {
	msgs := msgsAt(50, 150)
	count := Apply(Signal{Horizon: at(100)}, msgs)

	assert.Equal(t, 1, count)
	assert.False(t, msgs[0].Unread)
	assert.True(t, msgs[1].Unread)
}

func TestApply_HorizonBoundaryIsRead(t *testing.T) {
	// A message exactly at the horizon is read, not unread.
	msgs := msgsAt(100)
	count := Apply(Signal{Horizon: at(100)}, msgs)

	assert.Zero(t, count)
	assert.False(t, msgs[0].Unread)
}

func TestApply_HorizonShadowsFlag(t *testing.T) {
	// A parsed horizon is authoritative; the metadata flag is not
	// consulted even when it disagrees.
	msgs := msgsAt(50)
	count := Apply(Signal{Horizon: at(100), ReadFlag: model.ReadFlagUnread}, msgs)

	assert.Zero(t, count)
}

func TestApply_HorizonAllUnread(t *testing.T) {
	msgs := msgsAt(150, 200, 250)
	count := Apply(Signal{Horizon: at(100)}, msgs)

	assert.Equal(t, 3, count)
	for _, m := range msgs {
		assert.True(t, m.Unread)
	}
}

func TestApply_UnknownMessageTimeNotAfterHorizon(t *testing.T) {
	msgs := []model.Message{{ID: "m", Timestamp: model.UnknownInstant()}}
	count := Apply(Signal{Horizon: at(100)}, msgs)

	assert.Zero(t, count)
}

func TestApply_FlagForcesOneUnread(t *testing.T) {
	msgs := msgsAt(10, 20, 30)
	count := Apply(Signal{ReadFlag: model.ReadFlagUnread}, msgs)

	assert.Equal(t, 1, count)
	assert.False(t, msgs[0].Unread)
	assert.False(t, msgs[1].Unread)
	assert.True(t, msgs[2].Unread, "most recent message carries the marker")
}

func TestApply_FlagUnreadNoMessages(t *testing.T) {
	count := Apply(Signal{ReadFlag: model.ReadFlagUnread}, nil)
	assert.Equal(t, 1, count)
}

func TestApply_FlagRead(t *testing.T) {
	msgs := msgsAt(10, 20)
	count := Apply(Signal{ReadFlag: model.ReadFlagRead}, msgs)

	assert.Zero(t, count)
	assert.False(t, msgs[0].Unread)
	assert.False(t, msgs[1].Unread)
}

func TestApply_RecencyFallback(t *testing.T) {
	// No horizon, no flag, recorded activity, nothing cached: one
	// conservative unread.
	count := Apply(Signal{LastMessage: at(100)}, nil)
	assert.Equal(t, 1, count)
}

func TestApply_RecencyFallbackSuppressedByMessages(t *testing.T) {
	msgs := msgsAt(100)
	count := Apply(Signal{LastMessage: at(100)}, msgs)
	assert.Zero(t, count)
}

func TestApply_NoSignals(t *testing.T) {
	assert.Zero(t, Apply(Signal{}, nil))
	assert.Zero(t, Apply(Signal{}, msgsAt(10)))
}
