// Package unread computes per-conversation unread state.
//
// The persistence layer offers no single authoritative unread marker, so
// classification is layered. Each layer is computed independently and the
// first layer with a signal wins; later layers are fallback only:
//
//  1. Consumption horizon: messages strictly after the read-up-to instant
//     are unread.
//  2. Metadata flag: with no parsable horizon, an explicit isRead=false
//     forces the count to at least 1, marking the most recent message.
//  3. Recency correlation: with neither horizon nor flag, a known last
//     message time and no cached messages is a conservative signal that
//     content exists this engine cannot verify.
//
// No recency window is applied: old-but-unread conversations keep their
// unread status indefinitely, matching the origin application.
package unread

import (
	"github.com/clearway/teamsdb/internal/model"
)

// Signal carries the per-conversation inputs to classification.
type Signal struct {
	// Horizon is the read-up-to instant, the maximum valid parsed marker
	// across all of the conversation's read-marker sources. Unknown when
	// no marker parsed.
	Horizon model.Instant

	// ReadFlag is the conversation's tri-state metadata read marker.
	ReadFlag model.ReadFlag

	// LastMessage is the conversation's recorded last-message time, which
	// may be known even when no messages are cached locally.
	LastMessage model.Instant
}

// Apply classifies msgs in place, setting Unread on each, and returns the
// conversation's unread count. msgs must already be in the conversation's
// final timestamp order so that "most recent" is the last element.
func Apply(sig Signal, msgs []model.Message) int {
	if sig.Horizon.Known() {
		return byHorizon(sig.Horizon, msgs)
	}

	switch sig.ReadFlag {
	case model.ReadFlagUnread:
		// The flag alone cannot say which messages are unread; mark the
		// most recent as the representative item.
		if len(msgs) > 0 {
			msgs[len(msgs)-1].Unread = true
		}
		return 1
	case model.ReadFlagRead:
		return 0
	}

	// Neither horizon nor flag: if the store records activity we hold no
	// messages for, surface a conservative single unread.
	if sig.LastMessage.Known() && len(msgs) == 0 {
		return 1
	}
	return 0
}

func byHorizon(horizon model.Instant, msgs []model.Message) int {
	count := 0
	for i := range msgs {
		if msgs[i].Timestamp.After(horizon) {
			msgs[i].Unread = true
			count++
		}
	}
	return count
}
