// Package resolve collapses redundant source copies of a logical record
// into one authoritative candidate.
//
// The origin application stores the same conversation, reply chain, or
// profile several times across sources, each copy at a possibly different
// version and with a possibly different read state. Resolution is an
// explicit total order over the candidate set (Compare), not ad-hoc inline
// comparisons, so the tie-break behavior is independently verifiable:
//
//  1. Higher max(version, detailsVersion, threadVersion) wins; a candidate
//     with any version present beats one with none.
//  2. On a version tie, an explicit isRead=false wins over read or absent -
//     surfacing a false "read" state is the worse failure mode.
//  3. Still tied: the copy with more populated fields wins.
//  4. Finally, stable input order. The chain always bottoms out
//     deterministically; re-running resolution over the same input yields
//     the same winner.
package resolve

import (
	"fmt"

	"github.com/clearway/teamsdb/internal/model"
	"github.com/clearway/teamsdb/internal/raw"
)

// Candidate is a raw record tagged with its extracted ordering keys.
type Candidate struct {
	Record raw.Record

	version        float64
	hasVersion     bool
	readFlag       model.ReadFlag
	populatedCount int
}

// NewCandidate extracts ordering keys from a raw record. All three version
// fields are optional; a missing value always loses to a present one.
func NewCandidate(rec raw.Record) Candidate {
	c := Candidate{
		Record:         rec,
		readFlag:       ReadFlagOf(rec.Fields),
		populatedCount: rec.Fields.PopulatedCount(),
	}
	for _, key := range []string{"version", "detailsVersion", "threadVersion"} {
		v, ok := rec.Fields.NumberField(key)
		if !ok {
			continue
		}
		if !c.hasVersion || v > c.version {
			c.version = v
			c.hasVersion = true
		}
	}
	return c
}

// ReadFlag returns the candidate's extracted tri-state read marker.
func (c Candidate) ReadFlag() model.ReadFlag {
	return c.readFlag
}

// ReadFlagOf extracts the tri-state read marker from a record's fields.
// The marker lives under threadProperties.isRead in current schemas and
// directly under isRead in older ones.
func ReadFlagOf(fields raw.Map) model.ReadFlag {
	if props, ok := fields.MapField("threadProperties"); ok {
		if b, ok := props.BoolField("isRead"); ok {
			return flagFor(b)
		}
	}
	if b, ok := fields.BoolField("isRead"); ok {
		return flagFor(b)
	}
	return model.ReadFlagUnknown
}

func flagFor(isRead bool) model.ReadFlag {
	if isRead {
		return model.ReadFlagRead
	}
	return model.ReadFlagUnread
}

// Compare orders two candidates for resolution. It returns a negative value
// when a is the preferred copy, positive when b is, and zero when the two
// are indistinguishable - in which case the caller must keep the earlier
// input, never pick arbitrarily.
func Compare(a, b Candidate) int {
	// Present version beats missing; then higher version wins.
	switch {
	case a.hasVersion && !b.hasVersion:
		return -1
	case !a.hasVersion && b.hasVersion:
		return 1
	case a.hasVersion && b.hasVersion && a.version != b.version:
		if a.version > b.version {
			return -1
		}
		return 1
	}

	// Explicit unread visibility takes precedence on version ties.
	aUnread := a.readFlag == model.ReadFlagUnread
	bUnread := b.readFlag == model.ReadFlagUnread
	switch {
	case aUnread && !bUnread:
		return -1
	case !aUnread && bUnread:
		return 1
	}

	// More populated copy wins.
	if a.populatedCount != b.populatedCount {
		if a.populatedCount > b.populatedCount {
			return -1
		}
		return 1
	}

	return 0
}

// Resolve collapses candidates sharing a logical identifier into the single
// authoritative copy. The input order is the stable final tie-break.
func Resolve(candidates []Candidate) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, fmt.Errorf("resolve: no candidates")
	}
	winner := candidates[0]
	for _, c := range candidates[1:] {
		// Strict < keeps the earlier candidate on full ties.
		if Compare(c, winner) < 0 {
			winner = c
		}
	}
	return winner, nil
}
