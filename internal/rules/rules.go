// Package rules defines the data-driven predicates the aggregator uses to
// drop system and meeting sub-threads from final output.
//
// Filtering is a set of id-prefix/substring predicates plus thread-type
// exclusions, kept separate from resolution logic so deployments can extend
// what is hidden without touching how records are resolved. Defaults match
// the origin application; a CUE rules file can replace them.
package rules

import (
	"strings"

	"github.com/clearway/teamsdb/internal/model"
)

// Rules is one set of aggregation filter predicates.
type Rules struct {
	// ExcludeIDSubstrings drops conversations whose id contains any of
	// these fragments.
	ExcludeIDSubstrings []string `json:"excludeIdSubstrings"`

	// ExcludeIDPrefixes drops conversations whose id starts with any of
	// these prefixes.
	ExcludeIDPrefixes []string `json:"excludeIdPrefixes"`

	// ExcludeThreadTypes drops conversations of these thread types.
	ExcludeThreadTypes []model.ThreadType `json:"excludeThreadTypes"`

	// ExcludeHidden drops conversations the user has hidden or archived.
	ExcludeHidden bool `json:"excludeHidden"`
}

// Default returns the stock rule set: meeting sub-threads and internal
// system streams are excluded, hidden conversations are kept.
func Default() Rules {
	return Rules{
		ExcludeIDSubstrings: []string{"meeting_"},
		ExcludeIDPrefixes:   []string{"48:"},
		ExcludeThreadTypes:  []model.ThreadType{model.ThreadTypeSystem, model.ThreadTypeMeeting},
	}
}

// Excludes reports whether the conversation should be dropped from
// aggregated output.
func (r Rules) Excludes(c model.Conversation) bool {
	for _, frag := range r.ExcludeIDSubstrings {
		if strings.Contains(c.ID, frag) {
			return true
		}
	}
	for _, prefix := range r.ExcludeIDPrefixes {
		if strings.HasPrefix(c.ID, prefix) {
			return true
		}
	}
	for _, tt := range r.ExcludeThreadTypes {
		if c.ThreadType == tt {
			return true
		}
	}
	if r.ExcludeHidden && c.Hidden {
		return true
	}
	return false
}
