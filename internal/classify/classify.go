// Package classify routes raw records to logical domains by store name.
//
// Store names embed volatile locale, user, and client suffixes (for example
// "Teams:conversation-manager:en-US:8:orgid:abc"), so matching is
// substring-based against stable domain markers, never exact. Records whose
// store matches no marker are Unclassified; the persistence layer contains
// many unrelated stores, so an unclassified record is a counted diagnostic,
// never an error.
package classify

import "strings"

// Domain is the logical domain a raw record belongs to.
type Domain int

const (
	DomainUnclassified Domain = iota
	DomainConversation
	DomainReplyChain
	DomainReadMarker
	DomainProfile
)

func (d Domain) String() string {
	switch d {
	case DomainConversation:
		return "conversation"
	case DomainReplyChain:
		return "replychain"
	case DomainReadMarker:
		return "readmarker"
	case DomainProfile:
		return "profile"
	default:
		return "unclassified"
	}
}

// Domain markers, matched in order. The read-marker marker must be checked
// before the reply-chain marker: "replychain-metadata-manager" also contains
// the shorter "replychain" fragment.
const (
	MarkerReadMarker   = "replychain-metadata"
	MarkerReplyChain   = "replychain"
	MarkerConversation = "conversation-manager"
	MarkerProfile      = "profiles"
)

var markers = []struct {
	fragment string
	domain   Domain
}{
	{MarkerReadMarker, DomainReadMarker},
	{MarkerReplyChain, DomainReplyChain},
	{MarkerConversation, DomainConversation},
	{MarkerProfile, DomainProfile},
}

// Classify returns the logical domain for a store name, or
// DomainUnclassified when no marker matches.
func Classify(storeName string) Domain {
	for _, m := range markers {
		if strings.Contains(storeName, m.fragment) {
			return m.domain
		}
	}
	return DomainUnclassified
}

// Marker returns the store-name fragment used to scan for a domain.
// Returns "" for DomainUnclassified.
func Marker(d Domain) string {
	for _, m := range markers {
		if m.domain == d {
			return m.fragment
		}
	}
	return ""
}
