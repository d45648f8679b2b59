package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_SubstringMatching(t *testing.T) {
	tests := []struct {
		store string
		want  Domain
	}{
		{"Teams:conversation-manager:en-US:8:orgid:abc", DomainConversation},
		{"Teams:replychain-manager:fr-FR:web", DomainReplyChain},
		{"Teams:replychain-metadata-manager:en-US:web", DomainReadMarker},
		{"Teams:profiles:de-DE:desktop", DomainProfile},
		{"conversation-manager", DomainConversation},
		{"Teams:call-log:en-US:web", DomainUnclassified},
		{"", DomainUnclassified},
	}
	for _, tt := range tests {
		t.Run(tt.store, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.store))
		})
	}
}

func TestClassify_MetadataBeforeReplyChain(t *testing.T) {
	// "replychain-metadata-manager" contains "replychain" too; the longer
	// marker must win.
	assert.Equal(t, DomainReadMarker, Classify("Teams:replychain-metadata-manager:en-US:web"))
	assert.Equal(t, DomainReplyChain, Classify("Teams:replychain-manager:en-US:web"))
}

func TestMarker_RoundTrip(t *testing.T) {
	for _, d := range []Domain{DomainConversation, DomainReplyChain, DomainReadMarker, DomainProfile} {
		m := Marker(d)
		assert.NotEmpty(t, m)
		assert.Equal(t, d, Classify(m))
	}
	assert.Empty(t, Marker(DomainUnclassified))
}

func TestDomain_String(t *testing.T) {
	assert.Equal(t, "conversation", DomainConversation.String())
	assert.Equal(t, "unclassified", DomainUnclassified.String())
	assert.Equal(t, "readmarker", DomainReadMarker.String())
}
