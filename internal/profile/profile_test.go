package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearway/teamsdb/internal/model"
	"github.com/clearway/teamsdb/internal/raw"
)

func TestFromRecord_MRIField(t *testing.T) {
	p, ok := FromRecord(raw.Record{
		Key: "ignored-key",
		Fields: raw.Map{
			"mri":         raw.String("8:orgid:alice"),
			"displayName": raw.String("Alice Smith"),
			"mail":        raw.String("alice@example.com"),
		},
	})
	require.True(t, ok)
	assert.Equal(t, "8:orgid:alice", p.MRI)
	assert.Equal(t, "Alice Smith", p.DisplayName)
	assert.Equal(t, "alice@example.com", p.Mail)
}

func TestFromRecord_KeyFallback(t *testing.T) {
	p, ok := FromRecord(raw.Record{
		Key:    "8:orgid:bob",
		Fields: raw.Map{"displayName": raw.String("Bob Johnson")},
	})
	require.True(t, ok)
	assert.Equal(t, "8:orgid:bob", p.MRI)
}

func TestFromRecord_NoIdentifier(t *testing.T) {
	_, ok := FromRecord(raw.Record{Fields: raw.Map{"displayName": raw.String("x")}})
	assert.False(t, ok)
}

func TestDirectory_DisplayName_FallbackChain(t *testing.T) {
	d := Directory{
		"8:orgid:alice": {MRI: "8:orgid:alice", DisplayName: "Alice Smith"},
		"8:orgid:blank": {MRI: "8:orgid:blank"},
	}

	// Profile hit wins over the hint.
	assert.Equal(t, "Alice Smith", d.DisplayName("8:orgid:alice", "A. Smith"))

	// Miss falls back to the message-level hint.
	assert.Equal(t, "B. Johnson", d.DisplayName("8:orgid:bob", "B. Johnson"))

	// Profile present but nameless behaves like a miss.
	assert.Equal(t, "hint", d.DisplayName("8:orgid:blank", "hint"))

	// No hint either: raw identifier, never empty.
	assert.Equal(t, "8:orgid:bob", d.DisplayName("8:orgid:bob", ""))
}

func TestDirectory_Enrich(t *testing.T) {
	d := Directory{
		"8:orgid:alice": {MRI: "8:orgid:alice", DisplayName: "Alice Smith"},
	}
	msgs := []model.Message{
		{SenderMRI: "8:orgid:alice", SenderName: "hint"},
		{SenderMRI: "8:orgid:bob", SenderName: "Bob J."},
		{SenderMRI: "8:orgid:carol"},
	}

	d.Enrich(msgs)

	assert.Equal(t, "Alice Smith", msgs[0].SenderName)
	assert.Equal(t, "Bob J.", msgs[1].SenderName)
	assert.Equal(t, "8:orgid:carol", msgs[2].SenderName)
}
