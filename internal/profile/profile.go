// Package profile joins message senders against resolved user profiles.
package profile

import (
	"github.com/clearway/teamsdb/internal/model"
	"github.com/clearway/teamsdb/internal/raw"
)

// Directory is a read-only lookup from sender identifier (MRI) to resolved
// profile. It is built once per extraction pass and passed by reference into
// enrichment; it is never mutated after construction.
type Directory map[string]model.UserProfile

// FromRecord builds a profile from a resolved profile-domain record. The
// record key stands in for a missing mri field. Returns ok=false when
// neither yields an identifier.
func FromRecord(rec raw.Record) (model.UserProfile, bool) {
	mri, _ := rec.Fields.StringField("mri")
	if mri == "" {
		mri = rec.Key
	}
	if mri == "" {
		return model.UserProfile{}, false
	}
	name, _ := rec.Fields.StringField("displayName")
	mail, _ := rec.Fields.StringField("mail")
	return model.UserProfile{MRI: mri, DisplayName: name, Mail: mail}, true
}

// DisplayName resolves a sender identifier to a display name. Lookup misses
// are non-fatal by design - profile records are routinely missing or not yet
// synced - so the fallback chain is profile name, then the hint carried on
// the message itself, then the raw identifier. Never empty for a non-empty
// input.
func (d Directory) DisplayName(mri, hint string) string {
	if p, ok := d[mri]; ok && p.DisplayName != "" {
		return p.DisplayName
	}
	if hint != "" {
		return hint
	}
	return mri
}

// Enrich fills in sender display names across a message slice in place.
// Each message's SenderName is expected to hold the record-level hint (or
// be empty) on entry.
func (d Directory) Enrich(msgs []model.Message) {
	for i := range msgs {
		msgs[i].SenderName = d.DisplayName(msgs[i].SenderMRI, msgs[i].SenderName)
	}
}
