package normalize

import (
	"golang.org/x/text/unicode/norm"

	"github.com/clearway/teamsdb/internal/model"
	"github.com/clearway/teamsdb/internal/raw"
)

// Title builds a display title for a conversation using the fallback chain
// for its thread type. Every chain bottoms out in the raw conversation id
// so the result is never empty for a record that has one.
//
// Chains:
//   - direct chat:  chatTitle.shortTitle > chatTitle.longTitle > displayName > id
//   - group chat:   chatTitle.longTitle > chatTitle.shortTitle > displayName > id
//   - channel:      "{displayName} > {topic}" when both present, else either,
//     else threadProperties.spaceThreadTopic or .description, else id
//
// Titles are NFC-normalized so the same conversation renders identically
// regardless of which source copy won resolution.
func Title(threadType model.ThreadType, fields raw.Map) string {
	id, _ := fields.StringField("id")

	var title string
	switch threadType {
	case model.ThreadTypeTopic:
		title = channelTitle(fields)
	default:
		title = chatTitle(fields, isGroupChat(fields))
	}
	if title == "" {
		title = id
	}
	return norm.NFC.String(title)
}

// isGroupChat reports whether a chat record describes a group rather than a
// 1:1 conversation. Only an explicit marker counts; membership lists are
// not persisted in a shape this engine reads.
func isGroupChat(fields raw.Map) bool {
	if props, ok := fields.MapField("threadProperties"); ok {
		if b, ok := props.BoolField("isGroupChat"); ok {
			return b
		}
	}
	b, _ := fields.BoolField("isGroupChat")
	return b
}

func chatTitle(fields raw.Map, group bool) string {
	first, second := "shortTitle", "longTitle"
	if group {
		// Group chats show the full participant list; the short title is
		// just the first few names.
		first, second = "longTitle", "shortTitle"
	}
	if ct, ok := fields.MapField("chatTitle"); ok {
		if s, ok := ct.StringField(first); ok && s != "" {
			return s
		}
		if s, ok := ct.StringField(second); ok && s != "" {
			return s
		}
	}
	if s, ok := fields.StringField("displayName"); ok && s != "" {
		return s
	}
	return ""
}

func channelTitle(fields raw.Map) string {
	team, _ := fields.StringField("displayName")
	topic, _ := fields.StringField("topic")

	switch {
	case team != "" && topic != "" && team != topic:
		return team + " > " + topic
	case topic != "":
		return topic
	case team != "":
		return team
	}

	if props, ok := fields.MapField("threadProperties"); ok {
		if s, ok := props.StringField("spaceThreadTopic"); ok && s != "" {
			return s
		}
		if s, ok := props.StringField("description"); ok && s != "" {
			return s
		}
	}
	return ""
}
