package extract

import (
	"slices"
	"strings"

	"github.com/clearway/teamsdb/internal/model"
	"github.com/clearway/teamsdb/internal/normalize"
	"github.com/clearway/teamsdb/internal/profile"
	"github.com/clearway/teamsdb/internal/raw"
	"github.com/clearway/teamsdb/internal/resolve"
	"github.com/clearway/teamsdb/internal/rules"
	"github.com/clearway/teamsdb/internal/unread"
)

// assemble resolves every domain, joins them, and produces the final
// filtered, ordered conversation list. Conversation ids are iterated in
// sorted order so a re-run over the same snapshot assembles identically.
func assemble(scans *passScans, r rules.Rules) ([]model.Conversation, error) {
	directory := buildDirectory(scans.profiles)

	ids := make([]string, 0, len(scans.conversations.candidates))
	for id := range scans.conversations.candidates {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	convs := make([]model.Conversation, 0, len(ids))
	for _, id := range ids {
		winner, err := resolve.Resolve(scans.conversations.candidates[id])
		if err != nil {
			return nil, &Error{Code: CodeAmbiguousResolution, Message: err.Error(), Key: id}
		}
		conv, err := assembleConversation(id, winner, scans, directory)
		if err != nil {
			return nil, err
		}
		if r.Excludes(conv) {
			continue
		}
		convs = append(convs, conv)
	}

	// Newest first; unknown last-message times sink to the end; id breaks
	// ties for a total order.
	slices.SortFunc(convs, func(a, b model.Conversation) int {
		switch {
		case a.LastMessageTime.After(b.LastMessageTime):
			return -1
		case b.LastMessageTime.After(a.LastMessageTime):
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
	return convs, nil
}

func assembleConversation(id string, winner resolve.Candidate, scans *passScans, directory profile.Directory) (model.Conversation, error) {
	fields := winner.Record.Fields
	threadType := threadTypeOf(fields, id)

	conv := model.Conversation{
		ID:              id,
		ThreadType:      threadType,
		Title:           normalize.Title(threadType, fields),
		LastMessageTime: normalize.TimestampField(fields, "lastMessageTimeUtc"),
		ReadFlag:        winner.ReadFlag(),
		Hidden:          hiddenOf(fields),
	}

	msgs, err := assembleMessages(id, scans)
	if err != nil {
		return model.Conversation{}, err
	}

	conv.UnreadCount = unread.Apply(unread.Signal{
		Horizon:     horizonOf(id, fields, scans),
		ReadFlag:    conv.ReadFlag,
		LastMessage: conv.LastMessageTime,
	}, msgs)

	directory.Enrich(msgs)
	conv.Messages = msgs
	return conv, nil
}

// assembleMessages resolves the conversation's reply chain and parses its
// message map into ordered messages.
func assembleMessages(convID string, scans *passScans) ([]model.Message, error) {
	candidates := scans.replyChains.candidates[convID]
	if len(candidates) == 0 {
		return []model.Message{}, nil
	}
	winner, err := resolve.Resolve(candidates)
	if err != nil {
		return nil, &Error{Code: CodeAmbiguousResolution, Message: err.Error(), Key: convID}
	}

	msgMap, ok := winner.Record.Fields.MapField("messageMap")
	if !ok {
		return []model.Message{}, nil
	}

	msgs := make([]model.Message, 0, len(msgMap))
	for _, msgID := range msgMap.SortedKeys() {
		data, ok := msgMap.MapField(msgID)
		if !ok {
			continue
		}
		sender, _ := data.StringField("from")
		hint, _ := data.StringField("imDisplayName")
		msgs = append(msgs, model.Message{
			ID:             msgID,
			ConversationID: convID,
			SenderMRI:      sender,
			SenderName:     hint,
			Content:        normalize.Content(data),
			ContentType:    normalize.ContentTypeOf(data),
			Timestamp:      normalize.TimestampField(data, "originalArrivalTimestamp"),
		})
	}

	// Ascending by timestamp, unknown first, ties by id lexical order.
	slices.SortFunc(msgs, func(a, b model.Message) int {
		switch {
		case a.Timestamp.Before(b.Timestamp):
			return -1
		case b.Timestamp.Before(a.Timestamp):
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
	return msgs, nil
}

// horizonOf combines the conversation's candidate read-markers: legacy
// metadata records, every reply-chain source copy, and the marker embedded
// in the conversation record's own properties. The read-up-to instant is
// the maximum valid marker.
func horizonOf(convID string, fields raw.Map, scans *passScans) model.Instant {
	horizon := model.UnknownInstant()
	for _, h := range scans.readMarkers.horizons[convID] {
		horizon = horizon.Max(h)
	}
	for _, h := range scans.replyChains.horizons[convID] {
		horizon = horizon.Max(h)
	}
	if props, ok := fields.MapField("properties"); ok {
		horizon = horizon.Max(normalize.HorizonField(props, "consumptionhorizon"))
	}
	return horizon
}

func buildDirectory(scan *profileScan) profile.Directory {
	directory := make(profile.Directory, len(scan.candidates))
	for _, candidates := range scan.candidates {
		winner, err := resolve.Resolve(candidates)
		if err != nil {
			continue
		}
		if p, ok := profile.FromRecord(winner.Record); ok {
			directory[p.MRI] = p
		}
	}
	return directory
}

// threadTypeOf determines the thread type from the record's own field, or
// infers it from id-pattern markers when the field is absent or unknown.
func threadTypeOf(fields raw.Map, id string) model.ThreadType {
	if s, ok := fields.StringField("threadType"); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "chat":
			return model.ThreadTypeChat
		case "topic", "space":
			return model.ThreadTypeTopic
		case "meeting":
			return model.ThreadTypeMeeting
		case "system":
			return model.ThreadTypeSystem
		}
	}

	lower := strings.ToLower(id)
	switch {
	case strings.HasPrefix(id, "48:"):
		return model.ThreadTypeSystem
	case strings.Contains(lower, "meeting_"):
		return model.ThreadTypeMeeting
	case strings.Contains(id, "@thread.tacv2"), strings.Contains(id, "@thread.v2"):
		return model.ThreadTypeTopic
	case id != "":
		return model.ThreadTypeChat
	}
	return model.ThreadTypeUnknown
}

func hiddenOf(fields raw.Map) bool {
	if props, ok := fields.MapField("threadProperties"); ok {
		if b, ok := props.BoolField("hidden"); ok {
			return b
		}
	}
	return false
}
