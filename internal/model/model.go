// Package model defines the resolved output types of an extraction pass.
//
// Values of these types are owned by the caller once returned. The engine
// holds no cross-run state: every pass is a pure function of the raw
// snapshot, and serializing the same pass output twice must produce
// byte-identical JSON.
package model

// ThreadType classifies a conversation thread.
type ThreadType string

const (
	ThreadTypeChat    ThreadType = "Chat"
	ThreadTypeTopic   ThreadType = "Topic"
	ThreadTypeMeeting ThreadType = "Meeting"
	ThreadTypeSystem  ThreadType = "System"
	ThreadTypeUnknown ThreadType = "Unknown"
)

// ReadFlag is the tri-state read marker carried in conversation metadata.
// The distinction between "explicitly read" and "no marker at all" matters
// for conflict resolution and the unread fallback chain.
type ReadFlag int

const (
	ReadFlagUnknown ReadFlag = iota
	ReadFlagRead
	ReadFlagUnread
)

func (f ReadFlag) String() string {
	switch f {
	case ReadFlagRead:
		return "read"
	case ReadFlagUnread:
		return "unread"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the flag as its string form.
func (f ReadFlag) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// ContentType distinguishes plain-text from HTML message bodies.
type ContentType string

const (
	ContentTypeText ContentType = "Text"
	ContentTypeHTML ContentType = "Html"
)

// UserProfile is a resolved user directory entry.
type UserProfile struct {
	MRI         string `json:"mri"`
	DisplayName string `json:"display_name"`
	Mail        string `json:"mail,omitempty"`
}

// Message is a single resolved message within a conversation.
type Message struct {
	ID             string      `json:"id"`
	ConversationID string      `json:"conversation_id"`
	SenderMRI      string      `json:"sender_mri"`
	SenderName     string      `json:"sender_name"`
	Content        string      `json:"content"`
	ContentType    ContentType `json:"content_type"`
	Timestamp      Instant     `json:"timestamp"`
	Unread         bool        `json:"unread"`
}

// Conversation is the single authoritative record per logical identifier
// after conflict resolution, carrying its resolved messages.
type Conversation struct {
	ID              string     `json:"id"`
	ThreadType      ThreadType `json:"thread_type"`
	Title           string     `json:"title"`
	LastMessageTime Instant    `json:"last_message_time"`
	ReadFlag        ReadFlag   `json:"read_flag"`
	Hidden          bool       `json:"hidden"`
	UnreadCount     int        `json:"unread_count"`
	Messages        []Message  `json:"messages"`
}

// HasUnread reports whether the conversation carries unread content.
func (c Conversation) HasUnread() bool {
	return c.UnreadCount > 0
}
