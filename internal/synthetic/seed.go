package synthetic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed describes the shape of a generated snapshot. Seeds are loaded from
// YAML so test fixtures and demo data can be described declaratively.
type Seed struct {
	// Users become profile records. MRIs are derived from list position.
	Users []UserSeed `yaml:"users"`

	// Conversations become conversation, reply-chain, and read-marker
	// records.
	Conversations []ConversationSeed `yaml:"conversations"`
}

// UserSeed is one synthetic directory entry.
type UserSeed struct {
	Name string `yaml:"name"`
	Mail string `yaml:"mail,omitempty"`
}

// ConversationSeed is one synthetic conversation.
type ConversationSeed struct {
	// ID is the conversation id. Empty derives one from the list position.
	ID string `yaml:"id,omitempty"`

	// Type is the thread type string written to the record ("Chat",
	// "Topic", "Meeting"). Empty means Chat.
	Type string `yaml:"type,omitempty"`

	// Title is the display name. Empty derives one.
	Title string `yaml:"title,omitempty"`

	// Topic is the channel topic, written for Topic threads.
	Topic string `yaml:"topic,omitempty"`

	// Messages is the number of messages in the reply chain.
	Messages int `yaml:"messages"`

	// UnreadTail is how many of the trailing messages sit past the
	// consumption horizon. Zero writes a horizon covering everything.
	UnreadTail int `yaml:"unread_tail,omitempty"`

	// Copies is how many duplicate versioned copies of the conversation
	// record to write. Zero means one.
	Copies int `yaml:"copies,omitempty"`

	// Hidden marks the conversation hidden in thread properties.
	Hidden bool `yaml:"hidden,omitempty"`
}

// LoadSeed reads a YAML seed file.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return seed, nil
}

// DefaultSeed returns a small mixed workload: chats, a channel, a meeting
// sub-thread, duplicate copies, and an unread tail.
func DefaultSeed() Seed {
	return Seed{
		Users: []UserSeed{
			{Name: "Alice Smith", Mail: "alice.smith@example.com"},
			{Name: "Bob Johnson", Mail: "bob.johnson@example.com"},
			{Name: "Charlie Williams", Mail: "charlie.williams@example.com"},
			{Name: "Diana Brown", Mail: "diana.brown@example.com"},
		},
		Conversations: []ConversationSeed{
			{Type: "Chat", Title: "Alice Smith", Messages: 8, UnreadTail: 2, Copies: 3},
			{Type: "Chat", Title: "Bob Johnson", Messages: 5},
			{Type: "Topic", Title: "Engineering", Topic: "General", Messages: 12, UnreadTail: 4, Copies: 2},
			{Type: "Topic", Title: "Engineering", Topic: "Releases", Messages: 6, Hidden: true},
			{ID: "19:meeting_c3ludGg@thread.v2", Type: "Meeting", Title: "Weekly sync", Messages: 3},
		},
	}
}
