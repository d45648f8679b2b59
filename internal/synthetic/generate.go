// Package synthetic writes snapshot files populated with generated records
// shaped like the Teams client's own: redundant versioned conversation
// copies, reply chains with message maps, consumption horizons, and user
// profiles.
//
// Generation is deterministic for a fixed seed and rand seed - timestamps
// derive from a fixed base instant, never from the wall clock - so
// generated snapshots can back reproducible tests and demos.
package synthetic

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// baseTime anchors all generated timestamps.
var baseTime = time.Date(2026, time.January, 28, 1, 0, 0, 0, time.UTC)

// Store names carry the volatile locale/client suffixes real snapshots
// have, so generated data exercises substring classification.
const (
	profilesStore     = "Teams:profiles:en-US:web"
	conversationStore = "Teams:conversation-manager:en-US:web"
	replyChainStore   = "Teams:replychain-manager:en-US:web"
	readMarkerStore   = "Teams:replychain-metadata-manager:en-US:web"
)

// Generate writes a snapshot file at path from the given seed. The rand
// seed drives sender selection only; record shapes come from the seed.
func Generate(path string, seed Seed, randSeed int64) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply snapshot schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ins, err := tx.Prepare(`INSERT OR REPLACE INTO records (store, key, source, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer ins.Close()

	g := &generator{ins: ins, rng: rand.New(rand.NewSource(randSeed))}

	users := g.writeProfiles(seed.Users)
	for i, conv := range seed.Conversations {
		if err := g.writeConversation(i, conv, users); err != nil {
			return err
		}
	}
	if g.err != nil {
		return g.err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type user struct {
	mri  string
	name string
}

type generator struct {
	ins *sql.Stmt
	rng *rand.Rand
	err error
}

func (g *generator) put(store, key, source string, value map[string]any) {
	if g.err != nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		g.err = fmt.Errorf("encode record %s/%s: %w", store, key, err)
		return
	}
	if _, err := g.ins.Exec(store, key, source, string(data)); err != nil {
		g.err = fmt.Errorf("insert record %s/%s: %w", store, key, err)
	}
}

func (g *generator) writeProfiles(seeds []UserSeed) []user {
	users := make([]user, 0, len(seeds))
	for i, u := range seeds {
		mri := fmt.Sprintf("8:orgid:synth-user-%04d", i)
		users = append(users, user{mri: mri, name: u.Name})
		g.put(profilesStore, mri, "s0", map[string]any{
			"mri":         mri,
			"displayName": u.Name,
			"mail":        u.Mail,
		})
	}
	return users
}

func (g *generator) writeConversation(idx int, conv ConversationSeed, users []user) error {
	id := conv.ID
	if id == "" {
		if conv.Type == "Topic" {
			id = fmt.Sprintf("19:synth-conv-%04d@thread.tacv2", idx)
		} else {
			id = fmt.Sprintf("19:synth-chat-%04d@unq.gbl.spaces", idx)
		}
	}

	lastTs := baseTime.Add(time.Duration(conv.Messages-1) * time.Minute)
	horizonIdx := conv.Messages - conv.UnreadTail // first unread message index
	horizon := baseTime.Add(time.Duration(horizonIdx-1)*time.Minute + 30*time.Second)

	copies := conv.Copies
	if copies < 1 {
		copies = 1
	}
	for c := 0; c < copies; c++ {
		props := map[string]any{
			"isRead": conv.UnreadTail == 0,
			"hidden": conv.Hidden,
		}
		value := map[string]any{
			"id":                 id,
			"threadType":         conv.Type,
			"displayName":        conv.Title,
			"version":            float64(c + 1),
			"lastMessageTimeUtc": lastTs.UnixMilli(),
			"threadProperties":   props,
		}
		if conv.Topic != "" {
			value["topic"] = conv.Topic
		}
		g.put(conversationStore, id, "s"+strconv.Itoa(c), value)
	}

	msgMap := make(map[string]any, conv.Messages)
	for j := 0; j < conv.Messages; j++ {
		sender := users[g.rng.Intn(len(users))]
		msgID := fmt.Sprintf("%d", baseTime.Add(time.Duration(j)*time.Minute).UnixMilli())
		msgMap[msgID] = map[string]any{
			"id":                       msgID,
			"from":                     sender.mri,
			"imDisplayName":            sender.name,
			"content":                  fmt.Sprintf("Synthetic message %d in conversation %d", j, idx),
			"messagetype":              "Text",
			"originalArrivalTimestamp": baseTime.Add(time.Duration(j) * time.Minute).UnixMilli(),
		}
	}
	g.put(replyChainStore, id, "s0", map[string]any{
		"conversationId":     id,
		"messageMap":         msgMap,
		"consumptionHorizon": fmt.Sprintf("%d;0;0", horizon.UnixMilli()),
	})

	g.put(readMarkerStore, id, "s0", map[string]any{
		"conversationId":     id,
		"consumptionHorizon": fmt.Sprintf("%d;0;0", horizon.UnixMilli()),
	})
	return g.err
}
