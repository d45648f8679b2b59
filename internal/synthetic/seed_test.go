package synthetic_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearway/teamsdb/internal/raw"
	"github.com/clearway/teamsdb/internal/snapshot"
	"github.com/clearway/teamsdb/internal/synthetic"
)

func TestLoadSeed_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
users:
  - name: Alice Smith
    mail: alice@example.com
  - name: Bob Johnson
conversations:
  - type: Chat
    title: Alice Smith
    messages: 4
    unread_tail: 1
    copies: 2
  - id: "19:custom@thread.tacv2"
    type: Topic
    title: Engineering
    topic: Releases
    messages: 2
    hidden: true
`), 0o644))

	seed, err := synthetic.LoadSeed(path)
	require.NoError(t, err)

	require.Len(t, seed.Users, 2)
	assert.Equal(t, "Alice Smith", seed.Users[0].Name)
	assert.Equal(t, "alice@example.com", seed.Users[0].Mail)

	require.Len(t, seed.Conversations, 2)
	assert.Equal(t, 4, seed.Conversations[0].Messages)
	assert.Equal(t, 1, seed.Conversations[0].UnreadTail)
	assert.Equal(t, 2, seed.Conversations[0].Copies)
	assert.Equal(t, "19:custom@thread.tacv2", seed.Conversations[1].ID)
	assert.True(t, seed.Conversations[1].Hidden)
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := synthetic.LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestGenerate_WritesAllDomains(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	require.NoError(t, synthetic.Generate(path, synthetic.DefaultSeed(), 1))

	snap, err := snapshot.Open(path)
	require.NoError(t, err)
	defer snap.Close()

	stores, err := snap.Stores(context.Background())
	require.NoError(t, err)
	assert.Len(t, stores, 4)
}

func TestGenerate_DuplicateCopiesAreVersioned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	seed := synthetic.Seed{
		Users: []synthetic.UserSeed{{Name: "Alice Smith"}},
		Conversations: []synthetic.ConversationSeed{
			{Type: "Chat", Title: "Alice Smith", Messages: 2, Copies: 3},
		},
	}
	require.NoError(t, synthetic.Generate(path, seed, 1))

	snap, err := snapshot.Open(path)
	require.NoError(t, err)
	defer snap.Close()

	versions := map[float64]bool{}
	err = snap.Iterate(context.Background(), "conversation-manager", func(rec raw.Record, decodeErr error) error {
		require.NoError(t, decodeErr)
		v, ok := rec.Fields.NumberField("version")
		require.True(t, ok)
		versions[v] = true
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[float64]bool{1: true, 2: true, 3: true}, versions)
}

func TestGenerate_Deterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.db")
	b := filepath.Join(dir, "b.db")
	require.NoError(t, synthetic.Generate(a, synthetic.DefaultSeed(), 7))
	require.NoError(t, synthetic.Generate(b, synthetic.DefaultSeed(), 7))

	assert.Equal(t, records(t, a), records(t, b))
}

func records(t *testing.T, path string) []string {
	t.Helper()
	snap, err := snapshot.Open(path)
	require.NoError(t, err)
	defer snap.Close()

	var out []string
	err = snap.Iterate(context.Background(), "", func(rec raw.Record, decodeErr error) error {
		require.NoError(t, decodeErr)
		line := rec.Store + "/" + rec.Key + "/" + rec.SourceTag
		for _, k := range rec.Fields.SortedKeys() {
			if s, ok := rec.Fields.StringField(k); ok {
				line += "|" + k + "=" + s
			}
		}
		out = append(out, line)
		return nil
	})
	require.NoError(t, err)
	return out
}
