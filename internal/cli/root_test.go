package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearway/teamsdb/internal/synthetic"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func synthSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.db")
	require.NoError(t, synthetic.Generate(path, synthetic.DefaultSeed(), 1))
	return path
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, err := runCommand(t, "--format", "xml", "stores", "--db", "whatever.db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "unread")
	assert.Contains(t, names, "stores")
	assert.Contains(t, names, "synth")
}

func TestListCommand_MissingSnapshot(t *testing.T) {
	_, err := runCommand(t, "list", "--db", filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestListCommand_Text(t *testing.T) {
	out, err := runCommand(t, "list", "--db", synthSnapshot(t))
	require.NoError(t, err)

	// The default seed holds two chats and two channels; the meeting
	// sub-thread is filtered by default rules.
	assert.Contains(t, out, "4 conversations")
	assert.Contains(t, out, "Alice Smith")
	assert.Contains(t, out, "Engineering > General")
	assert.NotContains(t, out, "Weekly sync")
}

func TestListCommand_JSON(t *testing.T) {
	out, err := runCommand(t, "list", "--format", "json", "--db", synthSnapshot(t))
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.NotNil(t, resp.Data)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4), data["total"])
}

func TestUnreadCommand_FiltersRead(t *testing.T) {
	out, err := runCommand(t, "unread", "--format", "json", "--db", synthSnapshot(t))
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)

	// Two seed conversations carry unread tails.
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(2), data["unread"])
}

func TestStoresCommand_Text(t *testing.T) {
	out, err := runCommand(t, "stores", "--db", synthSnapshot(t))
	require.NoError(t, err)

	assert.Contains(t, out, "conversation")
	assert.Contains(t, out, "replychain")
	assert.Contains(t, out, "readmarker")
	assert.Contains(t, out, "profile")
	assert.Contains(t, out, "4 stores")
}

func TestSynthCommand_GeneratesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.db")
	out, err := runCommand(t, "synth", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	listOut, err := runCommand(t, "list", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, listOut, "4 conversations")
}

func TestListCommand_CanceledContextPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"list", "--db", synthSnapshot(t)})

	// The command context reaches the snapshot queries, so a canceled
	// caller context fails the pass instead of extracting anyway.
	err := cmd.ExecuteContext(ctx)
	require.Error(t, err)
}

func TestStoresCommand_CanceledContextPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"stores", "--db", synthSnapshot(t)})

	err := cmd.ExecuteContext(ctx)
	require.Error(t, err)
}

func TestListCommand_WithRulesFile(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "filters.cue")
	require.NoError(t, os.WriteFile(rulesPath, []byte("excludeHidden: true\nexcludeIdSubstrings: [\"meeting_\"]\n"), 0o644))

	out, err := runCommand(t, "list", "--db", synthSnapshot(t), "--rules", rulesPath)
	require.NoError(t, err)

	// The hidden Releases channel drops; meetings stay filtered by the
	// file's substring rule.
	assert.Contains(t, out, "3 conversations")
	assert.NotContains(t, out, "Engineering > Releases")
}
